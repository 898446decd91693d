package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/baharkarakas/sample-app/internal/api"
	"github.com/baharkarakas/sample-app/internal/auth"
	"github.com/baharkarakas/sample-app/internal/metrics"
	"github.com/baharkarakas/sample-app/internal/services"
	"github.com/baharkarakas/sample-app/internal/session"
	"github.com/baharkarakas/sample-app/internal/worker"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg.Store, cfg.Store.Migrate)
	if err != nil {
		return err
	}
	defer store.Close()

	digest, err := auth.DigestFor(cfg.Auth.PasswordScheme)
	if err != nil {
		return err
	}

	metrics.Init()
	wp := worker.NewPool(cfg.Worker.Count, cfg.Worker.QueueSize)
	defer wp.Stop()
	auditor := services.NewAuditor(store.AuditLogs, wp)

	userSvc := services.NewUserService(store.Users, auth.NewCredentials(digest),
		services.WithSaltRotation(cfg.Auth.RotateSaltOnPasswordChange),
		services.WithAuditor(auditor),
	)
	tokens := auth.NewTokenManager(cfg.Auth.CookieSecret, cfg.Auth.Issuer, cfg.Auth.RememberTTL)

	r := api.NewRouter(api.RouterDeps{
		Sessions:       session.NewManager(tokens, userSvc),
		SecureCookies:  cfg.Auth.SecureCookies,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		PerPage:        cfg.Pagination.PerPage,
		Users:          userSvc,
		Posts:          services.NewMicropostService(store.Microposts, auditor),
		Graph:          services.NewGraphService(store.Users, store.Relationships),
		Feed:           services.NewFeedService(store.Microposts),
		Ping:           store.Ping,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", "port", cfg.HTTP.Port, "store", cfg.Store.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
