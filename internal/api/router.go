package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/baharkarakas/sample-app/internal/api/handlers"
	"github.com/baharkarakas/sample-app/internal/api/httpx"
	"github.com/baharkarakas/sample-app/internal/metrics"
	"github.com/baharkarakas/sample-app/internal/middleware"
	"github.com/baharkarakas/sample-app/internal/services"
	"github.com/baharkarakas/sample-app/internal/session"
)

type RouterDeps struct {
	Sessions       *session.Manager
	SecureCookies  bool
	AllowedOrigins []string
	PerPage        int

	Users *services.UserService
	Posts *services.MicropostService
	Graph *services.GraphService
	Feed  *services.FeedService

	// Ping reports store health for /health; nil means always healthy.
	Ping func(ctx context.Context) error
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.HTTPMetrics)
	// cors treats an empty origin list as "allow all"
	if len(d.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   d.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Content-Type"},
			ExposedHeaders:   []string{"Location", httpx.NoticeHeader, middleware.RequestIDHeader},
			AllowCredentials: true,
		}))
	}

	// health & metrics
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if d.Ping != nil {
			if err := d.Ping(r.Context()); err != nil {
				http.Error(w, "store unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", metrics.Handler())

	users := handlers.NewUsersHandler(d.Users, d.Posts, d.Graph, d.PerPage)
	sessions := handlers.NewSessionsHandler(d.Users)
	posts := handlers.NewMicropostsHandler(d.Posts)
	rels := handlers.NewRelationshipsHandler(d.Graph)
	feed := handlers.NewFeedHandler(d.Feed, d.PerPage)

	signedIn := middleware.Require(middleware.DenyAccess, middleware.SignedIn)
	home := middleware.RedirectTo("/")

	r.Group(func(r chi.Router) {
		r.Use(middleware.Sessions(d.Sessions, d.SecureCookies))

		r.Get("/", feed.Home)
		r.Get("/signin", sessions.New)
		r.Post("/sessions", sessions.Create)
		r.Delete("/sessions", sessions.Destroy)

		r.Post("/users", users.Create)
		r.Get("/users/{id}", users.Show)

		r.Group(func(r chi.Router) {
			r.Use(signedIn)

			r.Get("/users", users.Index)
			r.With(middleware.Require(home, middleware.CorrectUser("id"))).Put("/users/{id}", users.Update)
			r.With(middleware.Require(home, middleware.AdminNotSelf("id"))).Delete("/users/{id}", users.Destroy)
			r.Get("/users/{id}/following", users.Following)
			r.Get("/users/{id}/followers", users.Followers)

			r.Post("/microposts", posts.Create)
			r.Delete("/microposts/{id}", posts.Destroy)

			r.Post("/relationships", rels.Create)
			r.Delete("/relationships/{id}", rels.Destroy)

			r.Get("/feed", feed.Show)
		})
	})

	return r
}
