package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/baharkarakas/sample-app/internal/auth"
	"github.com/baharkarakas/sample-app/internal/services"
)

var (
	adminName     string
	adminEmail    string
	adminPassword string
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an admin account, or promote an existing one",
	RunE:  runCreateAdmin,
}

func init() {
	createAdminCmd.Flags().StringVar(&adminName, "name", "Admin", "display name")
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "account email")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "password (prompted when omitted)")
	_ = createAdminCmd.MarkFlagRequired("email")
}

func promptPassword() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("--password is required when stdin is not a terminal")
	}
	fmt.Fprint(os.Stderr, "Password: ")
	pw, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

func runCreateAdmin(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	pw := adminPassword
	if pw == "" {
		if pw, err = promptPassword(); err != nil {
			return err
		}
	}

	store, err := openStore(cmd.Context(), cfg.Store, cfg.Store.Migrate)
	if err != nil {
		return err
	}
	defer store.Close()

	digest, err := auth.DigestFor(cfg.Auth.PasswordScheme)
	if err != nil {
		return err
	}
	us := services.NewUserService(store.Users, auth.NewCredentials(digest))
	u, err := us.EnsureAdmin(cmd.Context(), services.UserInput{
		Name:                 adminName,
		Email:                adminEmail,
		Password:             pw,
		PasswordConfirmation: pw,
	})
	if err != nil {
		return err
	}
	log.Info("admin ready", "user_id", u.ID, "email", u.Email)
	return nil
}
