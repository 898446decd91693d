package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/sample-app/internal/auth"
	"github.com/baharkarakas/sample-app/internal/models"
	repo "github.com/baharkarakas/sample-app/internal/repository"
	"github.com/baharkarakas/sample-app/internal/repository/gormstore"
)

func newTestStore(t *testing.T) repo.Store {
	t.Helper()
	s, err := gormstore.Open(gormstore.Config{Dialect: gormstore.DialectSQLite, SQLitePath: gormstore.MemoryPath})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s.Repositories()
}

// tickingCredentials advances the clock on every salt so two salts for the
// same password never collide.
func tickingCredentials() *auth.Credentials {
	c := auth.NewCredentials(auth.SHA256Digest{})
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.Now = func() time.Time {
		now = now.Add(time.Second)
		return now
	}
	return c
}

func input(name, email, pw string) UserInput {
	return UserInput{Name: name, Email: email, Password: pw, PasswordConfirmation: pw}
}

func mustRegister(t *testing.T, us *UserService, name, email string) models.User {
	t.Helper()
	u, err := us.Register(context.Background(), input(name, email, "foobar"))
	require.NoError(t, err)
	return u
}
