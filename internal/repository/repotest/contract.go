// Package repotest checks a repository.Store implementation against the
// behaviour the services rely on.
package repotest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/sample-app/internal/models"
	"github.com/baharkarakas/sample-app/internal/repository"
)

// Run executes the contract; open must return an empty store.
func Run(t *testing.T, open func(t *testing.T) repository.Store) {
	t.Run("Users", func(t *testing.T) { testUsers(t, open(t)) })
	t.Run("Relationships", func(t *testing.T) { testRelationships(t, open(t)) })
	t.Run("Feed", func(t *testing.T) { testFeed(t, open(t)) })
	t.Run("DeleteCascades", func(t *testing.T) { testDeleteCascades(t, open(t)) })
	t.Run("UnknownUserReferences", func(t *testing.T) { testUnknownUserReferences(t, open(t)) })
	t.Run("AuditLogs", func(t *testing.T) { testAuditLogs(t, open(t)) })
}

func newUser(t *testing.T, s repository.Store, email string) models.User {
	t.Helper()
	u, err := s.Users.Create(context.Background(), models.User{
		Name: "User", Email: email, EncryptedPassword: "enc", Salt: "salt",
	})
	require.NoError(t, err)
	require.NotZero(t, u.ID)
	return u
}

func testUsers(t *testing.T, s repository.Store) {
	ctx := context.Background()
	u := newUser(t, s, "Mixed@Example.com")

	got, err := s.Users.GetByEmail(ctx, "mixed@example.COM")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = s.Users.Create(ctx, models.User{Name: "Dup", Email: "MIXED@example.com", EncryptedPassword: "e", Salt: "s"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	_, err = s.Users.GetByID(ctx, u.ID+1000)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	u.Name, u.Salt, u.Admin = "Renamed", "salt2", true
	require.NoError(t, s.Users.Update(ctx, u))
	got, err = s.Users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.Equal(t, "salt2", got.Salt)
	assert.True(t, got.Admin)

	newUser(t, s, "second@example.com")
	list, err := s.Users.List(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "second@example.com", list[0].Email)

	n, err := s.Users.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	assert.ErrorIs(t, s.Users.Delete(ctx, u.ID+1000), repository.ErrNotFound)
}

func testRelationships(t *testing.T, s repository.Store) {
	ctx := context.Background()
	a := newUser(t, s, "a@example.com")
	b := newUser(t, s, "b@example.com")
	c := newUser(t, s, "c@example.com")

	first, err := s.Relationships.Create(ctx, a.ID, b.ID)
	require.NoError(t, err)
	again, err := s.Relationships.Create(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	_, err = s.Relationships.Create(ctx, a.ID, c.ID)
	require.NoError(t, err)
	_, err = s.Relationships.Create(ctx, c.ID, b.ID)
	require.NoError(t, err)

	following, err := s.Relationships.Following(ctx, a.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, following, 2)
	assert.Equal(t, b.ID, following[0].ID)
	assert.Equal(t, c.ID, following[1].ID)

	followers, err := s.Relationships.Followers(ctx, b.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, followers, 2)
	assert.Equal(t, a.ID, followers[0].ID)

	n, err := s.Relationships.CountFollowers(ctx, b.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
	n, err = s.Relationships.CountFollowing(ctx, a.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	got, err := s.Relationships.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.FollowerID)

	removed, err := s.Relationships.Delete(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = s.Relationships.Delete(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	_, err = s.Relationships.Find(ctx, a.ID, b.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func testFeed(t *testing.T, s repository.Store) {
	ctx := context.Background()
	me := newUser(t, s, "me@example.com")
	friend := newUser(t, s, "friend@example.com")
	stranger := newUser(t, s, "stranger@example.com")
	_, err := s.Relationships.Create(ctx, me.ID, friend.ID)
	require.NoError(t, err)

	post := func(u models.User, content string) models.Micropost {
		p, err := s.Microposts.Create(ctx, models.Micropost{UserID: u.ID, Content: content})
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
		return p
	}
	post(me, "hello")
	post(stranger, "hidden")
	post(friend, "world")

	feed, err := s.Microposts.Feed(ctx, me.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, "world", feed[0].Content)
	assert.Equal(t, "hello", feed[1].Content)

	n, err := s.Microposts.CountFeed(ctx, me.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	own, err := s.Microposts.ListByUser(ctx, stranger.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, "hidden", own[0].Content)
}

func testDeleteCascades(t *testing.T, s repository.Store) {
	ctx := context.Background()
	gone := newUser(t, s, "gone@example.com")
	stays := newUser(t, s, "stays@example.com")

	_, err := s.Microposts.Create(ctx, models.Micropost{UserID: gone.ID, Content: "bye"})
	require.NoError(t, err)
	_, err = s.Relationships.Create(ctx, gone.ID, stays.ID)
	require.NoError(t, err)
	_, err = s.Relationships.Create(ctx, stays.ID, gone.ID)
	require.NoError(t, err)

	require.NoError(t, s.Users.Delete(ctx, gone.ID))

	n, err := s.Microposts.CountByUser(ctx, gone.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
	n, err = s.Relationships.CountFollowers(ctx, stays.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
	n, err = s.Relationships.CountFollowing(ctx, stays.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func testAuditLogs(t *testing.T, s repository.Store) {
	ctx := context.Background()
	id := "7"
	require.NoError(t, s.AuditLogs.Create(ctx, models.AuditLog{
		EntityType: "user", EntityID: &id, Action: "created", Details: map[string]any{"k": "v"},
	}))
	logs, err := s.AuditLogs.ListByEntity(ctx, "user", "7")
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "created", logs[0].Action)
	assert.Equal(t, "v", logs[0].Details["k"])
}

func testUnknownUserReferences(t *testing.T, s repository.Store) {
	ctx := context.Background()
	u := newUser(t, s, "real@example.com")
	missing := u.ID + 1000

	_, err := s.Microposts.Create(ctx, models.Micropost{UserID: missing, Content: "orphan"})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = s.Relationships.Create(ctx, missing, u.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = s.Relationships.Create(ctx, u.ID, missing)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	n, err := s.Relationships.CountFollowers(ctx, u.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
	n, err = s.Microposts.CountByUser(ctx, missing)
	require.NoError(t, err)
	assert.Zero(t, n)
}
