package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/sample-app/internal/models"
)

func contents(posts []models.Micropost) []string {
	out := make([]string, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.Content)
	}
	return out
}

func TestFeedService_Feed(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	us := NewUserService(st.Users, tickingCredentials())
	gs := NewGraphService(st.Users, st.Relationships)
	ms := NewMicropostService(st.Microposts, nil)
	fs := NewFeedService(st.Microposts)

	me := mustRegister(t, us, "Me", "me@example.com")
	followed := mustRegister(t, us, "Followed", "followed@example.com")
	stranger := mustRegister(t, us, "Stranger", "stranger@example.com")

	_, err := gs.Follow(ctx, me.ID, followed.ID)
	require.NoError(t, err)

	_, err = ms.Create(ctx, me.ID, "hello")
	require.NoError(t, err)
	_, err = ms.Create(ctx, stranger.ID, "not for you")
	require.NoError(t, err)
	_, err = ms.Create(ctx, followed.ID, "world")
	require.NoError(t, err)

	feed, err := fs.Feed(ctx, me.ID, models.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, []string{"world", "hello"}, contents(feed.Items))
	assert.EqualValues(t, 2, feed.Total)

	require.NoError(t, gs.Unfollow(ctx, me.ID, followed.ID))
	feed, err = fs.Feed(ctx, me.ID, models.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, []string{"hello"}, contents(feed.Items))
}

func TestFeedService_Paginates(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	us := NewUserService(st.Users, tickingCredentials())
	ms := NewMicropostService(st.Microposts, nil)
	fs := NewFeedService(st.Microposts)
	me := mustRegister(t, us, "Me", "me@example.com")

	for _, c := range []string{"one", "two", "three"} {
		_, err := ms.Create(ctx, me.ID, c)
		require.NoError(t, err)
	}

	page, err := fs.Feed(ctx, me.ID, models.PageRequest{Page: 2, PerPage: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.Total)
	assert.Equal(t, []string{"one"}, contents(page.Items))
}
