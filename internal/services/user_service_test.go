package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/sample-app/internal/api/validate"
	"github.com/baharkarakas/sample-app/internal/models"
)

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	us := NewUserService(st.Users, tickingCredentials())

	u, err := us.Register(ctx, input(" Example User ", "user@example.com", "foobar"))
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.Equal(t, "Example User", u.Name)
	assert.NotEmpty(t, u.Salt)
	assert.NotEmpty(t, u.EncryptedPassword)
	assert.NotEqual(t, "foobar", u.EncryptedPassword)
	assert.False(t, u.Admin)

	assert.True(t, us.Verify(u, "foobar"))
	assert.False(t, us.Verify(u, "invalid"))
}

func TestUserService_RegisterValidation(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	us := NewUserService(st.Users, tickingCredentials())

	long := make([]byte, 51)
	for i := range long {
		long[i] = 'a'
	}

	cases := []struct {
		name  string
		in    UserInput
		field string
	}{
		{"blank name", input("", "a@b.com", "foobar"), "name"},
		{"long name", input(string(long), "a@b.com", "foobar"), "name"},
		{"blank email", input("A", "", "foobar"), "email"},
		{"invalid email", input("A", "user_at_foo.org", "foobar"), "email"},
		{"long email", input("A", strings.Repeat("a", 250)+"@example.com", "foobar"), "email"},
		{"short password", input("A", "a@b.com", "fooba"), "password"},
		{"mismatched confirmation", UserInput{Name: "A", Email: "a@b.com", Password: "foobar", PasswordConfirmation: "barfoo"}, "password"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := us.Register(ctx, tc.in)
			var errs validate.Errs
			require.ErrorAs(t, err, &errs)
			assert.True(t, errs.Has(tc.field), "errors: %v", errs)
		})
	}

	n, err := us.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestUserService_RegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	us := NewUserService(st.Users, tickingCredentials())

	mustRegister(t, us, "First", "user@example.com")
	_, err := us.Register(ctx, input("Second", "USER@EXAMPLE.COM", "foobar"))
	var errs validate.Errs
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs, validate.ErrField{Field: "email", Msg: "has already been taken"})
}

func TestUserService_Authenticate(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	us := NewUserService(st.Users, tickingCredentials())
	u := mustRegister(t, us, "User", "user@example.com")

	got, err := us.Authenticate(ctx, "user@example.com", "foobar")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.ID, got.ID)

	got, err = us.Authenticate(ctx, "User@Example.com", "foobar")
	require.NoError(t, err)
	require.NotNil(t, got)

	got, err = us.Authenticate(ctx, "user@example.com", "wrong")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = us.Authenticate(ctx, "nobody@example.com", "foobar")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUserService_AuthenticateWithSalt(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	us := NewUserService(st.Users, tickingCredentials())
	u := mustRegister(t, us, "User", "user@example.com")

	got, err := us.AuthenticateWithSalt(ctx, u.ID, u.Salt)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.ID, got.ID)

	got, err = us.AuthenticateWithSalt(ctx, u.ID, "other")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = us.AuthenticateWithSalt(ctx, u.ID+100, u.Salt)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUserService_UpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("keeps salt by default", func(t *testing.T) {
		st := newTestStore(t)
		us := NewUserService(st.Users, tickingCredentials())
		u := mustRegister(t, us, "User", "user@example.com")

		got, err := us.UpdateProfile(ctx, u.ID, input("Renamed", "new@example.com", "barbaz"))
		require.NoError(t, err)
		assert.Equal(t, "Renamed", got.Name)
		assert.Equal(t, "new@example.com", got.Email)
		assert.Equal(t, u.Salt, got.Salt)
		assert.True(t, us.Verify(got, "barbaz"))
		assert.False(t, us.Verify(got, "foobar"))
	})

	t.Run("rotates salt when enabled", func(t *testing.T) {
		st := newTestStore(t)
		us := NewUserService(st.Users, tickingCredentials(), WithSaltRotation(true))
		u := mustRegister(t, us, "User", "user@example.com")

		got, err := us.UpdateProfile(ctx, u.ID, input("User", "user@example.com", "barbaz"))
		require.NoError(t, err)
		assert.NotEqual(t, u.Salt, got.Salt)
		assert.True(t, us.Verify(got, "barbaz"))
	})

	t.Run("rejects another user's email", func(t *testing.T) {
		st := newTestStore(t)
		us := NewUserService(st.Users, tickingCredentials())
		mustRegister(t, us, "Taken", "taken@example.com")
		u := mustRegister(t, us, "User", "user@example.com")

		_, err := us.UpdateProfile(ctx, u.ID, input("User", "Taken@example.com", "foobar"))
		var errs validate.Errs
		require.ErrorAs(t, err, &errs)
		assert.True(t, errs.Has("email"))
	})

	t.Run("unknown user", func(t *testing.T) {
		st := newTestStore(t)
		us := NewUserService(st.Users, tickingCredentials())
		_, err := us.UpdateProfile(ctx, 42, input("User", "user@example.com", "foobar"))
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestUserService_Destroy(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	us := NewUserService(st.Users, tickingCredentials())
	ms := NewMicropostService(st.Microposts, nil)
	gs := NewGraphService(st.Users, st.Relationships)

	admin, err := us.EnsureAdmin(ctx, input("Admin", "admin@example.com", "foobar"))
	require.NoError(t, err)
	require.True(t, admin.Admin)
	regular := mustRegister(t, us, "Regular", "regular@example.com")
	target := mustRegister(t, us, "Target", "target@example.com")

	_, err = ms.Create(ctx, target.ID, "bye")
	require.NoError(t, err)
	_, err = gs.Follow(ctx, target.ID, regular.ID)
	require.NoError(t, err)
	_, err = gs.Follow(ctx, regular.ID, target.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, us.Destroy(ctx, nil, target.ID), ErrForbidden)
	assert.ErrorIs(t, us.Destroy(ctx, &regular, target.ID), ErrForbidden)

	before, err := us.Count(ctx)
	require.NoError(t, err)
	assert.ErrorIs(t, us.Destroy(ctx, &admin, admin.ID), ErrForbidden)
	after, err := us.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	require.NoError(t, us.Destroy(ctx, &admin, target.ID))
	after, err = us.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, before-1, after)

	posts, err := ms.ListByUser(ctx, target.ID, models.PageRequest{})
	require.NoError(t, err)
	assert.Zero(t, posts.Total)
	followers, err := gs.Followers(ctx, regular.ID, models.PageRequest{})
	require.NoError(t, err)
	assert.Zero(t, followers.Total)
	following, err := gs.Following(ctx, regular.ID, models.PageRequest{})
	require.NoError(t, err)
	assert.Zero(t, following.Total)

	assert.ErrorIs(t, us.Destroy(ctx, &admin, target.ID), ErrNotFound)
}

func TestUserService_EnsureAdmin(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	us := NewUserService(st.Users, tickingCredentials())
	u := mustRegister(t, us, "User", "user@example.com")

	got, err := us.EnsureAdmin(ctx, input("ignored", "user@example.com", "ignored"))
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.True(t, got.Admin)

	again, err := us.EnsureAdmin(ctx, input("ignored", "user@example.com", "ignored"))
	require.NoError(t, err)
	assert.Equal(t, u.ID, again.ID)

	n, err := us.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestUserService_List(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	us := NewUserService(st.Users, tickingCredentials())
	for _, e := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		mustRegister(t, us, "U", e)
	}

	page, err := us.List(ctx, models.PageRequest{Page: 2, PerPage: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.Total)
	assert.Equal(t, 2, page.Page)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "c@example.com", page.Items[0].Email)
}
