package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"github.com/baharkarakas/sample-app/internal/api/validate"
	"github.com/baharkarakas/sample-app/internal/auth"
	"github.com/baharkarakas/sample-app/internal/models"
	repo "github.com/baharkarakas/sample-app/internal/repository"
)

type UserService struct {
	r          repo.Users
	creds      *auth.Credentials
	audit      *Auditor
	rotateSalt bool
}

type UserOption func(*UserService)

// WithSaltRotation makes every password change issue a new salt, which
// invalidates remember tokens issued before the change.
func WithSaltRotation(on bool) UserOption {
	return func(s *UserService) { s.rotateSalt = on }
}

func WithAuditor(a *Auditor) UserOption {
	return func(s *UserService) { s.audit = a }
}

func NewUserService(r repo.Users, creds *auth.Credentials, opts ...UserOption) *UserService {
	s := &UserService{r: r, creds: creds}
	for _, o := range opts {
		o(s)
	}
	return s
}

// UserInput is the signup and profile form.
type UserInput struct {
	Name                 string `json:"name" validate:"present,max=50"`
	Email                string `json:"email" validate:"present,max=255,email_simple"`
	Password             string `json:"password" validate:"present,min=6,max=40,eqfield=PasswordConfirmation"`
	PasswordConfirmation string `json:"password_confirmation"`
}

func (in *UserInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
}

var errEmailTaken = validate.ErrField{Field: "email", Msg: "has already been taken"}

// check runs field validation plus case-insensitive email uniqueness;
// selfID is the account allowed to already own the email.
func (s *UserService) check(ctx context.Context, in UserInput, selfID int64) error {
	var errs validate.Errs
	if err := validate.Struct(in); err != nil {
		if !errors.As(err, &errs) {
			return err
		}
	}
	if !errs.Has("email") {
		existing, err := s.r.GetByEmail(ctx, in.Email)
		switch {
		case err == nil && existing.ID != selfID:
			errs = append(errs, errEmailTaken)
		case err != nil && !errors.Is(err, repo.ErrNotFound):
			return fmt.Errorf("check email: %w", err)
		}
	}
	return errs.OrNil()
}

// Register validates the form, derives salt and encrypted password and
// creates the account.
func (s *UserService) Register(ctx context.Context, in UserInput) (models.User, error) {
	in.normalize()
	if err := s.check(ctx, in, 0); err != nil {
		return models.User{}, err
	}

	salt := s.creds.MakeSalt(in.Password)
	enc, err := s.creds.Encrypt(salt, in.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("encrypt password: %w", err)
	}

	u, err := s.r.Create(ctx, models.User{
		Name:              in.Name,
		Email:             in.Email,
		EncryptedPassword: enc,
		Salt:              salt,
	})
	if errors.Is(err, repo.ErrDuplicate) {
		return models.User{}, validate.Errs{errEmailTaken}
	}
	if err != nil {
		return models.User{}, fmt.Errorf("create user: %w", err)
	}
	s.audit.Record("user", u.ID, "created", nil)
	return u, nil
}

// Verify reports whether password is u's password.
func (s *UserService) Verify(u models.User, password string) bool {
	return s.creds.HasPassword(u.EncryptedPassword, u.Salt, password)
}

// Authenticate returns nil for an unknown email and for a wrong password
// alike; only storage failures are errors.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.r.GetByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !s.Verify(u, password) {
		return nil, nil
	}
	return &u, nil
}

// AuthenticateWithSalt returns the user with id only while its salt still
// equals salt.
func (s *UserService) AuthenticateWithSalt(ctx context.Context, id int64, salt string) (*models.User, error) {
	u, err := s.r.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if subtle.ConstantTimeCompare([]byte(u.Salt), []byte(salt)) != 1 {
		return nil, nil
	}
	return &u, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (models.User, error) {
	return s.r.GetByID(ctx, id)
}

func (s *UserService) List(ctx context.Context, page models.PageRequest) (models.Page[models.User], error) {
	return paginate(ctx, page, s.r.List, s.r.Count)
}

func (s *UserService) Count(ctx context.Context) (int64, error) { return s.r.Count(ctx) }

// UpdateProfile applies the profile form to user id. The password is
// required and re-encrypted; the salt is kept unless salt rotation is on.
func (s *UserService) UpdateProfile(ctx context.Context, id int64, in UserInput) (models.User, error) {
	u, err := s.r.GetByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	in.normalize()
	if err := s.check(ctx, in, id); err != nil {
		return models.User{}, err
	}

	if s.rotateSalt {
		u.Salt = s.creds.MakeSalt(in.Password)
	}
	enc, err := s.creds.Encrypt(u.Salt, in.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("encrypt password: %w", err)
	}
	u.Name, u.Email, u.EncryptedPassword = in.Name, in.Email, enc

	if err := s.r.Update(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return models.User{}, validate.Errs{errEmailTaken}
		}
		return models.User{}, err
	}
	s.audit.Record("user", u.ID, "updated", map[string]any{"salt_rotated": s.rotateSalt})
	return s.r.GetByID(ctx, id)
}

// Destroy deletes targetID on behalf of actor, who must be an admin other
// than the target.
func (s *UserService) Destroy(ctx context.Context, actor *models.User, targetID int64) error {
	if actor == nil || !actor.Admin || actor.ID == targetID {
		return ErrForbidden
	}
	if err := s.r.Delete(ctx, targetID); err != nil {
		return err
	}
	s.audit.Record("user", targetID, "destroyed", map[string]any{"by": actor.ID})
	return nil
}

// EnsureAdmin registers the account if needed and grants it admin.
func (s *UserService) EnsureAdmin(ctx context.Context, in UserInput) (models.User, error) {
	u, err := s.r.GetByEmail(ctx, strings.TrimSpace(in.Email))
	switch {
	case errors.Is(err, repo.ErrNotFound):
		u, err = s.Register(ctx, in)
		if err != nil {
			return models.User{}, err
		}
	case err != nil:
		return models.User{}, err
	}
	if u.Admin {
		return u, nil
	}
	u.Admin = true
	if err := s.r.Update(ctx, u); err != nil {
		return models.User{}, err
	}
	s.audit.Record("user", u.ID, "granted_admin", nil)
	return u, nil
}
