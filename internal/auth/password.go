package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Digest turns a salted password string into a stored hash and checks it.
type Digest interface {
	Sum(s string) (string, error)
	Match(hash, s string) bool
}

// SHA256Digest is a plain hex SHA-256, compared by recomputation.
type SHA256Digest struct{}

func (SHA256Digest) Sum(s string) (string, error) { return secureHash(s), nil }

func (SHA256Digest) Match(hash, s string) bool {
	return subtle.ConstantTimeCompare([]byte(hash), []byte(secureHash(s))) == 1
}

// BcryptDigest stores a bcrypt hash of the SHA-256 of the salted password;
// the salted input is longer than bcrypt's 72 byte limit.
type BcryptDigest struct{ Cost int }

func (d BcryptDigest) Sum(s string) (string, error) {
	cost := d.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(secureHash(s)), cost)
	return string(b), err
}

func (BcryptDigest) Match(hash, s string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secureHash(s))) == nil
}

const (
	SchemeSHA256 = "sha256"
	SchemeBcrypt = "bcrypt"
)

func DigestFor(scheme string) (Digest, error) {
	switch scheme {
	case "", SchemeSHA256:
		return SHA256Digest{}, nil
	case SchemeBcrypt:
		return BcryptDigest{}, nil
	}
	return nil, fmt.Errorf("unknown password scheme %q", scheme)
}

func secureHash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// Credentials derives salts and encrypted passwords.
type Credentials struct {
	Digest Digest
	Now    func() time.Time
}

func NewCredentials(d Digest) *Credentials {
	if d == nil {
		d = SHA256Digest{}
	}
	return &Credentials{Digest: d, Now: time.Now}
}

// MakeSalt hashes the current time together with the password.
func (c *Credentials) MakeSalt(password string) string {
	return secureHash(c.Now().UTC().String() + "--" + password)
}

func (c *Credentials) Encrypt(salt, password string) (string, error) {
	return c.Digest.Sum(salt + "--" + password)
}

// HasPassword reports whether password matches the stored hash under salt.
func (c *Credentials) HasPassword(encrypted, salt, password string) bool {
	if encrypted == "" {
		return false
	}
	return c.Digest.Match(encrypted, salt+"--"+password)
}
