package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// TokenManager signs the remember token and the return-to marker.
type TokenManager struct {
	secret      []byte
	issuer      string
	rememberTTL time.Duration
	now         func() time.Time
}

func NewTokenManager(secret, issuer string, rememberTTL time.Duration) *TokenManager {
	return &TokenManager{
		secret:      []byte(secret),
		issuer:      issuer,
		rememberTTL: rememberTTL,
		now:         time.Now,
	}
}

const (
	typeRemember = "remember"
	typeReturnTo = "return_to"
)

type Claims struct {
	UserID int64  `json:"uid,omitempty"`
	Salt   string `json:"salt,omitempty"`
	Path   string `json:"path,omitempty"`
	Type   string `json:"typ"`
	jwt.RegisteredClaims
}

func (tm *TokenManager) RememberTTL() time.Duration { return tm.rememberTTL }

// IssueRemember signs (userID, salt) with the long remember expiry.
func (tm *TokenManager) IssueRemember(userID int64, salt string) (string, time.Time, error) {
	now := tm.now()
	exp := now.Add(tm.rememberTTL)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: userID,
		Salt:   salt,
		Type:   typeRemember,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tm.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	s, err := tok.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return s, exp, nil
}

// ParseRemember verifies signature, expiry and type.
func (tm *TokenManager) ParseRemember(tokenStr string) (userID int64, salt string, err error) {
	c, err := tm.parse(tokenStr, typeRemember)
	if err != nil {
		return 0, "", err
	}
	if c.UserID <= 0 || c.Salt == "" {
		return 0, "", ErrInvalidToken
	}
	return c.UserID, c.Salt, nil
}

func (tm *TokenManager) IssueReturnTo(path string) (string, error) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Path: path,
		Type: typeReturnTo,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   tm.issuer,
			IssuedAt: jwt.NewNumericDate(tm.now()),
		},
	})
	return tok.SignedString(tm.secret)
}

func (tm *TokenManager) ParseReturnTo(tokenStr string) (string, error) {
	c, err := tm.parse(tokenStr, typeReturnTo)
	if err != nil {
		return "", err
	}
	return c.Path, nil
}

func (tm *TokenManager) parse(tokenStr, typ string) (*Claims, error) {
	if tokenStr == "" {
		return nil, ErrInvalidToken
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return tm.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tm.issuer),
		jwt.WithTimeFunc(tm.now),
	)
	if err != nil || !token.Valid || claims.Type != typ {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
