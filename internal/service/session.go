package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/and161185/admin-console/internal/errs"
	"github.com/and161185/admin-console/internal/model"
	"github.com/and161185/admin-console/internal/storage"
)

// Session owns the current principal and is the sole writer of the session record.
// The principal is persisted as a signed HS256 token so a tampered or expired
// record rehydrates as "no session" instead of a forged identity.
type Session struct {
	store   storage.Store
	signKey []byte
	ttl     time.Duration
	current *model.Principal
}

// NewSession constructs a session manager; call Load before first use.
func NewSession(store storage.Store, signKey []byte, ttl time.Duration) *Session {
	return &Session{store: store, signKey: signKey, ttl: ttl}
}

type sessionClaims struct {
	Name  string     `json:"name"`
	Email string     `json:"email"`
	Role  model.Role `json:"role"`
	jwt.RegisteredClaims
}

// Load rehydrates the session from storage. An absent record means no session.
// An invalid or expired token also means no session; the stale record is
// cleared so the next load is cheap.
func (s *Session) Load() error {
	raw, err := s.store.Get(storage.KeySession)
	if errors.Is(err, errs.ErrNotFound) {
		s.current = nil
		return nil
	}
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	var claims sessionClaims
	_, err = jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.signKey, nil
	})
	if err != nil {
		s.current = nil
		_ = s.store.Remove(storage.KeySession)
		return nil
	}
	s.current = &model.Principal{Name: claims.Name, Email: claims.Email, Role: claims.Role}
	return nil
}

// Set signs and persists the principal, then makes it current.
// The write must succeed before memory is updated.
func (s *Session) Set(p model.Principal) error {
	now := time.Now()
	claims := sessionClaims{
		Name:  p.Name,
		Email: p.Email,
		Role:  p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signKey)
	if err != nil {
		return fmt.Errorf("sign session: %w", err)
	}
	if err := s.store.Set(storage.KeySession, signed); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	s.current = &p
	return nil
}

// Clear removes the persisted session and drops the current principal.
func (s *Session) Clear() error {
	if err := s.store.Remove(storage.KeySession); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.current = nil
	return nil
}

// Current returns a copy of the authenticated principal, if any.
func (s *Session) Current() (model.Principal, bool) {
	if s.current == nil {
		return model.Principal{}, false
	}
	return *s.current, true
}
