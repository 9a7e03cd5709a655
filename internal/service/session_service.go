package service

import (
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/podcastsite/backend/internal/config"
	"github.com/podcastsite/backend/internal/domain"
	"github.com/podcastsite/backend/internal/log"
	"github.com/podcastsite/backend/internal/metrics"
	"github.com/rs/zerolog"
)

// SessionClaims are the claims carried by an admin session token.
type SessionClaims struct {
	IsAdmin bool `json:"isAdmin"`
	jwt.RegisteredClaims
}

// Session is a freshly issued admin credential.
type Session struct {
	ID        string
	Token     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// SessionService issues and verifies stateless admin session tokens. Nothing is
// stored server side, so logout cannot revoke a token before it expires.
type SessionService struct {
	secret []byte
	pin    string
	ttl    time.Duration
	now    func() time.Time
	logger zerolog.Logger
}

func NewSessionService(cfg *config.Config) *SessionService {
	return &SessionService{
		secret: []byte(cfg.AuthSecret),
		pin:    cfg.AdminPIN,
		ttl:    cfg.SessionTTL(),
		now:    time.Now,
		logger: log.WithComponent("session"),
	}
}

// WithClock replaces the time source used for issuing and verifying tokens.
func (s *SessionService) WithClock(now func() time.Time) *SessionService {
	s.now = now
	return s
}

func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

// Login exchanges the admin PIN for a signed session token.
func (s *SessionService) Login(pin string) (*Session, error) {
	if s.pin == "" {
		s.logger.Error().Msg("ADMIN_PIN is not configured, refusing login")
		return nil, fmt.Errorf("%w: ADMIN_PIN", domain.ErrConfiguration)
	}
	if subtle.ConstantTimeCompare([]byte(pin), []byte(s.pin)) != 1 {
		metrics.RecordLogin(false)
		s.logger.Warn().Msg("admin login rejected")
		return nil, domain.ErrInvalidCredentials
	}

	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.ttl)
	id := uuid.New().String()

	claims := SessionClaims{
		IsAdmin: true,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}

	metrics.RecordLogin(true)
	s.logger.Info().Str("session_id", id).Time("expires_at", expiresAt).Msg("admin session issued")

	return &Session{
		ID:        id,
		Token:     token,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}, nil
}

// Verify checks signature, algorithm and expiry. Any failure is reported as
// ok == false; callers treat that exactly like an anonymous request.
func (s *SessionService) Verify(token string) (*SessionClaims, bool) {
	if token == "" {
		return nil, false
	}

	claims := &SessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		s.logger.Debug().Err(err).Msg("session token rejected")
		return nil, false
	}
	if !claims.IsAdmin {
		return nil, false
	}
	return claims, true
}

// Logout is advisory: the caller discards its cookie. The token itself stays
// verifiable until it expires.
func (s *SessionService) Logout(claims *SessionClaims) {
	if claims == nil {
		return
	}
	s.logger.Info().Str("session_id", claims.ID).Msg("admin session discarded by client")
}
