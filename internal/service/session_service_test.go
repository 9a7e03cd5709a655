package service_test

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/podcastsite/backend/internal/domain"
	"github.com/podcastsite/backend/internal/service"
	"github.com/podcastsite/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionService_Login(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		pin        string
		wantErr    error
	}{
		{name: "matching pin", configured: "4321", pin: "4321"},
		{name: "wrong pin", configured: "4321", pin: "1234", wantErr: domain.ErrInvalidCredentials},
		{name: "prefix of pin", configured: "4321", pin: "432", wantErr: domain.ErrInvalidCredentials},
		{name: "pin with suffix", configured: "4321", pin: "43210", wantErr: domain.ErrInvalidCredentials},
		{name: "surrounding whitespace", configured: "4321", pin: " 4321 ", wantErr: domain.ErrInvalidCredentials},
		{name: "empty pin", configured: "4321", pin: "", wantErr: domain.ErrInvalidCredentials},
		{name: "pin not configured", configured: "", pin: "", wantErr: domain.ErrConfiguration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testutil.TestConfig()
			cfg.AdminPIN = tt.configured
			sessions := service.NewSessionService(cfg)

			session, err := sessions.Login(tt.pin)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, session)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, session.Token)
			assert.NotEmpty(t, session.ID)
			assert.Equal(t, 24*time.Hour, session.ExpiresAt.Sub(session.IssuedAt))
		})
	}
}

func TestSessionService_VerifyRoundTrip(t *testing.T) {
	sessions := service.NewSessionService(testutil.TestConfig())

	session, err := sessions.Login(testutil.TestAdminPIN)
	require.NoError(t, err)

	claims, ok := sessions.Verify(session.Token)
	require.True(t, ok)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, session.ID, claims.ID)
}

func TestSessionService_Expiry(t *testing.T) {
	issued := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	now := issued
	sessions := service.NewSessionService(testutil.TestConfig()).
		WithClock(func() time.Time { return now })

	session, err := sessions.Login(testutil.TestAdminPIN)
	require.NoError(t, err)

	now = issued.Add(24*time.Hour - time.Minute)
	_, ok := sessions.Verify(session.Token)
	assert.True(t, ok, "token should still be valid just before 24h")

	now = issued.Add(24*time.Hour + time.Second)
	_, ok = sessions.Verify(session.Token)
	assert.False(t, ok, "token must expire after 24h")
}

func TestSessionService_VerifyRejects(t *testing.T) {
	cfg := testutil.TestConfig()
	sessions := service.NewSessionService(cfg)

	session, err := sessions.Login(testutil.TestAdminPIN)
	require.NoError(t, err)

	sign := func(method jwt.SigningMethod, key interface{}, claims jwt.Claims) string {
		token, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return token
	}
	future := jwt.NewNumericDate(time.Now().Add(time.Hour))

	// Swap in a payload from a differently-signed token, keeping the original signature.
	forged := sign(jwt.SigningMethodHS256, []byte("other-secret"), service.SessionClaims{
		IsAdmin:          true,
		RegisteredClaims: jwt.RegisteredClaims{ID: "forged", ExpiresAt: future},
	})
	originalParts := strings.Split(session.Token, ".")
	forgedParts := strings.Split(forged, ".")
	tampered := strings.Join([]string{originalParts[0], forgedParts[1], originalParts[2]}, ".")

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "not-a-token"},
		{name: "tampered payload", token: tampered},
		{name: "wrong secret", token: forged},
		{
			name: "not admin",
			token: sign(jwt.SigningMethodHS256, []byte(cfg.AuthSecret), service.SessionClaims{
				RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: future},
			}),
		},
		{
			name: "no expiry",
			token: sign(jwt.SigningMethodHS256, []byte(cfg.AuthSecret), service.SessionClaims{
				IsAdmin: true,
			}),
		},
		{
			name: "different algorithm",
			token: sign(jwt.SigningMethodHS512, []byte(cfg.AuthSecret), service.SessionClaims{
				IsAdmin:          true,
				RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: future},
			}),
		},
		{
			name: "unsigned",
			token: sign(jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, service.SessionClaims{
				IsAdmin:          true,
				RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: future},
			}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, ok := sessions.Verify(tt.token)
			assert.False(t, ok)
			assert.Nil(t, claims)
		})
	}
}

func TestSessionService_LogoutIsAdvisory(t *testing.T) {
	sessions := service.NewSessionService(testutil.TestConfig())

	session, err := sessions.Login(testutil.TestAdminPIN)
	require.NoError(t, err)

	claims, ok := sessions.Verify(session.Token)
	require.True(t, ok)

	sessions.Logout(claims)
	sessions.Logout(nil)

	_, ok = sessions.Verify(session.Token)
	assert.True(t, ok, "logout does not revoke issued tokens")
}
