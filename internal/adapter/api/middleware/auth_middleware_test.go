package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FlamurMaliqi/vayada-creator-marketplace-backend/internal/domain/entity"
)

const testSecret = "test-secret"

func runAuth(t *testing.T, authHeader string) (*httptest.ResponseRecorder, entity.Actor, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen entity.Actor
	handler := NewAuthMiddleware(testSecret).Authenticate(func(c echo.Context) error {
		seen = c.Get("actor").(entity.Actor)
		return c.NoContent(http.StatusOK)
	})

	return rec, seen, handler(c)
}

func TestAuthenticateValidToken(t *testing.T) {
	actor := entity.Actor{UserID: "user-1", Role: entity.PartyCreator, ProfileID: "profile-1"}
	token, err := GenerateToken(actor, testSecret, time.Hour)
	require.NoError(t, err)

	_, seen, err := runAuth(t, "Bearer "+token)
	require.NoError(t, err)
	assert.Equal(t, actor, seen)
}

func TestAuthenticateRejections(t *testing.T) {
	expectUnauthorized := func(t *testing.T, err error) {
		t.Helper()
		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	}

	t.Run("missing header", func(t *testing.T) {
		_, _, err := runAuth(t, "")
		expectUnauthorized(t, err)
	})

	t.Run("malformed header", func(t *testing.T) {
		_, _, err := runAuth(t, "Token abc")
		expectUnauthorized(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := GenerateToken(entity.Actor{UserID: "u", Role: entity.PartyHotel, ProfileID: "p"}, "other-secret", time.Hour)
		require.NoError(t, err)
		_, _, err = runAuth(t, "Bearer "+token)
		expectUnauthorized(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := GenerateToken(entity.Actor{UserID: "u", Role: entity.PartyHotel, ProfileID: "p"}, testSecret, -time.Minute)
		require.NoError(t, err)
		_, _, err = runAuth(t, "Bearer "+token)
		expectUnauthorized(t, err)
	})

	t.Run("token without a profile", func(t *testing.T) {
		token, err := GenerateToken(entity.Actor{UserID: "u", Role: entity.PartyCreator}, testSecret, time.Hour)
		require.NoError(t, err)
		_, _, err = runAuth(t, "Bearer "+token)
		expectUnauthorized(t, err)
	})

	t.Run("unknown role", func(t *testing.T) {
		token, err := GenerateToken(entity.Actor{UserID: "u", Role: "admin", ProfileID: "p"}, testSecret, time.Hour)
		require.NoError(t, err)
		_, _, err = runAuth(t, "Bearer "+token)
		expectUnauthorized(t, err)
	})
}
