package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/FlamurMaliqi/vayada-creator-marketplace-backend/internal/domain/entity"
)

// ActorClaims carries the resolved participant identity: the user plus the
// creator or hotel profile it acts as.
type ActorClaims struct {
	UserID    string `json:"user_id"`
	Role      string `json:"role"`
	ProfileID string `json:"profile_id"`
	jwt.RegisteredClaims
}

type AuthMiddleware struct {
	secret []byte
}

func NewAuthMiddleware(secret string) *AuthMiddleware {
	return &AuthMiddleware{
		secret: []byte(secret),
	}
}

// GenerateToken issues an HS256 token for the given actor.
func GenerateToken(actor entity.Actor, secret string, expiry time.Duration) (string, error) {
	claims := ActorClaims{
		UserID:    actor.UserID,
		Role:      string(actor.Role),
		ProfileID: actor.ProfileID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header is required")
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization format")
		}

		token, err := jwt.ParseWithClaims(parts[1], &ActorClaims{}, func(token *jwt.Token) (interface{}, error) {
			return m.secret, nil
		})
		if err != nil || !token.Valid {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
		}

		claims, ok := token.Claims.(*ActorClaims)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token claims")
		}

		actor := entity.Actor{
			UserID:    claims.UserID,
			Role:      entity.Party(claims.Role),
			ProfileID: claims.ProfileID,
		}
		if !actor.Role.Valid() || actor.ProfileID == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Token does not identify a marketplace participant")
		}

		c.Set("actor", actor)

		return next(c)
	}
}
