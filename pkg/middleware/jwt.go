package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"ProjectPortal/internal/auth"
)

// JWTMiddleware rejects requests without a valid bearer token and stores the
// claims (and the bare user id) on the echo context.
func JWTMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := claimsFromRequest(c)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
		}
		c.Set("user", claims)
		c.Set("userID", claims.UserID)
		return next(c)
	}
}

// OptionalJWT parses a bearer token when one is presented but never rejects
// the request. The notification endpoints use it: unauthenticated callers
// act as the anonymous identity.
func OptionalJWT(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if claims, err := claimsFromRequest(c); err == nil {
			c.Set("user", claims)
			c.Set("userID", claims.UserID)
		}
		return next(c)
	}
}

func claimsFromRequest(c echo.Context) (*auth.JWTClaims, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil, errors.New("missing token")
	}

	tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	return auth.ValidateJWT(tokenString)
}
