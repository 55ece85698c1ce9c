package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alessok/devops-proyecto-final/internal/adapters/http/handlers"
	"github.com/alessok/devops-proyecto-final/internal/core/serviceerrors"
	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
)

const claimsContextKey = "auth_claims"

// Authenticate rejects requests without a valid Bearer token. Expired tokens
// get a distinct error so clients know to refresh instead of re-login.
func Authenticate(secret string) gin.HandlerFunc {
	key := []byte(secret)

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abort(c, serviceerrors.NewInvalidTokenError("Authorization header is required"))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			abort(c, serviceerrors.NewInvalidTokenError("Authorization header format must be 'Bearer <token>'"))
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return key, nil
		})
		if err != nil {
			abort(c, classifyTokenError(err))
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok || !token.Valid {
			abort(c, serviceerrors.NewInvalidTokenError("Invalid token"))
			return
		}

		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

// Claims returns the token claims stored by Authenticate, or nil when the
// request was not authenticated.
func Claims(c *gin.Context) jwt.MapClaims {
	value, ok := c.Get(claimsContextKey)
	if !ok {
		return nil
	}
	claims, _ := value.(jwt.MapClaims)
	return claims
}

func classifyTokenError(err error) error {
	var validationErr *jwt.ValidationError
	if errors.As(err, &validationErr) && validationErr.Errors&jwt.ValidationErrorExpired != 0 {
		return serviceerrors.NewTokenExpiredError("Token expired")
	}
	return serviceerrors.NewInvalidTokenError("Invalid token")
}

func abort(c *gin.Context, err error) {
	handlers.HandleError(c, err)
	c.Abort()
}
