package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 42,
		"exp":     expiresAt.Unix(),
		"iat":     time.Now().Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func performAuth(t *testing.T, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.GET("/protected", Authenticate(testSecret), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	request := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		request.Header.Set("Authorization", authHeader)
	}

	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, request)
	return recorder
}

func messageOf(t *testing.T, recorder *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return body.Message
}

func TestAuthenticate(t *testing.T) {
	t.Run("valid token passes through", func(t *testing.T) {
		token := signToken(t, testSecret, time.Now().Add(time.Hour))

		recorder := performAuth(t, "Bearer "+token)
		if recorder.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
		}
	})

	t.Run("missing header", func(t *testing.T) {
		recorder := performAuth(t, "")
		if recorder.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", recorder.Code)
		}
	})

	t.Run("malformed header", func(t *testing.T) {
		recorder := performAuth(t, "Token abc")
		if recorder.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", recorder.Code)
		}
	})

	t.Run("wrong signature", func(t *testing.T) {
		token := signToken(t, "other-secret", time.Now().Add(time.Hour))

		recorder := performAuth(t, "Bearer "+token)
		if recorder.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", recorder.Code)
		}
		if got := messageOf(t, recorder); got != "Invalid token" {
			t.Fatalf("expected invalid token message, got %q", got)
		}
	})

	t.Run("expired token gets a distinct message", func(t *testing.T) {
		token := signToken(t, testSecret, time.Now().Add(-time.Hour))

		recorder := performAuth(t, "Bearer "+token)
		if recorder.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", recorder.Code)
		}
		if got := messageOf(t, recorder); got != "Token expired" {
			t.Fatalf("expected token expired message, got %q", got)
		}
	})
}

func TestClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.GET("/protected", Authenticate(testSecret), func(c *gin.Context) {
		claims := Claims(c)
		if claims == nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": claims["user_id"]})
	})

	token := signToken(t, testSecret, time.Now().Add(time.Hour))
	request := httptest.NewRequest(http.MethodGet, "/protected", nil)
	request.Header.Set("Authorization", "Bearer "+token)

	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
}
