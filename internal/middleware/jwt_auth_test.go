package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meowtown/backend/internal/models"
)

func signToken(t *testing.T, secret string, claims *models.JwtCustomClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func invoke(t *testing.T, authHeader string) (int, string) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var gotUID string
	handler := JWTAuthMiddleware()(func(c echo.Context) error {
		gotUID, _ = c.Get(ExternalUIDKey).(string)
		return c.NoContent(http.StatusOK)
	})

	err := handler(c)
	if err != nil {
		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		return httpErr.Code, ""
	}
	return rec.Code, gotUID
}

func TestJWTAuthMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("valid token passes uid through", func(t *testing.T) {
		token := signToken(t, "test-secret", &models.JwtCustomClaims{
			UID: "uid-123",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})
		code, uid := invoke(t, "Bearer "+token)
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "uid-123", uid)
	})

	t.Run("subject claim is a fallback uid", func(t *testing.T) {
		token := signToken(t, "test-secret", &models.JwtCustomClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "subject-uid",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})
		code, uid := invoke(t, "Bearer "+token)
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "subject-uid", uid)
	})

	t.Run("missing header rejected", func(t *testing.T) {
		code, _ := invoke(t, "")
		assert.Equal(t, http.StatusUnauthorized, code)
	})

	t.Run("malformed header rejected", func(t *testing.T) {
		code, _ := invoke(t, "Token abc")
		assert.Equal(t, http.StatusUnauthorized, code)
	})

	t.Run("wrong signature rejected", func(t *testing.T) {
		token := signToken(t, "other-secret", &models.JwtCustomClaims{
			UID: "uid-123",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})
		code, _ := invoke(t, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, code)
	})

	t.Run("expired token rejected", func(t *testing.T) {
		token := signToken(t, "test-secret", &models.JwtCustomClaims{
			UID: "uid-123",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			},
		})
		code, _ := invoke(t, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, code)
	})

	t.Run("token without subject rejected", func(t *testing.T) {
		token := signToken(t, "test-secret", &models.JwtCustomClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})
		code, _ := invoke(t, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, code)
	})
}
