package rest

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/casafinder/listing-service/internal/platform/logger"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signTestToken(t *testing.T, userID string, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func authProbe(t *testing.T, authorization string) (*httptest.ResponseRecorder, string) {
	t.Helper()
	var capturedUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedUserID, _ = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	middleware := AuthMiddleware(testSecret, logger.NewLogger())
	request := httptest.NewRequest(http.MethodGet, "/users/me/properties", nil)
	if authorization != "" {
		request.Header.Set("Authorization", authorization)
	}
	recorder := httptest.NewRecorder()
	middleware(next).ServeHTTP(recorder, request)
	return recorder, capturedUserID
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	token := signTestToken(t, "user-1", time.Now().Add(time.Hour))

	recorder, userID := authProbe(t, "Bearer "+token)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "user-1", userID)
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	recorder, _ := authProbe(t, "")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	recorder, _ := authProbe(t, "Token abc")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	token := signTestToken(t, "user-1", time.Now().Add(-time.Hour))

	recorder, _ := authProbe(t, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "expired")
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: "user-1"})
	signed, err := token.SignedString([]byte("other-secret"))
	require.NoError(t, err)

	recorder, _ := authProbe(t, "Bearer "+signed)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestAuthMiddleware_TokenWithoutUserID(t *testing.T) {
	token := signTestToken(t, "", time.Now().Add(time.Hour))

	recorder, _ := authProbe(t, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
