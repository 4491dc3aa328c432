package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func actorFor(t *testing.T, secret string, header map[string]string) (string, int) {
	t.Helper()
	var seen string
	handler := Actor(secret, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ActorFrom(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return seen, rec.Code
}

func TestActor_BearerToken(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{"sub": "admin-1", "exp": time.Now().Add(time.Hour).Unix()})

	actor, code := actorFor(t, testSecret, map[string]string{
		"Authorization": "Bearer " + token,
		ActorHeader:     "header-user",
	})
	assert.Equal(t, http.StatusNoContent, code)
	assert.Equal(t, "admin-1", actor)
}

func TestActor_NumericSubject(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{"sub": float64(42)})

	actor, _ := actorFor(t, testSecret, map[string]string{"Authorization": "Bearer " + token})
	assert.Equal(t, "42", actor)
}

func TestActor_InvalidTokenFallsBackToHeader(t *testing.T) {
	token := signToken(t, "other-secret", jwt.MapClaims{"sub": "intruder"})

	actor, code := actorFor(t, testSecret, map[string]string{
		"Authorization": "Bearer " + token,
		ActorHeader:     "header-user",
	})
	assert.Equal(t, http.StatusNoContent, code)
	assert.Equal(t, "header-user", actor)
}

func TestActor_ExpiredTokenIgnored(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{"sub": "admin-1", "exp": time.Now().Add(-time.Hour).Unix()})

	actor, code := actorFor(t, testSecret, map[string]string{"Authorization": "Bearer " + token})
	assert.Equal(t, http.StatusNoContent, code)
	assert.Empty(t, actor)
}

func TestActor_NoSecretUsesHeader(t *testing.T) {
	actor, _ := actorFor(t, "", map[string]string{ActorHeader: " tpo-officer "})
	assert.Equal(t, "tpo-officer", actor)
}

func TestActor_Anonymous(t *testing.T) {
	actor, code := actorFor(t, testSecret, nil)
	assert.Equal(t, http.StatusNoContent, code)
	assert.Empty(t, actor)
}
