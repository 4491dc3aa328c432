package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"novusarc/placement/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCode(t *testing.T) {
	assert.Equal(t, "JOB_0001", FormatCode("JOB", 1))
	assert.Equal(t, "COMP_NOVSARC_0042", FormatCode("COMP_NOVSARC", 42))
	assert.Equal(t, "JOB_12345", FormatCode("JOB", 12345))
}

func TestSuccessList_EmptyIsArray(t *testing.T) {
	rec := httptest.NewRecorder()
	SuccessList[int](rec, "ok", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":true,"message":"ok","data":[],"count":0}`, rec.Body.String())
}

func TestJSONError(t *testing.T) {
	rec := httptest.NewRecorder()
	JSONError(rec, http.StatusConflict, "order_collision", "try again")

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "order_collision", resp.Code)
}

func signActorToken(t *testing.T, method jwt.SigningMethod, secret string, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestActorFromToken(t *testing.T) {
	valid := signActorToken(t, jwt.SigningMethodHS256, "s3cret", jwt.MapClaims{"sub": "u-1"})

	sub, err := ActorFromToken("Bearer "+valid, "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "u-1", sub)

	numeric := signActorToken(t, jwt.SigningMethodHS256, "s3cret", jwt.MapClaims{"sub": 42})
	sub, err = ActorFromToken("Bearer "+numeric, "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "42", sub)

	_, err = ActorFromToken("Bearer "+valid, "other")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ActorFromToken("Basic dTpw", "s3cret")
	assert.ErrorIs(t, err, ErrMissingBearer)
	_, err = ActorFromToken("Bearer ", "s3cret")
	assert.ErrorIs(t, err, ErrMissingBearer)
}

func TestActorFromToken_RejectsOtherAlgorithms(t *testing.T) {
	for _, method := range []jwt.SigningMethod{jwt.SigningMethodHS384, jwt.SigningMethodHS512} {
		t.Run(method.Alg(), func(t *testing.T) {
			token := signActorToken(t, method, "s3cret", jwt.MapClaims{"sub": "u-1"})
			_, err := ActorFromToken("Bearer "+token, "s3cret")
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
		})
	}

	t.Run("none", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "u-1"}).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = ActorFromToken("Bearer "+token, "s3cret")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestActorFromToken_BadSubject(t *testing.T) {
	for name, claims := range map[string]jwt.MapClaims{
		"missing": {},
		"bool":    {"sub": true},
		"empty":   {"sub": ""},
	} {
		t.Run(name, func(t *testing.T) {
			token := signActorToken(t, jwt.SigningMethodHS256, "s3cret", claims)
			_, err := ActorFromToken("Bearer "+token, "s3cret")
			assert.ErrorIs(t, err, ErrMissingActor)
		})
	}
}

func TestInitLogger(t *testing.T) {
	logger, err := InitLogger("debug", "console")
	require.NoError(t, err)
	assert.NotNil(t, logger)
	assert.Same(t, logger, GetLogger())
}
