package utils

import (
	"errors"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingBearer = errors.New("authorization header is not a bearer token")
	ErrInvalidToken  = errors.New("invalid token")
	ErrMissingActor  = errors.New("token has no usable subject")
)

// actorAlgorithms lists the signing methods accepted for actor tokens.
var actorAlgorithms = []string{jwt.SigningMethodHS256.Alg()}

// ActorFromToken verifies an "Authorization: Bearer <jwt>" value signed with
// HS256 and returns its subject. Numeric subjects come back in decimal.
func ActorFromToken(header, secret string) (string, error) {
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(raw) == "" {
		return "", ErrMissingBearer
	}

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(strings.TrimSpace(raw), claims, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods(actorAlgorithms))
	if err != nil {
		return "", errors.Join(ErrInvalidToken, err)
	}

	switch sub := claims["sub"].(type) {
	case string:
		if sub == "" {
			return "", ErrMissingActor
		}
		return sub, nil
	case float64:
		// JSON numbers decode as float64
		return strconv.FormatInt(int64(sub), 10), nil
	default:
		return "", ErrMissingActor
	}
}
