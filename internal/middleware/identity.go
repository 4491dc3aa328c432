package middleware

import (
	"context"
	"net/http"
	"strings"

	"novusarc/placement/internal/utils"

	"go.uber.org/zap"
)

const actorKey contextKey = "actor"

// ActorHeader carries the caller id when no bearer token is sent.
const ActorHeader = "X-User-ID"

// Actor records who is making the request for createdBy fields. A valid
// bearer token wins over the header. Requests are never rejected here.
func Actor(secret string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor := strings.TrimSpace(r.Header.Get(ActorHeader))

			if authz := r.Header.Get("Authorization"); secret != "" && authz != "" {
				sub, err := utils.ActorFromToken(authz, secret)
				if err == nil {
					actor = sub
				} else if logger != nil {
					logger.Debug("ignoring unverifiable bearer token", zap.Error(err))
				}
			}

			if actor == "" {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// ActorFrom returns the caller id, or "" when unknown.
func ActorFrom(ctx context.Context) string {
	actor, _ := ctx.Value(actorKey).(string)
	return actor
}
