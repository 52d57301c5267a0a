package middleware

import (
	"context"
	"net/http"
)

type actorKey struct{}

// DemoActorID stands in until real authentication lands. Everything
// downstream treats the actor id as an opaque, already-resolved input.
const DemoActorID = "user-demo-1"

// Actor resolves the acting user from the X-Actor-Id header, falling
// back to the demo user, and stashes it on the request context.
func Actor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := r.Header.Get("X-Actor-Id")
		if actor == "" {
			actor = DemoActorID
		}
		ctx := context.WithValue(r.Context(), actorKey{}, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ActorID returns the resolved actor id for the request.
func ActorID(ctx context.Context) string {
	if id, ok := ctx.Value(actorKey{}).(string); ok && id != "" {
		return id
	}
	return DemoActorID
}
