package shared

import "context"

type sessionContextKey struct{}

// ContextWithSession attaches the viewer's session for the rest of the request.
func ContextWithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, sess)
}

// SessionFromContext returns the viewer's session, or nil when the request did
// not pass through the session middleware (health, metrics, static assets).
func SessionFromContext(ctx context.Context) *Session {
	sess, _ := ctx.Value(sessionContextKey{}).(*Session)
	return sess
}
