package http

import (
	"context"

	"github.com/example/appointment-booker/internal/application"
	"github.com/example/appointment-booker/internal/logging"
)

type contextKey string

const sessionContextKey contextKey = "session"

// ContextWithSession returns a derived context carrying the active session.
func ContextWithSession(ctx context.Context, session application.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, session)
}

// SessionFromContext extracts the session resolved by RequireSession.
func SessionFromContext(ctx context.Context) (application.Session, bool) {
	session, ok := ctx.Value(sessionContextKey).(application.Session)
	return session, ok
}

// ContextWithLogger re-exports the logging helper for middleware use.
var ContextWithLogger = logging.ContextWithLogger
