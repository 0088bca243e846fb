package application

// User is a registered directory entry. Users are immutable once created:
// the directory offers no update or delete path, and the email doubles as
// the unique identifier.
type User struct {
	Email   string
	IsAdmin bool
}

// Session identifies the single active authenticated user. The client is
// single-user, so at most one session exists at a time; absence of a session
// is reported as a boolean alongside the value, never as a zero Session.
type Session struct {
	Email   string
	IsAdmin bool
}

// AdminPolicy decides whether a freshly signed up email receives
// administrator access. The default marker policy is demo-grade and carries
// no security value; it exists as a seam so a real authorization mechanism
// can replace it without touching booking logic.
type AdminPolicy func(email string) bool
