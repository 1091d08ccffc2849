package domain

// Session identifies the operator on whose behalf a backend is accessed.
// It is passed explicitly when a backend is built instead of being looked up
// from ambient state.
type Session struct {
	Token  string
	UserID string
}

// Authenticated reports whether the session carries a bearer token.
func (s Session) Authenticated() bool {
	return s.Token != ""
}
