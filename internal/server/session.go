package server

import "bptree/internal/auth"

// Session is one client connection's state: which user, if any, has
// authenticated on it. There is exactly one shared Database per
// Server, so a session has nothing analogous to the teacher's
// per-connection open-database handle.
type Session struct {
	user *auth.User
}

func (s *Session) IsAuth() bool {
	return s.user != nil
}
