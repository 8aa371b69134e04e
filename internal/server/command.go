package server

import "bptree/internal/engine"

func (s *Server) authCommand(sess *Session, parts []string) Response {
	if len(parts) != 3 {
		return Usage("AUTH <username> <password>")
	}

	u, err := s.auth.Authenticate(parts[1], parts[2])
	if err != nil {
		return Err(err.Error())
	}

	sess.user = u
	return OK
}

func (s *Server) setCommand(sess *Session, parts []string) Response {
	if !sess.IsAuth() {
		return NoAuth
	}
	if sess.user.IsGuest() {
		return NoPerm
	}
	if len(parts) != 3 {
		return Usage("SET <key> <value>")
	}

	if err := s.db.Set(parts[1], []byte(parts[2])); err != nil {
		return Err(err.Error())
	}
	return OK
}

func (s *Server) getCommand(sess *Session, parts []string) Response {
	if !sess.IsAuth() {
		return NoAuth
	}
	if len(parts) != 2 {
		return Usage("GET <key>")
	}

	val, err := s.db.Get(parts[1])
	if err != nil {
		if err == engine.ErrNotFound {
			return Err("key not found")
		}
		return Err(err.Error())
	}
	return Respond(string(val))
}

func (s *Server) delCommand(sess *Session, parts []string) Response {
	if !sess.IsAuth() {
		return NoAuth
	}
	if sess.user.IsGuest() {
		return NoPerm
	}
	if len(parts) != 2 {
		return Usage("DEL <key>")
	}

	if err := s.db.Delete(parts[1]); err != nil {
		if err == engine.ErrNotFound {
			return Err("key not found")
		}
		return Err(err.Error())
	}
	return OK
}
