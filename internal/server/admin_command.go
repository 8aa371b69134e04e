package server

import (
	"strings"

	"bptree/internal/auth"
)

func (s *Server) createUserCommand(sess *Session, parts []string) Response {
	if !sess.IsAuth() {
		return NoAuth
	}
	if !sess.user.IsSuperuser() {
		return NoPerm
	}
	if len(parts) != 4 {
		return Usage("CREATEUSER <username> <password> <role>")
	}

	username := parts[1]
	if _, err := s.auth.Store().GetUser(username); err == nil {
		return Err("user already exists")
	}

	password := parts[2]
	role := auth.Role(parts[3])
	switch role {
	case auth.RoleSuperuser, auth.RoleUser, auth.RoleGuest:
	default:
		return Err("invalid role")
	}

	// Later we should implement minimum length / complexity.
	hash, err := auth.HashPassword(password)
	if err != nil {
		return Err("failed to hash password")
	}

	u := &auth.User{
		Username: username,
		Password: hash,
		Role:     role,
		AccessDB: []string{},
	}

	if err := s.auth.Store().SaveUser(u); err != nil {
		return Err(err.Error())
	}
	return OK
}

func (s *Server) delUserCommand(sess *Session, parts []string) Response {
	if !sess.IsAuth() {
		return NoAuth
	}
	if !sess.user.IsSuperuser() {
		return NoPerm
	}
	if len(parts) != 2 {
		return Usage("DELUSER <username>")
	}

	if err := s.auth.Store().DeleteUser(parts[1]); err != nil {
		return Err(err.Error())
	}
	return OK
}

func (s *Server) listUsersCommand(sess *Session, parts []string) Response {
	if !sess.IsAuth() {
		return NoAuth
	}
	if !sess.user.IsSuperuser() {
		return NoPerm
	}

	users, err := s.auth.Store().ListUsers()
	if err != nil {
		return Err(err.Error())
	}

	names := make([]string, len(users))
	for i, u := range users {
		names[i] = u.Username + ":" + string(u.Role)
	}
	return Respond(strings.Join(names, " "))
}
