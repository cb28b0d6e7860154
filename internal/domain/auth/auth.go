package auth

import "errors"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleHR       Role = "hr"
	RoleEmployee Role = "employee"
)

var (
	ErrInvalidToken = errors.New("Invalid or missing token")
	ErrForbidden    = errors.New("Insufficient role")
)
