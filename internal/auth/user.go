package auth

import (
	"golang.org/x/crypto/bcrypt"
)

type Role string

const (
	// Allowed to create, delete and list users.
	RoleSuperuser Role = "superuser"
	// Read / Write on the shared database.
	RoleUser Role = "user"
	// Readonly on the shared database.
	RoleGuest Role = "guest"
)

type User struct {
	Username string   `json:"username"`
	Password string   `json:"password"`
	Role     Role     `json:"role"`
	AccessDB []string `json:"access_db"`
}

// Basic password hashing - might be fun to implement from scratch later
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
