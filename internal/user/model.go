package user

import "time"

type Role string

const (
	RoleCustomer Role = "CLIENTE"
	RoleAdmin    Role = "ADMINISTRADOR"
)

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// AuthResult is returned by Register and Login. User never carries the hash
// outside the package because PasswordHash is not serialized.
type AuthResult struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
