package entity

import "time"

const RoleAdmin = "admin"

// RoleUser is given to every account created through the registration form.
const RoleUser = "user"

type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	RoleName     string    `json:"role_name"`
	CreatedAt    time.Time `json:"created_at"`
}

// SessionUser is the only shape of a user that is ever put into a session.
// It carries no password field.
type SessionUser struct {
	ID        int
	Name      string
	Email     string
	RoleName  string
	CreatedAt time.Time
}

func (u User) Public() SessionUser {
	return SessionUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		RoleName:  u.RoleName,
		CreatedAt: u.CreatedAt,
	}
}

func (u SessionUser) IsAdmin() bool {
	return u.RoleName == RoleAdmin
}
