package user

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account that owns albums and photos
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	IsAdmin      bool      `db:"is_admin" json:"is_admin"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Role returns the JWT role string for the user
func (u *User) Role() string {
	if u.IsAdmin {
		return "admin"
	}
	return "user"
}
