package entity

import (
	"time"
)

// User is the identity record behind every authorization decision.
// Passwords are stored as bcrypt hashes in Password field.
type User struct {
	ID        int64
	Email     string
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
