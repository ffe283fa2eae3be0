package domain

import "time"

// Registered account. PasswordHash holds a bcrypt hash and never leaves the
// service layer.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
