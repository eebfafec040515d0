package models

import "time"

// User is a usuarios row. PasswordHash is the argon2id PHC string stored in
// senha and never leaves the server.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
