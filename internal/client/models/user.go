package models

// User is the public part of a usuarios row.
type User struct {
	ID    string
	Name  string
	Email string
}

// Session is what the device remembers about the signed-in user.
type Session struct {
	UserID      string
	Email       string
	AccessToken string
}
