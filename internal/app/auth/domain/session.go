package domain

import "time"

// User is an account allowed to sign in. Password holds a bcrypt hash.
type User struct {
	ID       string
	Name     string
	Email    string
	Password string
}

// Session is issued after a successful sign-in.
type Session struct {
	Token     string
	UserID    string
	Email     string
	ExpiresAt time.Time
}
