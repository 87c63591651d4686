package model

import "time"

// User is a registered account. Users create surveys, submit responses, or
// both; nothing ties an account to a single role.
type User struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Username     string    `json:"username" bson:"username"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"passwordHash"`
	IsAdmin      bool      `json:"isAdmin" bson:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}

// PublicUser is the projection of a user safe to embed in public payloads.
type PublicUser struct {
	ID       string `json:"id"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
}

// Public returns the public projection of the user.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username, Email: u.Email}
}

// DisplayName returns the name shown in reports: username first, email as
// fallback. Empty when neither is set.
func (u *User) DisplayName() string {
	if u.Username != "" {
		return u.Username
	}
	return u.Email
}
