package models

import "time"

// User represents a user account in the system.
type User struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email,omitempty"`
	PasswordHash string     `json:"-"` // Never expose this to the client
	Token        *string    `json:"-"`
	TokenExpires *time.Time `json:"-"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// HasValidToken reports whether the user holds a token that is still valid
// at the given instant.
func (u User) HasValidToken(now time.Time) bool {
	return u.Token != nil && u.TokenExpires != nil && u.TokenExpires.After(now)
}
