// Package model defines domain entities for the application.
package model

import "time"

// User is an account holder. ExternalAPIKey is forwarded to the language-model
// provider on the user's behalf and is empty until the user sets one.
type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"` // Never serialize
	ExternalAPIKey string    `json:"-"`
	CreatedAt      time.Time `json:"createdAt"`
}

// HasExternalAPIKey reports whether the user has configured a provider key.
func (u *User) HasExternalAPIKey() bool {
	return u.ExternalAPIKey != ""
}
