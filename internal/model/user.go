// Package model defines domain entities for the application.
package model

import "time"

// User is a registered account.
// NetID is the local part of the institutional email and is used as the display name.
type User struct {
	ID           string    `json:"id"`
	NetID        string    `json:"netid"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Posts        []string  `json:"posts"`
	CreatedAt    time.Time `json:"created_at"`
}
