// Package models defines the domain types shared by the client core:
// users, sessions, movies, and favorite records.
package models

import "time"

// User is an identity record as surfaced to the UI layer. A user is owned
// by exactly one backend at a time: the remote identity service or the
// local on-device registry.
type User struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	CreatedAt     time.Time `json:"createdAt"`
	EmailVerified bool      `json:"emailVerified"`
}

// Session is an ephemeral proof of authentication bound to one user.
// For remote sessions ID is the server-issued session identifier; for
// local sessions it is a synthetic identifier valid only on this device.
type Session struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
}
