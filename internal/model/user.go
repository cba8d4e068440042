package model

import "time"

// User is a row in the credential store. This service only ever reads it;
// registration and password changes live elsewhere.
type User struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	UserType     string    `json:"user_type"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AuthClaims are the identity fields carried inside a signed token.
type AuthClaims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	UserType  string `json:"user_type"`
}

// FailedLogin is one append-only ledger entry: an unsuccessful or blocked
// authentication attempt keyed by origin address.
type FailedLogin struct {
	Address    string    `json:"address"`
	OccurredAt time.Time `json:"occurred_at"`
}
