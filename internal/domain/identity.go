package domain

import "time"

// Identity is a credential record: who may log in and how their password is verified.
type Identity struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
