package domain

import "time"

// Reviewer is the domain model for administrators who review requests.
// There is a single permission tier: a reviewer account is either
// authenticated or it is not.
type Reviewer struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
