package domain

import "time"

type User struct {
	ID            int64
	Username      string
	Email         string
	PasswordHash  string // argon2 encoded
	EmailVerified bool

	// Pending verification, both nil once verified.
	VerificationTokenHash *string
	VerificationExpiresAt *time.Time

	CreatedAt time.Time
}
