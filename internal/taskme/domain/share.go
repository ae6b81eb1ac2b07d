package domain

import "time"

// DefaultShareTTL is how long a share link stays readable.
const DefaultShareTTL = 7 * 24 * time.Hour

// SharedList is a read-only, token-addressed snapshot of task ids.
type SharedList struct {
	ID        int64
	UserID    int64
	TokenHash string
	TaskIDs   []int64
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the link is past its expiry at now.
func (s SharedList) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
