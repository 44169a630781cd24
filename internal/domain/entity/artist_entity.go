package entity

import "time"

// Artist links a user account to an artist profile.
// One-to-one with User via user_id.
type Artist struct {
	ID        int64
	UserID    int64
	CreatedAt time.Time
}
