package application

import (
	"context"
	"time"

	"github.com/oksasatya/go-music-auth/internal/domain/entity"
)

// withTimeout bounds a single directory call. A non-positive d only adds cancellation.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

func record(ctx context.Context, a AuditRecorder, action string, userID int64, email string, success bool) {
	if a == nil {
		return
	}
	a.Record(ctx, entity.AuditEvent{
		Action:  action,
		UserID:  userID,
		Email:   email,
		Success: success,
		At:      time.Now().UTC(),
	})
}
