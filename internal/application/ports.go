package application

import (
	"context"

	"github.com/oksasatya/go-music-auth/internal/domain/entity"
)

// Notifier tells a user about security-relevant account changes.
type Notifier interface {
	TwoFactorChanged(ctx context.Context, u *entity.User, enabled bool) error
}

// AuditRecorder stores authentication outcomes. Implementations must not
// block the caller for long and handle their own failures.
type AuditRecorder interface {
	Record(ctx context.Context, ev entity.AuditEvent)
}
