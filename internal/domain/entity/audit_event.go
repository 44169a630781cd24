package entity

import "time"

// Audit actions
const (
	AuditLoginSuccess = "login_success"
	AuditLoginFailure = "login_failure"
	AuditSignup       = "signup"
	Audit2FAEnabled   = "2fa_enabled"
	Audit2FADisabled  = "2fa_disabled"
	Audit2FAValidated = "2fa_validated"
)

// AuditEvent is a security-relevant outcome. It never carries passwords,
// secrets or tokens.
type AuditEvent struct {
	Action  string
	UserID  int64
	Email   string
	Success bool
	At      time.Time
}
