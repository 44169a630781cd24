package application

import "errors"

// Unauthorized is returned for every authentication or 2FA failure the
// client may see. Error() is the client-facing message; the wrapped cause
// is for server-side logs only.
type Unauthorized struct {
	msg   string
	cause error
}

func (e *Unauthorized) Error() string { return e.msg }

func (e *Unauthorized) Unwrap() error { return e.cause }

// Is matches any Unauthorized with the same message, so callers can test
// against the sentinels below regardless of the wrapped cause.
func (e *Unauthorized) Is(target error) bool {
	t, ok := target.(*Unauthorized)
	return ok && t.msg == e.msg
}

var (
	ErrInvalidCredentials = &Unauthorized{msg: "Invalid credentials"}
	ErrUserNotFound       = &Unauthorized{msg: "user not found"}
	ErrEnable2FA          = &Unauthorized{msg: "error enabling two-factor authentication"}
	ErrDisable2FA         = &Unauthorized{msg: "error disabling two-factor authentication"}
	ErrValidate2FA        = &Unauthorized{msg: "error validating two-factor token"}
)

// NewUnauthorized builds an Unauthorized failure with a client-facing message.
func NewUnauthorized(msg string) *Unauthorized {
	return &Unauthorized{msg: msg}
}

func unauthorized(kind *Unauthorized, cause error) error {
	return &Unauthorized{msg: kind.msg, cause: cause}
}

// IsUnauthorized reports whether err is an Unauthorized failure.
func IsUnauthorized(err error) bool {
	var u *Unauthorized
	return errors.As(err, &u)
}
