package application

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-music-auth/internal/domain/entity"
	repo "github.com/oksasatya/go-music-auth/internal/domain/repository"
	"github.com/oksasatya/go-music-auth/pkg/helpers"
)

const defaultIssuer = "go-music-auth"

// TwoFactorOptions: Period is the TOTP step in seconds, Skew the number of
// steps accepted on either side of the current one.
type TwoFactorOptions struct {
	Issuer  string
	Period  uint
	Skew    uint
	Timeout time.Duration
}

// TwoFactorService manages the per-user TOTP state machine
// (Disabled -> Enabled -> Disabled). The user repository is the only store.
type TwoFactorService struct {
	Users    repo.UserRepository
	Notifier Notifier
	Audit    AuditRecorder
	Logger   *logrus.Logger
	Opts     TwoFactorOptions

	now func() time.Time
}

type Enable2FAResult struct {
	Secret string `json:"secret"`
}

type Validate2FAResult struct {
	Verified bool `json:"verified"`
}

func NewTwoFactorService(users repo.UserRepository, notifier Notifier, audit AuditRecorder, logger *logrus.Logger, opts TwoFactorOptions) *TwoFactorService {
	if logger == nil {
		logger = helpers.NewNopLogger()
	}
	if opts.Period == 0 {
		opts.Period = 30
	}
	if opts.Issuer == "" {
		opts.Issuer = defaultIssuer
	}
	return &TwoFactorService{
		Users:    users,
		Notifier: notifier,
		Audit:    audit,
		Logger:   logger,
		Opts:     opts,
		now:      time.Now,
	}
}

// Enable2FA returns the user's TOTP secret, generating and storing one on
// the first call. Calling it again while enabled returns the same secret.
func (s *TwoFactorService) Enable2FA(ctx context.Context, userID int64) (Enable2FAResult, error) {
	u, err := s.getUser(ctx, userID)
	if err != nil {
		return Enable2FAResult{}, s.lookupError(err, ErrEnable2FA, userID)
	}

	if u.TwoFAEnabled && u.TwoFASecret != "" {
		return Enable2FAResult{Secret: u.TwoFASecret}, nil
	}

	account := u.Email
	if account == "" {
		account = strconv.FormatInt(u.ID, 10)
	}
	secret, err := helpers.GenerateTOTPSecret(s.Opts.Issuer, account, s.Opts.Period)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Error("generate totp secret failed")
		return Enable2FAResult{}, unauthorized(ErrEnable2FA, err)
	}

	enabled := true
	c, cancel := withTimeout(ctx, s.Opts.Timeout)
	err = s.Users.UpdateFields(c, userID, entity.UserFields{TwoFAEnabled: &enabled, TwoFASecret: &secret})
	cancel()
	if err != nil {
		return Enable2FAResult{}, s.lookupError(err, ErrEnable2FA, userID)
	}

	u.TwoFAEnabled, u.TwoFASecret = true, secret
	s.notify(ctx, u, true)
	record(ctx, s.Audit, entity.Audit2FAEnabled, u.ID, u.Email, true)
	return Enable2FAResult{Secret: secret}, nil
}

// Disable2FA turns 2FA off and clears the secret. Disabling an already
// disabled account succeeds without notifying anyone.
func (s *TwoFactorService) Disable2FA(ctx context.Context, userID int64) error {
	u, err := s.getUser(ctx, userID)
	if err != nil {
		return s.lookupError(err, ErrDisable2FA, userID)
	}

	disabled, empty := false, ""
	c, cancel := withTimeout(ctx, s.Opts.Timeout)
	err = s.Users.UpdateFields(c, userID, entity.UserFields{TwoFAEnabled: &disabled, TwoFASecret: &empty})
	cancel()
	if err != nil {
		return s.lookupError(err, ErrDisable2FA, userID)
	}

	wasEnabled := u.TwoFAEnabled
	u.TwoFAEnabled, u.TwoFASecret = false, ""
	if wasEnabled {
		s.notify(ctx, u, false)
	}
	record(ctx, s.Audit, entity.Audit2FADisabled, u.ID, u.Email, true)
	return nil
}

// Validate2FAToken checks token against the stored secret. A wrong token
// or an account without 2FA yields Verified=false, not an error.
func (s *TwoFactorService) Validate2FAToken(ctx context.Context, userID int64, token string) (Validate2FAResult, error) {
	u, err := s.getUser(ctx, userID)
	if err != nil {
		return Validate2FAResult{}, s.lookupError(err, ErrValidate2FA, userID)
	}

	if !u.TwoFAEnabled || u.TwoFASecret == "" {
		record(ctx, s.Audit, entity.Audit2FAValidated, u.ID, u.Email, false)
		return Validate2FAResult{Verified: false}, nil
	}

	ok := helpers.ValidateTOTP(token, u.TwoFASecret, s.now(), s.Opts.Period, s.Opts.Skew)
	record(ctx, s.Audit, entity.Audit2FAValidated, u.ID, u.Email, ok)
	return Validate2FAResult{Verified: ok}, nil
}

func (s *TwoFactorService) getUser(ctx context.Context, userID int64) (*entity.User, error) {
	c, cancel := withTimeout(ctx, s.Opts.Timeout)
	defer cancel()
	u, err := s.Users.GetByID(c, userID)
	if err == nil && u == nil {
		return nil, repo.ErrNotFound
	}
	return u, err
}

// lookupError maps a repository failure to the client-facing error.
func (s *TwoFactorService) lookupError(err error, kind *Unauthorized, userID int64) error {
	if errors.Is(err, repo.ErrNotFound) {
		return ErrUserNotFound
	}
	s.Logger.WithError(err).WithField("user_id", userID).Error(kind.msg)
	return unauthorized(kind, err)
}

func (s *TwoFactorService) notify(ctx context.Context, u *entity.User, enabled bool) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.TwoFactorChanged(ctx, u, enabled); err != nil {
		s.Logger.WithError(err).WithFields(logrus.Fields{
			"user_id": u.ID,
			"enabled": enabled,
		}).Warn("security notification failed")
	}
}
