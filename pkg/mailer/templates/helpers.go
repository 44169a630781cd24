package templates

import (
	"time"

	"github.com/oksasatya/go-music-auth/config"
)

// Option pattern
type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02 January 2006, 15:04 MST")
	}
}

// NewBaseEmailData fills the common fields from config, then applies opts
func NewBaseEmailData(cfg *config.Config, typ string, name, email string, opts ...Option) EmailData {
	d := EmailData{
		Name:           name,
		Email:          email,
		RecipientEmail: email,
		Type:           typ,

		CompanyName:    cfg.CompanyName,
		CompanyAddress: cfg.CompanyAddress,
		AppName:        cfg.AppName,

		LogoURL:    cfg.LogoURL,
		SupportURL: cfg.SupportURL,
		PrivacyURL: cfg.PrivacyURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// NewTwoFactorData builds data for the enabled/disabled notifications.
func NewTwoFactorData(cfg *config.Config, enabled bool, name, email string, opts ...Option) map[string]any {
	typ := TwoFactorDisabled
	if enabled {
		typ = TwoFactorEnabled
	}
	return ToMap(NewBaseEmailData(cfg, typ, name, email, opts...))
}
