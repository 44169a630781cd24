package helpers

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base32Secret = regexp.MustCompile(`^[A-Z2-7]{32}$`)

func TestGenerateTOTPSecret(t *testing.T) {
	s1, err := GenerateTOTPSecret("music", "a@b.com", 30)
	require.NoError(t, err)
	s2, err := GenerateTOTPSecret("music", "a@b.com", 30)
	require.NoError(t, err)

	assert.Regexp(t, base32Secret, s1)
	assert.NotEqual(t, s1, s2)
}

func TestGenerateTOTPSecret_RequiresAccount(t *testing.T) {
	_, err := GenerateTOTPSecret("music", "", 30)
	assert.Error(t, err)
}

func TestValidateTOTP(t *testing.T) {
	secret, err := GenerateTOTPSecret("music", "a@b.com", 30)
	require.NoError(t, err)
	other, err := GenerateTOTPSecret("music", "a@b.com", 30)
	require.NoError(t, err)

	now := time.Date(2026, 1, 1, 12, 0, 15, 0, time.UTC)
	code, err := GenerateTOTPCode(secret, now, 30)
	require.NoError(t, err)
	otherCode, err := GenerateTOTPCode(other, now, 30)
	require.NoError(t, err)

	tests := []struct {
		name   string
		code   string
		secret string
		at     time.Time
		skew   uint
		want   bool
	}{
		{name: "current step", code: code, secret: secret, at: now, skew: 1, want: true},
		{name: "previous step within skew", code: code, secret: secret, at: now.Add(30 * time.Second), skew: 1, want: true},
		{name: "next step within skew", code: code, secret: secret, at: now.Add(-30 * time.Second), skew: 1, want: true},
		{name: "two steps late", code: code, secret: secret, at: now.Add(60 * time.Second), skew: 1, want: false},
		{name: "no skew, next step", code: code, secret: secret, at: now.Add(30 * time.Second), skew: 0, want: false},
		{name: "different secret", code: otherCode, secret: secret, at: now, skew: 1, want: otherCode == code},
		{name: "empty secret", code: code, secret: "", at: now, skew: 1, want: false},
		{name: "empty code", code: "", secret: secret, at: now, skew: 1, want: false},
		{name: "wrong length", code: "12345", secret: secret, at: now, skew: 1, want: false},
		{name: "not base32", code: code, secret: "!!!!", at: now, skew: 1, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateTOTP(tt.code, tt.secret, tt.at, 30, tt.skew))
		})
	}
}
