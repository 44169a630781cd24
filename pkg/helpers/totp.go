package helpers

import (
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// TOTP helpers. Codes are RFC 6238 with SHA1 and six digits.

// TOTPSecretSize is 160 bits, which base32-encodes to 32 characters.
const TOTPSecretSize = 20

// GenerateTOTPSecret returns a fresh base32 secret for the account.
func GenerateTOTPSecret(issuer, account string, period uint) (string, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      issuer,
		AccountName: account,
		Period:      period,
		SecretSize:  TOTPSecretSize,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return "", err
	}
	return key.Secret(), nil
}

// ValidateTOTP checks code against secret at the given time, accepting
// skew steps on either side. Malformed input reports false.
func ValidateTOTP(code, secret string, at time.Time, period, skew uint) bool {
	if code == "" || secret == "" {
		return false
	}
	ok, err := totp.ValidateCustom(code, secret, at.UTC(), totp.ValidateOpts{
		Period:    period,
		Skew:      skew,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	return err == nil && ok
}

// GenerateTOTPCode returns the code for secret at the given time.
func GenerateTOTPCode(secret string, at time.Time, period uint) (string, error) {
	return totp.GenerateCodeCustom(secret, at.UTC(), totp.ValidateOpts{
		Period:    period,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
}
