package helpers

import (
	"fmt"
	"strings"

	"github.com/oksasatya/go-music-auth/pkg/mailer"
	mailtpl "github.com/oksasatya/go-music-auth/pkg/mailer/templates"
)

func SubjectFor(template string) string {
	switch strings.ToLower(template) {
	case mailtpl.TwoFactorEnabled:
		return "Two-factor authentication was turned on"
	case mailtpl.TwoFactorDisabled:
		return "Two-factor authentication was turned off"
	default:
		return "Security notification"
	}
}

func EnsureRecipientAndEmail(job *mailer.EmailJob) {
	if job.Data == nil {
		job.Data = map[string]any{}
	}
	if v, ok := job.Data["Email"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["Email"] = job.To
	}
	if v, ok := job.Data["RecipientEmail"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["RecipientEmail"] = job.To
	}
}
