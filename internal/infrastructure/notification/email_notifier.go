package notification

import (
	"context"
	"strings"
	"time"

	"github.com/oksasatya/go-music-auth/config"
	"github.com/oksasatya/go-music-auth/internal/domain/entity"
	"github.com/oksasatya/go-music-auth/pkg/mailer"
	mailtpl "github.com/oksasatya/go-music-auth/pkg/mailer/templates"
)

// Publisher puts a JSON message on the security mail queue.
// *helpers.RabbitPublisher satisfies it.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// EmailNotifier enqueues security emails for the email worker.
type EmailNotifier struct {
	cfg *config.Config
	pub Publisher
	now func() time.Time
}

func NewEmailNotifier(cfg *config.Config, pub Publisher) *EmailNotifier {
	return &EmailNotifier{cfg: cfg, pub: pub, now: time.Now}
}

func (n *EmailNotifier) TwoFactorChanged(ctx context.Context, u *entity.User, enabled bool) error {
	if n == nil || n.pub == nil || !n.cfg.MailSendEnabled || u == nil || u.Email == "" {
		return nil
	}
	tpl := mailtpl.TwoFactorDisabled
	if enabled {
		tpl = mailtpl.TwoFactorEnabled
	}
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	job := mailer.EmailJob{
		To:       u.Email,
		Template: tpl,
		Data:     mailtpl.NewTwoFactorData(n.cfg, enabled, name, u.Email, mailtpl.WithTime(n.now())),
	}
	return n.pub.PublishJSON(ctx, job)
}
