package main

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-music-auth/pkg/helpers"
	"github.com/oksasatya/go-music-auth/pkg/mailer"
	mailtpl "github.com/oksasatya/go-music-auth/pkg/mailer/templates"
)

const (
	sendTimeout    = 15 * time.Second
	attemptsHeader = "x-attempts"
)

type outcome int

const (
	ack outcome = iota
	drop
	retry
)

type sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

type worker struct {
	sender sender
	logger *logrus.Logger
}

// process renders and sends one queued EmailJob. Malformed or unrenderable
// jobs are dropped; send failures are retried.
func (w *worker) process(ctx context.Context, body []byte) outcome {
	var job mailer.EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		w.logger.WithError(err).Warn("bad message")
		return drop
	}
	if job.To == "" {
		w.logger.Warn("message without recipient")
		return drop
	}
	helpers.EnsureRecipientAndEmail(&job)

	subject, text, html := job.Subject, job.Text, job.HTML
	if job.Template != "" {
		s, t, h, err := mailtpl.Render(job.Template, job.Data)
		if err != nil {
			w.logger.WithError(err).WithField("template", job.Template).Warn("render failed")
			return drop
		}
		subject, text, html = s, t, h
	}
	if subject == "" {
		subject = helpers.SubjectFor(job.Template)
	}

	c, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	if err := w.sender.Send(c, job.To, subject, text, html); err != nil {
		w.logger.WithError(err).WithField("template", job.Template).Warn("send failed")
		return retry
	}
	return ack
}

// attempts returns how many times the delivery has already been sent to the
// retry queue.
func attempts(h amqp.Table) int {
	switch v := h[attemptsHeader].(type) {
	case int32:
		return int(v)
	case int64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

// retryPublishing copies d for the retry queue with the attempt count
// bumped. ok is false once maxAttempts deliveries have failed.
func retryPublishing(d amqp.Delivery, maxAttempts int) (amqp.Publishing, bool) {
	n := attempts(d.Headers) + 1
	if n >= maxAttempts {
		return amqp.Publishing{}, false
	}
	headers := amqp.Table{}
	for k, v := range d.Headers {
		headers[k] = v
	}
	headers[attemptsHeader] = int32(n)
	return amqp.Publishing{
		Headers:      headers,
		ContentType:  d.ContentType,
		DeliveryMode: amqp.Persistent,
		Timestamp:    d.Timestamp,
		Body:         d.Body,
	}, true
}
