package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-music-auth/config"
	"github.com/oksasatya/go-music-auth/pkg/helpers"
	"github.com/oksasatya/go-music-auth/pkg/mailer"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	logger := helpers.NewLogger(cfg.AppName+"-email-worker", cfg.Env)

	if !cfg.MailSendEnabled {
		logger.Info("MAIL_SEND_ENABLED=false; email worker disabled")
		return
	}
	if cfg.RabbitMQURL == "" || cfg.RabbitMQSecurityQueue == "" {
		logger.Fatal("RabbitMQ not configured")
	}
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
		logger.Fatal("Mailgun not configured")
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		logger.Fatalf("amqp dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		logger.Fatalf("amqp channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(16, 0, false); err != nil {
		logger.Fatalf("qos: %v", err)
	}
	if err := helpers.DeclareQueue(ch, cfg.RabbitMQSecurityQueue); err != nil {
		logger.Fatalf("queue declare: %v", err)
	}
	retryQueue, err := helpers.DeclareRetryQueue(ch, cfg.RabbitMQSecurityQueue, cfg.EmailRetryDelay)
	if err != nil {
		logger.Fatalf("retry queue declare: %v", err)
	}
	msgs, err := ch.Consume(cfg.RabbitMQSecurityQueue, "", false, false, false, false, nil)
	if err != nil {
		logger.Fatalf("consume: %v", err)
	}

	w := &worker{
		sender: mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender),
		logger: logger,
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range msgs {
			switch w.process(ctx, msg.Body) {
			case ack:
				_ = msg.Ack(false)
			case retry:
				pub, ok := retryPublishing(msg, cfg.EmailMaxAttempts)
				if !ok {
					logger.WithField("attempts", cfg.EmailMaxAttempts).Warn("giving up on email job")
					_ = msg.Nack(false, false)
					continue
				}
				if err := ch.PublishWithContext(ctx, "", retryQueue, false, false, pub); err != nil {
					logger.WithError(err).Warn("retry publish failed")
					_ = msg.Nack(false, true)
					continue
				}
				_ = msg.Ack(false)
			default:
				_ = msg.Nack(false, false)
			}
		}
	}()

	logger.WithField("queue", cfg.RabbitMQSecurityQueue).Info("email worker listening")
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Info("shutting down...")
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}
