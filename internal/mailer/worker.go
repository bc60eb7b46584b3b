package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/roborush/portal/config"
)

// Sender delivers a single message. Split from the worker so tests can
// substitute delivery.
type Sender interface {
	Send(msg Message) error
}

// SMTPSender delivers through the configured SMTP relay.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSender(cfg *config.Config) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password),
		from:   cfg.SMTP.From,
	}
}

func (s *SMTPSender) Send(msg Message) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)
	return s.dialer.DialAndSend(m)
}

// Worker drains the mail queue and delivers messages. Delivery failures
// are logged and the message is dropped; the triggering admin action has
// long since succeeded.
type Worker struct {
	rdb    *redis.Client
	key    string
	sender Sender
	log    *zap.SugaredLogger
}

func NewWorker(rdb *redis.Client, key string, sender Sender, log *zap.SugaredLogger) *Worker {
	return &Worker{rdb: rdb, key: key, sender: sender, log: log}
}

func (w *Worker) Start(ctx context.Context) {
	w.log.Infow("mail worker started", "queue", w.key)
	for {
		select {
		case <-ctx.Done():
			w.log.Info("mail worker stopping")
			return
		default:
			res, err := w.rdb.BRPop(ctx, 5*time.Second, w.key).Result()
			if err != nil {
				if errors.Is(err, redis.Nil) {
					continue // timeout, queue empty
				}
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return
				}
				w.log.Errorw("failed to pop from mail queue", "error", err)
				time.Sleep(5 * time.Second)
				continue
			}
			if len(res) < 2 || res[1] == "" {
				continue
			}

			var msg Message
			if err := json.Unmarshal([]byte(res[1]), &msg); err != nil {
				w.log.Errorw("dropping malformed mail message", "error", err)
				continue
			}

			if err := w.sender.Send(msg); err != nil {
				w.log.Errorw("failed to deliver mail", "to", msg.To, "subject", msg.Subject, "error", err)
				continue
			}
			w.log.Infow("mail delivered", "to", msg.To, "subject", msg.Subject)
		}
	}
}
