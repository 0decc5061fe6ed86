// Package mailer отправляет HTML-письма по SMTP.
package mailer

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/wneessen/go-mail"
)

// Sender отправляет одно письмо
type Sender interface {
	Send(ctx context.Context, to, subject, html string) error
}

// Options — параметры SMTP-сервера
type Options struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTP отправляет письма через SMTP с неявным TLS (порт 465)
type SMTP struct {
	opts Options
}

func NewSMTP(opts Options) *SMTP {
	if opts.Port == 0 {
		opts.Port = 465
	}
	if opts.From == "" {
		opts.From = opts.Username
	}
	return &SMTP{opts: opts}
}

// New возвращает SMTP-отправителя, а без учётных данных — Log
func New(opts Options) Sender {
	if opts.Username == "" {
		log.Printf("[MAIL] SMTP_USER is empty, emails will be logged only")
		return Log{}
	}
	return NewSMTP(opts)
}

func (s *SMTP) message(to, subject, html string) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.From(s.opts.From); err != nil {
		return nil, fmt.Errorf("from: %w", err)
	}
	if err := m.To(to); err != nil {
		return nil, fmt.Errorf("to: %w", err)
	}
	m.Subject(subject)
	m.SetBodyString(mail.TypeTextHTML, html)
	return m, nil
}

func (s *SMTP) Send(ctx context.Context, to, subject, html string) error {
	m, err := s.message(to, subject, html)
	if err != nil {
		return err
	}
	c, err := mail.NewClient(s.opts.Host,
		mail.WithPort(s.opts.Port),
		mail.WithSSL(),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.opts.Username),
		mail.WithPassword(s.opts.Password),
		mail.WithTimeout(30*time.Second),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := c.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// Log пишет письма в лог вместо отправки (dev-режим)
type Log struct{}

func (Log) Send(_ context.Context, to, subject, html string) error {
	log.Printf("[MAIL] to=%s subject=%q\n%s", to, subject, html)
	return nil
}
