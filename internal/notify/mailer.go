package notify

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Mailer entrega a mensagem de confirmação de fato.
type Mailer interface {
	Send(ctx context.Context, req ConfirmationRequest) error
}

const confirmationSubject = "Your appointment is confirmed"

func confirmationBody(req ConfirmationRequest) string {
	return fmt.Sprintf(
		"Hi %s,\r\n\r\nYour appointment is booked for %s at %s.\r\n\r\nThank you for choosing AppointEase.",
		req.Name,
		req.Date,
		req.Time,
	)
}

// ===============================
// SMTP
// ===============================

// smtpTimeout limita a conversa inteira quando o ctx não traz deadline.
const smtpTimeout = 30 * time.Second

type SMTPMailer struct {
	host string
	addr string
	from string
	auth smtp.Auth
}

func NewSMTPMailer(host, port, username, password, from string) *SMTPMailer {
	host = strings.TrimSpace(host)
	port = strings.TrimSpace(port)
	from = strings.TrimSpace(from)
	if from == "" {
		from = "no-reply@appointease.local"
	}

	m := &SMTPMailer{
		host: host,
		addr: net.JoinHostPort(host, port),
		from: from,
	}
	if username != "" {
		m.auth = smtp.PlainAuth("", username, password, host)
	}
	return m
}

// Send abre a conexão com o ctx e aplica o deadline dele (ou smtpTimeout)
// a toda a conversa SMTP; cancelar o ctx derruba a conexão.
func (m *SMTPMailer) Send(ctx context.Context, req ConfirmationRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", m.addr)
	if err != nil {
		return fmt.Errorf("smtp dial %s: %w", m.addr, err)
	}

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(smtpTimeout)
	}
	if err := conn.SetDeadline(deadline); err != nil {
		conn.Close()
		return fmt.Errorf("smtp deadline: %w", err)
	}

	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	if err := m.deliver(conn, req); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return err
	}
	return nil
}

func (m *SMTPMailer) deliver(conn net.Conn, req ConfirmationRequest) error {
	c, err := smtp.NewClient(conn, m.host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp greeting: %w", err)
	}
	defer c.Close()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: m.host}); err != nil {
			return fmt.Errorf("smtp starttls: %w", err)
		}
	}
	if m.auth != nil {
		if err := c.Auth(m.auth); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}

	if err := c.Mail(envelopeAddress(m.from)); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := c.Rcpt(req.To); err != nil {
		return fmt.Errorf("smtp rcpt to: %w", err)
	}

	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	msg := buildMessage(m.from, req.To, confirmationSubject, confirmationBody(req))
	if _, err := w.Write([]byte(msg)); err != nil {
		w.Close()
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp data close: %w", err)
	}
	return c.Quit()
}

// envelopeAddress tira o nome de exibição: "App <a@b>" -> "a@b".
func envelopeAddress(from string) string {
	if i := strings.LastIndex(from, "<"); i >= 0 {
		if j := strings.LastIndex(from, ">"); j > i {
			return from[i+1 : j]
		}
	}
	return from
}

func buildMessage(from, to, subject, body string) string {
	return fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		from,
		to,
		subject,
		body,
	)
}

// ===============================
// Log (sem SMTP configurado)
// ===============================

type LogMailer struct {
	log zerolog.Logger
}

func NewLogMailer(log zerolog.Logger) *LogMailer {
	return &LogMailer{log: log.With().Str("component", "mailer").Logger()}
}

func (m *LogMailer) Send(ctx context.Context, req ConfirmationRequest) error {
	m.log.Info().
		Str("to", req.To).
		Str("subject", confirmationSubject).
		Str("date", req.Date).
		Str("time", req.Time).
		Msg("confirmation email (not delivered, smtp not configured)")
	return nil
}

var (
	_ Mailer = (*SMTPMailer)(nil)
	_ Mailer = (*LogMailer)(nil)
)
