//go:generate mockery --name Mailer --output ./mocks --outpkg mocks --case=underscore
// internal/service/mailer.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"course_portal/internal/config"
	"course_portal/internal/middleware"
	"course_portal/internal/model"
)

type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// --- LogMailer ---
type LogMailer struct{}

func (m *LogMailer) Send(ctx context.Context, to, subject, body string) error {
	logger := middleware.GetLogger(ctx)
	logger.Info("--- Sending Email (LogMailer) ---", "to", to, "subject", subject, "body", body)
	return nil
}

// --- SmtpMailer ---
type SmtpMailer struct {
	cfg *config.SMTPConfig
}

func (m *SmtpMailer) Send(ctx context.Context, to, subject, body string) error {
	logger := middleware.GetLogger(ctx)
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	logger.Debug("Attempting to send email via SMTP", "smtp_addr", addr, "from", m.cfg.From, "to", to)

	// smtp.Dial は平文での接続 (開発用の MailHog などを想定)
	c, err := smtp.Dial(addr)
	if err != nil {
		logger.Error("Failed to connect to SMTP server", "error", err, "addr", addr)
		return err
	}
	defer c.Close()

	if err = c.Mail(m.cfg.From); err != nil {
		logger.Error("Failed to set MAIL FROM", "error", err, "from", m.cfg.From)
		return err
	}
	if err = c.Rcpt(to); err != nil {
		logger.Error("Failed to set RCPT TO", "error", err, "to", to)
		return err
	}

	wc, err := c.Data()
	if err != nil {
		logger.Error("Failed to open data writer", "error", err)
		return err
	}

	msg := "From: " + m.cfg.From + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"\r\n" +
		body + "\r\n"

	if _, err = wc.Write([]byte(msg)); err != nil {
		wc.Close()
		logger.Error("Failed to write email data", "error", err)
		return err
	}
	if err = wc.Close(); err != nil {
		logger.Error("Failed to finish email data", "error", err)
		return err
	}

	logger.Info("Email sent successfully via SMTP", "to", to, "subject", subject)
	return c.Quit()
}

// --- NewMailer ファクトリ関数 ---
func NewMailer(cfg *config.Config) (Mailer, error) {
	logger := slog.Default()
	switch cfg.Mailer.Type {
	case "smtp":
		logger.Info("Initializing SMTP mailer...")
		return &SmtpMailer{cfg: &cfg.SMTP}, nil
	case "ses":
		logger.Info("Initializing SES mailer...")
		return NewSESMailer(cfg)
	case "log":
		logger.Info("Initializing Log mailer...")
		return &LogMailer{}, nil
	default:
		logger.Warn("Unknown mailer type, defaulting to LogMailer", "type", cfg.Mailer.Type)
		return &LogMailer{}, nil
	}
}

// --- メール本文 ---

func registrationReceivedMail(appName string, a *model.Account) (string, string) {
	subject := appName + ": registration received"
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", a.Name)
	b.WriteString("Thank you for registering. Your account is waiting for payment confirmation.\n")
	if a.RequestedCourse != nil {
		fmt.Fprintf(&b, "Requested course: %s\n", *a.RequestedCourse)
	}
	b.WriteString("We will contact you on WhatsApp to complete the payment.\n")
	return subject, b.String()
}

func accessGrantedMail(appName, frontendURL string, a *model.Account, courses []model.CourseID) (string, string) {
	subject := appName + ": your courses are ready"
	names := make([]string, 0, len(courses))
	for _, c := range courses {
		names = append(names, c.String())
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", a.Name)
	fmt.Fprintf(&b, "Your payment has been confirmed. You now have access to: %s.\n", strings.Join(names, ", "))
	if frontendURL != "" {
		fmt.Fprintf(&b, "Start learning: %s/dashboard\n", strings.TrimRight(frontendURL, "/"))
	}
	return subject, b.String()
}
