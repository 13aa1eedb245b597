package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
)

// Notifier delivers clearance outcomes to students.
type Notifier interface {
	SendClearanceOutcome(ctx context.Context, email, name string, decision *ClearanceDecision) error
}

// SMTPConfig carries the registry mailbox settings.
type SMTPConfig struct {
	Host     string
	Port     string
	Sender   string
	Password string
}

type smtpNotifier struct {
	cfg    SMTPConfig
	logger *slog.Logger
}

func NewSMTPNotifier(cfg SMTPConfig, logger *slog.Logger) Notifier {
	return &smtpNotifier{cfg: cfg, logger: logger}
}

func (n *smtpNotifier) SendClearanceOutcome(ctx context.Context, email, name string, decision *ClearanceDecision) error {
	subject := "Graduation Clearance: " + string(decision.Status)

	var body strings.Builder
	fmt.Fprintf(&body, "<p>Dear %s,</p>", name)
	if decision.Reason == "" {
		body.WriteString("<p>Your academic record has been reviewed and you are <strong>cleared for graduation</strong>.</p>")
	} else {
		body.WriteString("<p>Your graduation clearance is <strong>pending</strong>. The following requirements are outstanding:</p>")
		fmt.Fprintf(&body, "<p>%s</p>", decision.Reason)
		body.WriteString("<p>Please contact the registry office to arrange registration for the outstanding modules.</p>")
	}

	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: University Registry <%s>\r\n", n.cfg.Sender)
	msg += fmt.Sprintf("To: %s\r\n", email)
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += emailTemplate(subject, body.String())

	auth := smtp.PlainAuth("", n.cfg.Sender, n.cfg.Password, n.cfg.Host)
	addr := n.cfg.Host + ":" + n.cfg.Port

	n.logger.Info("Sending clearance email", "to", email, "status", decision.Status)
	if err := smtp.SendMail(addr, auth, n.cfg.Sender, []string{email}, []byte(msg)); err != nil {
		return fmt.Errorf("send clearance email to %s: %w", email, err)
	}
	return nil
}

func emailTemplate(title, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; }
			.header { background-color: #1B2A4A; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 22px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1B2A4A; line-height: 1.6; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header"><h1>OFFICE OF THE REGISTRAR</h1></div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				This is an automated notice from the student registry system.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// noopNotifier is used when no mailbox is configured and in tests.
type noopNotifier struct {
	logger *slog.Logger
}

func NewNoopNotifier(logger *slog.Logger) Notifier {
	return &noopNotifier{logger: logger}
}

func (n *noopNotifier) SendClearanceOutcome(ctx context.Context, email, name string, decision *ClearanceDecision) error {
	n.logger.Debug("Email delivery disabled, skipping clearance notice", "to", email)
	return nil
}
