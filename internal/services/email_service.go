package services

import (
	"fmt"
	"log"

	"gopkg.in/gomail.v2"
)

// Mail describes a templated outbound email. The template name selects a
// content generator; Data feeds its placeholders.
type Mail struct {
	Address  string
	Subject  string
	Template string
	Data     map[string]string
}

type Mailer interface {
	Send(m Mail) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
	dryRun bool
}

// NewEmailService builds the SMTP mail dispatcher. With dryRun set (non-prod
// environments) mails are logged and dropped instead of dialled out.
func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string, dryRun bool) Mailer {
	return &emailService{
		dialer: gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword),
		from:   fromEmail,
		dryRun: dryRun,
	}
}

func (s *emailService) Send(m Mail) error {
	tpl, ok := emailTemplates[m.Template]
	if !ok {
		return fmt.Errorf("unknown email template %q", m.Template)
	}
	body := tpl(m.Data)

	if s.dryRun {
		log.Printf("[mail][dry-run] to=%s template=%s subject=%q", m.Address, m.Template, m.Subject)
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", m.Address)
	msg.SetHeader("Subject", m.Subject)
	msg.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send %s email: %w", m.Template, err)
	}
	return nil
}
