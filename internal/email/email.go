package email

import (
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"confms/internal/config"
)

// Service sends transactional emails over SMTP
type Service struct {
	config *config.EmailConfig
}

// NewService creates a new email service
func NewService(cfg *config.EmailConfig) *Service {
	return &Service{config: cfg}
}

// SendReviewerInvitation sends an invitation email with the accept link
func (s *Service) SendReviewerInvitation(to, fullName, invitationLink string) error {
	subject := "Invitation to join the program committee"
	body := fmt.Sprintf(`
		<html>
		<body>
			<h2>Program Committee Invitation</h2>
			<p>Dear %s,</p>
			<p>You have been invited to serve as a reviewer. Please use the link
			below to accept or decline the invitation:</p>
			<p><a href="%s">Respond to invitation</a></p>
			<p>If you did not expect this email, you can ignore it.</p>
		</body>
		</html>
	`, fullName, invitationLink)

	return s.sendEmail(to, subject, body)
}

// SendDecisionNotice informs a contact that the decision for a paper was recorded
func (s *Service) SendDecisionNotice(to string, paperID uint, status string) error {
	subject := fmt.Sprintf("Decision recorded for submission #%d", paperID)
	body := fmt.Sprintf(`
		<html>
		<body>
			<h2>Decision Recorded</h2>
			<p>The decision for submission <strong>#%d</strong> has been recorded
			as <strong>%s</strong>.</p>
		</body>
		</html>
	`, paperID, status)

	return s.sendEmail(to, subject, body)
}

func (s *Service) sendEmail(to, subject, htmlBody string) error {
	if !s.config.Enabled {
		slog.Info("Email sending disabled, skipping", "to", to, "subject", subject)
		return nil
	}

	from := fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromAddress)
	headers := []string{
		"From: " + from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=UTF-8",
	}
	message := strings.Join(headers, "\r\n") + "\r\n\r\n" + htmlBody

	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)
	var auth smtp.Auth
	if s.config.SMTPUser != "" {
		auth = smtp.PlainAuth("", s.config.SMTPUser, s.config.SMTPPass, s.config.SMTPHost)
	}

	if err := smtp.SendMail(addr, auth, s.config.FromAddress, []string{to}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
