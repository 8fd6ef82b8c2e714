package auth

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/dvinubius/bootcamp-backend/internal/config"
)

var resetEmailTmpl = template.Must(template.New("reset").Parse(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
	<h2>Password Reset Request</h2>
	<p>You (or someone else) requested the reset of a password.</p>
	<p>Click the link below to reset your password:</p>
	<p><a href="{{.ResetURL}}" style="background-color: #4CAF50; color: white; padding: 10px 20px; text-decoration: none; border-radius: 4px; display: inline-block;">Reset Password</a></p>
	<p>This link will expire in 10 minutes.</p>
	<p>If you didn't request this, please ignore this email.</p>
	<hr>
	<p style="color: #666; font-size: 12px;">{{.FromName}}</p>
</body>
</html>
`))

// SendPasswordResetEmail mails a reset link. Without SMTP credentials the link
// is printed instead of sent.
func SendPasswordResetEmail(cfg config.SMTPConfig, email, resetURL string) error {
	if cfg.Username == "" || cfg.Password == "" {
		fmt.Printf(`
════════════════════════════════════════════════════════════════
SMTP NOT CONFIGURED - PASSWORD RESET LINK

Email:    %s
Link:     %s

Valid for: 10 minutes
════════════════════════════════════════════════════════════════
`, email, resetURL)
		return nil
	}

	var buf bytes.Buffer
	if err := resetEmailTmpl.Execute(&buf, map[string]string{
		"ResetURL": resetURL,
		"FromName": cfg.FromName,
	}); err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return sendEmail(cfg, email, "Password reset request", buf.String())
}

func sendEmail(cfg config.SMTPConfig, to, subject, htmlBody string) error {
	auth := smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)

	msg := []byte(fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		cfg.FromName, cfg.FromEmail, to, subject, htmlBody,
	))

	addr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	return smtp.SendMail(addr, auth, cfg.FromEmail, []string{to}, msg)
}
