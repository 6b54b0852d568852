package utils

import (
	"fmt"
	"log"
	"net/http"
	"ocms/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail delivers a single HTML email through Sendgrid. When no API key
// is configured the message is logged and dropped, which keeps local
// development working without an account.
func SendEmail(toEmail, toName, subject, htmlBody string) error {
	cfg := config.AppConfig

	if cfg.SendgridApiKey == "" {
		log.Printf("Email (not sent, no SENDGRID_API_KEY): to=%s subject=%q", toEmail, subject)
		return nil
	}

	from := mail.NewEmail("OCMS", cfg.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(cfg.SendgridApiKey)
	resp, err := client.Send(message)
	if err != nil {
		return err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid rejected email: status %d", resp.StatusCode)
	}
	return nil
}

// SendWelcomeEmail greets a new user. Fire-and-forget from a goroutine.
func SendWelcomeEmail(toEmail, name string) {
	body := fmt.Sprintf(`<p>Hi %s,</p><p>Welcome to OCMS! Your account is ready — browse the catalog and enroll in your first course.</p>`, name)
	if err := SendEmail(toEmail, name, "Welcome to OCMS", body); err != nil {
		log.Printf("Error sending welcome email to %s: %v", toEmail, err)
	}
}

// SendPaymentReceiptEmail confirms a completed payment.
func SendPaymentReceiptEmail(toEmail, name, courseTitle, transactionID string, amount float64) {
	body := fmt.Sprintf(`<p>Hi %s,</p><p>We received your payment of %.2f for <b>%s</b>.</p><p>Transaction reference: %s</p>`,
		name, amount, courseTitle, transactionID)
	if err := SendEmail(toEmail, name, "Payment received", body); err != nil {
		log.Printf("Error sending payment receipt to %s: %v", toEmail, err)
	}
}

// SendCertificateEmail announces an issued certificate.
func SendCertificateEmail(toEmail, name, courseTitle, verificationCode string) {
	body := fmt.Sprintf(`<p>Hi %s,</p><p>Congratulations on completing <b>%s</b>!</p><p>Your certificate verification code is <b>%s</b>.</p>`,
		name, courseTitle, verificationCode)
	if err := SendEmail(toEmail, name, "Your certificate is ready", body); err != nil {
		log.Printf("Error sending certificate email to %s: %v", toEmail, err)
	}
}
