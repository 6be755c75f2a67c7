package mailingservices

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/mailgun/mailgun-go/v4"
)

type Mailgun struct {
	Client *mailgun.MailgunImpl
	From   string
}

func (m *Mailgun) Init() {
	domain := os.Getenv("FRAUDLINE_MG_DOMAIN")
	apiKey := os.Getenv("FRAUDLINE_MG_PUBLIC_API_KEY")
	if domain == "" || apiKey == "" {
		log.Println("mailgun credentials missing, outbound mail disabled")
		return
	}
	m.Client = mailgun.NewMailgun(domain, apiKey)
	m.From = os.Getenv("FRAUDLINE_MG_EMAIL_FROM")
	if m.From == "" {
		m.From = fmt.Sprintf("no-reply@%s", domain)
	}
}

// SendVerificationMail emails the account activation link.
func (m *Mailgun) SendVerificationMail(recipient, link string) error {
	if m.Client == nil {
		return fmt.Errorf("mailgun client not initialized")
	}

	subject := "Verify your account"
	body := fmt.Sprintf("Welcome!\n\nClick the link below to verify your account:\n\n%s\n\nIf you did not sign up, ignore this email.", link)

	message := m.Client.NewMessage(m.From, subject, body, recipient)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	defer cancel()

	_, id, err := m.Client.Send(ctx, message)
	if err != nil {
		log.Printf("failed to send verification mail: %v", err)
		return err
	}
	log.Printf("verification mail queued: %s", id)
	return nil
}

// SendResetPassword emails the password reset link.
func (m *Mailgun) SendResetPassword(recipient, link string) error {
	if m.Client == nil {
		return fmt.Errorf("mailgun client not initialized")
	}

	subject := "Reset your password"
	body := fmt.Sprintf("A password reset was requested for your account.\n\nClick the link below to choose a new password:\n\n%s\n\nThe link expires in 30 minutes. If you did not request this, ignore this email.", link)

	message := m.Client.NewMessage(m.From, subject, body, recipient)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	defer cancel()

	_, id, err := m.Client.Send(ctx, message)
	if err != nil {
		log.Printf("failed to send password reset mail: %v", err)
		return err
	}
	log.Printf("password reset mail queued: %s", id)
	return nil
}
