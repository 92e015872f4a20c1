package services

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"github.com/tutorslink/api/config"
	"github.com/tutorslink/api/model"
)

// EmailService sends outbound mail via SMTP. It is a best-effort side
// channel: when SMTP is not configured every send is a logged no-op.
type EmailService struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewEmailService creates a new email service instance
func NewEmailService(env *config.EnvironmentVariable) *EmailService {
	from := env.SMTP_FROM
	if from == "" {
		from = "noreply@tutorslink.app"
	}

	host := env.SMTP_HOST
	if host == "" {
		host = "smtp.gmail.com"
	}

	return &EmailService{
		host:     host,
		port:     env.SMTP_PORT,
		username: env.SMTP_USERNAME,
		password: env.SMTP_PASSWORD,
		from:     from,
	}
}

// IsConfigured checks if SMTP is properly configured
func (e *EmailService) IsConfigured() bool {
	return e.username != "" && e.password != ""
}

// SendApplicationReceived confirms receipt of a tutor application.
func (e *EmailService) SendApplicationReceived(toEmail, fullName string) error {
	subject := "We received your tutor application - Tutors Link"
	body := fmt.Sprintf(
		"Hi %s,\r\n\r\nThanks for applying to teach on Tutors Link. "+
			"Our team reviews every application and will get back to you within a few days.\r\n\r\n"+
			"The Tutors Link Team",
		fullName)
	return e.send(toEmail, subject, body)
}

// SendApplicationStatus tells an applicant about a status transition.
func (e *EmailService) SendApplicationStatus(toEmail, fullName string, status model.ApplicationStatus) error {
	var subject, body string
	switch status {
	case model.ApplicationApproved:
		subject = "Your tutor application was approved - Tutors Link"
		body = fmt.Sprintf(
			"Hi %s,\r\n\r\nGreat news: your application to teach on Tutors Link was approved. "+
				"Log in to set up your tutor profile and availability.\r\n\r\nThe Tutors Link Team",
			fullName)
	case model.ApplicationRejected:
		subject = "Update on your tutor application - Tutors Link"
		body = fmt.Sprintf(
			"Hi %s,\r\n\r\nThank you for your interest in teaching on Tutors Link. "+
				"After review we are unable to move forward with your application at this time.\r\n\r\n"+
				"The Tutors Link Team",
			fullName)
	default:
		subject = "Your tutor application is under review - Tutors Link"
		body = fmt.Sprintf(
			"Hi %s,\r\n\r\nYour tutor application is back in review. "+
				"We will notify you once a decision is made.\r\n\r\nThe Tutors Link Team",
			fullName)
	}
	return e.send(toEmail, subject, body)
}

func (e *EmailService) send(to, subject, body string) error {
	if !e.IsConfigured() {
		log.Printf("SMTP not configured. Skipping email to %s: %s", to, subject)
		return nil
	}

	msg := strings.Join([]string{
		fmt.Sprintf("From: %s", e.from),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", e.host, e.port)
	auth := smtp.PlainAuth("", e.username, e.password, e.host)

	if err := smtp.SendMail(addr, auth, e.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
