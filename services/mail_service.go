package services

import (
	"net/smtp"
	"os"
)

// MailService delivers email over SMTP. It is the delivery collaborator
// behind the Mailer interface; nothing in here decides who gets mail.
type MailService struct {
	from     string
	password string
	host     string
	port     string
}

// NewMailService reads SMTP settings from the environment.
func NewMailService() *MailService {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		host = "smtp.gmail.com"
	}
	port := os.Getenv("SMTP_PORT")
	if port == "" {
		port = "587"
	}
	return &MailService{
		from:     os.Getenv("SMTP_FROM"),
		password: os.Getenv("SMTP_PASSWORD"),
		host:     host,
		port:     port,
	}
}

// Send delivers one HTML email to the given recipients.
func (s *MailService) Send(to []string, subject, htmlBody string) error {
	msg := []byte("MIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n" +
		"Subject: " + subject + "\n\n" + htmlBody)

	auth := smtp.PlainAuth("", s.from, s.password, s.host)
	return smtp.SendMail(s.host+":"+s.port, auth, s.from, to, msg)
}
