package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// SMTPMailer sends owner notifications through a plain SMTP relay.
type SMTPMailer struct {
	host     string
	port     int
	from     string
	password string
}

func NewSMTPMailer(host string, port int, from, password string) *SMTPMailer {
	return &SMTPMailer{
		host:     host,
		port:     port,
		from:     from,
		password: password,
	}
}

// SendPropertyCreated confirms to the owner that their listing is live.
func (m *SMTPMailer) SendPropertyCreated(toEmail, propertyID string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", "Your property listing is live")
	msg.SetBody("text/plain", fmt.Sprintf("Your property listing (%s) has been published successfully.", propertyID))

	dialer := gomail.NewDialer(m.host, m.port, m.from, m.password)
	return dialer.DialAndSend(msg)
}
