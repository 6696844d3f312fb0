package mailer

import (
	"os"

	"github.com/spf13/viper"
	"gopkg.in/gomail.v2"
)

// Mailer sends transactional mail over SMTP.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// MustNewMailer creates a mailer from config and environment.
func MustNewMailer() *Mailer {
	host := viper.GetString("smtp.host")
	port := viper.GetInt("smtp.port")
	from := viper.GetString("smtp.from")
	user := os.Getenv("SMTP_USER")
	password := os.Getenv("SMTP_PASSWORD")

	if host == "" || port == 0 || from == "" {
		panic("mailer: smtp.host, smtp.port and smtp.from must be configured")
	}

	return &Mailer{
		dialer: gomail.NewDialer(host, port, user, password),
		from:   from,
	}
}

// Send delivers one HTML message. Delivery is synchronous; the first failure
// is returned to the caller.
func (m *Mailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	return m.dialer.DialAndSend(msg)
}
