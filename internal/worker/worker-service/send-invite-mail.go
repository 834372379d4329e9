package worker_service

import (
	"fmt"

	"github.com/QuangLP2607/DATN-final-sub001/config"
	"gopkg.in/gomail.v2"
)

func SendClassInviteMail(to, className string) error {
	host := config.Conf.SMTP.Host
	port := config.Conf.SMTP.Port
	username := config.Conf.SMTP.Username
	password := config.Conf.SMTP.Password
	from := config.Conf.SMTP.From

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("You have been added to %s", className))
	m.SetBody("text/plain", fmt.Sprintf("Hello,\n\nYou are now a member of the class %q. Open the app to see its conversation, schedule and quizzes.", className))

	d := gomail.NewDialer(host, port, username, password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send class invite email: %w", err)
	}

	return nil
}
