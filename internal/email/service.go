// Package email sends notification mail for the availability watcher.
package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type Service interface {
	SendAvailabilityAlert(to, date, slotTime string) error
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type service struct {
	cfg    Config
	dialer *gomail.Dialer
}

func NewService(cfg Config) Service {
	return &service{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

func (s *service) SendAvailabilityAlert(to, date, slotTime string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Appointment open on %s", date))
	m.SetBody("text/html", fmt.Sprintf(
		"<p>An appointment slot just opened up:</p><p><strong>%s at %s</strong></p>"+
			"<p>Slots go quickly, so book soon.</p>", date, slotTime))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send alert email: %w", err)
	}
	return nil
}
