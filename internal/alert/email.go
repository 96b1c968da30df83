package alert

import (
	"fmt"
	"log"
	"net/smtp"
	"time"
)

// SMTPConfig carries the settings for outbound alert mail.
type SMTPConfig struct {
	From         string
	To           string
	Server       string
	Port         string
	User         string
	Password     string
	AuthDisabled bool
}

// EmailListener returns a Listener that mails each alert. Sending happens in
// a goroutine; failures are logged and dropped.
func EmailListener(cfg SMTPConfig) Listener {
	return func(message string) {
		subject := "⚠️ LOW STOCK ALERT"
		body := fmt.Sprintf("%s\nTime: %s", message, time.Now().Format(time.RFC3339))

		msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", cfg.From, cfg.To, subject, body)

		addr := fmt.Sprintf("%s:%s", cfg.Server, cfg.Port)
		auth := smtp.PlainAuth("", cfg.User, cfg.Password, cfg.Server)
		if cfg.AuthDisabled {
			auth = nil
		}

		go func() {
			if err := smtp.SendMail(addr, auth, cfg.From, []string{cfg.To}, []byte(msg)); err != nil {
				log.Printf("Failed to send alert email: %v\n", err)
			}
		}()
	}
}

// LogListener writes alerts to the process log.
func LogListener() Listener {
	return func(message string) {
		log.Printf("⚠️ ALERT: %s", message)
	}
}
