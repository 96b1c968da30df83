package alert

import (
	"encoding/json"
	"fmt"
	"log"
	"net/smtp"
	"strings"
	"time"

	"github.com/rogerio-castellano/stockroom/internal/redissvc"
)

// AlertChannel is the pub/sub channel low-stock alerts are published on.
const AlertChannel = "stockroom:alerts"

// DailyAlertLogKey holds the day's alerts for the summary mail.
const DailyAlertLogKey = "stockroom:alertlog:daily"

type AlertLogEntry struct {
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

// RedisListener returns a Listener that publishes each alert on the alert
// channel and appends it to the daily log list.
func RedisListener(rs *redissvc.RedisService) Listener {
	rdb, ctx := rs.Rdb(), rs.Ctx()
	return func(message string) {
		_ = rdb.Publish(ctx, AlertChannel, message).Err()

		entry := AlertLogEntry{Message: message, Time: time.Now()}
		data, _ := json.Marshal(entry)
		_ = rdb.RPush(ctx, DailyAlertLogKey, data).Err()
	}
}

// StartDailyAlertSummary mails the day's accumulated alerts shortly before
// midnight, then clears the log.
func StartDailyAlertSummary(rs *redissvc.RedisService, smtpCfg SMTPConfig, interval time.Duration) {
	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 0, 0, now.Location())
		if now.After(next) {
			next = next.Add(interval)
		}
		time.Sleep(time.Until(next))
		SendDailyAlertSummary(rs, smtpCfg)
	}
}

func SendDailyAlertSummary(rs *redissvc.RedisService, smtpCfg SMTPConfig) {
	rdb, ctx := rs.Rdb(), rs.Ctx()

	entries, err := rdb.LRange(ctx, DailyAlertLogKey, 0, -1).Result()
	if err != nil || len(entries) == 0 {
		return
	}
	_ = rdb.Del(ctx, DailyAlertLogKey).Err() // clear after reading

	var logs []AlertLogEntry
	for _, item := range entries {
		var entry AlertLogEntry
		if err := json.Unmarshal([]byte(item), &entry); err == nil {
			logs = append(logs, entry)
		}
	}

	var sb strings.Builder
	sb.WriteString("<h2>📊 Daily Low-Stock Summary</h2>")
	sb.WriteString(fmt.Sprintf("<p>Total alerts: <strong>%d</strong></p>", len(logs)))
	sb.WriteString("<h3>📋 Full Log</h3><ul>")
	for _, entry := range logs {
		sb.WriteString(fmt.Sprintf("<li>%s at %s</li>", entry.Message, entry.Time.Format(time.RFC822)))
	}
	sb.WriteString("</ul>")

	msg := strings.Join([]string{
		"From: " + smtpCfg.From,
		"To: " + smtpCfg.To,
		"Subject: 📊 Daily Low-Stock Report",
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=\"UTF-8\"",
		"",
		sb.String(),
	}, "\r\n")

	addr := fmt.Sprintf("%s:%s", smtpCfg.Server, smtpCfg.Port)
	auth := smtp.PlainAuth("", smtpCfg.User, smtpCfg.Password, smtpCfg.Server)
	if smtpCfg.AuthDisabled {
		auth = nil
	}

	go func() {
		if err := smtp.SendMail(addr, auth, smtpCfg.From, []string{smtpCfg.To}, []byte(msg)); err != nil {
			log.Printf("❌ Failed to send email: %v\n", err)
		} else {
			log.Println("📬 Daily low-stock summary sent via SMTP.")
		}
	}()
}
