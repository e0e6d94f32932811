package mailer

import (
	"fmt"
	"net/smtp"
	"os"
	"strings"
)

// Message tek bir e-posta içeriği.
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// SendResult transport'un gönderim sonucu.
type SendResult struct {
	Success   bool
	MessageID string
	Error     string
}

// IMailTransport dış posta servisi ile aradaki dar sözleşme.
// Dispatcher içerik üretir, taşıma detayını bu arayüze bırakır.
type IMailTransport interface {
	Send(msg Message) SendResult
}

// SMTPTransport net/smtp üzerinden gönderim yapar.
type SMTPTransport struct {
	host     string
	port     string
	from     string
	password string
}

// NewSMTPTransport ortam değişkenlerinden SMTP istemcisini kurar.
// Beklenen değişkenler: SMTP_HOST, SMTP_PORT, SMTP_FROM, SMTP_PASSWORD.
func NewSMTPTransport() *SMTPTransport {
	return &SMTPTransport{
		host:     envOrDefault("SMTP_HOST", "localhost"),
		port:     envOrDefault("SMTP_PORT", "587"),
		from:     os.Getenv("SMTP_FROM"),
		password: os.Getenv("SMTP_PASSWORD"),
	}
}

// From gönderen adresini döndürür.
func (t *SMTPTransport) From() string { return t.from }

// Send mesajı SMTP sunucusuna iletir. Hata fırlatmaz, sonuç döndürür.
func (t *SMTPTransport) Send(msg Message) SendResult {
	if !strings.Contains(msg.To, "@") {
		return SendResult{Success: false, Error: "geçersiz alıcı adresi: " + msg.To}
	}

	body := msg.Text
	contentType := "text/plain; charset=\"UTF-8\""
	if msg.HTML != "" {
		body = msg.HTML
		contentType = "text/html; charset=\"UTF-8\""
	}
	raw := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: %s\r\n\r\n%s",
		t.from, msg.To, msg.Subject, contentType, body)

	auth := smtp.PlainAuth("", t.from, t.password, t.host)
	if err := smtp.SendMail(t.host+":"+t.port, auth, t.from, []string{msg.To}, []byte(raw)); err != nil {
		return SendResult{Success: false, Error: err.Error()}
	}
	return SendResult{Success: true}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

var _ IMailTransport = (*SMTPTransport)(nil)
