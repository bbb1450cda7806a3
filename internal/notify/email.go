package notify

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"os"
)

// Notifier delivers candidate-facing mail. Delivery is best-effort: the
// callers log failures and never roll back the transition that fired the
// notification.
type Notifier interface {
	SendWelcome(emails []string) error
	SendScheduled(email, date, timeOfDay, interviewerEmail string) error
}

type SMTPCfg struct {
	Host string
	Port string
	User string
	Pass string
	From string
}

// Mailer sends via plain SMTP, falling back to implicit TLS on port 465.
type Mailer struct {
	cfg *SMTPCfg
}

func NewMailer() (*Mailer, error) {
	cfg := &SMTPCfg{
		Host: os.Getenv("SMTP_HOST"),
		Port: os.Getenv("SMTP_PORT"),
		User: os.Getenv("SMTP_USER"),
		Pass: os.Getenv("SMTP_PASS"),
		From: os.Getenv("SMTP_FROM"),
	}
	if cfg.Host == "" {
		cfg.Host = "smtp.gmail.com"
	}
	if cfg.Port == "" {
		cfg.Port = "587"
	}
	if cfg.From == "" {
		cfg.From = cfg.User
	}
	if cfg.User == "" || cfg.Pass == "" || cfg.From == "" {
		return nil, fmt.Errorf("SMTP not configured")
	}
	return &Mailer{cfg: cfg}, nil
}

func (m *Mailer) SendWelcome(emails []string) error {
	body := "Dear Candidate,\r\n\r\n" +
		"We are excited to have you onboard for the interview process.\r\n" +
		"Please register on the VHire platform to proceed with interviews and receive further notifications.\r\n\r\n" +
		"Regards,\r\nVHire Team\r\n"
	var firstErr error
	for _, to := range emails {
		if err := m.send(to, "Welcome to VHire Platform!", body); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (m *Mailer) SendScheduled(email, date, timeOfDay, interviewerEmail string) error {
	body := fmt.Sprintf("Dear Candidate,\r\n\r\n"+
		"We are pleased to inform you that your interview has been scheduled.\r\n\r\n"+
		"Date: %s\r\nTime: %s\r\nInterviewer: %s\r\n\r\n"+
		"Please be available at least 10 minutes prior to the scheduled time.\r\n\r\n"+
		"Best of luck!\r\n- VHire Team\r\n", date, timeOfDay, interviewerEmail)
	return m.send(email, "Your Interview is Scheduled", body)
}

func (m *Mailer) send(to, subject, body string) error {
	cfg := m.cfg
	addr := cfg.Host + ":" + cfg.Port
	auth := smtp.PlainAuth("", cfg.User, cfg.Pass, cfg.Host)
	msg := []byte("From: \"VHire\" <" + cfg.From + ">\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/plain; charset=\"utf-8\"\r\n\r\n" +
		body + "\r\n")

	if err := smtp.SendMail(addr, auth, cfg.From, []string{to}, msg); err != nil {
		if cfg.Port != "465" {
			return err
		}
		tlsconfig := &tls.Config{ServerName: cfg.Host}
		conn, cerr := tls.Dial("tcp", addr, tlsconfig)
		if cerr != nil {
			return cerr
		}
		c, cerr := smtp.NewClient(conn, cfg.Host)
		if cerr != nil {
			return cerr
		}
		defer c.Quit()
		if err := c.Auth(auth); err != nil {
			return err
		}
		if err := c.Mail(cfg.From); err != nil {
			return err
		}
		if err := c.Rcpt(to); err != nil {
			return err
		}
		wc, cerr := c.Data()
		if cerr != nil {
			return cerr
		}
		if _, cerr = wc.Write(msg); cerr != nil {
			return cerr
		}
		return wc.Close()
	}
	return nil
}
