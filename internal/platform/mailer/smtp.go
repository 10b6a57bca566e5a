package mailer

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/forgeline/storefront/internal/domain"
)

// SMTPProvider delivers through a plain SMTP relay. Second provider in
// the chain; used when MailerSend is unconfigured or failing.
type SMTPProvider struct {
	Host   string
	Port   int
	From   string
	To     string
	User   string
	Pass   string
	UseTLS bool
}

func NewSMTP(host string, port int, from, to, user, pass string, useTLS bool) *SMTPProvider {
	return &SMTPProvider{
		Host:   strings.TrimSpace(host),
		Port:   port,
		From:   strings.TrimSpace(from),
		To:     strings.TrimSpace(to),
		User:   strings.TrimSpace(user),
		Pass:   strings.TrimSpace(pass),
		UseTLS: useTLS,
	}
}

func (p *SMTPProvider) Name() string { return "smtp" }

func (p *SMTPProvider) Available() bool {
	return p.Host != "" && p.From != "" && p.To != ""
}

func (p *SMTPProvider) Send(_ context.Context, inq *domain.Inquiry) error {
	var buf bytes.Buffer
	boundary := "mixed-boundary"

	fmt.Fprintf(&buf, "From: %s\r\n", p.From)
	fmt.Fprintf(&buf, "To: %s\r\n", p.To)
	fmt.Fprintf(&buf, "Reply-To: %s\r\n", inq.Email)
	fmt.Fprintf(&buf, "Subject: %s\r\n", notificationSubject(inq))
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/alternative; boundary=%s\r\n\r\n", boundary)

	// Text part
	fmt.Fprintf(&buf, "--%s\r\n", boundary)
	fmt.Fprintf(&buf, "Content-Type: text/plain; charset=utf-8\r\n\r\n")
	fmt.Fprintf(&buf, "%s\r\n\r\n", notificationText(inq))

	// HTML part
	fmt.Fprintf(&buf, "--%s\r\n", boundary)
	fmt.Fprintf(&buf, "Content-Type: text/html; charset=utf-8\r\n\r\n")
	fmt.Fprintf(&buf, "%s\r\n\r\n", notificationHTML(inq))

	fmt.Fprintf(&buf, "--%s--\r\n", boundary)

	addr := fmt.Sprintf("%s:%d", p.Host, p.Port)

	// Development relay (no auth, no TLS)
	if !p.UseTLS && p.User == "" {
		return smtp.SendMail(addr, nil, p.From, []string{p.To}, buf.Bytes())
	}

	var auth smtp.Auth
	if p.User != "" {
		auth = smtp.PlainAuth("", p.User, p.Pass, p.Host)
	}

	// Try plain SMTP first (with STARTTLS if the server supports it)
	sendErr := smtp.SendMail(addr, auth, p.From, []string{p.To}, buf.Bytes())
	if sendErr == nil {
		return nil
	}

	// Fallback to implicit TLS (port 465)
	if p.UseTLS {
		tlsCfg := &tls.Config{ServerName: p.Host}
		conn, err := tls.Dial("tcp", addr, tlsCfg)
		if err != nil {
			return err
		}
		defer conn.Close()

		c, err := smtp.NewClient(conn, p.Host)
		if err != nil {
			return err
		}
		defer c.Quit()

		if auth != nil {
			if err := c.Auth(auth); err != nil {
				return err
			}
		}

		if err := c.Mail(p.From); err != nil {
			return err
		}
		if err := c.Rcpt(p.To); err != nil {
			return err
		}

		w, err := c.Data()
		if err != nil {
			return err
		}

		if _, err := w.Write(buf.Bytes()); err != nil {
			return err
		}

		return w.Close()
	}

	return fmt.Errorf("smtp send failed: %w", sendErr)
}
