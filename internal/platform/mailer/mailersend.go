package mailer

import (
	"context"
	"time"

	"github.com/mailersend/mailersend-go"

	"github.com/forgeline/storefront/internal/domain"
)

// MailerSendProvider delivers through the MailerSend transactional API.
// First provider in the chain when an API key is configured.
type MailerSendProvider struct {
	client *mailersend.Mailersend
	from   mailersend.From
	to     string
}

func NewMailerSend(apiKey, fromName, fromEmail, notifyTo string) *MailerSendProvider {
	p := &MailerSendProvider{
		from: mailersend.From{
			Name:  fromName,
			Email: fromEmail,
		},
		to: notifyTo,
	}

	if apiKey != "" {
		p.client = mailersend.NewMailersend(apiKey)
	}

	return p
}

func (p *MailerSendProvider) Name() string { return "mailersend" }

func (p *MailerSendProvider) Available() bool {
	return p.client != nil && p.from.Email != "" && p.to != ""
}

func (p *MailerSendProvider) Send(ctx context.Context, inq *domain.Inquiry) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	msg := p.client.Email.NewMessage()
	msg.SetFrom(p.from)
	msg.SetRecipients([]mailersend.Recipient{{Email: p.to}})
	// Replies go straight back to the customer.
	msg.SetReplyTo(mailersend.ReplyTo{Name: inq.Name, Email: inq.Email})
	msg.SetSubject(notificationSubject(inq))
	msg.SetText(notificationText(inq))
	msg.SetHTML(notificationHTML(inq))

	// Send returns a non-nil error for any non-2xx API response.
	_, err := p.client.Email.Send(ctx, msg)
	return err
}
