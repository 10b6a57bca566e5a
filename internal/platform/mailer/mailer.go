package mailer

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/forgeline/storefront/internal/domain"
	"github.com/forgeline/storefront/pkg/logger"
)

// Provider is one way of delivering an inquiry notification email.
// Send returns an error when this provider could not confirm delivery;
// the chain then moves on to the next one.
type Provider interface {
	Name() string
	Available() bool
	Send(ctx context.Context, inq *domain.Inquiry) error
}

// Chain tries providers strictly one at a time, in order, stopping at
// the first confirmed delivery. Providers are never run concurrently so
// a slow first provider cannot cause duplicate notifications.
type Chain struct {
	providers []Provider
}

func NewChain(providers ...Provider) *Chain {
	return &Chain{providers: providers}
}

// Send reports whether any provider confirmed delivery. A chain with no
// available providers returns false; callers treat that as a degraded
// submission, not a failure.
func (c *Chain) Send(ctx context.Context, inq *domain.Inquiry) bool {
	for _, p := range c.providers {
		if !p.Available() {
			logger.DebugContext(ctx, "Notification provider not configured, skipping", "provider", p.Name())
			continue
		}
		if err := p.Send(ctx, inq); err != nil {
			logger.WarnContext(ctx, "Notification provider failed, trying next",
				"provider", p.Name(), "error", err, "inquiry_id", inq.ID)
			continue
		}
		logger.InfoContext(ctx, "Inquiry notification delivered",
			"provider", p.Name(), "inquiry_id", inq.ID)
		return true
	}
	return false
}

func notificationSubject(inq *domain.Inquiry) string {
	if inq.Subject != "" {
		return fmt.Sprintf("New inquiry: %s", inq.Subject)
	}
	return fmt.Sprintf("New inquiry from %s", inq.Name)
}

func notificationText(inq *domain.Inquiry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New inquiry #%d received %s\n\n", inq.ID, inq.CreatedAt.Format(time.RFC1123))
	fmt.Fprintf(&b, "Name: %s\nEmail: %s\n", inq.Name, inq.Email)
	if inq.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", inq.Phone)
	}
	if inq.Company != "" {
		fmt.Fprintf(&b, "Company: %s\n", inq.Company)
	}
	fmt.Fprintf(&b, "\n%s\n", inq.Message)
	return b.String()
}

func notificationHTML(inq *domain.Inquiry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h2>New inquiry #%d</h2>", inq.ID)
	fmt.Fprintf(&b, "<p><strong>Received:</strong> %s</p>", inq.CreatedAt.Format(time.RFC1123))
	fmt.Fprintf(&b, "<p><strong>Name:</strong> %s<br>", html.EscapeString(inq.Name))
	fmt.Fprintf(&b, "<strong>Email:</strong> %s", html.EscapeString(inq.Email))
	if inq.Phone != "" {
		fmt.Fprintf(&b, "<br><strong>Phone:</strong> %s", html.EscapeString(inq.Phone))
	}
	if inq.Company != "" {
		fmt.Fprintf(&b, "<br><strong>Company:</strong> %s", html.EscapeString(inq.Company))
	}
	b.WriteString("</p>")
	fmt.Fprintf(&b, "<blockquote>%s</blockquote>", html.EscapeString(inq.Message))
	return b.String()
}
