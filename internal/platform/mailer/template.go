package mailer

import (
	"context"
	"errors"

	"github.com/forgeline/storefront/internal/domain"
)

// TemplateProvider is the slot for a third-party templating service.
// Delivery through it was never wired up; it reports unavailable so the
// chain skips it without a network call.
//
// TODO: wire the template service once the account and template IDs
// exist; the provider just needs to fill Send and flip Available.
type TemplateProvider struct{}

func NewTemplate() *TemplateProvider { return &TemplateProvider{} }

func (p *TemplateProvider) Name() string { return "template-service" }

func (p *TemplateProvider) Available() bool { return false }

func (p *TemplateProvider) Send(context.Context, *domain.Inquiry) error {
	return errors.New("template service not configured")
}
