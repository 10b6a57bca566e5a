package mailer

import (
	"context"

	"github.com/forgeline/storefront/internal/domain"
	"github.com/forgeline/storefront/pkg/logger"
)

// DevProvider logs the notification instead of sending it. Appended to
// the chain only when EMAIL_DEV_MODE is on, so local runs always "send".
type DevProvider struct{}

func NewDev() *DevProvider { return &DevProvider{} }

func (d *DevProvider) Name() string { return "dev" }

func (d *DevProvider) Available() bool { return true }

func (d *DevProvider) Send(ctx context.Context, inq *domain.Inquiry) error {
	logger.InfoContext(ctx, "[DEV MAIL] Inquiry notification",
		"inquiry_id", inq.ID,
		"from", inq.Email,
		"subject", notificationSubject(inq),
		"body", notificationText(inq),
	)
	return nil
}
