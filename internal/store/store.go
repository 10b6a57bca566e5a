// Package store composes the primary (postgres) and secondary (redis
// document) inquiry stores into one fallback-aware surface.
//
// The durability policy is at-least-one-of-two, not two-phase commit:
// writes go to both stores independently, reads try the primary and
// fall back, status updates try primary then secondary, deletes touch
// the primary only.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/forgeline/storefront/internal/domain"
	"github.com/forgeline/storefront/pkg/logger"
)

// ErrBothStoresFailed is returned where no fallback remains: both the
// primary and the secondary store rejected the operation.
var ErrBothStoresFailed = errors.New("both stores failed")

type Source string

const (
	SourcePrimary   Source = "primary"
	SourceSecondary Source = "secondary"
)

// InquiryStore is implemented by both backing stores.
type InquiryStore interface {
	Create(ctx context.Context, req *domain.InquiryReq) (*domain.Inquiry, error)
	List(ctx context.Context, limit, offset int) ([]domain.Inquiry, error)
	UpdateStatus(ctx context.Context, id int64, status domain.InquiryStatus) (*domain.Inquiry, error)
	MarkNotified(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) (bool, error)
}

type Dual struct {
	primary   InquiryStore
	secondary InquiryStore
}

func NewDual(primary, secondary InquiryStore) *Dual {
	return &Dual{primary: primary, secondary: secondary}
}

// SubmitResult reports each store's outcome separately. Each side keeps
// its own record with its own id scheme.
type SubmitResult struct {
	Primary      *domain.Inquiry
	PrimaryErr   error
	Secondary    *domain.Inquiry
	SecondaryErr error
}

func (r SubmitResult) SavedToPrimary() bool { return r.PrimaryErr == nil && r.Primary != nil }

func (r SubmitResult) SavedToSecondary() bool { return r.SecondaryErr == nil && r.Secondary != nil }

// Final returns the record whose identity is reported to the caller:
// the primary's when it was saved, otherwise the secondary's.
func (r SubmitResult) Final() *domain.Inquiry {
	if r.SavedToPrimary() {
		return r.Primary
	}
	if r.SavedToSecondary() {
		return r.Secondary
	}
	return nil
}

// Submit validates the request, then writes it to both stores. The two
// writes are independent: a failure in one never prevents or rolls back
// the other. A validation error is returned before any store is
// touched.
func (d *Dual) Submit(ctx context.Context, req *domain.InquiryReq) (SubmitResult, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return SubmitResult{}, err
	}

	var res SubmitResult
	res.Primary, res.PrimaryErr = d.primary.Create(ctx, req)
	if res.PrimaryErr != nil {
		logger.WarnContext(ctx, "Primary store insert failed", "error", res.PrimaryErr)
	}

	res.Secondary, res.SecondaryErr = d.secondary.Create(ctx, req)
	if res.SecondaryErr != nil {
		logger.WarnContext(ctx, "Secondary store insert failed", "error", res.SecondaryErr)
	}

	return res, nil
}

// MarkNotified records a successful notification on every store that
// holds a copy. Best effort: failures are logged, never surfaced.
func (d *Dual) MarkNotified(ctx context.Context, res SubmitResult) {
	if res.SavedToPrimary() {
		if err := d.primary.MarkNotified(ctx, res.Primary.ID); err != nil {
			logger.WarnContext(ctx, "Failed to mark primary record notified",
				"error", err, "inquiry_id", res.Primary.ID)
		}
	}
	if res.SavedToSecondary() {
		if err := d.secondary.MarkNotified(ctx, res.Secondary.ID); err != nil {
			logger.WarnContext(ctx, "Failed to mark secondary record notified",
				"error", err, "inquiry_id", res.Secondary.ID)
		}
	}
}

// List reads from the primary store; on any error it falls back to the
// secondary entirely (no merge) and reports which source answered.
func (d *Dual) List(ctx context.Context, limit, offset int) ([]domain.Inquiry, Source, error) {
	items, err := d.primary.List(ctx, limit, offset)
	if err == nil {
		return items, SourcePrimary, nil
	}
	logger.WarnContext(ctx, "Primary store list failed, falling back", "error", err)

	items, serr := d.secondary.List(ctx, limit, offset)
	if serr != nil {
		return nil, SourceSecondary, errors.Join(ErrBothStoresFailed, err, serr)
	}
	return items, SourceSecondary, nil
}

// UpdateStatus validates the status before any store call, then tries
// the primary and falls back to the secondary. Unlike submission this
// path is strict: when both stores fail the error propagates.
func (d *Dual) UpdateStatus(ctx context.Context, id int64, status string) (*domain.Inquiry, Source, error) {
	st, ok := domain.ParseInquiryStatus(status)
	if !ok {
		return nil, "", fmt.Errorf("%w: status must be new, replied or resolved", domain.ErrValidation)
	}

	updated, err := d.primary.UpdateStatus(ctx, id, st)
	if err == nil {
		return updated, SourcePrimary, nil
	}
	logger.WarnContext(ctx, "Primary store status update failed, falling back",
		"error", err, "inquiry_id", id)

	updated, serr := d.secondary.UpdateStatus(ctx, id, st)
	if serr != nil {
		return nil, "", errors.Join(ErrBothStoresFailed, err, serr)
	}
	return updated, SourceSecondary, nil
}

// Delete removes the record from the primary store only. The secondary
// is a resilience copy and is never the source of truth for deletion;
// its records age out of the listing once the primary is healthy again.
func (d *Dual) Delete(ctx context.Context, id int64) (bool, error) {
	return d.primary.Delete(ctx, id)
}
