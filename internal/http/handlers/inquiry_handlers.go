package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/forgeline/storefront/internal/domain"
	"github.com/forgeline/storefront/internal/http/response"
	"github.com/forgeline/storefront/pkg/events"
	"github.com/forgeline/storefront/pkg/logger"
)

// SubmitInquiry handles public contact-form and checkout submissions.
//
// Policy: a customer lead is never lost silently. The response says ok
// whenever any persistence or notification path succeeded, and the
// saved/sent flags expose exactly which paths did, so operators can
// audit degraded submissions.
func (h *Handlers) SubmitInquiry(w http.ResponseWriter, r *http.Request) {
	var req domain.InquiryReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	res, err := h.inquiries.Submit(r.Context(), &req)
	if err != nil {
		// Validation failure: no store was touched.
		response.BadRequest(w, err.Error())
		return
	}

	// The notifier runs only after both write attempts have settled.
	final := res.Final()
	if final == nil {
		// Both stores failed. Still try to notify so the lead at least
		// reaches the sales inbox.
		final = &domain.Inquiry{
			Name:    req.Name,
			Email:   req.Email,
			Phone:   req.Phone,
			Company: req.Company,
			Subject: req.Subject,
			Message: req.Message,
			Status:  domain.InquiryNew,
		}
	}

	notified := h.notifier.Send(r.Context(), final)
	if notified {
		h.inquiries.MarkNotified(r.Context(), res)
	}

	ok := res.SavedToPrimary() || res.SavedToSecondary() || notified

	resp := domain.SubmitResponse{
		OK:               ok,
		EmailSent:        notified,
		InquiryID:        final.ID,
		SavedToPrimary:   res.SavedToPrimary(),
		SavedToSecondary: res.SavedToSecondary(),
	}

	if !ok {
		resp.Message = "We could not record your inquiry. Please try again later."
		writeJSON(w, http.StatusInternalServerError, resp)
		return
	}

	resp.Message = "Thanks! Your inquiry has been received."

	if err := h.bus.Publish(r.Context(), events.InquiryCreated, events.InquiryCreatedEvent{
		InquiryID:        final.ID,
		Name:             final.Name,
		Email:            final.Email,
		Subject:          final.Subject,
		SavedToPrimary:   res.SavedToPrimary(),
		SavedToSecondary: res.SavedToSecondary(),
		EmailSent:        notified,
		CreatedAt:        final.CreatedAt,
	}); err != nil {
		logger.ErrorContext(r.Context(), "Failed to publish inquiry created event",
			"error", err, "inquiry_id", final.ID)
	}

	writeJSON(w, http.StatusOK, resp)
}
