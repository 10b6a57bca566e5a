package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/forgeline/storefront/internal/domain"
	mw "github.com/forgeline/storefront/internal/http/middleware"
	"github.com/forgeline/storefront/internal/http/response"
	"github.com/forgeline/storefront/internal/store"
	"github.com/forgeline/storefront/pkg/events"
	"github.com/forgeline/storefront/pkg/logger"
)

// Login verifies the admin password and issues an opaque session token.
// Failed attempts get an independent 401 each time; there is no lockout.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	if !h.creds.Verify(req.Password) {
		response.Unauthorized(w, "Invalid password")
		return
	}

	token, expiresAt := h.sessions.Create()

	writeJSON(w, http.StatusOK, domain.LoginResponse{
		OK:           true,
		SessionToken: token,
		ExpiresAt:    expiresAt,
	})
}

// VerifySession reports whether the presented token names a live
// session. Valid checks bump the session's last-activity time.
func (h *Handlers) VerifySession(w http.ResponseWriter, r *http.Request) {
	token := mw.BearerToken(r)
	if token == "" {
		writeJSON(w, http.StatusOK, domain.SessionResponse{Valid: false})
		return
	}

	res := h.sessions.Verify(token)
	if !res.Valid {
		writeJSON(w, http.StatusOK, domain.SessionResponse{Valid: false})
		return
	}

	writeJSON(w, http.StatusOK, domain.SessionResponse{
		Valid:        true,
		ExpiresAt:    &res.ExpiresAt,
		LastActivity: &res.LastActivity,
	})
}

// Logout revokes the session. Idempotent: an unknown token still gets
// an ok response.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if token := mw.BearerToken(r); token != "" {
		h.sessions.Revoke(token)
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// ListInquiries returns inquiries newest first. A primary store outage
// never fails the request on its own; the listing falls back to the
// backup store and says so in the source field.
func (h *Handlers) ListInquiries(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	items, source, err := h.inquiries.List(r.Context(), limit, offset)
	if err != nil {
		logger.ErrorContext(r.Context(), "Both stores failed to list inquiries", "error", err)
		response.StoresUnavailable(w, "Inquiries are temporarily unavailable")
		return
	}

	if items == nil {
		items = []domain.Inquiry{}
	}

	writeJSON(w, http.StatusOK, domain.ListResponse{
		OK:        true,
		Inquiries: items,
		Source:    string(source),
		Count:     len(items),
	})
}

// UpdateInquiryStatus moves an inquiry between new, replied and
// resolved. An invalid status is rejected before any store call.
func (h *Handlers) UpdateInquiryStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid inquiry ID")
		return
	}

	var patch domain.StatusPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	updated, source, err := h.inquiries.UpdateStatus(r.Context(), id, patch.Status)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			response.BadRequest(w, err.Error())
		case errors.Is(err, store.ErrBothStoresFailed):
			logger.ErrorContext(r.Context(), "Both stores failed to update inquiry status",
				"error", err, "inquiry_id", id)
			response.StoresUnavailable(w, "Could not update inquiry status")
		default:
			response.InternalError(w, "Failed to update inquiry status")
		}
		return
	}

	if err := h.bus.Publish(r.Context(), events.InquiryStatusUpdated, events.InquiryStatusUpdatedEvent{
		InquiryID: updated.ID,
		Status:    string(updated.Status),
		Source:    string(source),
		UpdatedAt: updated.UpdatedAt,
	}); err != nil {
		logger.ErrorContext(r.Context(), "Failed to publish status updated event",
			"error", err, "inquiry_id", updated.ID)
	}

	writeJSON(w, http.StatusOK, updated)
}

// DeleteInquiry removes an inquiry from the primary store. The backup
// copy is intentionally left in place; it is never the source of truth.
func (h *Handlers) DeleteInquiry(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid inquiry ID")
		return
	}

	deleted, err := h.inquiries.Delete(r.Context(), id)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to delete inquiry", "error", err, "inquiry_id", id)
		response.InternalError(w, "Failed to delete inquiry")
		return
	}
	if !deleted {
		response.NotFound(w, "Inquiry not found")
		return
	}

	if err := h.bus.Publish(r.Context(), events.InquiryDeleted, events.InquiryDeletedEvent{
		InquiryID: id,
		DeletedAt: time.Now(),
	}); err != nil {
		logger.ErrorContext(r.Context(), "Failed to publish inquiry deleted event",
			"error", err, "inquiry_id", id)
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
