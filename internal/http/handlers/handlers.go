package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/forgeline/storefront/internal/platform/auth"
	"github.com/forgeline/storefront/internal/platform/mailer"
	"github.com/forgeline/storefront/internal/store"
	"github.com/forgeline/storefront/pkg/events"
)

type Handlers struct {
	inquiries *store.Dual
	notifier  *mailer.Chain
	sessions  *auth.SessionStore
	creds     auth.Credentials
	bus       events.Publisher
}

func New(inquiries *store.Dual, notifier *mailer.Chain, sessions *auth.SessionStore, creds auth.Credentials, bus events.Publisher) *Handlers {
	return &Handlers{
		inquiries: inquiries,
		notifier:  notifier,
		sessions:  sessions,
		creds:     creds,
		bus:       bus,
	}
}

// Helper functions for common response patterns
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// Helper to parse pagination parameters
func parsePagination(r *http.Request) (limit, offset int) {
	limit = 50
	offset = 0

	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}

	return limit, offset
}
