package redisdoc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/forgeline/storefront/internal/domain"
)

// The backup service stores documents under its own snake_case field
// names; translate is the boundary where they become the domain shape.
// Field names are spelled out as literals here so a drifting constant
// cannot hide a wire-format change.
func TestTranslateMapsDocumentFields(t *testing.T) {
	created := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	updated := created.Add(2 * time.Hour)

	doc := map[string]string{
		"customer_name":  "Ravi",
		"customer_email": "ravi@x.com",
		"phone_number":   "+44 20 7946 0000",
		"company_name":   "Forgeline Ltd",
		"subject_line":   "Bulk order",
		"message_body":   "Need a quote for 500 units",
		"inquiry_status": "replied",
		"email_sent":     "true",
		"created_at":     created.Format(time.RFC3339Nano),
		"updated_at":     updated.Format(time.RFC3339Nano),
	}

	inq := translate(42, doc)

	require.Equal(t, int64(42), inq.ID)
	require.Equal(t, "Ravi", inq.Name)
	require.Equal(t, "ravi@x.com", inq.Email)
	require.Equal(t, "+44 20 7946 0000", inq.Phone)
	require.Equal(t, "Forgeline Ltd", inq.Company)
	require.Equal(t, "Bulk order", inq.Subject)
	require.Equal(t, "Need a quote for 500 units", inq.Message)
	require.Equal(t, domain.InquiryReplied, inq.Status)
	require.True(t, inq.Notified)
	require.True(t, inq.CreatedAt.Equal(created))
	require.True(t, inq.UpdatedAt.Equal(updated))
}

func TestTranslateDefaultsUnknownStatus(t *testing.T) {
	inq := translate(7, map[string]string{
		"customer_name":  "Mei",
		"inquiry_status": "escalated",
		"email_sent":     "false",
	})

	require.Equal(t, domain.InquiryNew, inq.Status)
	require.False(t, inq.Notified)
}

func TestTranslateToleratesSparseDocument(t *testing.T) {
	inq := translate(7, map[string]string{
		"customer_name": "Mei",
		"created_at":    "yesterday",
	})

	require.Equal(t, "Mei", inq.Name)
	require.Equal(t, domain.InquiryNew, inq.Status)
	require.False(t, inq.Notified)
	require.True(t, inq.CreatedAt.IsZero(), "malformed timestamp translates to the zero time")
	require.True(t, inq.UpdatedAt.IsZero())
}
