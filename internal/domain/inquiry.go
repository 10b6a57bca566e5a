package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrValidation marks a request rejected before any store or network
// call was attempted.
var ErrValidation = errors.New("validation failed")

type InquiryStatus string

const (
	InquiryNew      InquiryStatus = "new"
	InquiryReplied  InquiryStatus = "replied"
	InquiryResolved InquiryStatus = "resolved"
)

func ParseInquiryStatus(s string) (InquiryStatus, bool) {
	switch InquiryStatus(s) {
	case InquiryNew, InquiryReplied, InquiryResolved:
		return InquiryStatus(s), true
	default:
		return "", false
	}
}

// Inquiry is a customer-submitted contact or order message. The
// secondary store keeps its own snake_case document shape; its repo
// translates into this one so callers never see the difference.
type Inquiry struct {
	ID        int64         `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Phone     string        `json:"phone,omitempty"`
	Company   string        `json:"company,omitempty"`
	Subject   string        `json:"subject,omitempty"`
	Message   string        `json:"message"`
	Status    InquiryStatus `json:"status"`
	Notified  bool          `json:"notified"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

type InquiryReq struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (r *InquiryReq) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Phone = strings.TrimSpace(r.Phone)
	r.Company = strings.TrimSpace(r.Company)
	r.Subject = strings.TrimSpace(r.Subject)
	r.Message = strings.TrimSpace(r.Message)
}

func (r *InquiryReq) Validate() error {
	var missing []string
	if r.Name == "" {
		missing = append(missing, "name")
	}
	if r.Email == "" {
		missing = append(missing, "email")
	}
	if r.Message == "" {
		missing = append(missing, "message")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s", ErrValidation, strings.Join(missing, ", "))
	}
	if !strings.Contains(r.Email, "@") {
		return fmt.Errorf("%w: invalid email address", ErrValidation)
	}
	return nil
}

// SubmitResponse is the storefront-facing result of an inquiry
// submission. The saved/sent flags expose partial failures so operators
// can audit degraded submissions even when ok is true.
type SubmitResponse struct {
	OK               bool   `json:"ok"`
	Message          string `json:"message"`
	EmailSent        bool   `json:"email_sent"`
	InquiryID        int64  `json:"inquiry_id"`
	SavedToPrimary   bool   `json:"saved_to_primary"`
	SavedToSecondary bool   `json:"saved_to_secondary"`
}

type ListResponse struct {
	OK        bool      `json:"ok"`
	Inquiries []Inquiry `json:"inquiries"`
	Source    string    `json:"source"`
	Count     int       `json:"count"`
}

type LoginRequest struct {
	Password string `json:"password"`
}

type LoginResponse struct {
	OK           bool      `json:"ok"`
	SessionToken string    `json:"session_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type SessionResponse struct {
	Valid        bool       `json:"valid"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	LastActivity *time.Time `json:"last_activity,omitempty"`
}

type StatusPatch struct {
	Status string `json:"status"`
}
