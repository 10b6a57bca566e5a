// Package redisdoc is the secondary inquiry store. Inquiries live as
// redis hashes with the document service's own snake_case field names
// and its own id sequence; this repo translates both directions so the
// rest of the code only ever sees the domain shape.
package redisdoc

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/forgeline/storefront/internal/domain"
)

var ErrNotFound = errors.New("inquiry not found in backup store")

const (
	keyNextID = "inquiries:next_id"
	keyIndex  = "inquiries:index"
)

// Document field names used by the backup store.
const (
	fieldName      = "customer_name"
	fieldEmail     = "customer_email"
	fieldPhone     = "phone_number"
	fieldCompany   = "company_name"
	fieldSubject   = "subject_line"
	fieldMessage   = "message_body"
	fieldStatus    = "inquiry_status"
	fieldEmailSent = "email_sent"
	fieldCreatedAt = "created_at"
	fieldUpdatedAt = "updated_at"
)

type InquiryRepo struct {
	client *redis.Client
}

func NewInquiryRepo(client *redis.Client) *InquiryRepo {
	return &InquiryRepo{client: client}
}

func docKey(id int64) string {
	return fmt.Sprintf("inquiry:%d", id)
}

func (r *InquiryRepo) Create(ctx context.Context, req *domain.InquiryReq) (*domain.Inquiry, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	id, err := r.client.Incr(ctx, keyNextID).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to allocate backup id: %w", err)
	}

	now := time.Now().UTC()
	doc := map[string]interface{}{
		fieldName:      req.Name,
		fieldEmail:     req.Email,
		fieldPhone:     req.Phone,
		fieldCompany:   req.Company,
		fieldSubject:   req.Subject,
		fieldMessage:   req.Message,
		fieldStatus:    string(domain.InquiryNew),
		fieldEmailSent: "false",
		fieldCreatedAt: now.Format(time.RFC3339Nano),
		fieldUpdatedAt: now.Format(time.RFC3339Nano),
	}

	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, docKey(id), doc)
	pipe.ZAdd(ctx, keyIndex, redis.Z{Score: float64(now.UnixNano()), Member: id})
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to write backup document: %w", err)
	}

	return &domain.Inquiry{
		ID:        id,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Company:   req.Company,
		Subject:   req.Subject,
		Message:   req.Message,
		Status:    domain.InquiryNew,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// List returns inquiries newest first, matching the primary store's
// ordering.
func (r *InquiryRepo) List(ctx context.Context, limit, offset int) ([]domain.Inquiry, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	ids, err := r.client.ZRevRange(ctx, keyIndex, int64(offset), int64(offset+limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read backup index: %w", err)
	}

	var inquiries []domain.Inquiry
	for _, raw := range ids {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		doc, err := r.client.HGetAll(ctx, docKey(id)).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to read backup document %d: %w", id, err)
		}
		if len(doc) == 0 {
			// Index entry without a document; skip rather than fail the
			// whole listing.
			continue
		}
		inquiries = append(inquiries, translate(id, doc))
	}
	return inquiries, nil
}

func (r *InquiryRepo) UpdateStatus(ctx context.Context, id int64, status domain.InquiryStatus) (*domain.Inquiry, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	exists, err := r.client.Exists(ctx, docKey(id)).Result()
	if err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, ErrNotFound
	}

	now := time.Now().UTC()
	if err := r.client.HSet(ctx, docKey(id),
		fieldStatus, string(status),
		fieldUpdatedAt, now.Format(time.RFC3339Nano),
	).Err(); err != nil {
		return nil, err
	}

	doc, err := r.client.HGetAll(ctx, docKey(id)).Result()
	if err != nil {
		return nil, err
	}
	inq := translate(id, doc)
	return &inq, nil
}

func (r *InquiryRepo) MarkNotified(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return r.client.HSet(ctx, docKey(id),
		fieldEmailSent, "true",
		fieldUpdatedAt, time.Now().UTC().Format(time.RFC3339Nano),
	).Err()
}

func (r *InquiryRepo) Delete(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	pipe := r.client.TxPipeline()
	del := pipe.Del(ctx, docKey(id))
	pipe.ZRem(ctx, keyIndex, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return del.Val() > 0, nil
}

// translate maps a backup document onto the domain shape.
func translate(id int64, doc map[string]string) domain.Inquiry {
	status, ok := domain.ParseInquiryStatus(doc[fieldStatus])
	if !ok {
		status = domain.InquiryNew
	}

	createdAt, _ := time.Parse(time.RFC3339Nano, doc[fieldCreatedAt])
	updatedAt, _ := time.Parse(time.RFC3339Nano, doc[fieldUpdatedAt])

	return domain.Inquiry{
		ID:        id,
		Name:      doc[fieldName],
		Email:     doc[fieldEmail],
		Phone:     doc[fieldPhone],
		Company:   doc[fieldCompany],
		Subject:   doc[fieldSubject],
		Message:   doc[fieldMessage],
		Status:    status,
		Notified:  doc[fieldEmailSent] == "true",
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}
