package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/forgeline/storefront/internal/domain"
)

// InquiryRepo is the primary inquiry store, backed by postgres.
type InquiryRepo struct {
	pool *pgxpool.Pool
}

func NewInquiryRepo(pool *pgxpool.Pool) *InquiryRepo {
	return &InquiryRepo{pool: pool}
}

const inquiryCols = `id, name, email, phone, company, subject, message, status, notified, created_at, updated_at`

func scanInquiry(row pgx.Row) (*domain.Inquiry, error) {
	var inq domain.Inquiry
	err := row.Scan(
		&inq.ID, &inq.Name, &inq.Email, &inq.Phone, &inq.Company,
		&inq.Subject, &inq.Message, &inq.Status, &inq.Notified,
		&inq.CreatedAt, &inq.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &inq, nil
}

func (r *InquiryRepo) Create(ctx context.Context, req *domain.InquiryReq) (*domain.Inquiry, error) {
	const q = `INSERT INTO inquiries (
		name, email, phone, company, subject, message, status, notified
	) VALUES ($1,$2,$3,$4,$5,$6,'new',false)
	RETURNING ` + inquiryCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanInquiry(r.pool.QueryRow(ctx, q,
		req.Name, req.Email, req.Phone, req.Company, req.Subject, req.Message,
	))
}

func (r *InquiryRepo) List(ctx context.Context, limit, offset int) ([]domain.Inquiry, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	const q = `SELECT ` + inquiryCols + ` FROM inquiries ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var inquiries []domain.Inquiry
	for rows.Next() {
		var inq domain.Inquiry
		if err := rows.Scan(
			&inq.ID, &inq.Name, &inq.Email, &inq.Phone, &inq.Company,
			&inq.Subject, &inq.Message, &inq.Status, &inq.Notified,
			&inq.CreatedAt, &inq.UpdatedAt,
		); err != nil {
			return nil, err
		}
		inquiries = append(inquiries, inq)
	}
	return inquiries, rows.Err()
}

func (r *InquiryRepo) UpdateStatus(ctx context.Context, id int64, status domain.InquiryStatus) (*domain.Inquiry, error) {
	const q = `UPDATE inquiries SET status=$2, updated_at=now() WHERE id=$1 RETURNING ` + inquiryCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	// pgx.ErrNoRows propagates: a record missing here may still exist in
	// the secondary store, so the caller gets to fall back.
	return scanInquiry(r.pool.QueryRow(ctx, q, id, status))
}

func (r *InquiryRepo) MarkNotified(ctx context.Context, id int64) error {
	const q = `UPDATE inquiries SET notified=true, updated_at=now() WHERE id=$1`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.pool.Exec(ctx, q, id)
	return err
}

func (r *InquiryRepo) Delete(ctx context.Context, id int64) (bool, error) {
	const q = `DELETE FROM inquiries WHERE id=$1`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	result, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		return false, err
	}
	return result.RowsAffected() > 0, nil
}
