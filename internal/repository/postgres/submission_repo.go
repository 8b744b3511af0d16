package postgres

import (
	"context"
	"fmt"

	"hushh-site-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type submissionRepo struct {
	db *pgxpool.Pool
}

// NewSubmissionRepository creates the archive repository for dispatched
// contact submissions
func NewSubmissionRepository(db *pgxpool.Pool) domain.SubmissionRepository {
	return &submissionRepo{db: db}
}

// Create inserts one archived submission
func (r *submissionRepo) Create(ctx context.Context, sub *domain.Submission) error {
	query := `
		INSERT INTO contact_submissions (
			id, name, email, company, phone, subject, message,
			preferred_contact, urgency, department,
			attachment_count, attachment_names, attachment_mimes, attachment_bytes,
			storage_keys, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err := r.db.Exec(ctx, query,
		sub.ID,
		sub.Name,
		sub.Email,
		sub.Company,
		sub.Phone,
		sub.Subject,
		sub.Message,
		sub.PreferredContact,
		sub.Urgency,
		sub.Department,
		sub.AttachmentCount,
		pq.Array(sub.AttachmentNames),
		pq.Array(sub.AttachmentMIMEs),
		sub.AttachmentBytes,
		pq.Array(sub.StorageKeys),
		sub.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert submission: %w", err)
	}
	return nil
}

// List returns one page of archived submissions, newest first, plus the
// total row count
func (r *submissionRepo) List(ctx context.Context, limit, offset int) ([]domain.Submission, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM contact_submissions`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count submissions: %w", err)
	}

	query := `
		SELECT
			id, name, email, company, phone, subject, message,
			preferred_contact, urgency, department,
			attachment_count, attachment_names, attachment_mimes, attachment_bytes,
			storage_keys, created_at
		FROM contact_submissions
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer rows.Close()

	var items []domain.Submission
	for rows.Next() {
		var (
			sub   domain.Submission
			names []string
			mimes []string
			keys  []string
		)
		err := rows.Scan(
			&sub.ID, &sub.Name, &sub.Email, &sub.Company, &sub.Phone,
			&sub.Subject, &sub.Message,
			&sub.PreferredContact, &sub.Urgency, &sub.Department,
			&sub.AttachmentCount, pq.Array(&names), pq.Array(&mimes), &sub.AttachmentBytes,
			pq.Array(&keys), &sub.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan submission: %w", err)
		}
		sub.AttachmentNames = names
		sub.AttachmentMIMEs = mimes
		sub.StorageKeys = keys
		items = append(items, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read submissions: %w", err)
	}

	return items, total, nil
}
