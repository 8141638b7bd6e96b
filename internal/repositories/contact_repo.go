package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mhollis/vitrine/internal/database"
	"github.com/mhollis/vitrine/internal/models"
)

type ContactRequestRepository struct {
	db *database.DB
}

func NewContactRequestRepository(db *database.DB) *ContactRequestRepository {
	return &ContactRequestRepository{db: db}
}

func scanContactRequestRow(scanner rowScanner) (*models.ContactRequest, error) {
	var cr models.ContactRequest

	err := scanner.Scan(
		&cr.ID, &cr.Name, &cr.Email, &cr.Phone, &cr.Message, &cr.CreatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return &cr, nil
}

func (r *ContactRequestRepository) GetByID(ctx context.Context, id string) (*models.ContactRequest, error) {
	query := `
		SELECT id, name, email, phone, message, created_at
		FROM contact_requests WHERE id = $1
	`

	return scanContactRequestRow(r.db.Pool.QueryRow(ctx, query, id))
}

func (r *ContactRequestRepository) List(ctx context.Context, limit, offset int) ([]*models.ContactRequest, error) {
	query := `
		SELECT id, name, email, phone, message, created_at
		FROM contact_requests ORDER BY created_at DESC LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query contact requests: %w", err)
	}
	defer rows.Close()

	requests := make([]*models.ContactRequest, 0)
	for rows.Next() {
		cr, err := scanContactRequestRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contact request: %w", err)
		}
		requests = append(requests, cr)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return requests, nil
}

func (r *ContactRequestRepository) Create(ctx context.Context, request *models.ContactRequest) (*models.ContactRequest, error) {
	request.ID = uuid.New().String()
	request.CreatedAt = time.Now()

	query := `
		INSERT INTO contact_requests (id, name, email, phone, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, email, phone, message, created_at
	`

	return scanContactRequestRow(r.db.Pool.QueryRow(ctx, query,
		request.ID, request.Name, request.Email, request.Phone, request.Message, request.CreatedAt,
	))
}

func (r *ContactRequestRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM contact_requests WHERE id = $1`, id)
	if err != nil {
		return database.MapPostgresError(err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
