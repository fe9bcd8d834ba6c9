package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/onboarding-service/internal/domain"
)

// DetailsRepository manages details records linked to identity records.
type DetailsRepository interface {
	Create(ctx context.Context, record *domain.DetailsRecord) error
	List(ctx context.Context) ([]domain.DetailsRecord, error)
}

type detailsRepository struct {
	pool *pgxpool.Pool
}

// NewDetailsRepository builds a Postgres-backed repository.
func NewDetailsRepository(pool *pgxpool.Pool) DetailsRepository {
	return &detailsRepository{pool: pool}
}

func (r *detailsRepository) Create(ctx context.Context, record *domain.DetailsRecord) error {
	const query = `
        INSERT INTO details (basic_info_id, photo, photo_filename, employment_type, office_location, notes)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		record.BasicInfoID,
		record.Photo,
		record.PhotoFilename,
		record.EmploymentType,
		record.OfficeLocation,
		record.Notes,
	).Scan(&record.ID)
}

func (r *detailsRepository) List(ctx context.Context) ([]domain.DetailsRecord, error) {
	const query = `
        SELECT id, basic_info_id, photo, photo_filename, employment_type, office_location, notes
        FROM details ORDER BY id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.DetailsRecord
	for rows.Next() {
		var record domain.DetailsRecord
		if err := rows.Scan(
			&record.ID,
			&record.BasicInfoID,
			&record.Photo,
			&record.PhotoFilename,
			&record.EmploymentType,
			&record.OfficeLocation,
			&record.Notes,
		); err != nil {
			return nil, err
		}
		result = append(result, record)
	}
	return result, rows.Err()
}
