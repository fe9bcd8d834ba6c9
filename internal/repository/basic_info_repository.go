package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/onboarding-service/internal/domain"
)

// BasicInfoRepository manages identity records.
type BasicInfoRepository interface {
	Create(ctx context.Context, record *domain.BasicInfoRecord) error
	List(ctx context.Context) ([]domain.BasicInfoRecord, error)
}

type basicInfoRepository struct {
	pool *pgxpool.Pool
}

// NewBasicInfoRepository builds a Postgres-backed repository.
func NewBasicInfoRepository(pool *pgxpool.Pool) BasicInfoRepository {
	return &basicInfoRepository{pool: pool}
}

func (r *basicInfoRepository) Create(ctx context.Context, record *domain.BasicInfoRecord) error {
	const query = `
        INSERT INTO basic_info (full_name, email, department, role, employee_id)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		record.FullName,
		record.Email,
		record.Department,
		record.Role,
		record.EmployeeID,
	).Scan(&record.ID)
}

func (r *basicInfoRepository) List(ctx context.Context) ([]domain.BasicInfoRecord, error) {
	const query = `
        SELECT id, full_name, email, department, role, employee_id
        FROM basic_info ORDER BY id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.BasicInfoRecord
	for rows.Next() {
		var record domain.BasicInfoRecord
		if err := rows.Scan(
			&record.ID,
			&record.FullName,
			&record.Email,
			&record.Department,
			&record.Role,
			&record.EmployeeID,
		); err != nil {
			return nil, err
		}
		result = append(result, record)
	}
	return result, rows.Err()
}
