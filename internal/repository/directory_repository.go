package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/onboarding-service/internal/domain"
)

// DepartmentRepository manages directory department records.
type DepartmentRepository interface {
	List(ctx context.Context) ([]domain.Department, error)
}

// LocationRepository manages directory location records.
type LocationRepository interface {
	List(ctx context.Context) ([]domain.Location, error)
}

type departmentRepository struct {
	pool *pgxpool.Pool
}

// NewDepartmentRepository builds a Postgres-backed repository.
func NewDepartmentRepository(pool *pgxpool.Pool) DepartmentRepository {
	return &departmentRepository{pool: pool}
}

func (r *departmentRepository) List(ctx context.Context) ([]domain.Department, error) {
	const query = `SELECT id, name FROM departments ORDER BY id`
	return listLookup(ctx, r.pool, query)
}

type locationRepository struct {
	pool *pgxpool.Pool
}

// NewLocationRepository builds a Postgres-backed repository.
func NewLocationRepository(pool *pgxpool.Pool) LocationRepository {
	return &locationRepository{pool: pool}
}

func (r *locationRepository) List(ctx context.Context) ([]domain.Location, error) {
	const query = `SELECT id, name FROM locations ORDER BY id`
	return listLookup(ctx, r.pool, query)
}

func listLookup(ctx context.Context, pool *pgxpool.Pool, query string) ([]domain.LookupItem, error) {
	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.LookupItem
	for rows.Next() {
		var item domain.LookupItem
		if err := rows.Scan(&item.ID, &item.Name); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}
