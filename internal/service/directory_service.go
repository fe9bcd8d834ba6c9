package service

import (
	"context"

	"github.com/spec-kit/onboarding-service/internal/domain"
	"github.com/spec-kit/onboarding-service/internal/repository"
)

// DirectoryService serves department and location lookups. Search filters
// case-insensitively on substring containment; an empty query returns the
// full list in insertion order.
type DirectoryService struct {
	departments repository.DepartmentRepository
	locations   repository.LocationRepository
}

// NewDirectoryService constructs the service.
func NewDirectoryService(departments repository.DepartmentRepository, locations repository.LocationRepository) *DirectoryService {
	return &DirectoryService{departments: departments, locations: locations}
}

// Departments returns all department records.
func (s *DirectoryService) Departments(ctx context.Context) ([]domain.Department, error) {
	return s.departments.List(ctx)
}

// Locations returns all location records.
func (s *DirectoryService) Locations(ctx context.Context) ([]domain.Location, error) {
	return s.locations.List(ctx)
}

// SearchDepartments filters departments by query.
func (s *DirectoryService) SearchDepartments(ctx context.Context, query string) ([]domain.Department, error) {
	items, err := s.departments.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.FilterLookup(items, query), nil
}

// SearchLocations filters locations by query.
func (s *DirectoryService) SearchLocations(ctx context.Context, query string) ([]domain.Location, error) {
	items, err := s.locations.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.FilterLookup(items, query), nil
}
