package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/onboarding-service/internal/domain"
	"github.com/spec-kit/onboarding-service/internal/wizard"
)

// In-memory implementations with explicit lifecycle: constructed with seed
// data and resettable between tests. They also back the service when no
// Postgres DSN is configured.

// MemoryDirectory implements DepartmentRepository and LocationRepository.
type MemoryDirectory struct {
	mu              sync.RWMutex
	seedDepartments []domain.Department
	seedLocations   []domain.Location
	departments     []domain.Department
	locations       []domain.Location
}

// NewMemoryDirectory seeds a directory.
func NewMemoryDirectory(departments []domain.Department, locations []domain.Location) *MemoryDirectory {
	d := &MemoryDirectory{
		seedDepartments: append([]domain.Department(nil), departments...),
		seedLocations:   append([]domain.Location(nil), locations...),
	}
	d.Reset()
	return d
}

// Reset restores the seed data.
func (d *MemoryDirectory) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.departments = append([]domain.Department(nil), d.seedDepartments...)
	d.locations = append([]domain.Location(nil), d.seedLocations...)
}

// List returns departments in insertion order.
func (d *MemoryDirectory) List(ctx context.Context) ([]domain.Department, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]domain.Department(nil), d.departments...), nil
}

// Locations exposes the location half as a LocationRepository.
func (d *MemoryDirectory) Locations() LocationRepository {
	return memoryLocations{dir: d}
}

type memoryLocations struct {
	dir *MemoryDirectory
}

func (m memoryLocations) List(ctx context.Context) ([]domain.Location, error) {
	m.dir.mu.RLock()
	defer m.dir.mu.RUnlock()
	return append([]domain.Location(nil), m.dir.locations...), nil
}

// MemoryBasicInfo is a seedable identity store.
type MemoryBasicInfo struct {
	mu      sync.RWMutex
	seed    []domain.BasicInfoRecord
	records []domain.BasicInfoRecord
	nextID  int
}

// NewMemoryBasicInfo seeds an identity store.
func NewMemoryBasicInfo(seed []domain.BasicInfoRecord) *MemoryBasicInfo {
	s := &MemoryBasicInfo{seed: append([]domain.BasicInfoRecord(nil), seed...)}
	s.Reset()
	return s
}

// Reset restores the seed data.
func (s *MemoryBasicInfo) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append([]domain.BasicInfoRecord(nil), s.seed...)
	s.nextID = 1
	for _, record := range s.records {
		if record.ID >= s.nextID {
			s.nextID = record.ID + 1
		}
	}
}

func (s *MemoryBasicInfo) Create(ctx context.Context, record *domain.BasicInfoRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record.ID = s.nextID
	s.nextID++
	s.records = append(s.records, *record)
	return nil
}

func (s *MemoryBasicInfo) List(ctx context.Context) ([]domain.BasicInfoRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.BasicInfoRecord(nil), s.records...), nil
}

// MemoryDetails is a seedable details store.
type MemoryDetails struct {
	mu      sync.RWMutex
	seed    []domain.DetailsRecord
	records []domain.DetailsRecord
	nextID  int
}

// NewMemoryDetails seeds a details store.
func NewMemoryDetails(seed []domain.DetailsRecord) *MemoryDetails {
	s := &MemoryDetails{seed: append([]domain.DetailsRecord(nil), seed...)}
	s.Reset()
	return s
}

// Reset restores the seed data.
func (s *MemoryDetails) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append([]domain.DetailsRecord(nil), s.seed...)
	s.nextID = 1
	for _, record := range s.records {
		if record.ID >= s.nextID {
			s.nextID = record.ID + 1
		}
	}
}

func (s *MemoryDetails) Create(ctx context.Context, record *domain.DetailsRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record.ID = s.nextID
	s.nextID++
	s.records = append(s.records, *record)
	return nil
}

func (s *MemoryDetails) List(ctx context.Context) ([]domain.DetailsRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.DetailsRecord(nil), s.records...), nil
}

// MemoryOperators is a seedable operator store.
type MemoryOperators struct {
	mu        sync.RWMutex
	seed      []domain.Operator
	operators map[string]domain.Operator
}

// NewMemoryOperators seeds an operator store.
func NewMemoryOperators(seed []domain.Operator) *MemoryOperators {
	s := &MemoryOperators{seed: append([]domain.Operator(nil), seed...)}
	s.Reset()
	return s
}

// Reset restores the seed data.
func (s *MemoryOperators) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.operators = make(map[string]domain.Operator, len(s.seed))
	for _, operator := range s.seed {
		if operator.ID == "" {
			operator.ID = uuid.NewString()
		}
		s.operators[operator.ID] = operator
	}
}

func (s *MemoryOperators) Create(ctx context.Context, operator *domain.Operator) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if operator.ID == "" {
		operator.ID = uuid.NewString()
	}
	now := time.Now()
	operator.CreatedAt = now
	operator.UpdatedAt = now
	s.operators[operator.ID] = *operator
	return nil
}

func (s *MemoryOperators) GetByID(ctx context.Context, id string) (*domain.Operator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	operator, ok := s.operators[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &operator, nil
}

func (s *MemoryOperators) GetByEmail(ctx context.Context, email string) (*domain.Operator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, operator := range s.operators {
		if operator.Email == email {
			found := operator
			return &found, nil
		}
	}
	return nil, pgx.ErrNoRows
}

// MemoryDraftStore is an in-memory wizard.DraftStore.
type MemoryDraftStore struct {
	mu     sync.RWMutex
	drafts map[domain.UserRole]domain.Draft
}

// NewMemoryDraftStore builds an empty draft store.
func NewMemoryDraftStore() *MemoryDraftStore {
	s := &MemoryDraftStore{}
	s.Reset()
	return s
}

// Reset drops all drafts.
func (s *MemoryDraftStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts = make(map[domain.UserRole]domain.Draft)
}

func (s *MemoryDraftStore) Load(ctx context.Context, role domain.UserRole) (*domain.Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	draft, ok := s.drafts[role]
	if !ok {
		return nil, nil
	}
	return &draft, nil
}

func (s *MemoryDraftStore) Save(ctx context.Context, role domain.UserRole, draft domain.Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[role] = draft
	return nil
}

func (s *MemoryDraftStore) Delete(ctx context.Context, role domain.UserRole) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, role)
	return nil
}

func (s *MemoryDraftStore) Exists(ctx context.Context, role domain.UserRole) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.drafts[role]
	return ok, nil
}

var _ wizard.DraftStore = (*MemoryDraftStore)(nil)
