package wizard

import (
	"context"

	"github.com/spec-kit/onboarding-service/internal/domain"
)

// Backend is the pair of submission targets the orchestrator talks to. The
// identity service mints an identifier for the basic-info payload; the
// details payload is then filed against that identifier.
type Backend interface {
	SubmitBasicInfo(ctx context.Context, info domain.BasicInfo) (string, error)
	SubmitDetails(ctx context.Context, details domain.Details, basicInfoID string) error
}

// Directory is the lookup service feeding autocomplete fields and the
// employee-ID derivation.
type Directory interface {
	Departments(ctx context.Context) ([]domain.Department, error)
	SearchDepartments(ctx context.Context, query string) ([]domain.Department, error)
	SearchLocations(ctx context.Context, query string) ([]domain.Location, error)
}

// DraftStore is the durable role-scoped draft slot. Load returns (nil, nil)
// when no draft exists for the role.
type DraftStore interface {
	Load(ctx context.Context, role domain.UserRole) (*domain.Draft, error)
	Save(ctx context.Context, role domain.UserRole, draft domain.Draft) error
	Delete(ctx context.Context, role domain.UserRole) error
	Exists(ctx context.Context, role domain.UserRole) (bool, error)
}
