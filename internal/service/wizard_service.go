package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/onboarding-service/internal/config"
	"github.com/spec-kit/onboarding-service/internal/domain"
	"github.com/spec-kit/onboarding-service/internal/events"
	"github.com/spec-kit/onboarding-service/internal/observability"
	"github.com/spec-kit/onboarding-service/internal/wizard"
	apperrors "github.com/spec-kit/onboarding-service/pkg/errorutil"
)

// ErrUnknownRole is returned when a session is requested for a role outside
// the wizard's configuration.
var ErrUnknownRole = errors.New("unknown wizard role")

// WizardService wires wizard sessions to their collaborators: the directory
// for lookups and ID derivation, the backend for the two submission phases
// and the draft store for autosave.
type WizardService struct {
	registry   *wizard.Registry
	directory  wizard.Directory
	backend    wizard.Backend
	draftStore wizard.DraftStore
	cfg        config.WizardConfig
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// WizardDependencies bundles collaborators for the wizard service.
type WizardDependencies struct {
	Directory  wizard.Directory
	Backend    wizard.Backend
	DraftStore wizard.DraftStore
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
}

// NewWizardService constructs the service.
func NewWizardService(cfg config.WizardConfig, deps WizardDependencies) *WizardService {
	return &WizardService{
		registry:   wizard.NewRegistry(time.Duration(cfg.SessionTTLMinutes) * time.Minute),
		directory:  deps.Directory,
		backend:    deps.Backend,
		draftStore: deps.DraftStore,
		cfg:        cfg,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     deps.Logger,
	}
}

// CreateSession starts a wizard run for the role: loads the department
// snapshot, restores a fresh-enough draft and registers the run.
func (s *WizardService) CreateSession(ctx context.Context, role domain.UserRole) (*wizard.Run, error) {
	if !role.Valid() {
		return nil, ErrUnknownRole
	}

	departments, err := s.directory.Departments(ctx)
	if err != nil {
		return nil, err
	}

	drafts := wizard.NewDraftManager(s.draftStore, role, s.cfg.DraftDebounce(), s.cfg.DraftMaxAge(), s.logger)

	session := wizard.NewSession(wizard.SessionOptions{
		Role:          role,
		Backend:       s.backend,
		Departments:   departments,
		NavigateDelay: s.cfg.NavigateDelay(),
		Dispatcher:    s.dispatcher,
		Metrics:       s.metrics,
		OnChange: func(state domain.WizardState) {
			drafts.Schedule(state)
		},
		Callbacks: wizard.Callbacks{
			OnSuccess: func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				drafts.ClearDraft(ctx)
			},
			OnNavigate: func(path string) {
				s.logger.Info("wizard navigation", zap.String("path", path))
			},
		},
	})

	if draft := drafts.Restore(ctx); draft != nil {
		session.Restore(*draft)
	}

	run := &wizard.Run{
		Session:        session,
		DeptSearch:     wizard.NewSuggester(s.directory.SearchDepartments, s.cfg.SearchDebounce()),
		LocationSearch: wizard.NewSuggester(s.directory.SearchLocations, s.cfg.SearchDebounce()),
		Drafts:         drafts,
	}
	s.registry.Add(run)
	return run, nil
}

// ClearDraft discards the run's draft slot and announces it.
func (s *WizardService) ClearDraft(ctx context.Context, run *wizard.Run) {
	run.Drafts.ClearDraft(ctx)
	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventDraftDiscarded,
			SessionID: run.Session.ID,
			Role:      run.Session.Role,
			Timestamp: time.Now(),
			Payload:   events.DraftDiscardedPayload{Reason: "cleared by operator"},
		})
	}
}

// GetRun resolves a live run by session ID.
func (s *WizardService) GetRun(id string) (*wizard.Run, error) {
	run, ok := s.registry.Get(id)
	if !ok {
		return nil, apperrors.NewNotFound("wizard session", map[string]any{"session_id": id})
	}
	return run, nil
}

// RemoveRun tears down a run.
func (s *WizardService) RemoveRun(id string) {
	s.registry.Remove(id)
}
