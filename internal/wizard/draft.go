package wizard

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/onboarding-service/internal/domain"
)

// DraftManager mirrors wizard form state into a durable role-scoped slot.
// Writes are debounced per change burst and best-effort; storage errors are
// logged and never surface to the caller.
type DraftManager struct {
	store  DraftStore
	role   domain.UserRole
	window time.Duration
	maxAge time.Duration
	logger *zap.Logger
	now    func() time.Time

	mu    sync.Mutex
	timer *time.Timer
}

// NewDraftManager builds a manager for one role-scoped slot.
func NewDraftManager(store DraftStore, role domain.UserRole, window, maxAge time.Duration, logger *zap.Logger) *DraftManager {
	return &DraftManager{
		store:  store,
		role:   role,
		window: window,
		maxAge: maxAge,
		logger: logger,
		now:    time.Now,
	}
}

// Restore performs the single read-time restore attempt. A draft older than
// the retention period is deleted rather than restored. Returns nil when
// nothing usable is stored.
func (m *DraftManager) Restore(ctx context.Context) *domain.Draft {
	draft, err := m.store.Load(ctx, m.role)
	if err != nil {
		m.logger.Error("failed to restore draft", zap.String("role", string(m.role)), zap.Error(err))
		return nil
	}
	if draft == nil {
		return nil
	}
	if draft.Age(m.now()) > m.maxAge {
		if err := m.store.Delete(ctx, m.role); err != nil {
			m.logger.Error("failed to discard stale draft", zap.String("role", string(m.role)), zap.Error(err))
		}
		return nil
	}
	return draft
}

// Schedule queues a debounced write of the given state, canceling any
// previously scheduled write in the burst.
func (m *DraftManager) Schedule(state domain.WizardState) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.timer != nil {
		m.timer.Stop()
	}
	snapshot := domain.Draft{
		BasicInfo:   state.BasicInfo,
		Details:     state.Details,
		CurrentStep: state.CurrentStep,
	}
	m.timer = time.AfterFunc(m.window, func() {
		snapshot.Timestamp = m.now().UnixMilli()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := m.store.Save(ctx, m.role, snapshot); err != nil {
			m.logger.Error("failed to save draft", zap.String("role", string(m.role)), zap.Error(err))
		}
	})
}

// ClearDraft deletes the slot.
func (m *DraftManager) ClearDraft(ctx context.Context) {
	m.mu.Lock()
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.mu.Unlock()

	if err := m.store.Delete(ctx, m.role); err != nil {
		m.logger.Error("failed to clear draft", zap.String("role", string(m.role)), zap.Error(err))
	}
}

// HasDraft reports whether the slot currently holds a draft.
func (m *DraftManager) HasDraft(ctx context.Context) bool {
	exists, err := m.store.Exists(ctx, m.role)
	if err != nil {
		return false
	}
	return exists
}

// Stop cancels any pending write. In-flight writes are not waited on.
func (m *DraftManager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}
