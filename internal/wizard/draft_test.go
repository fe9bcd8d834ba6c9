package wizard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/onboarding-service/internal/domain"
)

type fakeDraftStore struct {
	mu      sync.Mutex
	drafts  map[domain.UserRole]domain.Draft
	saves   int
	loadErr error
	saveErr error
}

func newFakeDraftStore() *fakeDraftStore {
	return &fakeDraftStore{drafts: make(map[domain.UserRole]domain.Draft)}
}

func (f *fakeDraftStore) Load(ctx context.Context, role domain.UserRole) (*domain.Draft, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	draft, ok := f.drafts[role]
	if !ok {
		return nil, nil
	}
	return &draft, nil
}

func (f *fakeDraftStore) Save(ctx context.Context, role domain.UserRole, draft domain.Draft) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.drafts[role] = draft
	f.saves++
	return nil
}

func (f *fakeDraftStore) Delete(ctx context.Context, role domain.UserRole) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.drafts, role)
	return nil
}

func (f *fakeDraftStore) Exists(ctx context.Context, role domain.UserRole) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.drafts[role]
	return ok, nil
}

func (f *fakeDraftStore) saveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saves
}

const draftMaxAge = 7 * 24 * time.Hour

func draftState() domain.WizardState {
	return domain.WizardState{
		CurrentStep: domain.StepDetails,
		BasicInfo:   domain.BasicInfo{FullName: "John Doe", Email: "john@example.com"},
		Details:     domain.Details{OfficeLocation: "Jakarta"},
	}
}

func TestScheduleCoalescesBurstIntoOneSave(t *testing.T) {
	store := newFakeDraftStore()
	m := NewDraftManager(store, domain.RoleAdmin, testWindow, draftMaxAge, zap.NewNop())
	defer m.Stop()

	state := draftState()
	for i := 0; i < 5; i++ {
		m.Schedule(state)
	}
	time.Sleep(4 * testWindow)

	assert.Equal(t, 1, store.saveCount())
	draft, err := store.Load(context.Background(), domain.RoleAdmin)
	require.NoError(t, err)
	require.NotNil(t, draft)
	assert.Equal(t, "John Doe", draft.BasicInfo.FullName)
	assert.Equal(t, domain.StepDetails, draft.CurrentStep)
	assert.NotZero(t, draft.Timestamp)
}

func TestScheduleLastWriteWins(t *testing.T) {
	store := newFakeDraftStore()
	m := NewDraftManager(store, domain.RoleAdmin, testWindow, draftMaxAge, zap.NewNop())
	defer m.Stop()

	first := draftState()
	second := draftState()
	second.BasicInfo.FullName = "Jane Doe"
	m.Schedule(first)
	m.Schedule(second)
	time.Sleep(4 * testWindow)

	draft, err := store.Load(context.Background(), domain.RoleAdmin)
	require.NoError(t, err)
	require.NotNil(t, draft)
	assert.Equal(t, "Jane Doe", draft.BasicInfo.FullName)
}

func TestRestoreFreshDraftVerbatim(t *testing.T) {
	store := newFakeDraftStore()
	m := NewDraftManager(store, domain.RoleAdmin, testWindow, draftMaxAge, zap.NewNop())

	saved := domain.Draft{
		BasicInfo:   domain.BasicInfo{FullName: "John Doe", Department: "Engineering"},
		Details:     domain.Details{OfficeLocation: "Jakarta"},
		CurrentStep: domain.StepDetails,
		Timestamp:   time.Now().Add(-time.Hour).UnixMilli(),
	}
	require.NoError(t, store.Save(context.Background(), domain.RoleAdmin, saved))

	restored := m.Restore(context.Background())
	require.NotNil(t, restored)
	assert.Equal(t, saved, *restored)
}

func TestRestoreStaleDraftDiscarded(t *testing.T) {
	store := newFakeDraftStore()
	m := NewDraftManager(store, domain.RoleAdmin, testWindow, draftMaxAge, zap.NewNop())

	stale := domain.Draft{
		BasicInfo: domain.BasicInfo{FullName: "Old Draft"},
		Timestamp: time.Now().Add(-8 * 24 * time.Hour).UnixMilli(),
	}
	require.NoError(t, store.Save(context.Background(), domain.RoleAdmin, stale))

	assert.Nil(t, m.Restore(context.Background()))
	assert.False(t, m.HasDraft(context.Background()), "stale draft must be deleted, not kept")
}

func TestRestoreBoundaryJustUnderMaxAge(t *testing.T) {
	store := newFakeDraftStore()
	m := NewDraftManager(store, domain.RoleAdmin, testWindow, draftMaxAge, zap.NewNop())

	almostStale := domain.Draft{
		BasicInfo: domain.BasicInfo{FullName: "Day Six"},
		Timestamp: time.Now().Add(-draftMaxAge + time.Minute).UnixMilli(),
	}
	require.NoError(t, store.Save(context.Background(), domain.RoleAdmin, almostStale))

	restored := m.Restore(context.Background())
	require.NotNil(t, restored)
	assert.Equal(t, "Day Six", restored.BasicInfo.FullName)
}

func TestRestoreSwallowsLoadError(t *testing.T) {
	store := newFakeDraftStore()
	store.loadErr = errors.New("redis down")
	m := NewDraftManager(store, domain.RoleAdmin, testWindow, draftMaxAge, zap.NewNop())

	assert.Nil(t, m.Restore(context.Background()))
}

func TestScheduleSwallowsSaveError(t *testing.T) {
	store := newFakeDraftStore()
	store.saveErr = errors.New("redis down")
	m := NewDraftManager(store, domain.RoleAdmin, testWindow, draftMaxAge, zap.NewNop())
	defer m.Stop()

	m.Schedule(draftState())
	time.Sleep(4 * testWindow)
	assert.Equal(t, 0, store.saveCount())
}

func TestClearDraftCancelsPendingWrite(t *testing.T) {
	store := newFakeDraftStore()
	m := NewDraftManager(store, domain.RoleAdmin, testWindow, draftMaxAge, zap.NewNop())

	m.Schedule(draftState())
	m.ClearDraft(context.Background())
	time.Sleep(4 * testWindow)

	assert.Equal(t, 0, store.saveCount())
	assert.False(t, m.HasDraft(context.Background()))
}

func TestDraftsAreRoleScoped(t *testing.T) {
	store := newFakeDraftStore()
	admin := NewDraftManager(store, domain.RoleAdmin, testWindow, draftMaxAge, zap.NewNop())
	ops := NewDraftManager(store, domain.RoleOps, testWindow, draftMaxAge, zap.NewNop())
	defer admin.Stop()
	defer ops.Stop()

	admin.Schedule(draftState())
	time.Sleep(4 * testWindow)

	assert.True(t, admin.HasDraft(context.Background()))
	assert.False(t, ops.HasDraft(context.Background()))
	assert.Nil(t, ops.Restore(context.Background()))
}
