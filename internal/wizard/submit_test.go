package wizard

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/onboarding-service/internal/domain"
)

type fakeBackend struct {
	mu           sync.Mutex
	basicInfos   []domain.BasicInfo
	details      []domain.Details
	detailIDs    []string
	basicInfoErr error
	detailsErr   error
	block        chan struct{}
	nextID       int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{nextID: 1}
}

func (b *fakeBackend) SubmitBasicInfo(ctx context.Context, info domain.BasicInfo) (string, error) {
	if b.block != nil {
		<-b.block
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.basicInfoErr != nil {
		return "", b.basicInfoErr
	}
	b.basicInfos = append(b.basicInfos, info)
	id := strconv.Itoa(b.nextID)
	b.nextID++
	return id, nil
}

func (b *fakeBackend) SubmitDetails(ctx context.Context, details domain.Details, basicInfoID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.detailsErr != nil {
		return b.detailsErr
	}
	b.details = append(b.details, details)
	b.detailIDs = append(b.detailIDs, basicInfoID)
	return nil
}

func (b *fakeBackend) identityCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.basicInfos)
}

func (b *fakeBackend) detailsCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.details)
}

func readySession(t *testing.T, backend Backend, opts ...func(*SessionOptions)) *Session {
	t.Helper()
	s := newTestSession(domain.RoleAdmin, append([]func(*SessionOptions){func(o *SessionOptions) {
		o.Backend = backend
	}}, opts...)...)
	fillBasicInfo(t, s)
	require.NoError(t, s.GoToNextStep())
	fillDetails(t, s, true)
	return s
}

func progressStatuses(state domain.WizardState) []domain.SubmissionStatus {
	statuses := make([]domain.SubmissionStatus, 0, len(state.SubmitProgress))
	for _, entry := range state.SubmitProgress {
		statuses = append(statuses, entry.Status)
	}
	return statuses
}

func TestSubmitHappyPath(t *testing.T) {
	backend := newFakeBackend()
	var success bool
	s := readySession(t, backend, func(o *SessionOptions) {
		o.Callbacks.OnSuccess = func() { success = true }
	})

	require.NoError(t, s.Submit(context.Background()))

	state := s.State()
	assert.False(t, state.IsSubmitting)
	assert.Empty(t, state.Error)
	assert.Equal(t, []domain.SubmissionStatus{domain.StatusSuccess, domain.StatusSuccess}, progressStatuses(state))
	assert.True(t, success)

	assert.Equal(t, 1, backend.identityCount())
	assert.Equal(t, 1, backend.detailsCount())
	assert.Equal(t, []string{"1"}, backend.detailIDs, "details must reference the minted identity id")
}

func TestSubmitPhasesAreSequential(t *testing.T) {
	backend := newFakeBackend()
	backend.basicInfoErr = errors.New("identity service down")
	s := readySession(t, backend)

	err := s.Submit(context.Background())
	require.Error(t, err)

	state := s.State()
	assert.Equal(t, []domain.SubmissionStatus{domain.StatusError, domain.StatusError}, progressStatuses(state))
	assert.Equal(t, "identity service down", state.Error)
	assert.False(t, state.IsSubmitting)
	assert.Zero(t, backend.detailsCount(), "phase 2 must not start after phase 1 fails")
	assert.Zero(t, backend.identityCount())
}

func TestSubmitPartialFailureLeavesIdentityRecord(t *testing.T) {
	backend := newFakeBackend()
	backend.detailsErr = errors.New("details service down")
	s := readySession(t, backend)

	err := s.Submit(context.Background())
	require.Error(t, err)

	state := s.State()
	assert.Equal(t, []domain.SubmissionStatus{domain.StatusSuccess, domain.StatusError}, progressStatuses(state))
	assert.Equal(t, "details service down", state.Error)
	assert.Equal(t, 1, backend.identityCount(), "no compensating delete after phase 2 failure")
}

func TestSubmitRetryAfterPartialFailureMintsDuplicate(t *testing.T) {
	backend := newFakeBackend()
	backend.detailsErr = errors.New("details service down")
	s := readySession(t, backend)

	require.Error(t, s.Submit(context.Background()))
	backend.mu.Lock()
	backend.detailsErr = nil
	backend.mu.Unlock()
	require.NoError(t, s.Submit(context.Background()))

	assert.Equal(t, 2, backend.identityCount(), "manual retry re-runs phase 1")
	assert.Equal(t, 1, backend.detailsCount())
	assert.Equal(t, []string{"2"}, backend.detailIDs, "details link to the second identity record")
}

func TestSubmitRejectedWhenStepInvalid(t *testing.T) {
	backend := newFakeBackend()
	s := newTestSession(domain.RoleAdmin, func(o *SessionOptions) {
		o.Backend = backend
	})

	assert.ErrorIs(t, s.Submit(context.Background()), ErrStepInvalid)
	assert.Zero(t, backend.identityCount())
}

func TestSubmitSingleFlight(t *testing.T) {
	backend := newFakeBackend()
	backend.block = make(chan struct{})
	s := readySession(t, backend)

	firstDone := make(chan error, 1)
	go func() { firstDone <- s.Submit(context.Background()) }()

	// wait until the first submission is observably in flight
	deadline := time.Now().Add(time.Second)
	for !s.State().IsSubmitting && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	require.True(t, s.State().IsSubmitting)

	assert.ErrorIs(t, s.Submit(context.Background()), ErrSubmissionInFlight)

	close(backend.block)
	require.NoError(t, <-firstDone)
	assert.Equal(t, 1, backend.identityCount())
}

func TestSubmitOpsRoleWithoutPhoto(t *testing.T) {
	backend := newFakeBackend()
	s := newTestSession(domain.RoleOps, func(o *SessionOptions) {
		o.Backend = backend
	})
	fillDetails(t, s, false)

	require.NoError(t, s.Submit(context.Background()))
	assert.Equal(t, 1, backend.identityCount())
	assert.Equal(t, 1, backend.detailsCount())
}

func TestSubmitNavigatesAfterDelay(t *testing.T) {
	backend := newFakeBackend()
	navigated := make(chan string, 1)
	s := readySession(t, backend, func(o *SessionOptions) {
		o.NavigateDelay = 10 * time.Millisecond
		o.Callbacks.OnNavigate = func(path string) { navigated <- path }
	})

	require.NoError(t, s.Submit(context.Background()))

	select {
	case path := <-navigated:
		t.Fatalf("navigated immediately to %s", path)
	default:
	}

	select {
	case path := <-navigated:
		assert.Equal(t, "/employees", path)
	case <-time.After(time.Second):
		t.Fatal("navigation callback never fired")
	}
}
