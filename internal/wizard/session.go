package wizard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/onboarding-service/internal/domain"
	"github.com/spec-kit/onboarding-service/internal/events"
	"github.com/spec-kit/onboarding-service/internal/observability"
)

var (
	// ErrSubmissionInFlight is returned when Submit is called while a
	// submission is already running for the session.
	ErrSubmissionInFlight = errors.New("submission already in flight")
	// ErrStepInvalid is returned when navigation or submission is attempted
	// with the active step failing validation.
	ErrStepInvalid = errors.New("current step has validation errors")
	// ErrStepUnavailable is returned for transitions the role does not allow.
	ErrStepUnavailable = errors.New("step not available for role")
)

// Callbacks are invoked after a successful submission. OnNavigate fires after
// a fixed delay so progress stays visible.
type Callbacks struct {
	OnSuccess  func()
	OnNavigate func(path string)
}

// SessionOptions bundles collaborators for a session.
type SessionOptions struct {
	Role          domain.UserRole
	Backend       Backend
	Departments   []domain.Department
	NavigateDelay time.Duration
	Callbacks     Callbacks
	Dispatcher    events.Dispatcher
	Metrics       *observability.Metrics
	OnChange      func(domain.WizardState)
}

// Session owns the canonical form state for one wizard run. All mutation goes
// through its action methods; concurrent callers are serialized on the
// session mutex.
type Session struct {
	ID   string
	Role domain.UserRole

	mu          sync.Mutex
	state       domain.WizardState
	departments []domain.Department

	backend       Backend
	navigateDelay time.Duration
	callbacks     Callbacks
	dispatcher    events.Dispatcher
	metrics       *observability.Metrics
	onChange      func(domain.WizardState)
}

// NewSession creates fresh state at the role's initial step. The ops role
// skips step 1 entirely.
func NewSession(opts SessionOptions) *Session {
	cfg := domain.RoleConfigs[opts.Role]
	return &Session{
		ID:   uuid.NewString(),
		Role: opts.Role,
		state: domain.WizardState{
			CurrentStep: cfg.StartStep,
		},
		departments:   opts.Departments,
		backend:       opts.Backend,
		navigateDelay: opts.NavigateDelay,
		callbacks:     opts.Callbacks,
		dispatcher:    opts.Dispatcher,
		metrics:       opts.Metrics,
		onChange:      opts.OnChange,
	}
}

// State returns a snapshot of the current wizard state.
func (s *Session) State() domain.WizardState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() domain.WizardState {
	snapshot := s.state
	snapshot.SubmitProgress = append([]domain.SubmissionProgress(nil), s.state.SubmitProgress...)
	return snapshot
}

// UpdateBasicInfo merges a single field into the basic-info record. Changing
// the department recomputes the derived employee ID for the admin role.
func (s *Session) UpdateBasicInfo(field, value string) error {
	s.mu.Lock()
	switch field {
	case "fullName":
		s.state.BasicInfo.FullName = value
	case "email":
		s.state.BasicInfo.Email = value
	case "department":
		s.state.BasicInfo.Department = value
		s.deriveEmployeeIDLocked()
	case "role":
		s.state.BasicInfo.Role = value
	default:
		s.mu.Unlock()
		return fmt.Errorf("unknown basic-info field %q", field)
	}
	s.mu.Unlock()
	s.notifyChange()
	return nil
}

// deriveEmployeeIDLocked recomputes the employee ID from the selected
// department. Admin role only; unknown department names leave the ID as-is.
// The sequence is derived from a fixed count of zero.
func (s *Session) deriveEmployeeIDLocked() {
	if s.Role != domain.RoleAdmin || s.state.BasicInfo.Department == "" {
		return
	}
	for _, dept := range s.departments {
		if dept.Name == s.state.BasicInfo.Department {
			s.state.BasicInfo.EmployeeID = GenerateEmployeeID(dept.Name, 0)
			return
		}
	}
}

// UpdateDetails merges a single field into the details record.
func (s *Session) UpdateDetails(field, value string) error {
	s.mu.Lock()
	switch field {
	case "photo":
		if msg := ValidatePhotoPayload(value); msg != "" {
			s.mu.Unlock()
			return errors.New(msg)
		}
		s.state.Details.Photo = value
	case "photoFilename":
		s.state.Details.PhotoFilename = value
	case "employmentType":
		s.state.Details.EmploymentType = domain.EmploymentType(value)
	case "officeLocation":
		s.state.Details.OfficeLocation = value
	case "notes":
		s.state.Details.Notes = value
	default:
		s.mu.Unlock()
		return fmt.Errorf("unknown details field %q", field)
	}
	s.mu.Unlock()
	s.notifyChange()
	return nil
}

// ValidationErrors evaluates the active step.
func (s *Session) ValidationErrors() domain.ValidationErrors {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.validationErrorsLocked()
}

func (s *Session) validationErrorsLocked() domain.ValidationErrors {
	if s.state.CurrentStep == domain.StepBasicInfo {
		return ValidateBasicInfo(s.state.BasicInfo)
	}
	return ValidateDetails(s.state.Details, s.Role)
}

// IsStepValid reports whether the active step passes its validation gate.
func (s *Session) IsStepValid() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !HasErrors(s.validationErrorsLocked())
}

// GoToNextStep advances 1→2 when the validation gate is satisfied. Only the
// admin role ever stands on step 1.
func (s *Session) GoToNextStep() error {
	s.mu.Lock()
	if s.state.CurrentStep != domain.StepBasicInfo {
		s.mu.Unlock()
		return ErrStepUnavailable
	}
	if HasErrors(s.validationErrorsLocked()) {
		s.mu.Unlock()
		return ErrStepInvalid
	}
	s.state.CurrentStep = domain.StepDetails
	s.mu.Unlock()
	s.notifyChange()
	return nil
}

// GoToPreviousStep returns 2→1, admin role only.
func (s *Session) GoToPreviousStep() error {
	s.mu.Lock()
	if s.state.CurrentStep != domain.StepDetails || s.Role != domain.RoleAdmin {
		s.mu.Unlock()
		return ErrStepUnavailable
	}
	s.state.CurrentStep = domain.StepBasicInfo
	s.mu.Unlock()
	s.notifyChange()
	return nil
}

// Reset returns the session to the role's initial step with empty records,
// no progress and no error.
func (s *Session) Reset() {
	s.mu.Lock()
	s.state = domain.WizardState{
		CurrentStep: domain.RoleConfigs[s.Role].StartStep,
	}
	s.mu.Unlock()
	s.notifyChange()
}

// Restore merges a persisted draft into the session. Used only by draft
// restoration at session start; deliberately does not trigger a draft write.
func (s *Session) Restore(draft domain.Draft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.BasicInfo = draft.BasicInfo
	s.state.Details = draft.Details
	if draft.CurrentStep == domain.StepBasicInfo || draft.CurrentStep == domain.StepDetails {
		s.state.CurrentStep = draft.CurrentStep
	}
}

func (s *Session) notifyChange() {
	if s.onChange == nil {
		return
	}
	s.onChange(s.State())
}

// Submit runs the two-phase sequential submission protocol. Phase 2 never
// starts before phase 1's response is observed. A failed phase 1 leaves
// nothing committed; a failed phase 2 leaves the minted identity record in
// place with no compensating delete, and a manual retry mints another one.
func (s *Session) Submit(ctx context.Context) error {
	s.mu.Lock()
	if s.state.IsSubmitting {
		s.mu.Unlock()
		return ErrSubmissionInFlight
	}
	if HasErrors(s.validationErrorsLocked()) {
		s.mu.Unlock()
		return ErrStepInvalid
	}
	s.state.IsSubmitting = true
	s.state.Error = ""
	s.state.SubmitProgress = []domain.SubmissionProgress{
		{Phase: domain.PhaseBasicInfo, Status: domain.StatusPending},
		{Phase: domain.PhaseDetails, Status: domain.StatusPending},
	}
	basicInfo := s.state.BasicInfo
	details := s.state.Details
	s.mu.Unlock()

	s.setProgress(domain.StatusPending, domain.StatusIdle)

	basicInfoID, err := s.backend.SubmitBasicInfo(ctx, basicInfo)
	if err != nil {
		s.recordPhase(domain.PhaseBasicInfo, "error")
		s.failSubmission(ctx, domain.PhaseBasicInfo, err)
		return err
	}
	s.recordPhase(domain.PhaseBasicInfo, "success")

	s.setProgress(domain.StatusSuccess, domain.StatusPending)

	if err := s.backend.SubmitDetails(ctx, details, basicInfoID); err != nil {
		s.recordPhase(domain.PhaseDetails, "error")
		s.failSubmission(ctx, domain.PhaseDetails, err)
		return err
	}
	s.recordPhase(domain.PhaseDetails, "success")

	s.setProgress(domain.StatusSuccess, domain.StatusSuccess)

	s.mu.Lock()
	s.state.IsSubmitting = false
	s.mu.Unlock()

	s.publish(ctx, events.EventSubmissionCompleted, events.SubmissionCompletedPayload{
		BasicInfoID: basicInfoID,
	})

	if s.callbacks.OnSuccess != nil {
		s.callbacks.OnSuccess()
	}
	if s.callbacks.OnNavigate != nil {
		time.AfterFunc(s.navigateDelay, func() {
			s.callbacks.OnNavigate("/employees")
		})
	}
	return nil
}

// setProgress replaces the progress list verbatim.
func (s *Session) setProgress(basicInfo, details domain.SubmissionStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SubmitProgress = []domain.SubmissionProgress{
		{Phase: domain.PhaseBasicInfo, Status: basicInfo},
		{Phase: domain.PhaseDetails, Status: details},
	}
}

// failSubmission surfaces the error and flips every still-pending phase to
// error. Phases already successful stay visible as such.
func (s *Session) failSubmission(ctx context.Context, phase domain.SubmissionPhase, err error) {
	s.mu.Lock()
	s.state.IsSubmitting = false
	s.state.Error = err.Error()
	for i, entry := range s.state.SubmitProgress {
		if entry.Status == domain.StatusPending {
			s.state.SubmitProgress[i].Status = domain.StatusError
		}
	}
	s.mu.Unlock()

	s.publish(ctx, events.EventSubmissionFailed, events.SubmissionFailedPayload{
		Phase:   phase,
		Message: err.Error(),
	})
}

func (s *Session) recordPhase(phase domain.SubmissionPhase, outcome string) {
	if s.metrics != nil {
		s.metrics.RecordSubmissionPhase(string(phase), outcome)
	}
}

func (s *Session) publish(ctx context.Context, eventType events.EventType, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SessionID: s.ID,
		Role:      s.Role,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
