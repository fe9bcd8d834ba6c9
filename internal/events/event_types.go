package events

import (
	"time"

	"github.com/spec-kit/onboarding-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventEmployeeCreated     EventType = "employee_created"
	EventSubmissionCompleted EventType = "submission_completed"
	EventSubmissionFailed    EventType = "submission_failed"
	EventDraftDiscarded      EventType = "draft_discarded"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string          `json:"id"`
	Type      EventType       `json:"type"`
	SessionID string          `json:"session_id,omitempty"`
	Role      domain.UserRole `json:"role,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   interface{}     `json:"payload"`
}

// EmployeeCreatedPayload payload.
type EmployeeCreatedPayload struct {
	BasicInfoID int    `json:"basic_info_id"`
	FullName    string `json:"full_name"`
	Department  string `json:"department"`
	EmployeeID  string `json:"employee_id"`
}

// SubmissionCompletedPayload payload.
type SubmissionCompletedPayload struct {
	BasicInfoID string `json:"basic_info_id"`
}

// SubmissionFailedPayload payload.
type SubmissionFailedPayload struct {
	Phase   domain.SubmissionPhase `json:"phase"`
	Message string                 `json:"message"`
}

// DraftDiscardedPayload payload.
type DraftDiscardedPayload struct {
	Reason string `json:"reason"`
}
