package domain

// UserRole distinguishes wizard audiences with different step flows.
type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleOps   UserRole = "ops"
)

// Valid reports whether the role is a known wizard role.
func (r UserRole) Valid() bool {
	return r == RoleAdmin || r == RoleOps
}

// WizardStep identifies one screen of the wizard.
type WizardStep int

const (
	StepBasicInfo WizardStep = 1
	StepDetails   WizardStep = 2
)

// RoleConfig captures per-role wizard behavior.
type RoleConfig struct {
	StartStep     WizardStep
	RequiresPhoto bool
}

// RoleConfigs maps each role to its flow configuration. The ops role never
// sees step 1.
var RoleConfigs = map[UserRole]RoleConfig{
	RoleAdmin: {StartStep: StepBasicInfo, RequiresPhoto: true},
	RoleOps:   {StartStep: StepDetails, RequiresPhoto: false},
}

// SubmissionPhase names one of the two sequential network submissions.
type SubmissionPhase string

const (
	PhaseBasicInfo SubmissionPhase = "basicInfo"
	PhaseDetails   SubmissionPhase = "details"
)

// SubmissionStatus tracks a phase through a submission attempt.
type SubmissionStatus string

const (
	StatusIdle    SubmissionStatus = "idle"
	StatusPending SubmissionStatus = "pending"
	StatusSuccess SubmissionStatus = "success"
	StatusError   SubmissionStatus = "error"
)

// SubmissionProgress pairs a phase with its current status.
type SubmissionProgress struct {
	Phase  SubmissionPhase  `json:"step"`
	Status SubmissionStatus `json:"status"`
}

// WizardState is the canonical form state for one wizard session.
type WizardState struct {
	CurrentStep    WizardStep           `json:"currentStep"`
	BasicInfo      BasicInfo            `json:"basicInfo"`
	Details        Details              `json:"details"`
	IsSubmitting   bool                 `json:"isSubmitting"`
	SubmitProgress []SubmissionProgress `json:"submitProgress"`
	Error          string               `json:"error,omitempty"`
}

// ValidationErrors maps field names to human-readable messages. A field
// absent from the map is valid.
type ValidationErrors map[string]string
