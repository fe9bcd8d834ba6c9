package wizard

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/onboarding-service/internal/domain"
)

func newTestSession(role domain.UserRole, opts ...func(*SessionOptions)) *Session {
	options := SessionOptions{
		Role:        role,
		Departments: domain.SeedDepartments(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return NewSession(options)
}

func fillBasicInfo(t *testing.T, s *Session) {
	t.Helper()
	require.NoError(t, s.UpdateBasicInfo("fullName", "John Doe"))
	require.NoError(t, s.UpdateBasicInfo("email", "john.doe@example.com"))
	require.NoError(t, s.UpdateBasicInfo("department", "Engineering"))
	require.NoError(t, s.UpdateBasicInfo("role", "Engineer"))
}

func fillDetails(t *testing.T, s *Session, withPhoto bool) {
	t.Helper()
	if withPhoto {
		require.NoError(t, s.UpdateDetails("photo", "data:image/png;base64,abc"))
		require.NoError(t, s.UpdateDetails("photoFilename", "john.png"))
	}
	require.NoError(t, s.UpdateDetails("employmentType", string(domain.EmploymentFullTime)))
	require.NoError(t, s.UpdateDetails("officeLocation", "Jakarta"))
}

func TestNewSessionStartStepPerRole(t *testing.T) {
	admin := newTestSession(domain.RoleAdmin)
	assert.Equal(t, domain.StepBasicInfo, admin.State().CurrentStep)

	ops := newTestSession(domain.RoleOps)
	assert.Equal(t, domain.StepDetails, ops.State().CurrentStep)
}

func TestUpdateBasicInfoDerivesEmployeeID(t *testing.T) {
	s := newTestSession(domain.RoleAdmin)
	require.NoError(t, s.UpdateBasicInfo("department", "Engineering"))
	assert.Equal(t, "ENG-001", s.State().BasicInfo.EmployeeID)

	require.NoError(t, s.UpdateBasicInfo("department", "Lending"))
	assert.Equal(t, "LEN-001", s.State().BasicInfo.EmployeeID)
}

func TestUpdateBasicInfoUnknownDepartmentKeepsID(t *testing.T) {
	s := newTestSession(domain.RoleAdmin)
	require.NoError(t, s.UpdateBasicInfo("department", "Engineering"))
	require.NoError(t, s.UpdateBasicInfo("department", "Astronomy"))
	assert.Equal(t, "ENG-001", s.State().BasicInfo.EmployeeID)
}

func TestUpdateBasicInfoOpsDoesNotDeriveID(t *testing.T) {
	s := newTestSession(domain.RoleOps)
	require.NoError(t, s.UpdateBasicInfo("department", "Engineering"))
	assert.Empty(t, s.State().BasicInfo.EmployeeID)
}

func TestUpdateDetailsRejectsInvalidPhotoPayload(t *testing.T) {
	s := newTestSession(domain.RoleAdmin)

	err := s.UpdateDetails("photo", "data:application/pdf;base64,JVBERi0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Please upload a valid image")
	assert.Empty(t, s.State().Details.Photo)

	oversized := "data:image/png;base64," + strings.Repeat("A", 8*1024*1024)
	err = s.UpdateDetails("photo", oversized)
	require.Error(t, err)
	assert.Equal(t, "File size must be less than 5MB", err.Error())
	assert.Empty(t, s.State().Details.Photo)

	require.NoError(t, s.UpdateDetails("photo", "data:image/png;base64,iVBORw0KGgo"))
	assert.NotEmpty(t, s.State().Details.Photo)
}

func TestUpdateUnknownFieldRejected(t *testing.T) {
	s := newTestSession(domain.RoleAdmin)
	assert.Error(t, s.UpdateBasicInfo("salary", "1"))
	assert.Error(t, s.UpdateDetails("salary", "1"))
}

func TestGoToNextStepGatedByValidation(t *testing.T) {
	s := newTestSession(domain.RoleAdmin)

	err := s.GoToNextStep()
	assert.ErrorIs(t, err, ErrStepInvalid)
	assert.Equal(t, domain.StepBasicInfo, s.State().CurrentStep)

	fillBasicInfo(t, s)
	require.NoError(t, s.GoToNextStep())
	assert.Equal(t, domain.StepDetails, s.State().CurrentStep)
}

func TestGoToNextStepFromDetailsUnavailable(t *testing.T) {
	s := newTestSession(domain.RoleOps)
	assert.ErrorIs(t, s.GoToNextStep(), ErrStepUnavailable)
}

func TestGoToPreviousStepAdminOnly(t *testing.T) {
	admin := newTestSession(domain.RoleAdmin)
	fillBasicInfo(t, admin)
	require.NoError(t, admin.GoToNextStep())
	require.NoError(t, admin.GoToPreviousStep())
	assert.Equal(t, domain.StepBasicInfo, admin.State().CurrentStep)

	ops := newTestSession(domain.RoleOps)
	assert.ErrorIs(t, ops.GoToPreviousStep(), ErrStepUnavailable)
	assert.Equal(t, domain.StepDetails, ops.State().CurrentStep)
}

func TestValidationErrorsFollowActiveStep(t *testing.T) {
	s := newTestSession(domain.RoleAdmin)
	errs := s.ValidationErrors()
	assert.Equal(t, "Full name is required", errs["fullName"])
	assert.False(t, s.IsStepValid())

	fillBasicInfo(t, s)
	assert.True(t, s.IsStepValid())
	require.NoError(t, s.GoToNextStep())

	errs = s.ValidationErrors()
	assert.Equal(t, "Employment type is required", errs["employmentType"])
	assert.Equal(t, "Photo is required for admin users", errs["photo"])
}

func TestResetReturnsToRoleStartStep(t *testing.T) {
	s := newTestSession(domain.RoleAdmin)
	fillBasicInfo(t, s)
	require.NoError(t, s.GoToNextStep())

	s.Reset()
	state := s.State()
	assert.Equal(t, domain.StepBasicInfo, state.CurrentStep)
	assert.Equal(t, domain.BasicInfo{}, state.BasicInfo)
	assert.Equal(t, domain.Details{}, state.Details)
	assert.Empty(t, state.SubmitProgress)
	assert.Empty(t, state.Error)
}

func TestRestoreMergesDraft(t *testing.T) {
	s := newTestSession(domain.RoleAdmin)
	s.Restore(domain.Draft{
		BasicInfo:   domain.BasicInfo{FullName: "John Doe", Department: "Engineering", EmployeeID: "ENG-001"},
		Details:     domain.Details{OfficeLocation: "Jakarta"},
		CurrentStep: domain.StepDetails,
	})

	state := s.State()
	assert.Equal(t, "John Doe", state.BasicInfo.FullName)
	assert.Equal(t, "ENG-001", state.BasicInfo.EmployeeID)
	assert.Equal(t, "Jakarta", state.Details.OfficeLocation)
	assert.Equal(t, domain.StepDetails, state.CurrentStep)
}

func TestRestoreIgnoresInvalidStep(t *testing.T) {
	s := newTestSession(domain.RoleAdmin)
	s.Restore(domain.Draft{CurrentStep: 9})
	assert.Equal(t, domain.StepBasicInfo, s.State().CurrentStep)
}

func TestRestoreDoesNotNotifyChange(t *testing.T) {
	var changes int
	s := newTestSession(domain.RoleAdmin, func(o *SessionOptions) {
		o.OnChange = func(domain.WizardState) { changes++ }
	})
	s.Restore(domain.Draft{BasicInfo: domain.BasicInfo{FullName: "John Doe"}})
	assert.Zero(t, changes)

	require.NoError(t, s.UpdateBasicInfo("email", "john@example.com"))
	assert.Equal(t, 1, changes)
}
