package service

import (
	"context"

	"github.com/spec-kit/onboarding-service/internal/domain"
)

// EmployeeService produces the merged employee listing shown after a wizard
// run completes.
type EmployeeService struct {
	onboarding *OnboardingService
}

// NewEmployeeService constructs the service.
func NewEmployeeService(onboarding *OnboardingService) *EmployeeService {
	return &EmployeeService{onboarding: onboarding}
}

// ListMerged fetches identity and details records concurrently and joins
// them by basicInfoId. Identity records without a details half still appear.
func (s *EmployeeService) ListMerged(ctx context.Context) ([]domain.MergedEmployee, error) {
	var (
		basics  []domain.BasicInfoRecord
		details []domain.DetailsRecord
		basErr  error
		detErr  error
	)

	done := make(chan struct{})
	go func() {
		defer close(done)
		details, detErr = s.onboarding.ListDetails(ctx)
	}()
	basics, basErr = s.onboarding.ListBasicInfo(ctx)
	<-done

	if basErr != nil {
		return nil, basErr
	}
	if detErr != nil {
		return nil, detErr
	}

	byBasicInfoID := make(map[int]domain.DetailsRecord, len(details))
	for _, record := range details {
		if _, seen := byBasicInfoID[record.BasicInfoID]; !seen {
			byBasicInfoID[record.BasicInfoID] = record
		}
	}

	merged := make([]domain.MergedEmployee, 0, len(basics))
	for _, basic := range basics {
		employee := domain.MergedEmployee{BasicInfoRecord: basic}
		if detail, ok := byBasicInfoID[basic.ID]; ok {
			employee.Location = detail.OfficeLocation
			employee.Photo = detail.Photo
		}
		merged = append(merged, employee)
	}
	return merged, nil
}
