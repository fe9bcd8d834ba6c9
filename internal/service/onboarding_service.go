package service

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/onboarding-service/internal/domain"
	"github.com/spec-kit/onboarding-service/internal/events"
	"github.com/spec-kit/onboarding-service/internal/repository"
)

// OnboardingService owns the identity and details record stores. It is the
// server side of the two submission phases: phase one mints an identity
// record, phase two files the details half against it. A details row is
// never required for an identity row to exist.
type OnboardingService struct {
	basicInfo  repository.BasicInfoRepository
	details    repository.DetailsRepository
	dispatcher events.Dispatcher
}

// NewOnboardingService constructs the service.
func NewOnboardingService(basicInfo repository.BasicInfoRepository, details repository.DetailsRepository, dispatcher events.Dispatcher) *OnboardingService {
	return &OnboardingService{basicInfo: basicInfo, details: details, dispatcher: dispatcher}
}

// CreateBasicInfo mints a new identity record and returns it with its ID set.
func (s *OnboardingService) CreateBasicInfo(ctx context.Context, info domain.BasicInfo) (*domain.BasicInfoRecord, error) {
	record := &domain.BasicInfoRecord{BasicInfo: info}
	if err := s.basicInfo.Create(ctx, record); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type: events.EventEmployeeCreated,
		Payload: events.EmployeeCreatedPayload{
			BasicInfoID: record.ID,
			FullName:    record.FullName,
			Department:  record.Department,
			EmployeeID:  record.EmployeeID,
		},
	})
	return record, nil
}

// ListBasicInfo returns every identity record.
func (s *OnboardingService) ListBasicInfo(ctx context.Context) ([]domain.BasicInfoRecord, error) {
	return s.basicInfo.List(ctx)
}

// CreateDetails files the details half against an identity record.
func (s *OnboardingService) CreateDetails(ctx context.Context, details domain.Details, basicInfoID int) (*domain.DetailsRecord, error) {
	record := &domain.DetailsRecord{Details: details, BasicInfoID: basicInfoID}
	if err := s.details.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// ListDetails returns every details record.
func (s *OnboardingService) ListDetails(ctx context.Context) ([]domain.DetailsRecord, error) {
	return s.details.List(ctx)
}

func (s *OnboardingService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

// LocalBackend adapts the onboarding service to the wizard engine's backend
// port for single-binary wiring. Identifiers cross the port as strings, the
// same shape the HTTP client sees.
type LocalBackend struct {
	onboarding *OnboardingService
}

// NewLocalBackend wraps the service.
func NewLocalBackend(onboarding *OnboardingService) *LocalBackend {
	return &LocalBackend{onboarding: onboarding}
}

// SubmitBasicInfo mints an identity record.
func (b *LocalBackend) SubmitBasicInfo(ctx context.Context, info domain.BasicInfo) (string, error) {
	record, err := b.onboarding.CreateBasicInfo(ctx, info)
	if err != nil {
		return "", err
	}
	return strconv.Itoa(record.ID), nil
}

// SubmitDetails files the details half.
func (b *LocalBackend) SubmitDetails(ctx context.Context, details domain.Details, basicInfoID string) error {
	id, err := strconv.Atoi(basicInfoID)
	if err != nil {
		return err
	}
	_, err = b.onboarding.CreateDetails(ctx, details, id)
	return err
}
