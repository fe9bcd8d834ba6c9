package dto

import "github.com/spec-kit/onboarding-service/internal/domain"

// SubmitBasicInfoResponse carries the minted identifier for a new identity
// record. The identifier crosses the wire as a string.
type SubmitBasicInfoResponse struct {
	ID string `json:"id"`
}

// SubmitDetailsRequest is the details payload plus its identity link.
type SubmitDetailsRequest struct {
	domain.Details
	BasicInfoID string `json:"basicInfoId"`
}

// EmployeeListResponse is the paginated merged listing.
type EmployeeListResponse struct {
	Data     []domain.MergedEmployee `json:"data"`
	Page     int                     `json:"page"`
	PageSize int                     `json:"pageSize"`
	Total    int                     `json:"total"`
}
