package domain

import "strings"

// EmploymentType enumerates supported contract kinds.
type EmploymentType string

const (
	EmploymentFullTime EmploymentType = "Full-time"
	EmploymentPartTime EmploymentType = "Part-time"
	EmploymentContract EmploymentType = "Contract"
	EmploymentIntern   EmploymentType = "Intern"
)

// EmploymentTypes lists the accepted values in display order.
var EmploymentTypes = []EmploymentType{
	EmploymentFullTime,
	EmploymentPartTime,
	EmploymentContract,
	EmploymentIntern,
}

// LookupItem is an immutable directory record used by autocomplete fields.
type LookupItem struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Department is a directory record for organizational units.
type Department = LookupItem

// Location is a directory record for office locations.
type Location = LookupItem

// FilterLookup returns the items whose names contain the query,
// case-insensitively, preserving insertion order. An empty or whitespace
// query returns the full list.
func FilterLookup(items []LookupItem, query string) []LookupItem {
	query = strings.TrimSpace(query)
	if query == "" {
		return items
	}
	lower := strings.ToLower(query)
	filtered := make([]LookupItem, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Name), lower) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// BasicInfo carries the step-1 payload submitted to the identity service.
type BasicInfo struct {
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Role       string `json:"role"`
	EmployeeID string `json:"employeeId"`
}

// BasicInfoRecord is an identity record as returned by the identity service.
type BasicInfoRecord struct {
	BasicInfo
	ID int `json:"id"`
}

// Details carries the step-2 payload. Photo is an opaque transportable
// image payload (base64 data URL); encoding happens upstream.
type Details struct {
	Photo          string         `json:"photo"`
	PhotoFilename  string         `json:"photoFilename"`
	EmploymentType EmploymentType `json:"employmentType"`
	OfficeLocation string         `json:"officeLocation"`
	Notes          string         `json:"notes"`
}

// DetailsRecord links a details payload back to its identity record.
type DetailsRecord struct {
	Details
	ID          int `json:"id"`
	BasicInfoID int `json:"basicInfoId"`
}

// MergedEmployee joins an identity record with its details half, when present.
type MergedEmployee struct {
	BasicInfoRecord
	Location string `json:"location,omitempty"`
	Photo    string `json:"photo,omitempty"`
}
