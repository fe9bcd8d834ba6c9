package wizard

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/spec-kit/onboarding-service/internal/domain"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Photo payload limits. The payload itself is produced by an external
// collaborator; only size and declared type are checked here.
const MaxPhotoSizeMB = 5

var acceptedPhotoTypes = []string{"image/jpeg", "image/png", "image/jpg"}

func required(value, fieldName string) string {
	if strings.TrimSpace(value) == "" {
		return fieldName + " is required"
	}
	return ""
}

// ValidateBasicInfo checks the step-1 payload. All four fields are required;
// the email must match a standard shape.
func ValidateBasicInfo(info domain.BasicInfo) domain.ValidationErrors {
	errs := domain.ValidationErrors{}
	if msg := required(info.FullName, "Full name"); msg != "" {
		errs["fullName"] = msg
	}
	if strings.TrimSpace(info.Email) == "" {
		errs["email"] = "Email is required"
	} else if !emailPattern.MatchString(info.Email) {
		errs["email"] = "Invalid email format"
	}
	if msg := required(info.Department, "Department"); msg != "" {
		errs["department"] = msg
	}
	if msg := required(info.Role, "Role"); msg != "" {
		errs["role"] = msg
	}
	return errs
}

// ValidateDetails checks the step-2 payload. The photo is required only for
// the admin role; ops is exempt.
func ValidateDetails(details domain.Details, role domain.UserRole) domain.ValidationErrors {
	errs := domain.ValidationErrors{}
	if msg := required(string(details.EmploymentType), "Employment type"); msg != "" {
		errs["employmentType"] = msg
	}
	if msg := required(details.OfficeLocation, "Office location"); msg != "" {
		errs["officeLocation"] = msg
	}
	if role == domain.RoleAdmin && details.Photo == "" {
		errs["photo"] = "Photo is required for admin users"
	}
	return errs
}

// ValidatePhotoPayload checks a data-URL photo payload against the size and
// type limits. An empty payload passes; clearing a photo is always allowed.
func ValidatePhotoPayload(value string) string {
	if value == "" {
		return ""
	}
	mimeType := strings.TrimPrefix(value, "data:")
	if idx := strings.IndexAny(mimeType, ";,"); idx >= 0 {
		mimeType = mimeType[:idx]
	}
	payload := value
	if idx := strings.Index(value, ","); idx >= 0 {
		payload = value[idx+1:]
	}
	// base64 expands by 4/3, so the decoded size is 3/4 of the payload
	return ValidatePhoto(int64(len(payload))*3/4, mimeType)
}

// ValidatePhoto checks a candidate photo payload against size and type limits.
func ValidatePhoto(sizeBytes int64, mimeType string) string {
	if sizeBytes > MaxPhotoSizeMB*1024*1024 {
		return fmt.Sprintf("File size must be less than %dMB", MaxPhotoSizeMB)
	}
	for _, accepted := range acceptedPhotoTypes {
		if mimeType == accepted {
			return ""
		}
	}
	return fmt.Sprintf("Please upload a valid image (%s)", strings.Join(acceptedPhotoTypes, ", "))
}

// HasErrors reports whether any field carries a message.
func HasErrors(errs domain.ValidationErrors) bool {
	return len(errs) > 0
}

// FirstError returns one of the messages, or "" when the step is valid.
func FirstError(errs domain.ValidationErrors) string {
	for _, msg := range errs {
		if msg != "" {
			return msg
		}
	}
	return ""
}
