package wizard

import (
	"fmt"
	"regexp"
	"strings"
)

var employeeIDPattern = regexp.MustCompile(`^[A-Z]{3}-\d{3}$`)

// GenerateEmployeeID derives an employee ID from a department name and the
// number of existing records in that department.
// Format: <3-letter department prefix>-<3-digit sequence>, short names
// right-padded with 'X'. Example: ENG-003, ITX-001.
//
// Callers currently pass existingCount=0, so the sequence always starts at 1
// regardless of how many records share the department. Known limitation kept
// for ID stability.
func GenerateEmployeeID(departmentName string, existingCount int) string {
	prefix := departmentName
	if runes := []rune(prefix); len(runes) > 3 {
		prefix = string(runes[:3])
	}
	prefix = strings.ToUpper(prefix)
	for len([]rune(prefix)) < 3 {
		prefix += "X"
	}
	return fmt.Sprintf("%s-%03d", prefix, existingCount+1)
}

// IsValidEmployeeID reports whether id matches the derived format.
func IsValidEmployeeID(id string) bool {
	return employeeIDPattern.MatchString(id)
}
