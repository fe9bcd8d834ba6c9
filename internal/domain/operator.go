package domain

import "time"

// Operator is an authenticated wizard user. The role on the operator decides
// which wizard flow a session follows.
type Operator struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         UserRole
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
