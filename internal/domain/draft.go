package domain

import "time"

// Draft is a locally persisted, not-yet-submitted snapshot of wizard form
// state, keyed by role in durable storage.
type Draft struct {
	BasicInfo   BasicInfo  `json:"basicInfo"`
	Details     Details    `json:"details"`
	CurrentStep WizardStep `json:"currentStep"`
	Timestamp   int64      `json:"timestamp"`
}

// Age returns how long ago the draft was written.
func (d Draft) Age(now time.Time) time.Duration {
	return now.Sub(time.UnixMilli(d.Timestamp))
}
