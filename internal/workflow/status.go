package workflow

import "fmt"

// Status represents the review status of a breakdown or performance record
type Status string

const (
	StatusDraft         Status = "DRAFT"
	StatusSubmitted     Status = "SUBMITTED"
	StatusApproved      Status = "APPROVED"
	StatusValidated     Status = "VALIDATED"
	StatusFinalApproved Status = "FINAL_APPROVED"
	StatusRejected      Status = "REJECTED"
)

// AllStatuses lists every defined status, used for validation of stored rows.
var AllStatuses = []Status{
	StatusDraft,
	StatusSubmitted,
	StatusApproved,
	StatusValidated,
	StatusFinalApproved,
	StatusRejected,
}

// ParseStatus converts a stored string into a Status, rejecting unknown values
// so a typo'd status can never silently match nothing.
func ParseStatus(s string) (Status, error) {
	for _, st := range AllStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// Valid reports whether s is one of the defined statuses.
func (s Status) Valid() bool {
	_, err := ParseStatus(string(s))
	return err == nil
}

// Editable reports whether a record in this status may have its values changed.
// Breakdowns and performances are only writable while drafting or after a
// rejection; anything past SUBMITTED is read-only.
func (s Status) Editable() bool {
	return s == StatusDraft || s == StatusRejected
}

// Reviewable reports whether a record in this status is somewhere inside the
// review pipeline (submitted but not yet final approved or rejected).
func (s Status) Reviewable() bool {
	return s == StatusSubmitted || s == StatusApproved || s == StatusValidated
}

// AtLeastApproved reports whether the record has cleared State Minister
// approval. Performance entry is gated on the owning breakdown reaching this.
func (s Status) AtLeastApproved() bool {
	return s == StatusApproved || s == StatusValidated || s == StatusFinalApproved
}
