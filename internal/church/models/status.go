package models

import dErrors "simbahan/pkg/domain-errors"

// Status is the publication state of a church record.
//
// pending, heritage_review, and approved carry active workflow edges.
// rejected and needs_revision are reserved: they parse and round-trip, but no
// edge references them, so the workflow engine rejects any attempt in or out
// of them with an invalid-transition error.
type Status string

const (
	StatusPending        Status = "pending"
	StatusHeritageReview Status = "heritage_review"
	StatusApproved       Status = "approved"
	StatusRejected       Status = "rejected"
	StatusNeedsRevision  Status = "needs_revision"
)

// validStatuses is the single source of truth for valid statuses.
var validStatuses = map[Status]bool{
	StatusPending:        true,
	StatusHeritageReview: true,
	StatusApproved:       true,
	StatusRejected:       true,
	StatusNeedsRevision:  true,
}

// ParseStatus constructs a Status from external input.
//
// Errors: returns CodeValidation when the value is empty or unsupported.
func ParseStatus(s string) (Status, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeValidation, "status cannot be empty")
	}
	st := Status(s)
	if !st.IsValid() {
		return "", dErrors.New(dErrors.CodeValidation, "invalid status")
	}
	return st, nil
}

// IsValid checks if the status is one of the supported enum values.
func (s Status) IsValid() bool {
	return validStatuses[s]
}

func (s Status) String() string { return string(s) }
