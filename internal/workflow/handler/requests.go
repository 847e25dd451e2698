package handler

import (
	"strings"

	"simbahan/internal/church/models"
	dErrors "simbahan/pkg/domain-errors"
)

const maxNotesLength = 2000

// TransitionRequest is the HTTP request body for
// POST /churches/{id}/transitions.
type TransitionRequest struct {
	Target          string `json:"target_status"`
	ExpectedVersion int64  `json:"expected_version"`
	Notes           string `json:"notes"`

	parsedTarget models.Status
}

// Validate validates and parses the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *TransitionRequest) Validate() error {
	if r.ExpectedVersion < 1 {
		return dErrors.New(dErrors.CodeValidation, "expected_version is required")
	}
	if len(r.Notes) > maxNotesLength {
		return dErrors.New(dErrors.CodeValidation, "notes is too long")
	}

	target, err := models.ParseStatus(strings.TrimSpace(r.Target))
	if err != nil {
		return err
	}
	r.parsedTarget = target
	r.Notes = strings.TrimSpace(r.Notes)
	return nil
}

// ParsedTarget returns the validated target status.
func (r *TransitionRequest) ParsedTarget() models.Status {
	return r.parsedTarget
}
