package models

import (
	"time"

	id "simbahan/pkg/domain"
	dErrors "simbahan/pkg/domain-errors"
)

// HeritageTag is an explicit national heritage designation on a church
// profile. ICP (Important Cultural Property) and NCT (National Cultural
// Treasure) both force the heritage review path.
type HeritageTag string

const (
	TagNone HeritageTag = ""
	TagICP  HeritageTag = "ICP"
	TagNCT  HeritageTag = "NCT"
)

// ParseHeritageTag constructs a HeritageTag from external input. The empty
// string is valid and means "no designation".
func ParseHeritageTag(s string) (HeritageTag, error) {
	switch HeritageTag(s) {
	case TagNone, TagICP, TagNCT:
		return HeritageTag(s), nil
	}
	return TagNone, dErrors.New(dErrors.CodeValidation, "heritage tag must be ICP, NCT, or empty")
}

// Profile is the classifier-relevant portion of a church record. The heritage
// classifier reads only this struct, so edits that touch it force a rescore.
type Profile struct {
	HeritageTag        HeritageTag `json:"heritage_tag"`
	FoundingYear       int         `json:"founding_year"`
	ArchitecturalStyle string      `json:"architectural_style"`
	Description        string      `json:"description"`
	Keywords           []string    `json:"keywords"`
}

// Confidence is the classifier's confidence band.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Classification is the heritage classifier's output for a profile. It is a
// pure function of Profile: identical profiles always yield identical
// classifications, and stored copies are never mutated retroactively.
type Classification struct {
	Score      int        `json:"score"`
	Confidence Confidence `json:"confidence"`
	IsHeritage bool       `json:"is_heritage"`
}

// Church is the aggregate root for a parish's church record.
//
// Invariants:
//   - ID equals the owning parish's identifier; exactly one Church per parish
//   - Diocese is immutable after construction
//   - Status only changes through the workflow engine's edge table
//   - Version increases by exactly one on every accepted mutation
//   - Records are never hard-deleted
type Church struct {
	ID        id.ParishID `json:"id"`
	Diocese   id.Diocese  `json:"diocese"`
	Status    Status      `json:"status"`
	Profile   Profile     `json:"profile"`
	Version   int64       `json:"version"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// NewChurch constructs a pending church record for a parish.
func NewChurch(parish id.ParishID, diocese id.Diocese, profile Profile, now time.Time) (*Church, error) {
	if parish.IsZero() {
		return nil, dErrors.New(dErrors.CodeValidation, "parish id is required")
	}
	if diocese.IsZero() {
		return nil, dErrors.New(dErrors.CodeValidation, "diocese is required")
	}
	if profile.FoundingYear < 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "founding year cannot be negative")
	}
	return &Church{
		ID:        parish,
		Diocese:   diocese,
		Status:    StatusPending,
		Profile:   profile,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// ApplyStatus moves the church to a new status. Edge and guard validation is
// the workflow engine's job; this only mutates the aggregate.
func (c *Church) ApplyStatus(to Status, now time.Time) {
	c.Status = to
	c.UpdatedAt = now
}

// ApplyProfile replaces the classifier-relevant fields. Diocese and status are
// deliberately not reachable from here.
func (c *Church) ApplyProfile(p Profile, now time.Time) {
	c.Profile = p
	c.UpdatedAt = now
}
