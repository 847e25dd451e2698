package domain

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	dErrors "simbahan/pkg/domain-errors"
)

// ParishID identifies a parish and, because each parish owns exactly one
// church record, doubles as the church identifier. Slug form: lowercase
// letters, digits, and hyphens.
//
// Usage: construct via ParseParishID at trust boundaries; direct casting
// bypasses validation.
type ParishID string

var parishIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{0,63}$`)

// ParseParishID constructs a ParishID from external input.
//
// Errors: returns CodeValidation when the value is empty or not in slug form.
func ParseParishID(s string) (ParishID, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return "", dErrors.New(dErrors.CodeValidation, "parish id cannot be empty")
	}
	if !parishIDPattern.MatchString(s) {
		return "", dErrors.New(dErrors.CodeValidation, "parish id must be a lowercase slug")
	}
	return ParishID(s), nil
}

func (p ParishID) IsZero() bool { return p == "" }

func (p ParishID) String() string { return string(p) }

// Diocese is the top-level administrative boundary scoping a chancery
// office's authority. Same slug form as ParishID.
type Diocese string

// ParseDiocese constructs a Diocese from external input.
func ParseDiocese(s string) (Diocese, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return "", dErrors.New(dErrors.CodeValidation, "diocese cannot be empty")
	}
	if !parishIDPattern.MatchString(s) {
		return "", dErrors.New(dErrors.CodeValidation, "diocese must be a lowercase slug")
	}
	return Diocese(s), nil
}

func (d Diocese) IsZero() bool { return d == "" }

func (d Diocese) String() string { return string(d) }

// ActorID identifies a user profile.
type ActorID uuid.UUID

// ParseActorID constructs an ActorID from its string form.
func ParseActorID(s string) (ActorID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return ActorID{}, dErrors.New(dErrors.CodeValidation, "actor id must be a UUID")
	}
	return ActorID(u), nil
}

// NewActorID generates a fresh random ActorID.
func NewActorID() ActorID { return ActorID(uuid.New()) }

func (a ActorID) IsNil() bool { return uuid.UUID(a) == uuid.Nil }

func (a ActorID) String() string { return uuid.UUID(a).String() }
