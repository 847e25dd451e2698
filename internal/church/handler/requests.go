package handler

import (
	"strings"

	"simbahan/internal/church/models"
	"simbahan/internal/church/service"
	id "simbahan/pkg/domain"
	dErrors "simbahan/pkg/domain-errors"
)

const (
	maxDescriptionLength = 4000
	maxKeywords          = 32
	maxKeywordLength     = 64
)

// ProfilePayload is the wire form of a church profile, shared by create,
// update, and classify requests.
type ProfilePayload struct {
	HeritageTag        string   `json:"heritage_tag"`
	FoundingYear       int      `json:"founding_year"`
	ArchitecturalStyle string   `json:"architectural_style"`
	Description        string   `json:"description"`
	Keywords           []string `json:"keywords"`

	parsed models.Profile
}

func (p *ProfilePayload) validate() error {
	if p.FoundingYear < 0 {
		return dErrors.New(dErrors.CodeValidation, "founding_year cannot be negative")
	}
	if len(p.Description) > maxDescriptionLength {
		return dErrors.New(dErrors.CodeValidation, "description is too long")
	}
	if len(p.Keywords) > maxKeywords {
		return dErrors.New(dErrors.CodeValidation, "too many keywords")
	}
	for _, kw := range p.Keywords {
		if len(kw) > maxKeywordLength {
			return dErrors.New(dErrors.CodeValidation, "keyword is too long")
		}
	}

	tag, err := models.ParseHeritageTag(strings.TrimSpace(p.HeritageTag))
	if err != nil {
		return err
	}

	p.parsed = models.Profile{
		HeritageTag:        tag,
		FoundingYear:       p.FoundingYear,
		ArchitecturalStyle: strings.TrimSpace(p.ArchitecturalStyle),
		Description:        strings.TrimSpace(p.Description),
		Keywords:           p.Keywords,
	}
	return nil
}

// Parsed returns the validated domain profile.
func (p *ProfilePayload) Parsed() models.Profile {
	return p.parsed
}

// CreateChurchRequest is the HTTP request body for POST /churches.
type CreateChurchRequest struct {
	Parish  string         `json:"parish"`
	Diocese string         `json:"diocese"`
	Profile ProfilePayload `json:"profile"`

	parsedParish  id.ParishID
	parsedDiocese id.Diocese
}

// Validate validates and parses the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *CreateChurchRequest) Validate() error {
	parish, err := id.ParseParishID(r.Parish)
	if err != nil {
		return err
	}
	diocese, err := id.ParseDiocese(r.Diocese)
	if err != nil {
		return err
	}
	if err := r.Profile.validate(); err != nil {
		return err
	}
	r.parsedParish = parish
	r.parsedDiocese = diocese
	return nil
}

// ToServiceRequest converts the validated body to a domain request.
func (r *CreateChurchRequest) ToServiceRequest() service.CreateRequest {
	return service.CreateRequest{
		Parish:  r.parsedParish,
		Diocese: r.parsedDiocese,
		Profile: r.Profile.Parsed(),
	}
}

// UpdateChurchRequest is the HTTP request body for PATCH /churches/{id}.
type UpdateChurchRequest struct {
	ExpectedVersion int64          `json:"expected_version"`
	Profile         ProfilePayload `json:"profile"`
}

func (r *UpdateChurchRequest) Validate() error {
	if r.ExpectedVersion < 1 {
		return dErrors.New(dErrors.CodeValidation, "expected_version is required")
	}
	return r.Profile.validate()
}

// ClassifyRequest is the HTTP request body for POST /classify.
type ClassifyRequest struct {
	Profile ProfilePayload `json:"profile"`
}

func (r *ClassifyRequest) Validate() error {
	return r.Profile.validate()
}
