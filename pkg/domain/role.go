package domain

import dErrors "simbahan/pkg/domain-errors"

// Role is the authority a caller acts under. Every authorization decision in
// the system starts from this value plus the actor's diocese/parish scope.
type Role string

// Supported roles.
const (
	RoleChanceryOffice   Role = "chancery_office"
	RoleMuseumResearcher Role = "museum_researcher"
	RoleParishSecretary  Role = "parish_secretary"
	RolePublic           Role = "public"
)

// validRoles is the single source of truth for supported roles.
var validRoles = map[Role]bool{
	RoleChanceryOffice:   true,
	RoleMuseumResearcher: true,
	RoleParishSecretary:  true,
	RolePublic:           true,
}

// ParseRole constructs a Role from external input.
//
// Errors: returns CodeValidation when the value is empty or unsupported.
func ParseRole(s string) (Role, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeValidation, "role cannot be empty")
	}
	r := Role(s)
	if !r.IsValid() {
		return "", dErrors.New(dErrors.CodeValidation, "invalid role")
	}
	return r, nil
}

// IsValid checks if the role is one of the supported enum values.
func (r Role) IsValid() bool {
	return validRoles[r]
}

func (r Role) String() string { return string(r) }
