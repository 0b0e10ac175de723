// internal/models/advisor.go
package models

import "strings"

// Advisor is a row of the NocoDB "Asesores" table. JSON tags match the
// column names NocoDB returns, capitalization included.
type Advisor struct {
	ID        int           `json:"Id"`
	Name      string        `json:"Asesor"`
	Phone     string        `json:"Phone"`
	Email     *string       `json:"Email"`
	Slug      string        `json:"slug,omitempty"`
	Status    AdvisorStatus `json:"Activo"`
	CreatedAt string        `json:"CreatedAt,omitempty"`
	UpdatedAt string        `json:"UpdatedAt,omitempty"`
}

// Selectable reports whether the advisor may be returned by name-based
// resolution. Rows without a display name exist in the table (half-filled
// records) and must never resolve.
func (a *Advisor) Selectable() bool {
	return strings.TrimSpace(a.Name) != ""
}

// CreateAdvisorRequest is the admin payload for a new advisor. Slug is
// optional; when absent it is derived from the name.
type CreateAdvisorRequest struct {
	Name  string  `json:"Asesor" validate:"required,min=2,max=100"`
	Phone string  `json:"Phone" validate:"required,co_phone"`
	Email *string `json:"Email,omitempty" validate:"omitempty,email"`
	Slug  string  `json:"slug,omitempty" validate:"omitempty,slug"`
}

// UpdateAdvisorRequest carries a partial update; nil fields are untouched.
type UpdateAdvisorRequest struct {
	Name  *string `json:"Asesor,omitempty" validate:"omitempty,min=2,max=100"`
	Phone *string `json:"Phone,omitempty" validate:"omitempty,co_phone"`
	Email *string `json:"Email,omitempty" validate:"omitempty,email"`
	Slug  *string `json:"slug,omitempty" validate:"omitempty,slug"`
}

// Resolution is the outcome of resolving a free-text identifier to an
// advisor. Exactly one of the three kinds applies; transport failures are
// reported as errors, never as a Resolution.
type Resolution struct {
	Kind    ResolutionKind `json:"kind"`
	Advisor *Advisor       `json:"advisor,omitempty"`
}

type ResolutionKind string

const (
	ResolutionFound     ResolutionKind = "found"
	ResolutionNotFound  ResolutionKind = "not_found"
	ResolutionAmbiguous ResolutionKind = "ambiguous"
)
