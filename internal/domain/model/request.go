// Package model contains domain models passed between layers.
package model

import (
	"slices"
	"time"
)

// Request is a client's description of a creative project.
// Fields mirror the client request document accepted by /api/clients/requests.
type Request struct {
	ID                 string    `json:"id" yaml:"id"`
	Name               string    `json:"name" yaml:"name"`
	Type               string    `json:"type" yaml:"type"`         // e.g. "Creator", "Individual"
	Industry           string    `json:"industry" yaml:"industry"` // e.g. "Weddings"
	City               string    `json:"city" yaml:"city"`
	StylePreferences   []string  `json:"style_preferences" yaml:"style_preferences"` // ordered, may be empty
	CommunicationStyle string    `json:"communication_style" yaml:"communication_style"`
	ClientTier         string    `json:"client_tier" yaml:"client_tier"`
	CreatedAt          time.Time `json:"createdAt" yaml:"-"`
	UpdatedAt          time.Time `json:"updatedAt" yaml:"-"`
}

// Clone returns a deep copy of r.
func (r Request) Clone() Request {
	r.StylePreferences = slices.Clone(r.StylePreferences)
	return r
}
