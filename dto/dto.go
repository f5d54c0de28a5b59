// Package dto holds the JSON-facing shapes of the REST API and their
// converters to and from the extraction and storage types.
package dto

import (
	"time"

	"github.com/google/uuid"
)

// RunDTO represents one persisted extraction run.
type RunDTO struct {
	ID             uuid.UUID `json:"id"`
	Source         string    `json:"source"`
	Pattern        string    `json:"pattern"`
	Recognized     bool      `json:"recognized"`
	ProcessorCount int       `json:"processorCount"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ProcessorDTO represents one extracted processor.
type ProcessorDTO struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Type          string            `json:"type"`
	Category      string            `json:"category"`
	Group         string            `json:"group"`
	State         string            `json:"state"`
	PropertyCount int               `json:"propertyCount"`
	Properties    map[string]string `json:"properties"`
}

// ProbeDTO explains why one root pattern did not match a document.
type ProbeDTO struct {
	Pattern string `json:"pattern"`
	Hint    string `json:"hint"`
}

// ExtractResponseDTO is returned when a flow document is submitted. When the
// document structure was not recognized, Recognized is false and Probes
// lists the patterns that were tried.
type ExtractResponseDTO struct {
	Run        *RunDTO        `json:"run,omitempty"`
	Pattern    string         `json:"pattern"`
	Recognized bool           `json:"recognized"`
	Processors []ProcessorDTO `json:"processors"`
	Probes     []ProbeDTO     `json:"probes,omitempty"`
}
