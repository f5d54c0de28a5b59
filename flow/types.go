package flow

import "strings"

// Processor run states as reported by the various NiFi export formats.
// Anything else found in an export normalizes to StateUnknown.
const (
	StateRunning  = "RUNNING"
	StateStopped  = "STOPPED"
	StateDisabled = "DISABLED"
	StateUnknown  = "UNKNOWN"
)

// Position is the canvas placement of a processor, when the export carries one.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Relationship describes one outgoing relationship of a processor.
type Relationship struct {
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	AutoTerminate bool   `json:"autoTerminate"`
}

// ProcessorRecord is the normalized form of a single processor instance found
// in a flow export. Records are built once during extraction and not mutated
// afterwards; reporting stages filter and regroup them but never write back.
type ProcessorRecord struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Type  string `json:"type"`
	State string `json:"state"`

	// Group is the slash-joined path of process group names leading to the
	// processor, starting at "Root".
	Group string `json:"group"`

	Position *Position `json:"position,omitempty"`

	// Properties holds the cleaned, masked property values. PropertyCount is
	// the number of properties the processor declared, counted before any
	// display truncation.
	Properties    map[string]string `json:"properties"`
	PropertyCount int               `json:"propertyCount"`

	SchedulingStrategy          string         `json:"schedulingStrategy,omitempty"`
	SchedulingPeriod            string         `json:"schedulingPeriod,omitempty"`
	PenaltyDuration             string         `json:"penaltyDuration,omitempty"`
	YieldDuration               string         `json:"yieldDuration,omitempty"`
	BulletinLevel               string         `json:"bulletinLevel,omitempty"`
	ConcurrentTasks             int            `json:"concurrentTasks,omitempty"`
	AutoTerminatedRelationships []string       `json:"autoTerminatedRelationships,omitempty"`
	Relationships               []Relationship `json:"relationships,omitempty"`
}

// Category returns the short class name of the processor type, the part after
// the last dot. It is the key used for key-processor matching and per-type
// property highlighting.
func (r *ProcessorRecord) Category() string {
	if idx := strings.LastIndex(r.Type, "."); idx >= 0 {
		return r.Type[idx+1:]
	}
	return r.Type
}

// Probe records the outcome of trying one root pattern against a document.
// Hint explains why the pattern did not match, e.g. "key `flowContents` absent".
type Probe struct {
	Pattern string `json:"pattern"`
	Hint    string `json:"hint"`
}

// Result is the outcome of extracting one flow document. Pattern names the
// root pattern that matched; it is empty when no known structure was
// recognized, in which case Probes explains what was tried. An unrecognized
// structure is a reportable outcome, not an error.
type Result struct {
	Records []ProcessorRecord `json:"records"`
	Pattern string            `json:"pattern"`
	Probes  []Probe           `json:"probes,omitempty"`
}

// Recognized reports whether any known root pattern matched the document.
func (r *Result) Recognized() bool {
	return r.Pattern != ""
}

// Types returns the distinct fully qualified processor types in the result,
// with instance counts.
func (r *Result) Types() map[string]int {
	types := make(map[string]int)
	for i := range r.Records {
		types[r.Records[i].Type]++
	}
	return types
}

func normalizeState(raw string) string {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case StateRunning:
		return StateRunning
	case StateStopped:
		return StateStopped
	case StateDisabled:
		return StateDisabled
	default:
		return StateUnknown
	}
}
