package dto

import (
	"encoding/json"

	"github.com/flowlens/flowlens/flow"
	"github.com/flowlens/flowlens/store"
)

// RunEntityToDTO converts a stored run to its API shape.
func RunEntityToDTO(run *store.Run) *RunDTO {
	return &RunDTO{
		ID:             run.ID,
		Source:         run.Source,
		Pattern:        run.Pattern,
		Recognized:     run.Pattern != "",
		ProcessorCount: run.ProcessorCount,
		CreatedAt:      run.CreatedAt,
	}
}

// RecordToDTO converts one extracted processor record to its API shape.
func RecordToDTO(r *flow.ProcessorRecord) *ProcessorDTO {
	return &ProcessorDTO{
		ID:            r.ID,
		Name:          r.Name,
		Type:          r.Type,
		Category:      r.Category(),
		Group:         r.Group,
		State:         r.State,
		PropertyCount: r.PropertyCount,
		Properties:    r.Properties,
	}
}

// RowToDTO converts a persisted processor row to its API shape. A corrupt
// properties column surfaces as an empty mapping rather than failing the
// whole listing.
func RowToDTO(row *store.ProcessorRow) *ProcessorDTO {
	props := map[string]string{}
	if row.Properties != "" {
		_ = json.Unmarshal([]byte(row.Properties), &props)
	}
	return &ProcessorDTO{
		ID:            row.ProcessorID,
		Name:          row.Name,
		Type:          row.Type,
		Category:      row.Category,
		Group:         row.GroupPath,
		State:         row.State,
		PropertyCount: row.PropertyCount,
		Properties:    props,
	}
}

// ResultToResponse converts an extraction result (and its persisted run, if
// any) to the submission response.
func ResultToResponse(result *flow.Result, run *store.Run) *ExtractResponseDTO {
	resp := &ExtractResponseDTO{
		Pattern:    result.Pattern,
		Recognized: result.Recognized(),
		Processors: make([]ProcessorDTO, 0, len(result.Records)),
	}
	for i := range result.Records {
		resp.Processors = append(resp.Processors, *RecordToDTO(&result.Records[i]))
	}
	for _, probe := range result.Probes {
		resp.Probes = append(resp.Probes, ProbeDTO{Pattern: probe.Pattern, Hint: probe.Hint})
	}
	if run != nil {
		resp.Run = RunEntityToDTO(run)
	}
	return resp
}
