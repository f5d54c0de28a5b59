package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/flowlens/flowlens/flow"
)

var summaryHeader = []string{
	"name", "id", "type", "category", "group", "state",
	"scheduling_strategy", "scheduling_period", "concurrent_tasks",
	"penalty_duration", "yield_duration", "bulletin_level",
	"auto_terminated_relationships", "property_count", "properties", "key_properties",
}

// WriteSummary writes the full summary table: one row per record, all
// properties serialized as a compact JSON blob plus the per-category
// highlighted properties in a trailing column.
func WriteSummary(w io.Writer, records []flow.ProcessorRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(summaryHeader); err != nil {
		return err
	}
	for i := range records {
		r := &records[i]
		blob, err := json.Marshal(r.Properties)
		if err != nil {
			return fmt.Errorf("serialize properties for %q: %w", r.ID, err)
		}
		row := []string{
			r.Name,
			r.ID,
			r.Type,
			r.Category(),
			r.Group,
			r.State,
			r.SchedulingStrategy,
			r.SchedulingPeriod,
			fmt.Sprintf("%d", r.ConcurrentTasks),
			r.PenaltyDuration,
			r.YieldDuration,
			r.BulletinLevel,
			strings.Join(r.AutoTerminatedRelationships, "; "),
			fmt.Sprintf("%d", r.PropertyCount),
			string(blob),
			strings.Join(HighlightedProperties(r), "; "),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteKeyProcessors writes the summary table restricted to records whose
// category is in the key-processor allow-list.
func WriteKeyProcessors(w io.Writer, records []flow.ProcessorRecord) error {
	var keep []flow.ProcessorRecord
	for i := range records {
		if IsKeyProcessor(&records[i]) {
			keep = append(keep, records[i])
		}
	}
	return WriteSummary(w, keep)
}

// WritePropertyMatrix writes one row per record with one column per distinct
// property name observed across all records. Columns are sorted so output is
// deterministic; records missing a property leave the cell empty.
func WritePropertyMatrix(w io.Writer, records []flow.ProcessorRecord) error {
	seen := make(map[string]struct{})
	for i := range records {
		for name := range records[i].Properties {
			seen[name] = struct{}{}
		}
	}
	columns := make([]string, 0, len(seen))
	for name := range seen {
		columns = append(columns, name)
	}
	sort.Strings(columns)

	cw := csv.NewWriter(w)
	header := append([]string{"name", "id", "type"}, columns...)
	if err := cw.Write(header); err != nil {
		return err
	}
	for i := range records {
		r := &records[i]
		row := make([]string, 0, len(header))
		row = append(row, r.Name, r.ID, r.Type)
		for _, column := range columns {
			row = append(row, r.Properties[column])
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
