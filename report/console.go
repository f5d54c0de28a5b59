package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/flowlens/flowlens/flow"
)

const rule = "================================================================================"

// PrintSummary writes a human-readable per-processor rundown, the kind an
// operator scans on a terminal after pointing the tool at an export.
func PrintSummary(w io.Writer, result *flow.Result) {
	if len(result.Records) == 0 {
		fmt.Fprintln(w, "No processors found.")
		for _, probe := range result.Probes {
			fmt.Fprintf(w, "  probed %s: %s\n", probe.Pattern, probe.Hint)
		}
		return
	}

	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "NIFI PROCESSOR SUMMARY - Total Processors: %d\n", len(result.Records))
	fmt.Fprintln(w, rule)

	for i := range result.Records {
		r := &result.Records[i]
		fmt.Fprintf(w, "\n[%d] %s\n", i+1, displayName(r))
		fmt.Fprintf(w, "    ID: %s\n", r.ID)
		fmt.Fprintf(w, "    Type: %s\n", r.Type)
		fmt.Fprintf(w, "    Group: %s\n", r.Group)
		fmt.Fprintf(w, "    State: %s\n", r.State)
		if r.SchedulingPeriod != "" {
			fmt.Fprintf(w, "    Scheduling Period: %s\n", r.SchedulingPeriod)
		}
		if len(r.AutoTerminatedRelationships) > 0 {
			fmt.Fprintf(w, "    Auto-terminated Relationships: %s\n", strings.Join(r.AutoTerminatedRelationships, ", "))
		}
		if r.PropertyCount > 0 {
			fmt.Fprintf(w, "    Properties (%d total):\n", r.PropertyCount)
			names := make([]string, 0, len(r.Properties))
			for name := range r.Properties {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(w, "      - %s: %s\n", name, r.Properties[name])
			}
		}
	}
}

// PrintTypes writes the distinct processor types with instance counts.
func PrintTypes(w io.Writer, result *flow.Result) {
	types := result.Types()
	names := make([]string, 0, len(types))
	for name := range types {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintln(w, "PROCESSOR TYPES FOUND:")
	for _, name := range names {
		fmt.Fprintf(w, "- %s (%d instances)\n", name, types[name])
	}
}
