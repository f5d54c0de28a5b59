package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/flowlens/flowlens/flow"
)

// WriteMarkdown renders a digest of one extraction: totals, state breakdown,
// type histogram and a section per key processor.
func WriteMarkdown(w io.Writer, result *flow.Result, source string, now time.Time) error {
	var b strings.Builder

	b.WriteString("# NiFi Flow Summary\n\n")
	fmt.Fprintf(&b, "- Source: `%s`\n", source)
	fmt.Fprintf(&b, "- Generated: %s\n", now.UTC().Format(time.RFC3339))
	if result.Recognized() {
		fmt.Fprintf(&b, "- Export format: `%s`\n", result.Pattern)
	} else {
		b.WriteString("- Export format: not recognized\n")
	}
	fmt.Fprintf(&b, "- Processors: %d\n\n", len(result.Records))

	if !result.Recognized() {
		b.WriteString("## Probed patterns\n\n")
		for _, probe := range result.Probes {
			fmt.Fprintf(&b, "- `%s`: %s\n", probe.Pattern, probe.Hint)
		}
		_, err := io.WriteString(w, b.String())
		return err
	}

	states := make(map[string]int)
	for i := range result.Records {
		states[result.Records[i].State]++
	}
	b.WriteString("## States\n\n")
	b.WriteString("| State | Count |\n|---|---|\n")
	for _, state := range []string{flow.StateRunning, flow.StateStopped, flow.StateDisabled, flow.StateUnknown} {
		if states[state] > 0 {
			fmt.Fprintf(&b, "| %s | %d |\n", state, states[state])
		}
	}
	b.WriteString("\n")

	types := result.Types()
	names := make([]string, 0, len(types))
	for name := range types {
		names = append(names, name)
	}
	sort.Strings(names)
	b.WriteString("## Processor types\n\n")
	b.WriteString("| Type | Instances |\n|---|---|\n")
	for _, name := range names {
		fmt.Fprintf(&b, "| %s | %d |\n", name, types[name])
	}
	b.WriteString("\n")

	wroteHeader := false
	for i := range result.Records {
		r := &result.Records[i]
		if !IsKeyProcessor(r) {
			continue
		}
		if !wroteHeader {
			b.WriteString("## Key processors\n\n")
			wroteHeader = true
		}
		fmt.Fprintf(&b, "### %s (%s)\n\n", displayName(r), r.Category())
		fmt.Fprintf(&b, "- ID: `%s`\n", r.ID)
		fmt.Fprintf(&b, "- Group: %s\n", r.Group)
		fmt.Fprintf(&b, "- State: %s\n", r.State)
		for _, pair := range HighlightedProperties(r) {
			fmt.Fprintf(&b, "- %s\n", pair)
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func displayName(r *flow.ProcessorRecord) string {
	if r.Name != "" {
		return r.Name
	}
	return "(unnamed)"
}
