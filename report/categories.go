// Package report renders extraction results as operator-facing tables:
// a full CSV summary, a key-processor subset, a property matrix, a Markdown
// digest and a console printout.
package report

import "github.com/flowlens/flowlens/flow"

// categoryHighlights maps a processor category key to the properties worth
// surfacing as dedicated summary columns for that type. At most five are
// surfaced per category. Categories present here form the key-processor
// allow-list; a category with no noteworthy properties maps to an empty
// slice.
var categoryHighlights = map[string][]string{
	"MergeContent":         {"Merge Strategy", "Merge Format", "Minimum Number of Entries", "Maximum Number of Entries", "Max Bin Age"},
	"FetchS3Object":        {"Bucket", "Object Key", "Region", "Communications Timeout"},
	"PutS3Object":          {"Bucket", "Object Key", "Region", "Storage Class", "Server Side Encryption"},
	"ListS3":               {"Bucket", "Region", "Prefix", "Listing Batch Size"},
	"GetFile":              {"Input Directory", "File Filter", "Keep Source File", "Recurse Subdirectories", "Batch Size"},
	"PutFile":              {"Directory", "Conflict Resolution Strategy", "Create Missing Directories", "Maximum File Count"},
	"ListFile":             {"Input Directory", "File Filter", "Recurse Subdirectories"},
	"FetchFile":            {"File to Fetch", "Completion Strategy", "Move Destination Directory"},
	"InvokeHTTP":           {"HTTP Method", "Remote URL", "Connection Timeout", "Read Timeout", "Always Output Response"},
	"ExecuteScript":        {"Script Engine", "Script File", "Script Body", "Module Directory"},
	"ExecuteStreamCommand": {"Command Path", "Command Arguments", "Working Directory"},
	"SplitText":            {"Line Split Count", "Maximum Fragment Size", "Header Line Count", "Remove Trailing Newlines"},
	"SplitJson":            {"JsonPath Expression", "Null Value Representation"},
	"RouteOnAttribute":     {"Routing Strategy"},
	"UpdateAttribute":      {"Delete Attributes Expression", "Store State"},
	"ConvertRecord":        {"Record Reader", "Record Writer", "Include Zero Record FlowFiles"},
	"PublishKafka":         {"Kafka Brokers", "Topic Name", "Delivery Guarantee", "Compression Type", "Max Request Size"},
	"PublishKafkaRecord":   {"Kafka Brokers", "Topic Name", "Record Reader", "Record Writer", "Delivery Guarantee"},
	"ConsumeKafka":         {"Kafka Brokers", "Topic Name(s)", "Group ID", "Offset Reset", "Message Demarcator"},
	"ConsumeKafkaRecord":   {"Kafka Brokers", "Topic Name(s)", "Group ID", "Record Reader", "Record Writer"},
	"Wait":                 {"Release Signal Identifier", "Target Signal Count", "Expiration Duration", "Distributed Cache Service"},
	"Notify":               {"Release Signal Identifier", "Signal Counter Name", "Distributed Cache Service"},
}

// maxHighlightColumns bounds the per-record surfaced properties in the
// summary table.
const maxHighlightColumns = 5

// IsKeyProcessor reports whether the record's category is in the fixed
// allow-list of operationally significant types.
func IsKeyProcessor(r *flow.ProcessorRecord) bool {
	_, ok := categoryHighlights[r.Category()]
	return ok
}

// HighlightedProperties returns up to five name=value pairs for the
// properties surfaced for the record's category, skipping properties the
// processor does not set.
func HighlightedProperties(r *flow.ProcessorRecord) []string {
	names := categoryHighlights[r.Category()]
	var pairs []string
	for _, name := range names {
		if len(pairs) == maxHighlightColumns {
			break
		}
		if value, ok := r.Properties[name]; ok && value != "" {
			pairs = append(pairs, name+"="+value)
		}
	}
	return pairs
}
