package flow

import (
	"encoding/json"
	"fmt"
	"os"
)

// rootGroupName labels processors found directly under the located root.
const rootGroupName = "Root"

// nestingKeys are the child process group containers the export variants use.
var nestingKeys = []string{"processGroups", "childProcessGroups"}

// wrapperKeys hold a group's actual contents one level down in some export
// variants (the REST /flow shape wraps groups in an entity envelope).
var wrapperKeys = []string{"flow", "component"}

// ExtractFile reads and extracts one flow export from disk. The file is read
// in full and closed before parsing begins. An unreadable path yields
// ErrInputUnreadable and invalid JSON yields ErrMalformedJSON; a document
// that parses but matches no known structure is not an error and comes back
// as an empty, unrecognized Result.
func ExtractFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInputUnreadable, path, err)
	}
	return Extract(data)
}

// Extract parses raw JSON bytes and extracts every processor reachable from
// the located root.
func Extract(data []byte) (*Result, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, wrapJSONError(err)
	}
	return ExtractDocument(doc), nil
}

// ExtractDocument extracts from an already-parsed document. It never fails:
// structural mismatch is reported through Result.Pattern and Result.Probes.
func ExtractDocument(doc any) *Result {
	root, pattern, probes := LocateRoot(doc)
	result := &Result{Pattern: pattern, Probes: probes}
	if root == nil {
		return result
	}
	result.Records = CollectProcessors(root)
	return result
}

// groupFrame is one pending process group on the traversal work list.
type groupFrame struct {
	node  map[string]any
	group string
}

// CollectProcessors walks the process group tree under root and returns one
// record per processor node encountered. Traversal uses an explicit work
// list so adversarially deep nesting cannot exhaust the stack. Duplicate
// processor IDs across nesting levels are preserved; de-duplication, if
// wanted, belongs to the reporting layer.
func CollectProcessors(root map[string]any) []ProcessorRecord {
	var records []ProcessorRecord
	work := []groupFrame{{node: root, group: rootGroupName}}
	for len(work) > 0 {
		frame := work[len(work)-1]
		work = work[:len(work)-1]

		if procs, ok := frame.node["processors"].([]any); ok {
			for _, entry := range procs {
				node, ok := entry.(map[string]any)
				if !ok {
					continue
				}
				records = append(records, NormalizeProcessor(node, frame.group))
			}
		}

		for _, key := range nestingKeys {
			children, ok := frame.node[key].([]any)
			if !ok {
				continue
			}
			for _, child := range children {
				node, ok := child.(map[string]any)
				if !ok {
					continue
				}
				work = append(work, groupFrame{node: node, group: childGroupPath(frame.group, node)})
			}
		}

		// Entity envelopes keep the group body one level down; revisit the
		// inner object under the same group path.
		for _, key := range wrapperKeys {
			if inner, ok := frame.node[key].(map[string]any); ok {
				work = append(work, groupFrame{node: inner, group: frame.group})
			}
		}
	}
	return records
}

func childGroupPath(parent string, node map[string]any) string {
	name := stringField(node, "name")
	if name == "" {
		if component, ok := node["component"].(map[string]any); ok {
			name = stringField(component, "name")
		}
	}
	if name == "" {
		name = "Unnamed Group"
	}
	if parent == rootGroupName {
		return name
	}
	return parent + "/" + name
}
