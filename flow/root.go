package flow

import "fmt"

// rootProbe is one candidate shape a flow export may take. Probes are tried
// in priority order and the first match wins, so adding support for a new
// export variant means appending an entry here, not growing a conditional.
type rootProbe struct {
	pattern string
	probe   func(doc map[string]any) (map[string]any, string)
}

var rootProbes = []rootProbe{
	{"versionedFlowSnapshot.flowContents", probePath("versionedFlowSnapshot", "flowContents")},
	{"processGroupFlow.flow", probePath("processGroupFlow", "flow")},
	{"flowContents", probePath("flowContents")},
	{"processors", probeProcessorList},
	{"processGroups", probeBareGroup},
}

// probePath matches a chain of object keys and returns the innermost object.
func probePath(keys ...string) func(map[string]any) (map[string]any, string) {
	return func(doc map[string]any) (map[string]any, string) {
		node := doc
		for _, key := range keys {
			val, ok := node[key]
			if !ok {
				return nil, fmt.Sprintf("key `%s` absent", key)
			}
			obj, ok := val.(map[string]any)
			if !ok {
				return nil, fmt.Sprintf("key `%s` is not an object", key)
			}
			node = obj
		}
		return node, ""
	}
}

// probeProcessorList matches a document carrying a flat top-level processor
// array and no nesting.
func probeProcessorList(doc map[string]any) (map[string]any, string) {
	val, ok := doc["processors"]
	if !ok {
		return nil, "key `processors` absent"
	}
	if _, ok := val.([]any); !ok {
		return nil, "key `processors` is not an array"
	}
	return doc, ""
}

// probeBareGroup matches a document that is itself a process group.
func probeBareGroup(doc map[string]any) (map[string]any, string) {
	if _, ok := doc["processGroups"].([]any); ok {
		return doc, ""
	}
	if _, ok := doc["processors"].([]any); ok {
		return doc, ""
	}
	return nil, "neither `processGroups` nor `processors` present"
}

// LocateRoot probes a parsed document for the known flow export shapes, in
// priority order, and returns the process group that traversal should start
// from along with the name of the matched pattern. When no pattern matches,
// the returned root is nil and probes holds one entry per failed pattern
// explaining why it did not apply; callers report this as "no processors
// found" rather than as an error.
func LocateRoot(doc any) (root map[string]any, pattern string, probes []Probe) {
	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, "", []Probe{{Pattern: "document", Hint: "top-level value is not an object"}}
	}
	for _, candidate := range rootProbes {
		node, hint := candidate.probe(obj)
		if node != nil {
			return node, candidate.pattern, probes
		}
		probes = append(probes, Probe{Pattern: candidate.pattern, Hint: hint})
	}
	return nil, "", probes
}
