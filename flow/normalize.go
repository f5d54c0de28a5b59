package flow

// NormalizeProcessor converts one raw processor node into a ProcessorRecord.
// The export variants scatter fields between the node itself, a `component`
// envelope, a `status` block and a `config` block; every field is probed in
// that order and missing fields take their documented defaults. A node with
// no id at all is still emitted, with an empty id, so partially malformed
// exports lose nothing silently.
func NormalizeProcessor(node map[string]any, group string) ProcessorRecord {
	component, _ := node["component"].(map[string]any)
	status, _ := node["status"].(map[string]any)
	config := configBlock(node, component)

	record := ProcessorRecord{
		ID:    firstString(node, component, "id", "identifier"),
		Name:  firstString(node, component, "name"),
		Type:  firstString(node, component, "type"),
		Group: group,
		State: normalizeState(rawState(node, component, status)),
	}

	record.Position = positionOf(node, component)

	raw := rawProperties(node, component, config)
	record.Properties = CleanProperties(raw)
	record.PropertyCount = len(raw)

	record.SchedulingStrategy = firstStringMaps("schedulingStrategy", node, component, config)
	record.SchedulingPeriod = firstStringMaps("schedulingPeriod", node, component, config)
	record.PenaltyDuration = firstStringMaps("penaltyDuration", node, component, config)
	record.YieldDuration = firstStringMaps("yieldDuration", node, component, config)
	record.BulletinLevel = firstStringMaps("bulletinLevel", node, component, config)
	record.ConcurrentTasks = firstIntMaps("concurrentlySchedulableTaskCount", node, component, config)
	record.AutoTerminatedRelationships = stringList(firstValue("autoTerminatedRelationships", node, component, config))
	record.Relationships = relationshipList(firstValue("relationships", node, component))

	return record
}

func configBlock(node, component map[string]any) map[string]any {
	if component != nil {
		if cfg, ok := component["config"].(map[string]any); ok {
			return cfg
		}
	}
	cfg, _ := node["config"].(map[string]any)
	return cfg
}

func rawState(node, component, status map[string]any) string {
	for _, source := range []map[string]any{component, node} {
		if source == nil {
			continue
		}
		for _, key := range []string{"state", "scheduledState"} {
			if s := stringField(source, key); s != "" {
				return s
			}
		}
	}
	if status != nil {
		if s := stringField(status, "runStatus"); s != "" {
			return s
		}
	}
	return ""
}

func rawProperties(node, component, config map[string]any) map[string]any {
	sources := []map[string]any{config, component, node}
	for _, source := range sources {
		if source == nil {
			continue
		}
		if props, ok := source["properties"].(map[string]any); ok {
			return props
		}
	}
	return nil
}

func positionOf(node, component map[string]any) *Position {
	for _, source := range []map[string]any{node, component} {
		if source == nil {
			continue
		}
		pos, ok := source["position"].(map[string]any)
		if !ok {
			continue
		}
		x, okX := pos["x"].(float64)
		y, okY := pos["y"].(float64)
		if okX && okY {
			return &Position{X: x, Y: y}
		}
	}
	return nil
}

func relationshipList(value any) []Relationship {
	entries, ok := value.([]any)
	if !ok {
		return nil
	}
	var rels []Relationship
	for _, entry := range entries {
		node, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		auto, _ := node["autoTerminate"].(bool)
		rels = append(rels, Relationship{
			Name:          stringField(node, "name"),
			Description:   stringField(node, "description"),
			AutoTerminate: auto,
		})
	}
	return rels
}

func stringList(value any) []string {
	entries, ok := value.([]any)
	if !ok {
		return nil
	}
	var items []string
	for _, entry := range entries {
		if s, ok := entry.(string); ok {
			items = append(items, s)
		}
	}
	return items
}

func stringField(node map[string]any, key string) string {
	if node == nil {
		return ""
	}
	s, _ := node[key].(string)
	return s
}

// firstString probes the node, then its component envelope, for the first
// key holding a non-empty string.
func firstString(node, component map[string]any, keys ...string) string {
	for _, source := range []map[string]any{node, component} {
		for _, key := range keys {
			if s := stringField(source, key); s != "" {
				return s
			}
		}
	}
	return ""
}

func firstStringMaps(key string, sources ...map[string]any) string {
	for _, source := range sources {
		if s := stringField(source, key); s != "" {
			return s
		}
	}
	return ""
}

func firstIntMaps(key string, sources ...map[string]any) int {
	for _, source := range sources {
		if source == nil {
			continue
		}
		if f, ok := source[key].(float64); ok {
			return int(f)
		}
	}
	return 0
}

func firstValue(key string, sources ...map[string]any) any {
	for _, source := range sources {
		if source == nil {
			continue
		}
		if v, ok := source[key]; ok {
			return v
		}
	}
	return nil
}
