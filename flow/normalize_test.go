package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeProcessorDefaults(t *testing.T) {
	r := NormalizeProcessor(map[string]any{}, "Root")

	assert.Empty(t, r.ID)
	assert.Empty(t, r.Name)
	assert.Empty(t, r.Type)
	assert.Equal(t, StateUnknown, r.State)
	assert.Nil(t, r.Position)
	assert.Equal(t, 0, r.PropertyCount)
	assert.Empty(t, r.Properties)
}

func TestNormalizeProcessorIdentifierFallback(t *testing.T) {
	// Registry-style exports use `identifier` instead of `id`.
	r := NormalizeProcessor(map[string]any{"identifier": "abc-123"}, "Root")
	assert.Equal(t, "abc-123", r.ID)
}

func TestNormalizeProcessorComponentEnvelope(t *testing.T) {
	node := map[string]any{
		"id": "outer-id",
		"component": map[string]any{
			"name":  "inner name",
			"type":  "org.apache.nifi.processors.standard.InvokeHTTP",
			"state": "stopped",
			"config": map[string]any{
				"properties":       map[string]any{"Remote URL": "http://example.com"},
				"schedulingPeriod": "30 sec",
			},
		},
	}
	r := NormalizeProcessor(node, "Root")

	assert.Equal(t, "outer-id", r.ID)
	assert.Equal(t, "inner name", r.Name)
	assert.Equal(t, "InvokeHTTP", r.Category())
	assert.Equal(t, StateStopped, r.State)
	assert.Equal(t, "30 sec", r.SchedulingPeriod)
	assert.Equal(t, "http://example.com", r.Properties["Remote URL"])
	assert.Equal(t, 1, r.PropertyCount)
}

func TestNormalizeProcessorStateVariants(t *testing.T) {
	tests := []struct {
		name string
		node map[string]any
		want string
	}{
		{"direct state", map[string]any{"state": "RUNNING"}, StateRunning},
		{"lowercase normalized", map[string]any{"state": "disabled"}, StateDisabled},
		{"scheduledState", map[string]any{"scheduledState": "STOPPED"}, StateStopped},
		{"status runStatus", map[string]any{"status": map[string]any{"runStatus": "Running"}}, StateRunning},
		{"unrecognized", map[string]any{"state": "Validating"}, StateUnknown},
		{"absent", map[string]any{}, StateUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NormalizeProcessor(tt.node, "Root")
			assert.Equal(t, tt.want, r.State)
		})
	}
}

func TestNormalizeProcessorPosition(t *testing.T) {
	r := NormalizeProcessor(map[string]any{
		"position": map[string]any{"x": 100.5, "y": -20.0},
	}, "Root")
	require.NotNil(t, r.Position)
	assert.Equal(t, 100.5, r.Position.X)
	assert.Equal(t, -20.0, r.Position.Y)

	r = NormalizeProcessor(map[string]any{
		"position": map[string]any{"x": "not a number"},
	}, "Root")
	assert.Nil(t, r.Position, "malformed position is dropped, not an error")
}

func TestNormalizeProcessorDirectProperties(t *testing.T) {
	// Versioned flow exports keep properties directly on the node.
	node := map[string]any{
		"id":         "p",
		"properties": map[string]any{"Input Directory": "/in", "Keystore Password": "x"},
	}
	r := NormalizeProcessor(node, "Root")
	assert.Equal(t, 2, r.PropertyCount)
	assert.Equal(t, "/in", r.Properties["Input Directory"])
	assert.Equal(t, SensitiveMask, r.Properties["Keystore Password"])
}

func TestNormalizeProcessorSchedulingAndRelationships(t *testing.T) {
	node := map[string]any{
		"id":                               "p",
		"schedulingStrategy":               "TIMER_DRIVEN",
		"schedulingPeriod":                 "0 sec",
		"penaltyDuration":                  "30 sec",
		"yieldDuration":                    "1 sec",
		"bulletinLevel":                    "WARN",
		"concurrentlySchedulableTaskCount": float64(4),
		"autoTerminatedRelationships":      []any{"failure", "original"},
		"relationships": []any{
			map[string]any{"name": "success", "description": "happy path", "autoTerminate": false},
			map[string]any{"name": "failure", "autoTerminate": true},
		},
	}
	r := NormalizeProcessor(node, "Root")

	assert.Equal(t, "TIMER_DRIVEN", r.SchedulingStrategy)
	assert.Equal(t, "0 sec", r.SchedulingPeriod)
	assert.Equal(t, "30 sec", r.PenaltyDuration)
	assert.Equal(t, "1 sec", r.YieldDuration)
	assert.Equal(t, "WARN", r.BulletinLevel)
	assert.Equal(t, 4, r.ConcurrentTasks)
	assert.Equal(t, []string{"failure", "original"}, r.AutoTerminatedRelationships)
	require.Len(t, r.Relationships, 2)
	assert.Equal(t, "success", r.Relationships[0].Name)
	assert.True(t, r.Relationships[1].AutoTerminate)
}

func TestCategoryKey(t *testing.T) {
	tests := []struct {
		typ  string
		want string
	}{
		{"org.apache.nifi.processors.standard.MergeContent", "MergeContent"},
		{"MergeContent", "MergeContent"},
		{"", ""},
	}
	for _, tt := range tests {
		r := ProcessorRecord{Type: tt.typ}
		assert.Equal(t, tt.want, r.Category())
	}
}
