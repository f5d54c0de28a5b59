package dto

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowlens/flowlens/flow"
	"github.com/flowlens/flowlens/store"
)

func TestRunEntityToDTO(t *testing.T) {
	run := &store.Run{
		ID:             uuid.New(),
		Source:         "flow.json",
		Pattern:        "flowContents",
		ProcessorCount: 3,
		CreatedAt:      time.Now().UTC(),
	}
	d := RunEntityToDTO(run)

	assert.Equal(t, run.ID, d.ID)
	assert.True(t, d.Recognized)

	run.Pattern = ""
	assert.False(t, RunEntityToDTO(run).Recognized)
}

func TestRecordToDTO(t *testing.T) {
	r := &flow.ProcessorRecord{
		ID:            "p1",
		Name:          "merge",
		Type:          "org.apache.nifi.processors.standard.MergeContent",
		Group:         "Root",
		State:         flow.StateRunning,
		Properties:    map[string]string{"Merge Strategy": "Defragment"},
		PropertyCount: 1,
	}
	d := RecordToDTO(r)

	assert.Equal(t, "MergeContent", d.Category)
	assert.Equal(t, "Defragment", d.Properties["Merge Strategy"])
}

func TestRowToDTO(t *testing.T) {
	row := &store.ProcessorRow{
		ProcessorID: "p1",
		Name:        "merge",
		Category:    "MergeContent",
		GroupPath:   "Root",
		Properties:  `{"Merge Strategy":"Defragment"}`,
	}
	d := RowToDTO(row)
	assert.Equal(t, "Defragment", d.Properties["Merge Strategy"])

	row.Properties = "{corrupt"
	d = RowToDTO(row)
	assert.NotNil(t, d.Properties, "corrupt column degrades to empty mapping")
}

func TestResultToResponse(t *testing.T) {
	result := &flow.Result{
		Pattern: "processors",
		Records: []flow.ProcessorRecord{{ID: "p1"}},
	}
	resp := ResultToResponse(result, nil)

	assert.True(t, resp.Recognized)
	require.Len(t, resp.Processors, 1)
	assert.Nil(t, resp.Run)

	unrecognized := &flow.Result{
		Probes: []flow.Probe{{Pattern: "flowContents", Hint: "key `flowContents` absent"}},
	}
	resp = ResultToResponse(unrecognized, nil)
	assert.False(t, resp.Recognized)
	require.Len(t, resp.Probes, 1)
	assert.Equal(t, "flowContents", resp.Probes[0].Pattern)
}
