package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowlens/flowlens/dto"
	"github.com/flowlens/flowlens/store"
)

const flowBody = `{"flowContents": {"processors": [{"id":"p1","component":{"name":"A","type":"org.apache.nifi.processors.standard.MergeContent"},"status":{"runStatus":"Running"}}], "processGroups": []}}`

func newTestAPI(t *testing.T) *fiber.App {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	return NewRunAPI(st)
}

func postFlow(t *testing.T, app *fiber.App, body string) dto.ExtractResponseDTO {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, "/api/runs?source=test.json", strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var decoded dto.ExtractResponseDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return decoded
}

func TestCreateRun(t *testing.T) {
	app := newTestAPI(t)
	decoded := postFlow(t, app, flowBody)

	assert.True(t, decoded.Recognized)
	assert.Equal(t, "flowContents", decoded.Pattern)
	require.Len(t, decoded.Processors, 1)
	assert.Equal(t, "p1", decoded.Processors[0].ID)
	assert.Equal(t, "MergeContent", decoded.Processors[0].Category)
	require.NotNil(t, decoded.Run)
	assert.Equal(t, "test.json", decoded.Run.Source)
}

func TestCreateRunMalformedJSON(t *testing.T) {
	app := newTestAPI(t)
	req := httptest.NewRequest(fiber.MethodPost, "/api/runs", strings.NewReader(`{"broken`))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCreateRunUnrecognizedStructureIsNotAnError(t *testing.T) {
	app := newTestAPI(t)
	decoded := postFlow(t, app, `{}`)

	assert.False(t, decoded.Recognized)
	assert.Empty(t, decoded.Processors)
	assert.NotEmpty(t, decoded.Probes, "probe hints explain the miss")
}

func TestGetRunAndProcessors(t *testing.T) {
	app := newTestAPI(t)
	created := postFlow(t, app, flowBody)
	require.NotNil(t, created.Run)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/runs/"+created.Run.ID.String(), nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, fmt.Sprintf("/api/runs/%s/processors", created.Run.ID), nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var processors []dto.ProcessorDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&processors))
	require.Len(t, processors, 1)
	assert.Equal(t, "A", processors[0].Name)
}

func TestListRuns(t *testing.T) {
	app := newTestAPI(t)
	postFlow(t, app, flowBody)
	postFlow(t, app, flowBody)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/runs?page=1&size=10", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var runs []dto.RunDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&runs))
	assert.Len(t, runs, 2)
}

func TestGetRunReportCSV(t *testing.T) {
	app := newTestAPI(t)
	created := postFlow(t, app, flowBody)

	for _, kind := range []string{"summary", "key", "matrix"} {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, fmt.Sprintf("/api/runs/%s/reports/%s", created.Run.ID, kind), nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode, "kind %s", kind)
		assert.Equal(t, "text/csv", resp.Header.Get(fiber.HeaderContentType))

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), "p1")
	}

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, fmt.Sprintf("/api/runs/%s/reports/bogus", created.Run.ID), nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetRunInvalidID(t *testing.T) {
	app := newTestAPI(t)
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/runs/not-a-uuid", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
