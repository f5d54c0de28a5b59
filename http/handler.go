// Package http exposes extraction runs over a small REST API.
package http

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/flowlens/flowlens/dto"
	"github.com/flowlens/flowlens/flow"
	"github.com/flowlens/flowlens/report"
	"github.com/flowlens/flowlens/store"
)

type runAPI struct {
	store *store.Store
}

// NewRunAPI builds the fiber app serving submitted flow documents and their
// persisted extraction runs.
func NewRunAPI(st *store.Store) *fiber.App {
	api := &runAPI{store: st}
	app := fiber.New(fiber.Config{
		BodyLimit: 64 * 1024 * 1024, // flow exports can be large
	})
	api.setupRoutes(app)
	return app
}

func (a *runAPI) setupRoutes(app *fiber.App) {
	app.Post("/api/runs", a.createRun)
	app.Get("/api/runs", a.listRuns)
	app.Get("/api/runs/:id", a.getRun)
	app.Get("/api/runs/:id/processors", a.getRunProcessors)
	app.Get("/api/runs/:id/reports/:kind", a.getRunReport)
}

// createRun accepts a raw flow-definition JSON body, extracts it and
// persists the result. A document with no recognizable flow structure is
// still a successful run with zero processors; only unparseable JSON is
// rejected.
func (a *runAPI) createRun(c *fiber.Ctx) error {
	source := c.Query("source", "upload")
	result, err := flow.Extract(c.Body())
	if err != nil {
		if errors.Is(err, flow.ErrMalformedJSON) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	run, err := a.store.SaveRun(source, result)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ResultToResponse(result, run))
}

func (a *runAPI) listRuns(c *fiber.Ctx) error {
	pagination := store.Pagination{
		Page:    c.QueryInt("page", 1),
		PerPage: c.QueryInt("size", 10),
	}
	runs, err := a.store.ListRuns(pagination)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	runDTOs := make([]*dto.RunDTO, 0, len(runs))
	for i := range runs {
		runDTOs = append(runDTOs, dto.RunEntityToDTO(&runs[i]))
	}
	return c.JSON(runDTOs)
}

func (a *runAPI) getRun(c *fiber.Ctx) error {
	run, ok, err := a.loadRun(c)
	if !ok {
		return err
	}
	return c.JSON(dto.RunEntityToDTO(run))
}

func (a *runAPI) getRunProcessors(c *fiber.Ctx) error {
	run, ok, err := a.loadRun(c)
	if !ok {
		return err
	}
	rows, err := a.store.GetRunProcessors(run.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	processorDTOs := make([]*dto.ProcessorDTO, 0, len(rows))
	for i := range rows {
		processorDTOs = append(processorDTOs, dto.RowToDTO(&rows[i]))
	}
	return c.JSON(processorDTOs)
}

// getRunReport streams one of the CSV tables for a stored run.
func (a *runAPI) getRunReport(c *fiber.Ctx) error {
	run, ok, err := a.loadRun(c)
	if !ok {
		return err
	}
	rows, err := a.store.GetRunProcessors(run.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	records, err := store.Records(rows)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	kind := c.Params("kind")
	var buf bytes.Buffer
	switch kind {
	case "summary":
		err = report.WriteSummary(&buf, records)
	case "key":
		err = report.WriteKeyProcessors(&buf, records)
	case "matrix":
		err = report.WritePropertyMatrix(&buf, records)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown report kind, want summary, key or matrix"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s_%s.csv"`, run.ID, kind))
	return c.Send(buf.Bytes())
}

// loadRun parses the :id param and loads the run, writing the error response
// itself when something is off. ok is false when the caller should return
// the accompanying error directly.
func (a *runAPI) loadRun(c *fiber.Ctx) (*store.Run, bool, error) {
	runID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid run ID"})
	}
	run, err := a.store.GetRun(runID)
	if err != nil {
		return nil, false, c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	return run, true, nil
}
