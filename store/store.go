// Package store persists extraction runs to SQLite so past extractions can
// be listed and re-rendered without re-reading the original export.
package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/flowlens/flowlens/flow"
)

// Run is one persisted extraction.
type Run struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Source         string    `json:"source"`
	Pattern        string    `json:"pattern"`
	ProcessorCount int       `json:"processorCount"`
	CreatedAt      time.Time `json:"createdAt"`

	Processors []ProcessorRow `gorm:"foreignKey:RunID" json:"-"`
}

// ProcessorRow is the flattened persisted form of a flow.ProcessorRecord.
// Properties are stored as a JSON column; they are already cleaned and
// masked, so nothing sensitive reaches the database.
type ProcessorRow struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	RunID         uuid.UUID `gorm:"type:uuid;index" json:"runId"`
	ProcessorID   string    `json:"processorId"`
	Name          string    `json:"name"`
	Type          string    `json:"type"`
	Category      string    `json:"category"`
	GroupPath     string    `json:"group"`
	State         string    `json:"state"`
	PropertyCount int       `json:"propertyCount"`
	Properties    string    `json:"properties"`
}

// Pagination selects a page of results; pages are 1-based.
type Pagination struct {
	Page    int
	PerPage int
}

func (p Pagination) offset() int {
	page := p.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * p.limit()
}

func (p Pagination) limit() int {
	if p.PerPage < 1 {
		return 10
	}
	return p.PerPage
}

// Store wraps the gorm handle.
type Store struct {
	db *gorm.DB
}

// Open opens (creating if needed) the SQLite database at path and migrates
// the schema.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	if err := db.AutoMigrate(&Run{}, &ProcessorRow{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return &Store{db: db}, nil
}

// SaveRun persists one extraction result and returns the stored run.
func (s *Store) SaveRun(source string, result *flow.Result) (*Run, error) {
	run := &Run{
		ID:             uuid.New(),
		Source:         source,
		Pattern:        result.Pattern,
		ProcessorCount: len(result.Records),
		CreatedAt:      time.Now().UTC(),
	}
	for i := range result.Records {
		row, err := rowFromRecord(run.ID, &result.Records[i])
		if err != nil {
			return nil, err
		}
		run.Processors = append(run.Processors, *row)
	}
	if err := s.db.Create(run).Error; err != nil {
		return nil, fmt.Errorf("save run: %w", err)
	}
	return run, nil
}

// GetRun loads one run by id.
func (s *Store) GetRun(id uuid.UUID) (*Run, error) {
	var run Run
	if err := s.db.First(&run, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("load run %s: %w", id, err)
	}
	return &run, nil
}

// ListRuns returns a page of runs, newest first.
func (s *Store) ListRuns(p Pagination) ([]Run, error) {
	var runs []Run
	err := s.db.
		Order("created_at DESC").
		Offset(p.offset()).
		Limit(p.limit()).
		Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// GetRunProcessors loads all processor rows of one run.
func (s *Store) GetRunProcessors(id uuid.UUID) ([]ProcessorRow, error) {
	var rows []ProcessorRow
	if err := s.db.Where("run_id = ?", id).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load processors for run %s: %w", id, err)
	}
	return rows, nil
}

func rowFromRecord(runID uuid.UUID, r *flow.ProcessorRecord) (*ProcessorRow, error) {
	props, err := json.Marshal(r.Properties)
	if err != nil {
		return nil, fmt.Errorf("serialize properties for %q: %w", r.ID, err)
	}
	return &ProcessorRow{
		RunID:         runID,
		ProcessorID:   r.ID,
		Name:          r.Name,
		Type:          r.Type,
		Category:      r.Category(),
		GroupPath:     r.Group,
		State:         r.State,
		PropertyCount: r.PropertyCount,
		Properties:    string(props),
	}, nil
}

// Records rebuilds flow records from persisted rows, enough for the report
// renderers. Scheduling detail is not round-tripped.
func Records(rows []ProcessorRow) ([]flow.ProcessorRecord, error) {
	records := make([]flow.ProcessorRecord, 0, len(rows))
	for i := range rows {
		var props map[string]string
		if rows[i].Properties != "" {
			if err := json.Unmarshal([]byte(rows[i].Properties), &props); err != nil {
				return nil, fmt.Errorf("decode properties for %q: %w", rows[i].ProcessorID, err)
			}
		}
		records = append(records, flow.ProcessorRecord{
			ID:            rows[i].ProcessorID,
			Name:          rows[i].Name,
			Type:          rows[i].Type,
			Group:         rows[i].GroupPath,
			State:         rows[i].State,
			Properties:    props,
			PropertyCount: rows[i].PropertyCount,
		})
	}
	return records, nil
}
