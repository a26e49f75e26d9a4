package core

import "time"

// Result summarizes one sync run.
type Result struct {
	StartedAt     time.Time        `json:"started_at"`
	FinishedAt    time.Time        `json:"finished_at"`
	DurationMS    int64            `json:"duration_ms"`
	Categories    int              `json:"categories"`
	TablesDropped int              `json:"tables_dropped"`
	TablesCreated int              `json:"tables_created"`
	Components    int              `json:"components"`
	NewIDs        int              `json:"new_ids"`
	FieldMaps     int              `json:"field_maps"`
	DbLibPath     string           `json:"dblib_path,omitempty"`
	PerCategory   []CategoryResult `json:"per_category,omitempty"`
	Error         string           `json:"error,omitempty"`
}

// CategoryResult is the per-category part of a Result.
type CategoryResult struct {
	Name       string `json:"name"`
	Components int    `json:"components"`
	NewIDs     int    `json:"new_ids"`
}

// CategorySummary describes one spreadsheet tab as seen by validation.
type CategorySummary struct {
	Name     string   `json:"name"`
	Rows     int      `json:"rows"`
	Fields   int      `json:"fields"`
	Links    int      `json:"links"`
	Problems []string `json:"problems,omitempty"`
}
