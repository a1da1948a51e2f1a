package domain

import (
	"time"

	"github.com/google/uuid"
)

// Field is a single named value inside an extracted record. Order matters:
// records keep their fields in extraction order.
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ExtractedRecord is one parsed line (SPED) or document section (NF-e).
// Records are immutable after creation; masked and encrypted renderings are
// computed projections, never in-place edits.
type ExtractedRecord struct {
	Kind       SourceKind `json:"kind"`
	Role       RecordRole `json:"role"`
	Block      string     `json:"block,omitempty"`       // SPED block code ("0", "C", "E")
	RecordType string     `json:"record_type,omitempty"` // SPED record code ("C100")
	Fields     []Field    `json:"fields"`
}

// Get returns the value of the named field and whether it was present.
func (r *ExtractedRecord) Get(name string) (string, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// Document is the result of extracting one uploaded file. Records preserve
// input order (SPED line order; NF-e header first, then items in declaration
// order).
type Document struct {
	ID           uuid.UUID         `json:"id"`
	Name         string            `json:"name"`
	Kind         SourceKind        `json:"kind"`
	Records      []ExtractedRecord `json:"records"`
	Warnings     []string          `json:"warnings,omitempty"`
	WarningCount int               `json:"warning_count"`
	CreatedAt    time.Time         `json:"created_at"`
}

// AnalysisStageResult holds the output of one compliance-analysis stage.
type AnalysisStageResult struct {
	Stage      string        `json:"stage"`
	Assessment string        `json:"assessment"`
	Elapsed    time.Duration `json:"elapsed_ms"`
}

// AnalysisResult is the aggregate of the sequential three-stage run.
type AnalysisResult struct {
	DocumentID uuid.UUID             `json:"document_id"`
	Provider   LLMProvider           `json:"provider"`
	Model      string                `json:"model"`
	Stages     []AnalysisStageResult `json:"stages"`
	StartedAt  time.Time             `json:"started_at"`
	FinishedAt time.Time             `json:"finished_at"`
}
