package domain

// SourceKind identifies the fiscal document format a record was extracted from.
type SourceKind string

const (
	SourceSPED SourceKind = "sped"
	SourceNFe  SourceKind = "nfe"
)

// AllowedExtensions maps upload file extensions (without dot) to SourceKind.
var AllowedExtensions = map[string]SourceKind{
	"txt": SourceSPED,
	"xml": SourceNFe,
}

// RecordRole distinguishes the shape of an extracted record within a document.
type RecordRole string

const (
	RoleHeader RecordRole = "cabecalho"
	RoleItem   RecordRole = "item"
	RoleSPED   RecordRole = "registro"
)

// SensitiveCategory classifies a field value for masking purposes.
type SensitiveCategory string

const (
	CategoryDocumentID SensitiveCategory = "document_id"
	CategoryMonetary   SensitiveCategory = "monetary"
	CategoryNone       SensitiveCategory = "none"
)

// ExportMode selects how sensitive values are rendered in an export.
type ExportMode string

const (
	ModeRaw       ExportMode = "raw"
	ModeMasked    ExportMode = "masked"
	ModeEncrypted ExportMode = "encrypted"
)

// ExportFormat selects the tabular artifact type.
type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatXLSX ExportFormat = "xlsx"
)

// ExportContentTypes maps ExportFormat to its MIME content type.
var ExportContentTypes = map[ExportFormat]string{
	FormatCSV:  "text/csv; charset=utf-8",
	FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// LLMProvider identifies a supported compliance-analysis backend.
type LLMProvider string

const (
	ProviderOpenAI LLMProvider = "openai"
	ProviderGemini LLMProvider = "gemini"
)
