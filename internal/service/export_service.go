package service

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"fiscoex/internal/domain"
	"fiscoex/internal/export"
	"fiscoex/internal/store"
)

// Artifact is one downloadable export: a whole file produced in a single
// invocation, never streamed.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders stored documents as downloadable artifacts.
type ExportService interface {
	Export(sessionID, docID uuid.UUID, format domain.ExportFormat, mode domain.ExportMode) (*Artifact, error)
}

type exportService struct {
	store *store.Memory
}

// NewExportService creates an ExportService implementation.
func NewExportService(st *store.Memory) ExportService {
	return &exportService{store: st}
}

func (s *exportService) Export(sessionID, docID uuid.UUID, format domain.ExportFormat, mode domain.ExportMode) (*Artifact, error) {
	doc, err := s.store.GetDocument(sessionID, docID)
	if err != nil {
		return nil, err
	}
	sess, err := s.store.GetSession(sessionID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	switch format {
	case domain.FormatCSV:
		table, err := export.BuildTable(doc, mode, sess.Cipher)
		if err != nil {
			return nil, err
		}
		if err := export.WriteCSV(&buf, table); err != nil {
			return nil, fmt.Errorf("export.Export: %w", err)
		}
	case domain.FormatXLSX:
		wb, err := export.BuildWorkbook(doc, mode, sess.Cipher)
		if err != nil {
			return nil, err
		}
		if err := wb.Write(&buf); err != nil {
			return nil, fmt.Errorf("export.Export: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}

	return &Artifact{
		Filename:    artifactName(doc.Name, mode, format),
		ContentType: domain.ExportContentTypes[format],
		Data:        buf.Bytes(),
	}, nil
}

func artifactName(docName string, mode domain.ExportMode, format domain.ExportFormat) string {
	base := docName
	if i := strings.LastIndex(base, "."); i > 0 {
		base = base[:i]
	}
	base = strings.ReplaceAll(base, " ", "_")
	stamp := time.Now().Format("20060102_150405")
	return fmt.Sprintf("%s_%s_%s.%s", base, mode, stamp, format)
}
