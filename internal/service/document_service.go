package service

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"fiscoex/internal/config"
	"fiscoex/internal/domain"
	"fiscoex/internal/export"
	"fiscoex/internal/nfe"
	"fiscoex/internal/sped"
	"fiscoex/internal/store"
)

// ExtractInput carries one uploaded file into the pipeline.
type ExtractInput struct {
	Filename string
	Data     []byte
}

// DocumentMeta is the raw-value-free projection of a stored document. API
// responses carry metadata plus a rendered table, never the stored records,
// so raw values only leave through an explicit raw rendering.
type DocumentMeta struct {
	ID           uuid.UUID         `json:"id"`
	Name         string            `json:"name"`
	Kind         domain.SourceKind `json:"kind"`
	RecordCount  int               `json:"record_count"`
	Warnings     []string          `json:"warnings,omitempty"`
	WarningCount int               `json:"warning_count"`
	CreatedAt    time.Time         `json:"created_at"`
}

// DocumentView is a document projected for on-screen display: the table
// carries the selected rendering of sensitive values.
type DocumentView struct {
	Document DocumentMeta      `json:"document"`
	Mode     domain.ExportMode `json:"mode"`
	Table    *export.Table     `json:"table"`
}

func metaOf(doc *domain.Document) DocumentMeta {
	return DocumentMeta{
		ID:           doc.ID,
		Name:         doc.Name,
		Kind:         doc.Kind,
		RecordCount:  len(doc.Records),
		Warnings:     doc.Warnings,
		WarningCount: doc.WarningCount,
		CreatedAt:    doc.CreatedAt,
	}
}

// DocumentService runs the extraction pipeline and serves session-scoped
// documents.
type DocumentService interface {
	Extract(sessionID uuid.UUID, input ExtractInput) (*domain.Document, error)
	Get(sessionID, docID uuid.UUID) (*domain.Document, error)
	List(sessionID uuid.UUID) ([]DocumentMeta, error)
	Render(sessionID, docID uuid.UUID, mode domain.ExportMode) (*DocumentView, error)
}

type documentService struct {
	store     *store.Memory
	uploadCfg config.UploadConfig
}

// NewDocumentService creates a DocumentService implementation.
func NewDocumentService(st *store.Memory, uploadCfg config.UploadConfig) DocumentService {
	return &documentService{store: st, uploadCfg: uploadCfg}
}

// Extract parses the uploaded bytes per their extension, tags nothing and
// transforms nothing: the stored document always holds raw extracted values.
func (s *documentService) Extract(sessionID uuid.UUID, input ExtractInput) (*domain.Document, error) {
	if int64(len(input.Data)) > s.uploadCfg.MaxFileSizeBytes() {
		return nil, domain.ErrFileTooLarge
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(input.Filename)), ".")
	kind, ok := domain.AllowedExtensions[ext]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	doc := &domain.Document{
		ID:        uuid.New(),
		Name:      filepath.Base(input.Filename),
		Kind:      kind,
		CreatedAt: time.Now(),
	}

	switch kind {
	case domain.SourceSPED:
		res, err := sped.Parse(bytes.NewReader(input.Data))
		if err != nil {
			return nil, fmt.Errorf("document.Extract: %w", err)
		}
		doc.Records = res.Records
		doc.Warnings = res.Warnings
		doc.WarningCount = len(res.Warnings)
	case domain.SourceNFe:
		records, err := nfe.Parse(bytes.NewReader(input.Data))
		if err != nil {
			return nil, err
		}
		doc.Records = records
	}

	if err := s.store.PutDocument(sessionID, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *documentService) Get(sessionID, docID uuid.UUID) (*domain.Document, error) {
	return s.store.GetDocument(sessionID, docID)
}

func (s *documentService) List(sessionID uuid.UUID) ([]DocumentMeta, error) {
	docs, err := s.store.ListDocuments(sessionID)
	if err != nil {
		return nil, err
	}
	metas := make([]DocumentMeta, len(docs))
	for i, doc := range docs {
		metas[i] = metaOf(doc)
	}
	return metas, nil
}

// Render projects a stored document for display. Encrypted rendering needs
// the session cipher; raw and masked do not.
func (s *documentService) Render(sessionID, docID uuid.UUID, mode domain.ExportMode) (*DocumentView, error) {
	doc, err := s.store.GetDocument(sessionID, docID)
	if err != nil {
		return nil, err
	}
	sess, err := s.store.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	table, err := export.BuildTable(doc, mode, sess.Cipher)
	if err != nil {
		return nil, err
	}
	return &DocumentView{Document: metaOf(doc), Mode: mode, Table: table}, nil
}
