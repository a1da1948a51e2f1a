package mocks

import (
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"fiscoex/internal/domain"
	"fiscoex/internal/service"
)

// MockDocumentService is a mock implementation of service.DocumentService.
type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Extract(sessionID uuid.UUID, input service.ExtractInput) (*domain.Document, error) {
	args := m.Called(sessionID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentService) Get(sessionID, docID uuid.UUID) (*domain.Document, error) {
	args := m.Called(sessionID, docID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentService) List(sessionID uuid.UUID) ([]service.DocumentMeta, error) {
	args := m.Called(sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.DocumentMeta), args.Error(1)
}

func (m *MockDocumentService) Render(sessionID, docID uuid.UUID, mode domain.ExportMode) (*service.DocumentView, error) {
	args := m.Called(sessionID, docID, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DocumentView), args.Error(1)
}
