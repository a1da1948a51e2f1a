package mocks

import (
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"fiscoex/internal/domain"
	"fiscoex/internal/service"
)

// MockExportService is a mock implementation of service.ExportService.
type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) Export(sessionID, docID uuid.UUID, format domain.ExportFormat, mode domain.ExportMode) (*service.Artifact, error) {
	args := m.Called(sessionID, docID, format, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Artifact), args.Error(1)
}
