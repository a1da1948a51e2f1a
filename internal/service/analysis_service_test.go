package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fiscoex/internal/config"
	"fiscoex/internal/domain"
	"fiscoex/internal/llm"
	"fiscoex/internal/port"
	"fiscoex/internal/service"
	"fiscoex/internal/store"
	"fiscoex/mocks"
)

func TestAnalyze_RunsAllStagesInOrder(t *testing.T) {
	st := store.NewMemory()
	sessionID := newSessionWith(t, st)
	docs := service.NewDocumentService(st, config.UploadConfig{MaxFileSizeMB: 1})
	doc, err := docs.Extract(sessionID, service.ExtractInput{Filename: "nota.xml", Data: []byte(nfeSample)})
	require.NoError(t, err)

	client := new(mocks.MockComplianceClient)
	client.On("Model").Return("gpt-4o")
	client.On("Complete", mock.Anything, mock.Anything).Return("sem inconsistencias", nil).Once()
	client.On("Complete", mock.Anything, mock.Anything).Return("parecer ok", nil).Twice()

	var gotModel string
	factory := func(provider domain.LLMProvider, cfg *llm.ClientConfig) (port.ComplianceClient, error) {
		gotModel = cfg.Model
		return client, nil
	}

	svc := service.NewAnalysisService(st, config.LLMConfig{OpenAIModel: "gpt-4o", GeminiModel: "gemini-2.0-flash", TimeoutSecs: 5}, factory)
	result, err := svc.Analyze(context.Background(), sessionID, doc.ID)
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o", gotModel)
	assert.Equal(t, domain.ProviderOpenAI, result.Provider)
	require.Len(t, result.Stages, 3)
	assert.Equal(t, llm.StageValidator, result.Stages[0].Stage)
	assert.Equal(t, llm.StageAnalyst, result.Stages[1].Stage)
	assert.Equal(t, llm.StageTaxAdviser, result.Stages[2].Stage)
	assert.Equal(t, "sem inconsistencias", result.Stages[0].Assessment)
	assert.False(t, result.FinishedAt.Before(result.StartedAt))
	client.AssertExpectations(t)
}

func TestAnalyze_StageFailureStopsPipeline(t *testing.T) {
	st := store.NewMemory()
	sessionID := newSessionWith(t, st)
	docs := service.NewDocumentService(st, config.UploadConfig{MaxFileSizeMB: 1})
	doc, err := docs.Extract(sessionID, service.ExtractInput{Filename: "nota.xml", Data: []byte(nfeSample)})
	require.NoError(t, err)

	client := new(mocks.MockComplianceClient)
	client.On("Model").Return("gpt-4o")
	client.On("Complete", mock.Anything, mock.Anything).Return("", domain.ErrUpstreamService).Once()

	factory := func(provider domain.LLMProvider, cfg *llm.ClientConfig) (port.ComplianceClient, error) {
		return client, nil
	}

	svc := service.NewAnalysisService(st, config.LLMConfig{OpenAIModel: "gpt-4o", TimeoutSecs: 5}, factory)
	_, err = svc.Analyze(context.Background(), sessionID, doc.ID)
	assert.ErrorIs(t, err, domain.ErrUpstreamService)
	client.AssertNumberOfCalls(t, "Complete", 1)
}

func TestAnalyze_ClientFactoryErrorSurfaces(t *testing.T) {
	st := store.NewMemory()
	sessionID := newSessionWith(t, st)
	docs := service.NewDocumentService(st, config.UploadConfig{MaxFileSizeMB: 1})
	doc, err := docs.Extract(sessionID, service.ExtractInput{Filename: "nota.xml", Data: []byte(nfeSample)})
	require.NoError(t, err)

	wantErr := errors.New("unknown provider")
	factory := func(provider domain.LLMProvider, cfg *llm.ClientConfig) (port.ComplianceClient, error) {
		return nil, wantErr
	}

	svc := service.NewAnalysisService(st, config.LLMConfig{OpenAIModel: "gpt-4o"}, factory)
	_, err = svc.Analyze(context.Background(), sessionID, doc.ID)
	assert.ErrorIs(t, err, wantErr)
}
