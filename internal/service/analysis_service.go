package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"fiscoex/internal/config"
	"fiscoex/internal/domain"
	"fiscoex/internal/llm"
	"fiscoex/internal/port"
	"fiscoex/internal/store"
)

// AnalysisService runs the sequential compliance analysis over a stored
// document: validator, then analyst, then tax adviser, each stage seeing
// the output of the stages before it.
type AnalysisService interface {
	Analyze(ctx context.Context, sessionID, docID uuid.UUID) (*domain.AnalysisResult, error)
}

type analysisService struct {
	store     *store.Memory
	llmCfg    config.LLMConfig
	newClient ClientFactory
}

// NewAnalysisService creates an AnalysisService. A nil factory uses the
// registered provider clients.
func NewAnalysisService(st *store.Memory, llmCfg config.LLMConfig, factory ClientFactory) AnalysisService {
	if factory == nil {
		factory = llm.NewClient
	}
	return &analysisService{store: st, llmCfg: llmCfg, newClient: factory}
}

func (s *analysisService) Analyze(ctx context.Context, sessionID, docID uuid.UUID) (*domain.AnalysisResult, error) {
	doc, err := s.store.GetDocument(sessionID, docID)
	if err != nil {
		return nil, err
	}
	sess, err := s.store.GetSession(sessionID)
	if err != nil {
		return nil, err
	}

	model := s.llmCfg.OpenAIModel
	if sess.Provider == domain.ProviderGemini {
		model = s.llmCfg.GeminiModel
	}
	client, err := s.newClient(sess.Provider, &llm.ClientConfig{
		APIKey:      sess.APIKey,
		Model:       model,
		TimeoutSecs: s.llmCfg.TimeoutSecs,
	})
	if err != nil {
		return nil, err
	}

	serialized := llm.SerializeDocument(doc)
	result := &domain.AnalysisResult{
		DocumentID: doc.ID,
		Provider:   sess.Provider,
		Model:      client.Model(),
		StartedAt:  time.Now(),
	}

	validator, err := s.runStage(ctx, client, llm.StageValidator, llm.ValidatorPrompt(serialized), result)
	if err != nil {
		return nil, err
	}
	analyst, err := s.runStage(ctx, client, llm.StageAnalyst, llm.AnalystPrompt(serialized, validator), result)
	if err != nil {
		return nil, err
	}
	if _, err := s.runStage(ctx, client, llm.StageTaxAdviser,
		llm.TaxAdviserPrompt(serialized, validator, analyst), result); err != nil {
		return nil, err
	}

	result.FinishedAt = time.Now()
	return result, nil
}

// runStage makes one synchronous provider call. Failures surface verbatim:
// there is no retry or backoff policy.
func (s *analysisService) runStage(
	ctx context.Context,
	client port.ComplianceClient,
	stage, prompt string,
	result *domain.AnalysisResult,
) (string, error) {
	start := time.Now()
	out, err := client.Complete(ctx, port.CompletionInput{
		System: llm.SystemPrompt(),
		Prompt: prompt,
	})
	if err != nil {
		log.Printf("analysis stage %s failed after %s: %v", stage, time.Since(start), err)
		return "", err
	}
	result.Stages = append(result.Stages, domain.AnalysisStageResult{
		Stage:      stage,
		Assessment: out,
		Elapsed:    time.Since(start),
	})
	return out, nil
}
