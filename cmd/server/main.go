package main

import (
	"fmt"
	"log"
	"time"

	"fiscoex/internal/config"
	"fiscoex/internal/handler"
	"fiscoex/internal/router"
	"fiscoex/internal/service"
	"fiscoex/internal/store"

	_ "fiscoex/internal/llm/gemini"
	_ "fiscoex/internal/llm/openai"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	st := store.NewMemory()
	go sweepLoop(st, cfg.Session.Expiry)

	// Initialize services
	sessionSvc := service.NewSessionService(st, cfg.Session, cfg.Cipher, cfg.LLM, nil)
	documentSvc := service.NewDocumentService(st, cfg.Upload)
	exportSvc := service.NewExportService(st)
	analysisSvc := service.NewAnalysisService(st, cfg.LLM, nil)

	// Initialize handlers
	sessionH := handler.NewSessionHandler(sessionSvc)
	documentH := handler.NewDocumentHandler(documentSvc)
	exportH := handler.NewExportHandler(exportSvc)
	analysisH := handler.NewAnalysisHandler(analysisSvc)
	healthH := handler.NewHealthHandler()

	// Setup router
	r := router.Setup(sessionSvc, cfg.CORS.AllowedOrigins, sessionH, documentH, exportH, analysisH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

// sweepLoop drops expired sessions, and with them every document and key
// derived for those sessions.
func sweepLoop(st *store.Memory, expiry time.Duration) {
	interval := expiry / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for range t.C {
		if n := st.SweepExpired(time.Now()); n > 0 {
			log.Printf("swept %d expired sessions", n)
		}
	}
}
