// @title CHAMPVA Claim Document Validator API
// @version 1.0
// @description Validates CHAMPVA claim-support documents for missing or invalid medical codes using hosted OCR and content-analysis services.
// @BasePath /api/v1
package main

import (
	"fmt"
	"log"
	"net/http"

	_ "champdoc/docs"
	"champdoc/internal/analysis/openai"
	"champdoc/internal/config"
	"champdoc/internal/handler"
	"champdoc/internal/ocr/mistral"
	"champdoc/internal/router"
	"champdoc/internal/service"
	"champdoc/internal/store/memory"
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

	// Initialize adapters
	extractor := mistral.NewClient(&cfg.OCR)
	analyzer, err := openai.NewAnalyzer(&cfg.Analysis)
	if err != nil {
		return fmt.Errorf("failed to initialize analyzer: %w", err)
	}

	// Initialize services
	sessions := memory.NewSessionStore()
	docSvc := service.NewDocumentService(extractor, analyzer, sessions, &cfg.Batch)

	// Initialize handlers
	docH := handler.NewDocumentHandler(docSvc, cfg.Batch.MaxFiles)
	sessionH := handler.NewSessionHandler(docSvc)
	healthH := handler.NewHealthHandler()

	// Setup router
	r := router.Setup(cfg, docH, sessionH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
