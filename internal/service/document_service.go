package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"champdoc/internal/config"
	"champdoc/internal/domain"
	"champdoc/internal/port"
)

// DocumentInput is the DTO for one uploaded document in a batch.
type DocumentInput struct {
	FileName string
	Data     []byte
}

// DocumentService defines the document processing contract.
type DocumentService interface {
	ProcessBatch(ctx context.Context, inputs []DocumentInput) (*domain.Session, error)
	GetSession(ctx context.Context, id uuid.UUID) (*domain.Session, error)
}

type documentService struct {
	extractor port.TextExtractor
	analyzer  port.ContentAnalyzer
	sessions  port.SessionStore
	cfg       *config.BatchConfig
}

// NewDocumentService creates a new DocumentService implementation.
func NewDocumentService(
	extractor port.TextExtractor,
	analyzer port.ContentAnalyzer,
	sessions port.SessionStore,
	cfg *config.BatchConfig,
) DocumentService {
	return &documentService{
		extractor: extractor,
		analyzer:  analyzer,
		sessions:  sessions,
		cfg:       cfg,
	}
}

// ProcessBatch runs the pipeline for each document in upload order, one at a
// time. A failure on one document is recorded as a failed entry and the batch
// continues; the session always ends up with one entry per input.
func (s *documentService) ProcessBatch(ctx context.Context, inputs []DocumentInput) (*domain.Session, error) {
	if len(inputs) == 0 {
		return nil, domain.ErrNoFiles
	}
	if len(inputs) > s.cfg.MaxFiles {
		return nil, domain.ErrTooManyFiles
	}

	session := &domain.Session{
		ID:        uuid.New(),
		CreatedAt: time.Now().UTC(),
		Entries:   make([]domain.SessionEntry, 0, len(inputs)),
	}

	log.Printf("documentService.ProcessBatch: session %s processing %d document(s)", session.ID, len(inputs))

	for _, input := range inputs {
		doc := buildUploadedDocument(input)
		entry := s.processOne(ctx, doc)
		session.Entries = append(session.Entries, entry)
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}
	return session, nil
}

// processOne runs OCR then analysis for a single document. Both calls are
// synchronous; the analysis call starts only after OCR has completed.
func (s *documentService) processOne(ctx context.Context, doc *domain.UploadedDocument) domain.SessionEntry {
	entry := domain.SessionEntry{
		FileName:    doc.FileName,
		ContentType: doc.ContentType,
		FileSize:    doc.Size,
		PageCount:   doc.PageCount,
		Status:      domain.EntryStatusPending,
		ProcessedAt: time.Now().UTC(),
	}

	extracted, err := s.extractor.Extract(ctx, port.ExtractInput{
		FileName:    doc.FileName,
		FileBytes:   doc.Bytes,
		ContentType: doc.ContentType,
	})
	if err != nil {
		log.Printf("documentService.processOne: ocr failed for %s: %v", doc.FileName, err)
		entry.Status = domain.EntryStatusFailed
		entry.Error = readableError("text extraction failed", err)
		return entry
	}
	if entry.PageCount == 0 {
		entry.PageCount = extracted.PageCount
	}

	result, err := s.analyzer.Analyze(ctx, extracted.Text)
	if err != nil {
		log.Printf("documentService.processOne: analysis failed for %s: %v", doc.FileName, err)
		entry.Status = domain.EntryStatusFailed
		entry.Error = readableError("content analysis failed", err)
		return entry
	}

	entry.Status = domain.EntryStatusSucceeded
	entry.Result = result
	return entry
}

func (s *documentService) GetSession(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	return s.sessions.Get(ctx, id)
}

// buildUploadedDocument infers the content type from the filename and, for
// PDFs, counts pages. A PDF that pdfcpu cannot read keeps page count 0; the
// OCR service gets to judge it.
func buildUploadedDocument(input DocumentInput) *domain.UploadedDocument {
	ext := strings.ToLower(filepath.Ext(input.FileName))
	contentType := mime.TypeByExtension(ext)
	if fileType, ok := domain.AllowedExtensions[strings.TrimPrefix(ext, ".")]; ok {
		contentType = domain.AllowedFileTypes[fileType]
	}

	doc := &domain.UploadedDocument{
		FileName:    input.FileName,
		ContentType: contentType,
		Size:        int64(len(input.Data)),
		Bytes:       input.Data,
	}

	if contentType == "application/pdf" {
		count, err := api.PageCount(bytes.NewReader(input.Data), nil)
		if err != nil {
			log.Printf("documentService: page count failed for %s: %v", input.FileName, err)
		} else {
			doc.PageCount = count
		}
	}

	return doc
}

// readableError renders an adapter failure as a user-facing message, never
// a raw stack trace.
func readableError(prefix string, err error) string {
	return prefix + ": " + err.Error()
}
