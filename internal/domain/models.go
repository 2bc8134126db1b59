package domain

import (
	"time"

	"github.com/google/uuid"
)

// UploadedDocument carries one uploaded file through a single pipeline run.
// It is never persisted; the bytes live only for the duration of the batch.
type UploadedDocument struct {
	FileName    string
	ContentType string
	Size        int64
	PageCount   int // PDF only; 0 when unknown
	Bytes       []byte
}

// InvalidCode is a code present in a document that does not conform to the
// expected format or permitted set for its document type.
type InvalidCode struct {
	Code   string `json:"code"`
	Reason string `json:"reason"`
}

// AnalysisResult is the structured outcome of content analysis for one document.
// MissingCodes and InvalidCodes are never nil.
type AnalysisResult struct {
	DocumentType      DocumentType  `json:"document_type"`
	HasIssues         bool          `json:"has_issues"`
	MissingCodes      []string      `json:"missing_codes"`
	InvalidCodes      []InvalidCode `json:"invalid_codes"`
	WrongDocumentType bool          `json:"wrong_document_type"`
	ExpectedType      string        `json:"expected_type"`
	Errors            []string      `json:"errors"`
	Notes             string        `json:"notes"`
	ModelUsed         string        `json:"model_used"`
}

// SessionEntry is the recorded outcome for one document in a batch.
// Exactly one of Result or Error is set once Status leaves pending.
type SessionEntry struct {
	FileName    string          `json:"file_name"`
	ContentType string          `json:"content_type"`
	FileSize    int64           `json:"file_size"`
	PageCount   int             `json:"page_count,omitempty"`
	Status      EntryStatus     `json:"status"`
	Result      *AnalysisResult `json:"result,omitempty"`
	Error       string          `json:"error,omitempty"`
	ProcessedAt time.Time       `json:"processed_at"`
}

// Session is the append-only result sequence for one processed batch.
// It lives in process memory only and is discarded on restart.
type Session struct {
	ID        uuid.UUID      `json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	Entries   []SessionEntry `json:"entries"`
}

// HasIssues reports whether any entry in the session failed or was analyzed
// with issues.
func (s *Session) HasIssues() bool {
	for i := range s.Entries {
		e := &s.Entries[i]
		if e.Status == EntryStatusFailed {
			return true
		}
		if e.Result != nil && e.Result.HasIssues {
			return true
		}
	}
	return false
}
