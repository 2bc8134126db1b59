package port

import "context"

// ExtractInput carries the data needed for OCR text extraction.
type ExtractInput struct {
	FileName    string
	FileBytes   []byte
	ContentType string
}

// ExtractOutput contains the text extracted from one document.
type ExtractOutput struct {
	Text      string
	PageCount int
	ModelUsed string
}

// TextExtractor abstracts remote OCR text extraction.
type TextExtractor interface {
	Extract(ctx context.Context, input ExtractInput) (*ExtractOutput, error)
}
