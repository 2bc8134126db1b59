package render_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"champdoc/internal/domain"
	"champdoc/internal/render"
)

func TestEntry_ValidDocument(t *testing.T) {
	entry := domain.SessionEntry{
		FileName: "superbill.pdf",
		Status:   domain.EntryStatusSucceeded,
		Result: &domain.AnalysisResult{
			DocumentType: domain.DocumentTypeSuperbill,
			HasIssues:    false,
			MissingCodes: []string{},
			InvalidCodes: []domain.InvalidCode{},
			Notes:        "All codes present.",
		},
	}

	out := render.Entry(&entry)

	assert.Equal(t, "Superbill", out.DocumentType)
	assert.True(t, out.Valid)
	assert.Contains(t, out.StatusLine, "valid")
	assert.Empty(t, out.MissingCodes)
	assert.Empty(t, out.InvalidCodes)
	assert.Contains(t, out.Summary, "**Document Type**: Superbill")
	assert.Contains(t, out.Summary, "**Notes**: All codes present.")
}

func TestEntry_DocumentWithIssues(t *testing.T) {
	entry := domain.SessionEntry{
		FileName: "eob.jpg",
		Status:   domain.EntryStatusSucceeded,
		Result: &domain.AnalysisResult{
			DocumentType: domain.DocumentTypeEOB,
			HasIssues:    true,
			MissingCodes: []string{"dates of service"},
			InvalidCodes: []domain.InvalidCode{
				{Code: "123", Reason: "CPT codes must be exactly 5 digits"},
			},
			WrongDocumentType: true,
			ExpectedType:      "Superbill",
		},
	}

	out := render.Entry(&entry)

	assert.Equal(t, "Explanation of Benefits (EOB)", out.DocumentType)
	assert.False(t, out.Valid)
	assert.Equal(t, []string{"dates of service"}, out.MissingCodes)
	require.Len(t, out.InvalidCodes, 1)
	assert.Equal(t, "123", out.InvalidCodes[0].Code)
	assert.Contains(t, out.Summary, "**Missing Codes**:")
	assert.Contains(t, out.Summary, "- dates of service")
	assert.Contains(t, out.Summary, "- 123 (CPT codes must be exactly 5 digits)")
	assert.Contains(t, out.Summary, "does not appear to be a Superbill")
}

func TestEntry_FailedDocument(t *testing.T) {
	entry := domain.SessionEntry{
		FileName: "broken.png",
		Status:   domain.EntryStatusFailed,
		Error:    "text extraction failed: no text could be extracted from document",
	}

	out := render.Entry(&entry)

	assert.Equal(t, "Unknown", out.DocumentType)
	assert.False(t, out.Valid)
	assert.Equal(t, "Processing failed.", out.StatusLine)
	assert.Contains(t, out.Error, "text extraction failed")
	assert.NotNil(t, out.MissingCodes)
	assert.NotNil(t, out.InvalidCodes)
}

func TestSession_Rollup(t *testing.T) {
	session := &domain.Session{
		ID:        uuid.New(),
		CreatedAt: time.Now().UTC(),
		Entries: []domain.SessionEntry{
			{
				FileName: "ok.pdf",
				Status:   domain.EntryStatusSucceeded,
				Result: &domain.AnalysisResult{
					DocumentType: domain.DocumentTypeSuperbill,
					MissingCodes: []string{},
					InvalidCodes: []domain.InvalidCode{},
				},
			},
			{FileName: "bad.pdf", Status: domain.EntryStatusFailed, Error: "boom"},
		},
	}

	out := render.Session(session)

	assert.Equal(t, session.ID.String(), out.SessionID)
	assert.True(t, out.HasIssues)
	assert.Contains(t, out.Headline, "Issues were found")
	require.Len(t, out.Entries, 2)
	assert.Equal(t, "ok.pdf", out.Entries[0].FileName)
	assert.Equal(t, "bad.pdf", out.Entries[1].FileName)
}

func TestSession_AllClean(t *testing.T) {
	session := &domain.Session{
		ID: uuid.New(),
		Entries: []domain.SessionEntry{
			{
				FileName: "clean.jpg",
				Status:   domain.EntryStatusSucceeded,
				Result: &domain.AnalysisResult{
					DocumentType: domain.DocumentTypePharmacyReceipt,
					MissingCodes: []string{},
					InvalidCodes: []domain.InvalidCode{},
				},
			},
		},
	}

	out := render.Session(session)

	assert.False(t, out.HasIssues)
	assert.Contains(t, out.Headline, "valid with proper medical codes")
	assert.Equal(t, "Pharmacy Receipt", out.Entries[0].DocumentType)
}
