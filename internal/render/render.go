// Package render maps analysis outcomes to display-ready structures. All
// functions here are pure; no business logic beyond labeling and grouping.
package render

import (
	"fmt"
	"strings"

	"champdoc/internal/domain"
)

// typeLabels maps the closed document-type set to human-readable labels.
var typeLabels = map[domain.DocumentType]string{
	domain.DocumentTypeSuperbill:       "Superbill",
	domain.DocumentTypeEOB:             "Explanation of Benefits (EOB)",
	domain.DocumentTypePharmacyReceipt: "Pharmacy Receipt",
	domain.DocumentTypeUnknown:         "Unknown",
}

// DisplayCode is one invalid code with its reason, ready for a bullet list.
type DisplayCode struct {
	Code   string `json:"code"`
	Reason string `json:"reason,omitempty"`
}

// DisplayEntry is the display structure for one processed document.
type DisplayEntry struct {
	FileName     string        `json:"file_name"`
	DocumentType string        `json:"document_type"`
	Status       string        `json:"status"`
	Valid        bool          `json:"valid"`
	StatusLine   string        `json:"status_line"`
	MissingCodes []string      `json:"missing_codes"`
	InvalidCodes []DisplayCode `json:"invalid_codes"`
	WrongType    bool          `json:"wrong_document_type,omitempty"`
	ExpectedType string        `json:"expected_type,omitempty"`
	Notes        string        `json:"notes,omitempty"`
	Error        string        `json:"error,omitempty"`
	Summary      string        `json:"summary"`
}

// DisplaySession is the display structure for a whole batch.
type DisplaySession struct {
	SessionID string         `json:"session_id"`
	HasIssues bool           `json:"has_issues"`
	Headline  string         `json:"headline"`
	Entries   []DisplayEntry `json:"entries"`
}

// TypeLabel returns the human-readable label for a document type.
func TypeLabel(t domain.DocumentType) string {
	if label, ok := typeLabels[t]; ok {
		return label
	}
	return string(domain.DocumentTypeUnknown)
}

// Entry formats a single session entry for display.
func Entry(e *domain.SessionEntry) DisplayEntry {
	out := DisplayEntry{
		FileName:     e.FileName,
		DocumentType: TypeLabel(domain.DocumentTypeUnknown),
		Status:       string(e.Status),
		MissingCodes: []string{},
		InvalidCodes: []DisplayCode{},
	}

	if e.Status == domain.EntryStatusFailed {
		out.StatusLine = "Processing failed."
		out.Error = e.Error
		out.Summary = summarize(&out)
		return out
	}
	if e.Result == nil {
		out.StatusLine = "Not yet processed."
		out.Summary = summarize(&out)
		return out
	}

	r := e.Result
	out.DocumentType = TypeLabel(r.DocumentType)
	out.Valid = !r.HasIssues
	if r.HasIssues {
		out.StatusLine = "Issues found in this document."
	} else {
		out.StatusLine = "This document appears to be valid with proper medical codes."
	}

	out.MissingCodes = append(out.MissingCodes, r.MissingCodes...)
	for _, c := range r.InvalidCodes {
		out.InvalidCodes = append(out.InvalidCodes, DisplayCode{Code: c.Code, Reason: c.Reason})
	}
	out.WrongType = r.WrongDocumentType
	out.ExpectedType = r.ExpectedType
	out.Notes = r.Notes
	out.Summary = summarize(&out)
	return out
}

// Session formats a whole session for display, with a per-batch rollup.
func Session(s *domain.Session) DisplaySession {
	out := DisplaySession{
		SessionID: s.ID.String(),
		HasIssues: s.HasIssues(),
		Entries:   make([]DisplayEntry, 0, len(s.Entries)),
	}
	for i := range s.Entries {
		out.Entries = append(out.Entries, Entry(&s.Entries[i]))
	}
	if out.HasIssues {
		out.Headline = "Issues were found in your documents. See details below."
	} else {
		out.Headline = "All documents appear to be valid with proper medical codes."
	}
	return out
}

// summarize renders one entry as a short markdown block, mirroring what the
// UI shows per document.
func summarize(e *DisplayEntry) string {
	var b strings.Builder

	fmt.Fprintf(&b, "**Document Type**: %s\n\n", e.DocumentType)

	if e.Error != "" {
		fmt.Fprintf(&b, "**Status**: %s %s\n\n", e.StatusLine, e.Error)
		return b.String()
	}
	fmt.Fprintf(&b, "**Status**: %s\n\n", e.StatusLine)

	if len(e.MissingCodes) > 0 {
		b.WriteString("**Missing Codes**:\n")
		for _, code := range e.MissingCodes {
			fmt.Fprintf(&b, "- %s\n", code)
		}
		b.WriteString("\n")
	}
	if len(e.InvalidCodes) > 0 {
		b.WriteString("**Invalid Codes**:\n")
		for _, c := range e.InvalidCodes {
			if c.Reason != "" {
				fmt.Fprintf(&b, "- %s (%s)\n", c.Code, c.Reason)
			} else {
				fmt.Fprintf(&b, "- %s\n", c.Code)
			}
		}
		b.WriteString("\n")
	}
	if e.WrongType && e.ExpectedType != "" {
		fmt.Fprintf(&b, "**Wrong Document Type**: This does not appear to be a %s document.\n\n", e.ExpectedType)
	}
	if e.Notes != "" {
		fmt.Fprintf(&b, "**Notes**: %s\n\n", e.Notes)
	}
	return b.String()
}
