// Package rubric holds the rules for the three recognized claim-support
// document types. The instruction text sent to the analysis model and the
// JSON schema used to validate its reply are both generated from the rule
// table, so the rubric has a single source of truth.
package rubric

import (
	"fmt"
	"strings"

	"champdoc/internal/domain"
)

// CodePattern describes how an invalid code of a given category is recognized.
type CodePattern struct {
	Category string
	Format   string
}

// Rule defines the rubric for one document type.
type Rule struct {
	Type               domain.DocumentType
	MandatoryCodes     []string      // code categories that must be present
	ConditionalCodes   []string      // categories required only under stated conditions
	InvalidRecognition []CodePattern // how malformed codes of each category look
}

// Rules is the rubric table, in rubric order. Keep this the only place the
// per-type code requirements are written down.
var Rules = []Rule{
	{
		Type: domain.DocumentTypeSuperbill,
		MandatoryCodes: []string{
			"CPT codes",
			"ICD-10 diagnosis codes",
			"provider information",
		},
		ConditionalCodes: []string{
			"modifier codes (when a CPT code requires one)",
		},
		InvalidRecognition: []CodePattern{
			{Category: "CPT codes", Format: "exactly 5 digits (e.g. 99213); anything shorter, longer, or non-numeric is invalid"},
			{Category: "ICD-10 diagnosis codes", Format: "a letter followed by 2 digits, optionally a dot and up to 4 more characters (e.g. E11.9)"},
		},
	},
	{
		Type: domain.DocumentTypeEOB,
		MandatoryCodes: []string{
			"CPT codes",
			"dates of service",
			"payment information",
		},
		ConditionalCodes: []string{
			"denial reason codes (when a claim line is denied)",
		},
		InvalidRecognition: []CodePattern{
			{Category: "CPT codes", Format: "exactly 5 digits; anything else is invalid"},
			{Category: "dates of service", Format: "a parseable calendar date; placeholder or impossible dates are invalid"},
		},
	},
	{
		Type: domain.DocumentTypePharmacyReceipt,
		MandatoryCodes: []string{
			"NDC (National Drug Code)",
			"medication name",
			"cost information",
		},
		ConditionalCodes: []string{
			"prescriber identifier (when the receipt covers a prescription fill)",
		},
		InvalidRecognition: []CodePattern{
			{Category: "NDC", Format: "10 or 11 digits in 4-4-2, 5-3-2, 5-4-1, or 5-4-2 segments; other groupings are invalid"},
		},
	},
}

// RuleFor returns the rubric rule for a document type, or nil for Unknown
// or unrecognized types.
func RuleFor(t domain.DocumentType) *Rule {
	for i := range Rules {
		if Rules[i].Type == t {
			return &Rules[i]
		}
	}
	return nil
}

// SystemPrompt renders the analysis instruction from the rule table.
func SystemPrompt() string {
	var b strings.Builder

	b.WriteString("You are an expert medical coder helping to validate CHAMPVA claim support documents.\n\n")
	b.WriteString("Analyze the provided document text and identify:\n")
	b.WriteString("1. The document type (Superbill, EOB, or Pharmacy Receipt)\n")
	b.WriteString("2. Whether all required medical codes are present and valid\n")
	b.WriteString("3. Any missing or invalid medical codes\n")
	b.WriteString("4. If the document is the wrong type\n\n")

	b.WriteString("Requirements for each document type:\n")
	for _, r := range Rules {
		fmt.Fprintf(&b, "- %s: must contain %s.", r.Type, joinAnd(r.MandatoryCodes))
		if len(r.ConditionalCodes) > 0 {
			fmt.Fprintf(&b, " Conditionally required: %s.", strings.Join(r.ConditionalCodes, "; "))
		}
		b.WriteString("\n")
	}

	b.WriteString("\nHow to recognize invalid codes:\n")
	for _, r := range Rules {
		for _, p := range r.InvalidRecognition {
			fmt.Fprintf(&b, "- %s (%s): %s\n", p.Category, r.Type, p.Format)
		}
	}

	b.WriteString(`
Respond with a single JSON object in exactly this format, with no markdown fences and no text outside the object:
{
    "document_type": "Superbill|EOB|Pharmacy Receipt|Unknown",
    "has_issues": true|false,
    "missing_codes": ["list of missing code categories"],
    "invalid_codes": [{"code": "the code as found", "reason": "why it is invalid"}],
    "wrong_document_type": true|false,
    "expected_type": "expected document type if wrong, else empty string",
    "errors": ["detailed error messages"],
    "notes": "any additional notes or observations"
}`)

	return b.String()
}

// ResponseSchema returns the JSON schema the analysis reply must satisfy.
// The four core keys are required; a reply missing any of them is malformed.
func ResponseSchema() map[string]any {
	docTypes := make([]any, 0, len(Rules)+1)
	for _, r := range Rules {
		docTypes = append(docTypes, string(r.Type))
	}
	docTypes = append(docTypes, string(domain.DocumentTypeUnknown))

	return map[string]any{
		"type":     "object",
		"required": []any{"document_type", "has_issues", "missing_codes", "invalid_codes"},
		"properties": map[string]any{
			"document_type": map[string]any{
				"type": "string",
				"enum": docTypes,
			},
			"has_issues": map[string]any{"type": "boolean"},
			"missing_codes": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"invalid_codes": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":     "object",
					"required": []any{"code"},
					"properties": map[string]any{
						"code":   map[string]any{"type": "string"},
						"reason": map[string]any{"type": "string"},
					},
				},
			},
			"wrong_document_type": map[string]any{"type": "boolean"},
			"expected_type":       map[string]any{"type": "string"},
			"errors": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"notes": map[string]any{"type": "string"},
		},
	}
}

func joinAnd(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
	}
}
