// Package analysis defines the error types shared by content-analysis clients.
package analysis

import (
	"fmt"
	"strings"
)

// RemoteError indicates the analysis endpoint returned a non-2xx response
// for one candidate model.
type RemoteError struct {
	Model  string
	Status int
	Body   string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("analysis API error for model %s (status %d): %s", e.Model, e.Status, e.Body)
}

// MalformedResponseError indicates a model replied with text that is not a
// schema-valid analysis result. The failure is signaled as-is; nothing is
// coerced or filled in.
type MalformedResponseError struct {
	Model string
	Err   error
	Raw   string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed analysis response from model %s: %v", e.Model, e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// ModelAttempt records the failure reason for one candidate model.
type ModelAttempt struct {
	Model string
	Err   error
}

// ExhaustedError indicates every candidate model was tried and all failed.
// Attempts holds the per-model failure reasons, in candidate order.
type ExhaustedError struct {
	Attempts []ModelAttempt
}

func (e *ExhaustedError) Error() string {
	reasons := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		reasons = append(reasons, fmt.Sprintf("%s: %v", a.Model, a.Err))
	}
	return "all analysis models exhausted: " + strings.Join(reasons, "; ")
}
