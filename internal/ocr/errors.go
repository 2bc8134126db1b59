// Package ocr defines the error types shared by OCR provider clients.
package ocr

import "fmt"

// RemoteError indicates the OCR endpoint returned a non-2xx response.
type RemoteError struct {
	Status int
	Body   string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("ocr API error (status %d): %s", e.Status, e.Body)
}
