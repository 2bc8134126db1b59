package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"champdoc/internal/analysis"
	"champdoc/internal/domain"
	"champdoc/internal/ocr"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain and adapter errors to HTTP status codes,
// error codes, and readable messages. Raw provider bodies never reach the
// client.
func MapDomainError(err error) (status int, code, msg string) {
	var ocrRemote *ocr.RemoteError
	var exhausted *analysis.ExhaustedError
	var malformed *analysis.MalformedResponseError

	switch {
	case errors.Is(err, domain.ErrNoFiles):
		return http.StatusBadRequest, "NO_FILES", "at least one file is required"
	case errors.Is(err, domain.ErrTooManyFiles):
		return http.StatusBadRequest, "TOO_MANY_FILES", "a batch may contain at most 3 files"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; allowed: pdf, jpg, png"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds the 10 MB limit"
	case errors.Is(err, domain.ErrEmptyOCRResult):
		return http.StatusUnprocessableEntity, "EMPTY_OCR_RESULT", "no text could be extracted from the document"
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound, "SESSION_NOT_FOUND", "session not found"
	case errors.As(err, &ocrRemote):
		return http.StatusBadGateway, "OCR_REMOTE_ERROR", "the OCR service rejected the request"
	case errors.As(err, &exhausted):
		return http.StatusBadGateway, "ALL_MODELS_EXHAUSTED", "every analysis model failed for this document"
	case errors.As(err, &malformed):
		return http.StatusBadGateway, "MALFORMED_ANALYSIS", "the analysis service returned an unreadable result"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps an error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] %s: %v", requestID, code, err)
	}
	RespondError(c, status, code, msg)
}
