package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"champdoc/internal/render"
	"champdoc/internal/service"
)

// DocumentHandler handles document batch processing endpoints.
type DocumentHandler struct {
	docService service.DocumentService
	maxFiles   int
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(docService service.DocumentService, maxFiles int) *DocumentHandler {
	return &DocumentHandler{docService: docService, maxFiles: maxFiles}
}

// Process handles POST /api/v1/documents/process
// @Summary Process a batch of claim documents
// @Description Upload 1-3 claim-support documents (PDF, JPG, PNG), extract their text via OCR, and validate the medical codes against the CHAMPVA rubric. Documents are processed sequentially; a failure on one document does not abort the rest of the batch.
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "Documents to validate (repeat the field, max 3 files, 10 MB each)"
// @Success 201 {object} APIResponse{data=render.DisplaySession} "Batch processed"
// @Failure 400 {object} APIResponse "No files, too many files, or unsupported type"
// @Failure 413 {object} APIResponse "File too large"
// @Failure 502 {object} APIResponse "A remote service failed for the whole batch"
// @Router /documents/process [post]
func (h *DocumentHandler) Process(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_FORM", "multipart form is required")
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		RespondError(c, http.StatusBadRequest, "NO_FILES", "at least one file is required in the 'files' field")
		return
	}
	if len(files) > h.maxFiles {
		RespondError(c, http.StatusBadRequest, "TOO_MANY_FILES", "a batch may contain at most 3 files")
		return
	}

	inputs := make([]service.DocumentInput, 0, len(files))
	for _, header := range files {
		f, err := header.Open()
		if err != nil {
			RespondError(c, http.StatusBadRequest, "UNREADABLE_FILE", "could not read uploaded file "+header.Filename)
			return
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			RespondError(c, http.StatusBadRequest, "UNREADABLE_FILE", "could not read uploaded file "+header.Filename)
			return
		}
		inputs = append(inputs, service.DocumentInput{FileName: header.Filename, Data: data})
	}

	session, err := h.docService.ProcessBatch(c.Request.Context(), inputs)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, render.Session(session))
}
