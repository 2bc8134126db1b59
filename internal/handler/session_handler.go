package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"champdoc/internal/csvexport"
	"champdoc/internal/render"
	"champdoc/internal/service"
)

// SessionHandler handles batch result retrieval endpoints.
type SessionHandler struct {
	docService service.DocumentService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(docService service.DocumentService) *SessionHandler {
	return &SessionHandler{docService: docService}
}

// GetByID handles GET /api/v1/sessions/:id
// @Summary Get batch results
// @Description Re-fetch the display results for a previously processed batch. Sessions live in process memory only.
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID (UUID)"
// @Success 200 {object} APIResponse{data=render.DisplaySession} "Batch results"
// @Failure 400 {object} APIResponse "Invalid ID"
// @Failure 404 {object} APIResponse "Session not found"
// @Router /sessions/{id} [get]
func (h *SessionHandler) GetByID(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid session ID")
		return
	}

	session, err := h.docService.GetSession(c.Request.Context(), sessionID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, render.Session(session))
}

// Export handles GET /api/v1/sessions/:id/export
// @Summary Export batch results as CSV
// @Description Download the results of a processed batch as a CSV file.
// @Tags sessions
// @Produce text/csv
// @Param id path string true "Session ID (UUID)"
// @Success 200 {string} string "CSV content"
// @Failure 400 {object} APIResponse "Invalid ID"
// @Failure 404 {object} APIResponse "Session not found"
// @Router /sessions/{id}/export [get]
func (h *SessionHandler) Export(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid session ID")
		return
	}

	session, err := h.docService.GetSession(c.Request.Context(), sessionID)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := fmt.Sprintf("champdoc-results-%s.csv", sessionID)
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Status(http.StatusOK)

	_, _ = c.Writer.Write(csvexport.BOM)
	w := csvexport.NewWriter(c.Writer)
	if err := w.WriteHeader(); err != nil {
		return
	}
	if err := w.WriteSession(session); err != nil {
		return
	}
	w.Flush()
}
