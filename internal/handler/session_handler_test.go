package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"champdoc/internal/domain"
	"champdoc/internal/handler"
	"champdoc/internal/render"
	"champdoc/mocks"
)

func TestSessionHandler_GetByID_Success(t *testing.T) {
	mockSvc := new(mocks.MockDocumentService)
	h := handler.NewSessionHandler(mockSvc)

	session := cleanSession()
	mockSvc.On("GetSession", mock.Anything, session.ID).Return(session, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/sessions/"+session.ID.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: session.ID.String()}}

	h.GetByID(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var display render.DisplaySession
	require.NoError(t, json.Unmarshal(data, &display))
	assert.Equal(t, session.ID.String(), display.SessionID)
	require.Len(t, display.Entries, 1)
	assert.Equal(t, "superbill.pdf", display.Entries[0].FileName)
	mockSvc.AssertExpectations(t)
}

func TestSessionHandler_GetByID_InvalidID(t *testing.T) {
	mockSvc := new(mocks.MockDocumentService)
	h := handler.NewSessionHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/sessions/not-a-uuid", nil)
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

	h.GetByID(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_ID", resp.Error.Code)
	mockSvc.AssertNotCalled(t, "GetSession", mock.Anything, mock.Anything)
}

func TestSessionHandler_GetByID_NotFound(t *testing.T) {
	mockSvc := new(mocks.MockDocumentService)
	h := handler.NewSessionHandler(mockSvc)

	id := uuid.New()
	mockSvc.On("GetSession", mock.Anything, id).Return(nil, domain.ErrSessionNotFound)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/sessions/"+id.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "SESSION_NOT_FOUND", resp.Error.Code)
}

func TestSessionHandler_Export_Success(t *testing.T) {
	mockSvc := new(mocks.MockDocumentService)
	h := handler.NewSessionHandler(mockSvc)

	session := cleanSession()
	mockSvc.On("GetSession", mock.Anything, session.ID).Return(session, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/sessions/"+session.ID.String()+"/export", nil)
	c.Params = gin.Params{{Key: "id", Value: session.ID.String()}}

	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "champdoc-results-"+session.ID.String()+".csv")

	body := w.Body.String()
	assert.True(t, strings.HasPrefix(body, "\xEF\xBB\xBF"), "CSV output should start with a UTF-8 BOM")
	assert.Contains(t, body, "Document Name")
	assert.Contains(t, body, "superbill.pdf")
}

func TestSessionHandler_Export_NotFound(t *testing.T) {
	mockSvc := new(mocks.MockDocumentService)
	h := handler.NewSessionHandler(mockSvc)

	id := uuid.New()
	mockSvc.On("GetSession", mock.Anything, id).Return(nil, domain.ErrSessionNotFound)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/sessions/"+id.String()+"/export", nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.Export(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
