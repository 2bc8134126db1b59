package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"champdoc/internal/config"
	"champdoc/internal/domain"
	"champdoc/internal/port"
	"champdoc/internal/service"
	"champdoc/mocks"
)

func newTestService(extractor *mocks.MockTextExtractor, analyzer *mocks.MockContentAnalyzer, store *mocks.MockSessionStore) service.DocumentService {
	return service.NewDocumentService(extractor, analyzer, store, &config.BatchConfig{MaxFiles: 3})
}

func cleanResult() *domain.AnalysisResult {
	return &domain.AnalysisResult{
		DocumentType: domain.DocumentTypeSuperbill,
		HasIssues:    false,
		MissingCodes: []string{},
		InvalidCodes: []domain.InvalidCode{},
		Errors:       []string{},
	}
}

func extractInputNamed(name string) interface{} {
	return mock.MatchedBy(func(in port.ExtractInput) bool { return in.FileName == name })
}

func TestDocumentService_ProcessBatch_AllSucceed(t *testing.T) {
	extractor := new(mocks.MockTextExtractor)
	analyzer := new(mocks.MockContentAnalyzer)
	store := new(mocks.MockSessionStore)

	extractor.On("Extract", mock.Anything, mock.Anything).
		Return(&port.ExtractOutput{Text: "some text", PageCount: 1}, nil)
	analyzer.On("Analyze", mock.Anything, "some text").Return(cleanResult(), nil)
	store.On("Save", mock.Anything, mock.AnythingOfType("*domain.Session")).Return(nil)

	svc := newTestService(extractor, analyzer, store)

	session, err := svc.ProcessBatch(context.Background(), []service.DocumentInput{
		{FileName: "superbill.jpg", Data: []byte("jpeg bytes")},
	})

	require.NoError(t, err)
	require.Len(t, session.Entries, 1)
	entry := session.Entries[0]
	assert.Equal(t, domain.EntryStatusSucceeded, entry.Status)
	assert.Equal(t, "superbill.jpg", entry.FileName)
	assert.Equal(t, "image/jpeg", entry.ContentType)
	assert.Equal(t, int64(len("jpeg bytes")), entry.FileSize)
	require.NotNil(t, entry.Result)
	assert.False(t, entry.Result.HasIssues)
	store.AssertExpectations(t)
}

func TestDocumentService_ProcessBatch_SecondDocumentFailsOCR(t *testing.T) {
	extractor := new(mocks.MockTextExtractor)
	analyzer := new(mocks.MockContentAnalyzer)
	store := new(mocks.MockSessionStore)

	extractor.On("Extract", mock.Anything, extractInputNamed("first.jpg")).
		Return(&port.ExtractOutput{Text: "first text"}, nil)
	extractor.On("Extract", mock.Anything, extractInputNamed("second.jpg")).
		Return(nil, domain.ErrEmptyOCRResult)
	extractor.On("Extract", mock.Anything, extractInputNamed("third.jpg")).
		Return(&port.ExtractOutput{Text: "third text"}, nil)
	analyzer.On("Analyze", mock.Anything, mock.AnythingOfType("string")).Return(cleanResult(), nil)
	store.On("Save", mock.Anything, mock.Anything).Return(nil)

	svc := newTestService(extractor, analyzer, store)

	session, err := svc.ProcessBatch(context.Background(), []service.DocumentInput{
		{FileName: "first.jpg", Data: []byte("a")},
		{FileName: "second.jpg", Data: []byte("b")},
		{FileName: "third.jpg", Data: []byte("c")},
	})

	require.NoError(t, err)
	require.Len(t, session.Entries, 3)

	// Entry order matches upload order; the failure does not abort the batch.
	assert.Equal(t, "first.jpg", session.Entries[0].FileName)
	assert.Equal(t, domain.EntryStatusSucceeded, session.Entries[0].Status)
	assert.Equal(t, "second.jpg", session.Entries[1].FileName)
	assert.Equal(t, domain.EntryStatusFailed, session.Entries[1].Status)
	assert.NotEmpty(t, session.Entries[1].Error)
	assert.Nil(t, session.Entries[1].Result)
	assert.Equal(t, "third.jpg", session.Entries[2].FileName)
	assert.Equal(t, domain.EntryStatusSucceeded, session.Entries[2].Status)

	analyzer.AssertNumberOfCalls(t, "Analyze", 2)
}

func TestDocumentService_ProcessBatch_AnalysisFailureRecorded(t *testing.T) {
	extractor := new(mocks.MockTextExtractor)
	analyzer := new(mocks.MockContentAnalyzer)
	store := new(mocks.MockSessionStore)

	extractor.On("Extract", mock.Anything, mock.Anything).
		Return(&port.ExtractOutput{Text: "text"}, nil)
	analyzer.On("Analyze", mock.Anything, "text").
		Return(nil, errors.New("all analysis models exhausted"))
	store.On("Save", mock.Anything, mock.Anything).Return(nil)

	svc := newTestService(extractor, analyzer, store)

	session, err := svc.ProcessBatch(context.Background(), []service.DocumentInput{
		{FileName: "eob.png", Data: []byte("png")},
	})

	require.NoError(t, err)
	require.Len(t, session.Entries, 1)
	assert.Equal(t, domain.EntryStatusFailed, session.Entries[0].Status)
	assert.Contains(t, session.Entries[0].Error, "content analysis failed")
}

func TestDocumentService_ProcessBatch_EmptyBatch(t *testing.T) {
	extractor := new(mocks.MockTextExtractor)
	analyzer := new(mocks.MockContentAnalyzer)
	store := new(mocks.MockSessionStore)

	svc := newTestService(extractor, analyzer, store)

	_, err := svc.ProcessBatch(context.Background(), nil)

	assert.ErrorIs(t, err, domain.ErrNoFiles)
	extractor.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything)
}

func TestDocumentService_ProcessBatch_TooManyFiles(t *testing.T) {
	extractor := new(mocks.MockTextExtractor)
	analyzer := new(mocks.MockContentAnalyzer)
	store := new(mocks.MockSessionStore)

	svc := newTestService(extractor, analyzer, store)

	inputs := make([]service.DocumentInput, 4)
	for i := range inputs {
		inputs[i] = service.DocumentInput{FileName: "f.pdf", Data: []byte("x")}
	}

	_, err := svc.ProcessBatch(context.Background(), inputs)

	assert.ErrorIs(t, err, domain.ErrTooManyFiles)
	extractor.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestDocumentService_GetSession(t *testing.T) {
	extractor := new(mocks.MockTextExtractor)
	analyzer := new(mocks.MockContentAnalyzer)
	store := new(mocks.MockSessionStore)

	extractor.On("Extract", mock.Anything, mock.Anything).
		Return(&port.ExtractOutput{Text: "text"}, nil)
	analyzer.On("Analyze", mock.Anything, "text").Return(cleanResult(), nil)

	var saved *domain.Session
	store.On("Save", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*domain.Session) }).
		Return(nil)

	svc := newTestService(extractor, analyzer, store)

	session, err := svc.ProcessBatch(context.Background(), []service.DocumentInput{
		{FileName: "receipt.jpg", Data: []byte("x")},
	})
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, session.ID, saved.ID)

	store.On("Get", mock.Anything, session.ID).Return(saved, nil)

	got, err := svc.GetSession(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, got.ID)
}
