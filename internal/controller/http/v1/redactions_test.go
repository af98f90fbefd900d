package v1_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	v1 "github.com/hackatronbits/Team-Encryptors/internal/controller/http/v1"
	"github.com/hackatronbits/Team-Encryptors/internal/domain"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRedactionsHandler_GetRedactions_HappyPath(t *testing.T) {
	t.Parallel()

	redactions := []*domain.Redaction{
		{
			ID:          uuid.New(),
			Filename:    "report.pdf",
			ResultName:  "report_redacted.pdf",
			UsedOCR:     true,
			ProcessedAt: time.Date(2025, 7, 14, 10, 0, 0, 0, time.UTC),
		},
	}

	redactionsRepo := newMockRedactionsRepository(t)
	redactionsRepo.On("Redactions", mock.Anything, "", uint64(10), uint64(0)).Return(redactions, 25, nil)

	h := v1.NewRedactionsHandler(redactionsRepo)

	w := httptest.NewRecorder()
	h.GetRedactions(w, httptest.NewRequest(http.MethodGet, "/api/v1/redactions", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp v1.GetRedactionsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Redactions, 1)
	require.Equal(t, "report.pdf", resp.Redactions[0].Filename)
	require.Equal(t, uint64(1), resp.Pagination.Page)
	require.Equal(t, uint64(10), resp.Pagination.Limit)
	require.Equal(t, 25, resp.Pagination.Total)
	require.Equal(t, 3, resp.Pagination.TotalPages)
}

func TestRedactionsHandler_GetRedactions_FiltersByFile(t *testing.T) {
	t.Parallel()

	redactionsRepo := newMockRedactionsRepository(t)
	redactionsRepo.On("Redactions", mock.Anything, "report.pdf", uint64(5), uint64(5)).Return([]*domain.Redaction{}, 0, nil)

	h := v1.NewRedactionsHandler(redactionsRepo)

	w := httptest.NewRecorder()
	h.GetRedactions(w, httptest.NewRequest(http.MethodGet, "/api/v1/redactions?file=report.pdf&page=2&limit=5", nil))

	require.Equal(t, http.StatusOK, w.Code)
}

func TestRedactionsHandler_GetRedactions_InvalidPagination(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		query string
	}{
		{name: "page is zero", query: "?page=0"},
		{name: "page is not a number", query: "?page=abc"},
		{name: "limit is zero", query: "?limit=0"},
		{name: "limit is too large", query: "?limit=101"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			h := v1.NewRedactionsHandler(newMockRedactionsRepository(t))

			w := httptest.NewRecorder()
			h.GetRedactions(w, httptest.NewRequest(http.MethodGet, "/api/v1/redactions"+tc.query, nil))

			require.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestRedactionsHandler_ExportRedactions(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	redactions := []*domain.Redaction{
		{
			ID:          id,
			Filename:    "report.pdf",
			ResultName:  "report_redacted.pdf",
			UsedOCR:     false,
			ProcessedAt: time.Date(2025, 7, 14, 10, 0, 0, 0, time.UTC),
		},
	}

	redactionsRepo := newMockRedactionsRepository(t)
	redactionsRepo.On("AllRedactions", mock.Anything).Return(redactions, nil)

	h := v1.NewRedactionsHandler(redactionsRepo)

	w := httptest.NewRecorder()
	h.ExportRedactions(w, httptest.NewRequest(http.MethodGet, "/api/v1/redactions/export", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "text/tab-separated-values", w.Header().Get("Content-Type"))
	require.Equal(t, `attachment; filename="redactions.tsv"`, w.Header().Get("Content-Disposition"))

	body := w.Body.String()
	require.Contains(t, body, "id\tfilename\tresult_name\tused_ocr\tprocessed_at")
	require.Contains(t, body, id.String()+"\treport.pdf\treport_redacted.pdf\tfalse\t2025-07-14T10:00:00Z")
}
