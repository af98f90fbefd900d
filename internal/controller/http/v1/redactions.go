package v1

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/hackatronbits/Team-Encryptors/internal/domain"
	"github.com/jszwec/csvutil"
)

type RedactionsHandler struct {
	redactionsRepository RedactionsRepository
}

type RedactionsRepository interface {
	Redactions(ctx context.Context, filename string, limit, offset uint64) ([]*domain.Redaction, int, error)
	AllRedactions(ctx context.Context) ([]*domain.Redaction, error)
}

func NewRedactionsHandler(redactionsRepository RedactionsRepository) *RedactionsHandler {
	return &RedactionsHandler{
		redactionsRepository: redactionsRepository,
	}
}

type GetRedactionsResponse struct {
	Redactions []*domain.Redaction `json:"redactions"`
	Pagination Pagination          `json:"pagination"`
}

func (h *RedactionsHandler) GetRedactions(w http.ResponseWriter, r *http.Request) {
	filename := r.URL.Query().Get("file")

	page, limit, err := h.parsePagination(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	offset := (page - 1) * limit

	redactions, total, err := h.redactionsRepository.Redactions(r.Context(), filename, limit, offset)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	data, err := json.Marshal(GetRedactionsResponse{
		Redactions: redactions,
		Pagination: Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: (total + int(limit) - 1) / int(limit),
		},
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Write(data)
}

// ExportRedactions serves the full history as a TSV attachment.
func (h *RedactionsHandler) ExportRedactions(w http.ResponseWriter, r *http.Request) {
	redactions, err := h.redactionsRepository.AllRedactions(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	cw.Comma = '\t'

	if err := csvutil.NewEncoder(cw).Encode(redactions); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/tab-separated-values")
	w.Header().Set("Content-Disposition", `attachment; filename="redactions.tsv"`)
	w.Write(buf.Bytes())
}

func (h *RedactionsHandler) parsePagination(r *http.Request) (page uint64, limit uint64, err error) {
	page, limit = 1, 10

	if p := r.URL.Query().Get("page"); p != "" {
		page, err = strconv.ParseUint(p, 10, 64)
		if err != nil || page == 0 {
			return 0, 0, errors.New("invalid page")
		}
	}

	if l := r.URL.Query().Get("limit"); l != "" {
		limit, err = strconv.ParseUint(l, 10, 64)
		if err != nil || limit < 1 || limit > 100 {
			return 0, 0, errors.New("invalid limit, must be in [1;100]")
		}
	}

	return page, limit, nil
}
