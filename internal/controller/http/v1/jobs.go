package v1

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hackatronbits/Team-Encryptors/internal/domain"
)

type JobsHandler struct {
	jobsRepository JobsRepository
}

type JobsRepository interface {
	Jobs(ctx context.Context) ([]*domain.Job, error)
}

func NewJobsHandler(jobsRepository JobsRepository) *JobsHandler {
	return &JobsHandler{
		jobsRepository: jobsRepository,
	}
}

type GetJobsResponse struct {
	Jobs []*domain.Job `json:"jobs"`
}

func (h *JobsHandler) GetJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.jobsRepository.Jobs(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	data, err := json.Marshal(GetJobsResponse{Jobs: jobs})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Write(data)
}
