package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hackatronbits/Team-Encryptors/internal/domain"
)

type Scanner struct {
	log          *slog.Logger
	watchDir     string
	scanInterval time.Duration
	documents    chan<- string
	jobsProvider JobsProvider
	jobUpdater   JobUpdater
}

func NewScanner(
	log *slog.Logger,
	watchDir string,
	scanInterval time.Duration,
	documents chan<- string,
	jobsProvider JobsProvider,
	jobUpdater JobUpdater,
) *Scanner {
	return &Scanner{
		log:          log,
		watchDir:     watchDir,
		scanInterval: scanInterval,
		documents:    documents,
		jobsProvider: jobsProvider,
		jobUpdater:   jobUpdater,
	}
}

func (s *Scanner) Run(ctx context.Context) error {
	defer close(s.documents)

	ticker := time.NewTicker(s.scanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.log.DebugContext(ctx, "scan cycle started")

			err := s.scanDocuments(ctx)
			if err != nil {
				s.log.ErrorContext(ctx, "failed to scan documents", slog.String("err", err.Error()))
			}

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (s *Scanner) scanDocuments(ctx context.Context) error {
	jobsMap, err := s.extractJobsFromDB(ctx)
	if err != nil {
		return err
	}

	entries, err := os.ReadDir(s.watchDir)
	if err != nil {
		return fmt.Errorf("failed to read directory %q", s.watchDir)
	}

	for _, entry := range entries {
		err := s.processEntry(ctx, entry, jobsMap)

		if err != nil {
			s.log.ErrorContext(ctx, "failed to process entry, skipping document",
				slog.String("filename", entry.Name()),
				slog.String("err", err.Error()),
			)
			continue
		}
	}

	return nil
}

func (s *Scanner) extractJobsFromDB(ctx context.Context) (map[string]domain.Status, error) {
	jobs, err := s.jobsProvider.Jobs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get jobs: %w", err)
	}

	jobsMap := make(map[string]domain.Status, len(jobs))
	for _, job := range jobs {
		jobsMap[job.Filename] = job.Status
	}

	return jobsMap, nil
}

func (s *Scanner) processEntry(ctx context.Context, entry os.DirEntry, jobsMap map[string]domain.Status) error {
	if entry.IsDir() {
		return nil
	}

	// The service accepts nothing but PDFs, everything else stays untouched.
	if !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
		return nil
	}

	status, ok := jobsMap[entry.Name()]
	if ok && status != domain.StatusPending {
		return nil
	}

	err := s.jobUpdater.UpdateOrCreateJob(ctx, &domain.Job{
		Filename: entry.Name(),
		Status:   domain.StatusProcessing,
	})
	if err != nil {
		return fmt.Errorf("failed to update job status: %w", err)
	}

	s.log.DebugContext(ctx, "updated job status to processing", slog.String("filename", entry.Name()))

	s.documents <- filepath.Join(s.watchDir, entry.Name())

	return nil
}
