package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/hackatronbits/Team-Encryptors/internal/domain"
)

type Recorder struct {
	log            *slog.Logger
	results        <-chan *domain.UploadResult
	produced       chan<- *domain.UploadResult
	jobUpdater     JobUpdater
	redactionSaver RedactionSaver
	transactor     Transactor
}

func NewRecorder(
	log *slog.Logger,
	results <-chan *domain.UploadResult,
	produced chan<- *domain.UploadResult,
	jobUpdater JobUpdater,
	redactionSaver RedactionSaver,
	transactor Transactor,
) *Recorder {
	return &Recorder{
		log:            log,
		results:        results,
		produced:       produced,
		jobUpdater:     jobUpdater,
		redactionSaver: redactionSaver,
		transactor:     transactor,
	}
}

func (r *Recorder) Run(ctx context.Context) error {
	defer close(r.produced)

	for {
		select {
		case result, ok := <-r.results:
			if !ok {
				return nil
			}

			log := r.log.With(
				slog.String("path", result.Path),
				slog.String("result", result.ResultName),
			)

			log.InfoContext(ctx, "received upload result")

			if err := r.processResult(ctx, log, result); err != nil {
				log.ErrorContext(ctx, "failed to process upload result", slog.String("err", err.Error()))
				continue
			}

			r.produced <- result

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (r *Recorder) processResult(ctx context.Context, log *slog.Logger, result *domain.UploadResult) error {
	switch result.Error {
	case nil:
		log.DebugContext(ctx, "saving upload result to database")

		err := r.saveResult(ctx, result)
		if err != nil {
			return fmt.Errorf("failed to save result: %w", err)
		}

		log.DebugContext(ctx, "result saved successfully")

	default:
		log.DebugContext(ctx, "processing failed upload")

		now := time.Now()
		err := r.jobUpdater.UpdateOrCreateJob(ctx, &domain.Job{
			Filename:     filepath.Base(result.Path),
			Status:       domain.StatusError,
			ErrorMessage: result.Error.Error(),
			ProcessedAt:  &now,
		})
		if err != nil {
			return fmt.Errorf("failed to save upload result: %w", err)
		}
	}

	return nil
}

func (r *Recorder) saveResult(ctx context.Context, result *domain.UploadResult) error {
	return r.transactor.WithTransaction(ctx, func(ctx context.Context) error {
		now := time.Now()

		err := r.redactionSaver.SaveRedaction(ctx, &domain.Redaction{
			ID:          uuid.New(),
			Filename:    filepath.Base(result.Path),
			ResultName:  result.ResultName,
			UsedOCR:     result.UsedOCR,
			ProcessedAt: now,
		})
		if err != nil {
			return fmt.Errorf("failed to save redaction: %w", err)
		}

		err = r.jobUpdater.UpdateOrCreateJob(ctx, &domain.Job{
			Filename:    filepath.Base(result.Path),
			Status:      domain.StatusDone,
			ResultName:  result.ResultName,
			UsedOCR:     result.UsedOCR,
			ProcessedAt: &now,
		})
		if err != nil {
			return fmt.Errorf("failed to update job status: %w", err)
		}

		return nil
	})
}
