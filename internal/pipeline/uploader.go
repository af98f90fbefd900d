package pipeline

import (
	"context"
	"log/slog"

	"github.com/hackatronbits/Team-Encryptors/internal/domain"
	"github.com/hackatronbits/Team-Encryptors/internal/redactor"
)

// Uploader ships queued documents to the redaction service one at a time,
// so the service never sees more than a single request from this agent.
type Uploader struct {
	log       *slog.Logger
	opts      redactor.Options
	documents <-chan string
	results   chan<- *domain.UploadResult
	submitter DocumentSubmitter
}

func NewUploader(
	log *slog.Logger,
	opts redactor.Options,
	documents <-chan string,
	results chan<- *domain.UploadResult,
	submitter DocumentSubmitter,
) *Uploader {
	return &Uploader{
		log:       log,
		opts:      opts,
		documents: documents,
		results:   results,
		submitter: submitter,
	}
}

func (u *Uploader) Run(ctx context.Context) error {
	defer close(u.results)

	for {
		select {
		case path, ok := <-u.documents:
			if !ok {
				return nil
			}

			u.log.DebugContext(ctx, "received document to upload", slog.String("path", path))

			result := &domain.UploadResult{Path: path}

			answer, err := u.submitter.RedactFile(ctx, path, u.opts)
			if err != nil {
				u.log.ErrorContext(ctx, "failed to redact document", slog.String("err", err.Error()))
				result.Error = err
			} else {
				u.log.DebugContext(ctx, "document redacted",
					slog.String("result", answer.Filename),
					slog.Bool("used_ocr", answer.UsedOCR),
				)
				result.ResultName = answer.Filename
				result.UsedOCR = answer.UsedOCR
			}

			u.results <- result

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
