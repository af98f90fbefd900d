package pipeline

import (
	"context"

	"github.com/hackatronbits/Team-Encryptors/internal/domain"
	"github.com/hackatronbits/Team-Encryptors/internal/redactor"
)

type JobsProvider interface {
	Jobs(ctx context.Context) ([]*domain.Job, error)
}

type JobUpdater interface {
	UpdateOrCreateJob(ctx context.Context, job *domain.Job) error
}

type RedactionSaver interface {
	SaveRedaction(ctx context.Context, redaction *domain.Redaction) error
}

type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type DocumentSubmitter interface {
	RedactFile(ctx context.Context, path string, opts redactor.Options) (*redactor.Result, error)
}

type ResultDownloader interface {
	Download(ctx context.Context, filename, destDir string) (string, error)
}
