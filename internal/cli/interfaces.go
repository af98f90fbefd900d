package cli

import (
	"context"

	"github.com/hackatronbits/Team-Encryptors/internal/redactor"
)

type DocumentRedactor interface {
	RedactFile(ctx context.Context, path string, opts redactor.Options) (*redactor.Result, error)
	Download(ctx context.Context, filename, destDir string) (string, error)
}

type ServiceProbe interface {
	Health(ctx context.Context) error
}
