package pipeline

import (
	"context"
	"log/slog"

	"github.com/hackatronbits/Team-Encryptors/internal/domain"
)

type Fetcher struct {
	log        *slog.Logger
	outputDir  string
	produced   <-chan *domain.UploadResult
	downloader ResultDownloader
}

func NewFetcher(
	log *slog.Logger,
	outputDir string,
	produced <-chan *domain.UploadResult,
	downloader ResultDownloader,
) *Fetcher {
	return &Fetcher{
		log:        log,
		outputDir:  outputDir,
		produced:   produced,
		downloader: downloader,
	}
}

func (f *Fetcher) Run(ctx context.Context) error {
	for {
		select {
		case result, ok := <-f.produced:
			if !ok {
				return nil
			}

			// Failed uploads have no produced file to fetch.
			if result.ResultName == "" {
				continue
			}

			log := f.log.With(
				slog.String("path", result.Path),
				slog.String("result", result.ResultName),
			)

			log.InfoContext(ctx, "received upload result, downloading produced file")

			path, err := f.downloader.Download(ctx, result.ResultName, f.outputDir)
			if err != nil {
				log.InfoContext(ctx, "failed to download produced file", slog.String("err", err.Error()))
				continue
			}

			log.DebugContext(ctx, "produced file saved", slog.String("saved_to", path))

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
