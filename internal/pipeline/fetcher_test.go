package pipeline_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/hackatronbits/Team-Encryptors/internal/domain"
	"github.com/hackatronbits/Team-Encryptors/internal/pipeline"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Run_HappyPath(t *testing.T) {
	t.Parallel()

	log := slog.New(slog.DiscardHandler)

	uploadResult := &domain.UploadResult{
		Path:       "input/report.pdf",
		ResultName: "report_redacted.pdf",
	}

	produced := make(chan *domain.UploadResult, 1)

	downloader := newMockDownloader(t)
	downloader.On("Download", mock.Anything, "report_redacted.pdf", "output").
		Return("output/report_redacted.pdf", nil)

	fetcher := pipeline.NewFetcher(log, "output", produced, downloader)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errChan := make(chan error, 1)
	go func() {
		errChan <- fetcher.Run(ctx)
	}()

	go func() {
		produced <- uploadResult
	}()

	// Give the fetcher time to process
	select {
	case <-time.After(10 * time.Millisecond):
	case err := <-errChan:
		t.Fatalf("unexpected error: %v", err)
	}

	cancel()
	close(produced)

	select {
	case err := <-errChan:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(10 * time.Millisecond):
		t.Fatal("timeout: error was not sent to channel")
	}
}

func TestFetcher_Run_SkipsFailedUploads(t *testing.T) {
	t.Parallel()

	log := slog.New(slog.DiscardHandler)

	uploadResult := &domain.UploadResult{
		Path:  "input/report.pdf",
		Error: errors.New("redact: status 500"),
	}

	produced := make(chan *domain.UploadResult, 1)

	// No downloads are expected for failed uploads
	downloader := newMockDownloader(t)

	fetcher := pipeline.NewFetcher(log, "output", produced, downloader)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errChan := make(chan error, 1)
	go func() {
		errChan <- fetcher.Run(ctx)
	}()

	go func() {
		produced <- uploadResult
	}()

	// Give the fetcher time to process
	select {
	case <-time.After(10 * time.Millisecond):
	case err := <-errChan:
		t.Fatalf("unexpected error: %v", err)
	}

	cancel()
	close(produced)

	select {
	case err := <-errChan:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(10 * time.Millisecond):
		t.Fatal("timeout: error was not sent to channel")
	}
}

func TestFetcher_Run_DownloadFailureDoesNotStop(t *testing.T) {
	t.Parallel()

	log := slog.New(slog.DiscardHandler)

	produced := make(chan *domain.UploadResult, 2)

	downloader := newMockDownloader(t)
	downloader.On("Download", mock.Anything, "a_redacted.pdf", "output").
		Return("", errors.New("download: status 404")).
		Once()
	downloader.On("Download", mock.Anything, "b_redacted.pdf", "output").
		Return("output/b_redacted.pdf", nil).
		Once()

	fetcher := pipeline.NewFetcher(log, "output", produced, downloader)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errChan := make(chan error, 1)
	go func() {
		errChan <- fetcher.Run(ctx)
	}()

	go func() {
		produced <- &domain.UploadResult{Path: "input/a.pdf", ResultName: "a_redacted.pdf"}
		produced <- &domain.UploadResult{Path: "input/b.pdf", ResultName: "b_redacted.pdf"}
	}()

	// Give the fetcher time to process both results
	select {
	case <-time.After(10 * time.Millisecond):
	case err := <-errChan:
		t.Fatalf("unexpected error: %v", err)
	}

	cancel()
	close(produced)

	select {
	case err := <-errChan:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(10 * time.Millisecond):
		t.Fatal("timeout: error was not sent to channel")
	}
}

func TestFetcher_Run_ChannelCloses(t *testing.T) {
	t.Parallel()

	log := slog.New(slog.DiscardHandler)

	produced := make(chan *domain.UploadResult, 1)

	downloader := newMockDownloader(t)

	fetcher := pipeline.NewFetcher(log, "output", produced, downloader)

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	errChan := make(chan error, 1)
	go func() {
		errChan <- fetcher.Run(ctx)
	}()

	close(produced)

	select {
	case err := <-errChan:
		require.NoError(t, err, "expected nil error when channel closes")
	case <-time.After(10 * time.Millisecond):
		t.Fatal("timeout: error was not sent to channel")
	}
}
