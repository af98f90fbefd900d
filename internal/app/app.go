package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/hackatronbits/Team-Encryptors/internal/config"
	v1 "github.com/hackatronbits/Team-Encryptors/internal/controller/http/v1"
	"github.com/hackatronbits/Team-Encryptors/internal/domain"
	"github.com/hackatronbits/Team-Encryptors/internal/pipeline"
	"github.com/hackatronbits/Team-Encryptors/internal/redactor"
	"github.com/hackatronbits/Team-Encryptors/internal/repository/postgresql"
	"golang.org/x/sync/errgroup"
)

const (
	documentsBuffer     = 100
	uploadResultsBuffer = 50
	producedBuffer      = 100
)

type App struct {
	log *slog.Logger
	cfg *config.Config
}

func New(log *slog.Logger, cfg *config.Config) *App {
	return &App{
		log: log,
		cfg: cfg,
	}
}

func (a *App) Run(ctx context.Context) error {
	a.log.InfoContext(ctx, "starting agent",
		slog.String("watch_dir", a.cfg.App.WatchDirectory),
		slog.String("output_dir", a.cfg.App.OutputDirectory),
		slog.Duration("scan_interval", a.cfg.App.DirectoryScanInterval),
		slog.String("redactor_api", a.cfg.Redactor.APIURL),
	)

	a.log.InfoContext(ctx, "establishing postgresql connection",
		slog.String("postgresql_host", a.cfg.PostgreSQL.Host),
		slog.String("postgresql_port", a.cfg.PostgreSQL.Port),
		slog.String("postgresql_dbname", a.cfg.PostgreSQL.DBName),
	)

	pool, err := postgresql.NewConnection(ctx, a.log, a.cfg.PostgreSQL)
	if err != nil {
		return fmt.Errorf("failed to create db connection: %w", err)
	}
	defer pool.Close()

	jobsRepository := postgresql.NewJobsRepository(pool)
	redactionsRepository := postgresql.NewRedactionsRepository(pool)
	txManager := postgresql.NewTxManager(pool)

	// Jobs left in processing belong to a run that never finished.
	if err := jobsRepository.ResetProcessingJobs(ctx); err != nil {
		return fmt.Errorf("failed to reset processing jobs: %w", err)
	}

	return a.startPipeline(ctx, jobsRepository, redactionsRepository, txManager)
}

func (a *App) startPipeline(
	ctx context.Context,
	jobsRepo *postgresql.JobsRepository,
	redactionsRepo *postgresql.RedactionsRepository,
	txManager *postgresql.TxManager,
) error {
	documents := make(chan string, documentsBuffer)
	uploadResults := make(chan *domain.UploadResult, uploadResultsBuffer)
	produced := make(chan *domain.UploadResult, producedBuffer)

	client := redactor.New(a.cfg.Redactor)
	opts := redactor.Options{
		Mode:       a.cfg.Redactor.Mode,
		Exclusions: a.cfg.Redactor.Exclusions,
	}

	scanner := pipeline.NewScanner(
		a.log,
		a.cfg.WatchDirectory,
		a.cfg.DirectoryScanInterval,
		documents,
		jobsRepo,
		jobsRepo,
	)
	uploader := pipeline.NewUploader(a.log, opts, documents, uploadResults, client)
	recorder := pipeline.NewRecorder(a.log, uploadResults, produced, jobsRepo, redactionsRepo, txManager)
	fetcher := pipeline.NewFetcher(a.log, a.cfg.OutputDirectory, produced, client)
	server := v1.NewServer(a.cfg.HTTP, jobsRepo, redactionsRepo)

	erg, ctx := errgroup.WithContext(ctx)

	erg.Go(func() error {
		a.log.InfoContext(ctx, "scanner started")
		return scanner.Run(ctx)
	})

	erg.Go(func() error {
		a.log.InfoContext(ctx, "uploader started")
		return uploader.Run(ctx)
	})

	erg.Go(func() error {
		a.log.InfoContext(ctx, "recorder started")
		return recorder.Run(ctx)
	})

	erg.Go(func() error {
		a.log.InfoContext(ctx, "fetcher started")
		return fetcher.Run(ctx)
	})

	erg.Go(func() error {
		a.log.InfoContext(ctx, "starting http server",
			slog.String("addr", net.JoinHostPort(a.cfg.HTTP.Host, a.cfg.HTTP.Port)),
		)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server error: %w", err)
		}

		return nil
	})

	erg.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	a.log.InfoContext(ctx, "all components started")

	if err := erg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		a.log.ErrorContext(ctx, "pipeline stopped with error", slog.String("err", err.Error()))

		return err
	}

	a.log.InfoContext(ctx, "pipeline stopped gracefully")

	return nil
}
