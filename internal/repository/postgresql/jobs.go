package postgresql

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/hackatronbits/Team-Encryptors/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const TableJobs = "jobs"

type JobsRepository struct {
	pool *pgxpool.Pool
	qb   sq.StatementBuilderType
}

func NewJobsRepository(pool *pgxpool.Pool) *JobsRepository {
	return &JobsRepository{
		pool: pool,
		qb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *JobsRepository) Jobs(ctx context.Context) ([]*domain.Job, error) {
	db := extractDB(ctx, r.pool)

	sql, args, err := r.qb.
		Select(
			"filename",
			"status",
			"result_name",
			"used_ocr",
			"error_message",
			"processed_at",
		).
		From(TableJobs).
		ToSql()
	if err != nil {
		return nil, createQueryError(err)
	}

	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, executeQueryError(err)
	}

	jobs, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByNameLax[domain.Job])
	if err != nil {
		return nil, collectRowsError(err)
	}

	return jobs, nil
}

func (r *JobsRepository) UpdateOrCreateJob(ctx context.Context, job *domain.Job) error {
	db := extractDB(ctx, r.pool)

	sql, args, err := r.qb.
		Insert(TableJobs).
		Columns(
			"filename",
			"status",
			"result_name",
			"used_ocr",
			"error_message",
			"processed_at",
		).
		Values(
			job.Filename,
			job.Status,
			job.ResultName,
			job.UsedOCR,
			job.ErrorMessage,
			job.ProcessedAt,
		).
		Suffix(`ON CONFLICT (filename) DO UPDATE SET
			status = EXCLUDED.status,
			result_name = EXCLUDED.result_name,
			used_ocr = EXCLUDED.used_ocr,
			error_message = EXCLUDED.error_message,
			processed_at = EXCLUDED.processed_at
		`).
		ToSql()
	if err != nil {
		return createQueryError(err)
	}

	_, err = db.Exec(ctx, sql, args...)
	if err != nil {
		return executeQueryError(err)
	}

	return nil
}

func (r *JobsRepository) ResetProcessingJobs(ctx context.Context) error {
	db := extractDB(ctx, r.pool)

	sql, args, err := r.qb.
		Update(TableJobs).
		Set("status", domain.StatusPending).
		Where(sq.Eq{"status": domain.StatusProcessing}).
		ToSql()
	if err != nil {
		return createQueryError(err)
	}

	_, err = db.Exec(ctx, sql, args...)
	if err != nil {
		return executeQueryError(err)
	}

	return nil
}
