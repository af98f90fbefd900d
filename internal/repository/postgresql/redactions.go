package postgresql

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/hackatronbits/Team-Encryptors/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const TableRedactions = "redactions"

type RedactionsRepository struct {
	pool *pgxpool.Pool
	qb   sq.StatementBuilderType
}

func NewRedactionsRepository(pool *pgxpool.Pool) *RedactionsRepository {
	return &RedactionsRepository{
		pool: pool,
		qb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Redactions returns one page of the redaction history together with the
// total row count. An empty filename matches every source document.
func (r *RedactionsRepository) Redactions(ctx context.Context, filename string, limit, offset uint64) ([]*domain.Redaction, int, error) {
	db := extractDB(ctx, r.pool)

	countQuery := r.qb.
		Select("COUNT(*)").
		From(TableRedactions)
	if filename != "" {
		countQuery = countQuery.Where(sq.Eq{"filename": filename})
	}

	sql, args, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, createQueryError(err)
	}

	var total int
	if err = db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return nil, 0, scanRowError(err)
	}

	selectQuery := r.qb.
		Select(
			"id",
			"filename",
			"result_name",
			"used_ocr",
			"processed_at",
		).
		From(TableRedactions)
	if filename != "" {
		selectQuery = selectQuery.Where(sq.Eq{"filename": filename})
	}

	sql, args, err = selectQuery.
		OrderBy("processed_at DESC").
		Limit(limit).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, createQueryError(err)
	}

	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, executeQueryError(err)
	}

	redactions, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByNameLax[domain.Redaction])
	if err != nil {
		return nil, 0, collectRowsError(err)
	}

	return redactions, total, nil
}

// AllRedactions returns the whole history, newest first. It backs the TSV
// export where paging makes no sense.
func (r *RedactionsRepository) AllRedactions(ctx context.Context) ([]*domain.Redaction, error) {
	db := extractDB(ctx, r.pool)

	sql, args, err := r.qb.
		Select(
			"id",
			"filename",
			"result_name",
			"used_ocr",
			"processed_at",
		).
		From(TableRedactions).
		OrderBy("processed_at DESC").
		ToSql()
	if err != nil {
		return nil, createQueryError(err)
	}

	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, executeQueryError(err)
	}

	redactions, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByNameLax[domain.Redaction])
	if err != nil {
		return nil, collectRowsError(err)
	}

	return redactions, nil
}

func (r *RedactionsRepository) SaveRedaction(ctx context.Context, redaction *domain.Redaction) error {
	db := extractDB(ctx, r.pool)

	sql, args, err := r.qb.
		Insert(TableRedactions).
		Columns(
			"id",
			"filename",
			"result_name",
			"used_ocr",
			"processed_at",
		).
		Values(
			redaction.ID,
			redaction.Filename,
			redaction.ResultName,
			redaction.UsedOCR,
			redaction.ProcessedAt,
		).
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
