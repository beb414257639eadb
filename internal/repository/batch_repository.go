package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/agent-onboarding/internal/domain"
	apperrors "github.com/spec-kit/agent-onboarding/pkg/util"
)

// BatchRepository encapsulates batch job persistence. List preserves
// insertion order.
type BatchRepository interface {
	Create(ctx context.Context, batch *domain.BatchJob) error
	Update(ctx context.Context, batch *domain.BatchJob) error
	GetByID(ctx context.Context, id string) (*domain.BatchJob, error)
	List(ctx context.Context) ([]domain.BatchJob, error)
	CountByStatus(ctx context.Context) (map[domain.BatchStatus]int, error)
}

type batchRepository struct {
	pool *pgxpool.Pool
}

// NewBatchRepository instantiates the Postgres-backed repository.
func NewBatchRepository(pool *pgxpool.Pool) BatchRepository {
	return &batchRepository{pool: pool}
}

const batchColumns = `id, name, type, agent_ids, agent_count, status, created_by, created_at, completed_at`

func (r *batchRepository) Create(ctx context.Context, batch *domain.BatchJob) error {
	const query = `
        INSERT INTO batch_jobs (name, type, agent_ids, agent_count, status, created_by, completed_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		batch.Name,
		batch.Type,
		batch.AgentIDs,
		batch.AgentCount,
		batch.Status,
		batch.CreatedBy,
		batch.CompletedAt,
	).Scan(&batch.ID, &batch.CreatedAt)
}

func (r *batchRepository) Update(ctx context.Context, batch *domain.BatchJob) error {
	const query = `
        UPDATE batch_jobs SET status=$1, completed_at=$2
        WHERE id=$3`
	cmd, err := r.pool.Exec(ctx, query, batch.Status, batch.CompletedAt, batch.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return apperrors.NewNotFound("batch job", map[string]any{"id": batch.ID})
	}
	return nil
}

func (r *batchRepository) GetByID(ctx context.Context, id string) (*domain.BatchJob, error) {
	query := fmt.Sprintf(`SELECT %s FROM batch_jobs WHERE id=$1`, batchColumns)
	var batch domain.BatchJob
	if err := scanBatch(r.pool.QueryRow(ctx, query, id), &batch); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("batch job", map[string]any{"id": id})
		}
		return nil, err
	}
	return &batch, nil
}

func (r *batchRepository) List(ctx context.Context) ([]domain.BatchJob, error) {
	query := fmt.Sprintf(`SELECT %s FROM batch_jobs ORDER BY seq`, batchColumns)
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	batches := make([]domain.BatchJob, 0)
	for rows.Next() {
		var batch domain.BatchJob
		if err := scanBatch(rows, &batch); err != nil {
			return nil, err
		}
		batches = append(batches, batch)
	}
	return batches, rows.Err()
}

func (r *batchRepository) CountByStatus(ctx context.Context) (map[domain.BatchStatus]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM batch_jobs GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.BatchStatus]int)
	for rows.Next() {
		var status domain.BatchStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func scanBatch(row pgx.Row, batch *domain.BatchJob) error {
	return row.Scan(
		&batch.ID,
		&batch.Name,
		&batch.Type,
		&batch.AgentIDs,
		&batch.AgentCount,
		&batch.Status,
		&batch.CreatedBy,
		&batch.CreatedAt,
		&batch.CompletedAt,
	)
}
