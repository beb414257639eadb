package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/agent-onboarding/internal/domain"
	apperrors "github.com/spec-kit/agent-onboarding/pkg/util"
)

// ApprovalFilter captures listing parameters for approval requests.
// Nil fields match everything.
type ApprovalFilter struct {
	RequestType *domain.RequestType
	Status      *domain.ApprovalStatus
}

// ApprovalRepository encapsulates approval request persistence.
// List preserves insertion order.
type ApprovalRepository interface {
	Create(ctx context.Context, request *domain.ApprovalRequest) error
	Update(ctx context.Context, request *domain.ApprovalRequest) error
	GetByID(ctx context.Context, id string) (*domain.ApprovalRequest, error)
	List(ctx context.Context, filter ApprovalFilter) ([]domain.ApprovalRequest, error)
	CountByStatus(ctx context.Context) (map[domain.ApprovalStatus]int, error)
}

type approvalRepository struct {
	pool *pgxpool.Pool
}

// NewApprovalRepository instantiates the Postgres-backed repository.
func NewApprovalRepository(pool *pgxpool.Pool) ApprovalRepository {
	return &approvalRepository{pool: pool}
}

const approvalColumns = `id, agent_id, agent_name, request_type, requested_by, requested_at,
       status, resolved_by, resolved_at, comments`

func (r *approvalRepository) Create(ctx context.Context, request *domain.ApprovalRequest) error {
	const query = `
        INSERT INTO approval_requests (agent_id, agent_name, request_type, requested_by, status,
            resolved_by, resolved_at, comments)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, requested_at`
	return r.pool.QueryRow(ctx, query,
		request.AgentID,
		request.AgentName,
		request.RequestType,
		request.RequestedBy,
		request.Status,
		request.ResolvedBy,
		request.ResolvedAt,
		request.Comments,
	).Scan(&request.ID, &request.RequestedAt)
}

func (r *approvalRepository) Update(ctx context.Context, request *domain.ApprovalRequest) error {
	const query = `
        UPDATE approval_requests SET status=$1, resolved_by=$2, resolved_at=$3, comments=$4
        WHERE id=$5`
	cmd, err := r.pool.Exec(ctx, query,
		request.Status,
		request.ResolvedBy,
		request.ResolvedAt,
		request.Comments,
		request.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return apperrors.NewNotFound("approval request", map[string]any{"id": request.ID})
	}
	return nil
}

func (r *approvalRepository) GetByID(ctx context.Context, id string) (*domain.ApprovalRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM approval_requests WHERE id=$1`, approvalColumns)
	var request domain.ApprovalRequest
	if err := scanApproval(r.pool.QueryRow(ctx, query, id), &request); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("approval request", map[string]any{"id": id})
		}
		return nil, err
	}
	return &request, nil
}

func (r *approvalRepository) List(ctx context.Context, filter ApprovalFilter) ([]domain.ApprovalRequest, error) {
	clauses := make([]string, 0, 2)
	args := make([]any, 0, 2)

	if filter.RequestType != nil {
		args = append(args, *filter.RequestType)
		clauses = append(clauses, fmt.Sprintf("request_type = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status = $%d", len(args)))
	}

	query := fmt.Sprintf(`SELECT %s FROM approval_requests`, approvalColumns)
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY seq"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]domain.ApprovalRequest, 0)
	for rows.Next() {
		var request domain.ApprovalRequest
		if err := scanApproval(rows, &request); err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}
	return requests, rows.Err()
}

func (r *approvalRepository) CountByStatus(ctx context.Context) (map[domain.ApprovalStatus]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM approval_requests GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.ApprovalStatus]int)
	for rows.Next() {
		var status domain.ApprovalStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func scanApproval(row pgx.Row, request *domain.ApprovalRequest) error {
	return row.Scan(
		&request.ID,
		&request.AgentID,
		&request.AgentName,
		&request.RequestType,
		&request.RequestedBy,
		&request.RequestedAt,
		&request.Status,
		&request.ResolvedBy,
		&request.ResolvedAt,
		&request.Comments,
	)
}
