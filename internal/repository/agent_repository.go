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

// AgentFilter captures listing parameters for agents.
type AgentFilter struct {
	Status     *domain.AgentStatus
	SearchTerm *string
	Limit      int
	Offset     int
}

// AgentRepository encapsulates agent persistence. List returns a snapshot of
// the collection; implementations replace whole records on Update.
type AgentRepository interface {
	Create(ctx context.Context, agent *domain.Agent) error
	Update(ctx context.Context, agent *domain.Agent) error
	GetByID(ctx context.Context, id string) (*domain.Agent, error)
	List(ctx context.Context, filter AgentFilter) ([]domain.Agent, error)
	NextAgentCode(ctx context.Context) (string, error)
	CountByStatus(ctx context.Context) (map[domain.AgentStatus]int, error)
}

type agentRepository struct {
	pool *pgxpool.Pool
}

// NewAgentRepository instantiates the Postgres-backed repository.
func NewAgentRepository(pool *pgxpool.Pool) AgentRepository {
	return &agentRepository{pool: pool}
}

const agentColumns = `id, agent_code, first_name, middle_name, last_name, date_of_birth, gender,
       email, mobile, pan_card, aadhaar_card, qualification, address, city, state, pincode,
       bank_name, account_number, ifsc_code, designation, level, location, location_type,
       source_of_hiring, referred_by, q_score, status, created_at, approved_at,
       nominee, documents, exam_details`

func (r *agentRepository) Create(ctx context.Context, agent *domain.Agent) error {
	const query = `
        INSERT INTO agents (agent_code, first_name, middle_name, last_name, date_of_birth, gender,
            email, mobile, pan_card, aadhaar_card, qualification, address, city, state, pincode,
            bank_name, account_number, ifsc_code, designation, level, location, location_type,
            source_of_hiring, referred_by, q_score, status, approved_at, nominee, documents, exam_details)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25,$26,$27,$28,$29,$30)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		agent.AgentCode,
		agent.FirstName,
		agent.MiddleName,
		agent.LastName,
		agent.DateOfBirth,
		agent.Gender,
		agent.Email,
		agent.Mobile,
		agent.PANCard,
		agent.AadhaarCard,
		agent.Qualification,
		agent.Address,
		agent.City,
		agent.State,
		agent.Pincode,
		agent.BankName,
		agent.AccountNumber,
		agent.IFSCCode,
		agent.Designation,
		agent.Level,
		agent.Location,
		agent.LocationType,
		agent.SourceOfHiring,
		agent.ReferredBy,
		agent.QScore,
		agent.Status,
		agent.ApprovedAt,
		agent.Nominee,
		agent.Documents,
		agent.ExamDetails,
	).Scan(&agent.ID, &agent.CreatedAt)
}

func (r *agentRepository) Update(ctx context.Context, agent *domain.Agent) error {
	const query = `
        UPDATE agents SET first_name=$1, middle_name=$2, last_name=$3, date_of_birth=$4, gender=$5,
            email=$6, mobile=$7, pan_card=$8, aadhaar_card=$9, qualification=$10, address=$11,
            city=$12, state=$13, pincode=$14, bank_name=$15, account_number=$16, ifsc_code=$17,
            designation=$18, level=$19, location=$20, location_type=$21, source_of_hiring=$22,
            referred_by=$23, q_score=$24, status=$25, approved_at=$26, nominee=$27, documents=$28,
            exam_details=$29
        WHERE id=$30`
	cmd, err := r.pool.Exec(ctx, query,
		agent.FirstName,
		agent.MiddleName,
		agent.LastName,
		agent.DateOfBirth,
		agent.Gender,
		agent.Email,
		agent.Mobile,
		agent.PANCard,
		agent.AadhaarCard,
		agent.Qualification,
		agent.Address,
		agent.City,
		agent.State,
		agent.Pincode,
		agent.BankName,
		agent.AccountNumber,
		agent.IFSCCode,
		agent.Designation,
		agent.Level,
		agent.Location,
		agent.LocationType,
		agent.SourceOfHiring,
		agent.ReferredBy,
		agent.QScore,
		agent.Status,
		agent.ApprovedAt,
		agent.Nominee,
		agent.Documents,
		agent.ExamDetails,
		agent.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return apperrors.NewNotFound("agent", map[string]any{"id": agent.ID})
	}
	return nil
}

func (r *agentRepository) GetByID(ctx context.Context, id string) (*domain.Agent, error) {
	query := fmt.Sprintf(`SELECT %s FROM agents WHERE id=$1`, agentColumns)
	var agent domain.Agent
	if err := scanAgent(r.pool.QueryRow(ctx, query, id), &agent); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("agent", map[string]any{"id": id})
		}
		return nil, err
	}
	return &agent, nil
}

func (r *agentRepository) List(ctx context.Context, filter AgentFilter) ([]domain.Agent, error) {
	clauses := make([]string, 0, 2)
	args := make([]any, 0, 4)

	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.SearchTerm != nil && *filter.SearchTerm != "" {
		args = append(args, "%"+strings.ToLower(*filter.SearchTerm)+"%")
		idx := len(args)
		clauses = append(clauses, fmt.Sprintf(
			"(lower(first_name) LIKE $%d OR lower(last_name) LIKE $%d OR lower(agent_code) LIKE $%d OR lower(email) LIKE $%d)",
			idx, idx, idx, idx))
	}

	query := fmt.Sprintf(`SELECT %s FROM agents`, agentColumns)
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY created_at, id"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	agents := make([]domain.Agent, 0)
	for rows.Next() {
		var agent domain.Agent
		if err := scanAgent(rows, &agent); err != nil {
			return nil, err
		}
		agents = append(agents, agent)
	}
	return agents, rows.Err()
}

func (r *agentRepository) NextAgentCode(ctx context.Context) (string, error) {
	const query = `
        SELECT COALESCE(MAX(NULLIF(regexp_replace(agent_code, '\D', '', 'g'), '')::int), 1233)
        FROM agents`
	var last int
	if err := r.pool.QueryRow(ctx, query).Scan(&last); err != nil {
		return "", err
	}
	return fmt.Sprintf("AFLI%06d", last+1), nil
}

func (r *agentRepository) CountByStatus(ctx context.Context) (map[domain.AgentStatus]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM agents GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.AgentStatus]int)
	for rows.Next() {
		var status domain.AgentStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func scanAgent(row pgx.Row, agent *domain.Agent) error {
	return row.Scan(
		&agent.ID,
		&agent.AgentCode,
		&agent.FirstName,
		&agent.MiddleName,
		&agent.LastName,
		&agent.DateOfBirth,
		&agent.Gender,
		&agent.Email,
		&agent.Mobile,
		&agent.PANCard,
		&agent.AadhaarCard,
		&agent.Qualification,
		&agent.Address,
		&agent.City,
		&agent.State,
		&agent.Pincode,
		&agent.BankName,
		&agent.AccountNumber,
		&agent.IFSCCode,
		&agent.Designation,
		&agent.Level,
		&agent.Location,
		&agent.LocationType,
		&agent.SourceOfHiring,
		&agent.ReferredBy,
		&agent.QScore,
		&agent.Status,
		&agent.CreatedAt,
		&agent.ApprovedAt,
		&agent.Nominee,
		&agent.Documents,
		&agent.ExamDetails,
	)
}
