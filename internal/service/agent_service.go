package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/agent-onboarding/internal/domain"
	"github.com/spec-kit/agent-onboarding/internal/events"
	"github.com/spec-kit/agent-onboarding/internal/repository"
	"github.com/spec-kit/agent-onboarding/internal/scoring"
	"github.com/spec-kit/agent-onboarding/internal/validation"
	apperrors "github.com/spec-kit/agent-onboarding/pkg/util"
)

// DuplicateField enumerates the identifiers checked for collisions.
type DuplicateField string

const (
	DuplicateFieldPAN     DuplicateField = "pan"
	DuplicateFieldAadhaar DuplicateField = "aadhaar"
	DuplicateFieldEmail   DuplicateField = "email"
	DuplicateFieldMobile  DuplicateField = "mobile"
)

// AgentService coordinates agent submission, editing and status changes.
type AgentService struct {
	agents     repository.AgentRepository
	approvals  repository.ApprovalRepository
	dispatcher events.Dispatcher
}

// AgentDependencies bundles repositories for the agent service.
type AgentDependencies struct {
	AgentRepo    repository.AgentRepository
	ApprovalRepo repository.ApprovalRepository
	Dispatcher   events.Dispatcher
}

// AgentInput describes an agent submission or edit payload.
type AgentInput struct {
	FirstName       string
	MiddleName      string
	LastName        string
	DateOfBirth     time.Time
	Gender          domain.Gender
	Email           string
	Mobile          string
	PANCard         string
	AadhaarCard     string
	Qualification   string
	ExperienceYears int
	Address         string
	City            string
	State           string
	Pincode         string
	BankName        string
	AccountNumber   string
	IFSCCode        string
	Designation     string
	Level           string
	Location        string
	LocationType    string
	SourceOfHiring  string
	ReferredBy      string
	PriorInsurance  bool
	Nominee         *domain.Nominee
	ExamDetails     *domain.ExamDetails
}

// AgentListFilter describes listing parameters.
type AgentListFilter struct {
	Status     *domain.AgentStatus
	SearchTerm *string
	Limit      int
	Offset     int
}

// NewAgentService constructs the service.
func NewAgentService(deps AgentDependencies) *AgentService {
	return &AgentService{
		agents:     deps.AgentRepo,
		approvals:  deps.ApprovalRepo,
		dispatcher: deps.Dispatcher,
	}
}

// CreateAgent validates a submission, checks for duplicate identifiers,
// scores the applicant, stores the agent in pending state and opens the
// onboarding approval request.
func (s *AgentService) CreateAgent(ctx context.Context, requestedBy string, input AgentInput) (*domain.Agent, error) {
	if err := validateAgentInput(input); err != nil {
		return nil, err
	}
	if err := s.checkAllDuplicates(ctx, input, ""); err != nil {
		return nil, err
	}

	code, err := s.agents.NextAgentCode(ctx)
	if err != nil {
		return nil, err
	}

	agent := agentFromInput(input)
	agent.AgentCode = code
	agent.QScore = scoreAgent(input)
	agent.Status = domain.AgentStatusPending
	agent.Documents = []domain.Document{}

	if err := s.agents.Create(ctx, agent); err != nil {
		return nil, err
	}

	request := &domain.ApprovalRequest{
		AgentID:     agent.ID,
		AgentName:   agent.FullName(),
		RequestType: domain.RequestTypeOnboarding,
		RequestedBy: requestedBy,
		Status:      domain.ApprovalStatusPending,
	}
	if err := s.approvals.Create(ctx, request); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventAgentCreated, requestedBy, events.AgentCreatedPayload{
		AgentID:   agent.ID,
		AgentCode: agent.AgentCode,
		QScore:    agent.QScore,
		Status:    agent.Status,
	})
	return agent, nil
}

// UpdateAgent edits an existing agent. Duplicate checks exclude the agent's
// own record; the quality score is recomputed from the edited attributes and
// the lifecycle status is left untouched.
func (s *AgentService) UpdateAgent(ctx context.Context, id string, input AgentInput) (*domain.Agent, error) {
	existing, err := s.agents.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateAgentInput(input); err != nil {
		return nil, err
	}
	if err := s.checkAllDuplicates(ctx, input, id); err != nil {
		return nil, err
	}

	agent := agentFromInput(input)
	agent.ID = existing.ID
	agent.AgentCode = existing.AgentCode
	agent.QScore = scoreAgent(input)
	agent.Status = existing.Status
	agent.CreatedAt = existing.CreatedAt
	agent.ApprovedAt = existing.ApprovedAt
	agent.Documents = existing.Documents

	if err := s.agents.Update(ctx, agent); err != nil {
		return nil, err
	}
	return agent, nil
}

// GetAgent fetches a single agent.
func (s *AgentService) GetAgent(ctx context.Context, id string) (*domain.Agent, error) {
	return s.agents.GetByID(ctx, id)
}

// ListAgents returns agents matching the filter.
func (s *AgentService) ListAgents(ctx context.Context, filter AgentListFilter) ([]domain.Agent, error) {
	return s.agents.List(ctx, repository.AgentFilter{
		Status:     filter.Status,
		SearchTerm: filter.SearchTerm,
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	})
}

// IsDuplicate reports whether another agent already holds value for the given
// field. The agent identified by excludeID is ignored, so editing a record
// back to its own value never collides. Empty values are never duplicates.
func (s *AgentService) IsDuplicate(ctx context.Context, field DuplicateField, value, excludeID string) (bool, error) {
	if strings.TrimSpace(value) == "" {
		return false, nil
	}
	agents, err := s.agents.List(ctx, repository.AgentFilter{})
	if err != nil {
		return false, err
	}
	for i := range agents {
		if agents[i].ID == excludeID {
			continue
		}
		if duplicateFieldValue(&agents[i], field) == value {
			return true, nil
		}
	}
	return false, nil
}

// ApplyStatus writes status to the agent as a whole-record replacement.
// Applying the current status again is a no-op; transition legality is the
// caller's concern so that manual overrides stay possible.
func (s *AgentService) ApplyStatus(ctx context.Context, agentID string, status domain.AgentStatus, approvedAt *time.Time) error {
	agent, err := s.agents.GetByID(ctx, agentID)
	if err != nil {
		return err
	}
	if agent.Status == status && approvedAt == nil {
		return nil
	}

	oldStatus := agent.Status
	agent.Status = status
	if approvedAt != nil {
		agent.ApprovedAt = approvedAt
	}
	if err := s.agents.Update(ctx, agent); err != nil {
		return err
	}

	if oldStatus != status {
		s.publish(ctx, events.EventAgentStatusChanged, "", events.AgentStatusChangedPayload{
			AgentID:   agentID,
			OldStatus: oldStatus,
			NewStatus: status,
		})
	}
	return nil
}

func (s *AgentService) checkAllDuplicates(ctx context.Context, input AgentInput, excludeID string) error {
	checks := []struct {
		field DuplicateField
		value string
	}{
		{DuplicateFieldPAN, validation.FormatPAN(strings.TrimSpace(input.PANCard))},
		{DuplicateFieldAadhaar, input.AadhaarCard},
		{DuplicateFieldEmail, input.Email},
		{DuplicateFieldMobile, input.Mobile},
	}
	for _, check := range checks {
		dup, err := s.IsDuplicate(ctx, check.field, check.value, excludeID)
		if err != nil {
			return err
		}
		if dup {
			return apperrors.NewDuplicateError(string(check.field))
		}
	}
	return nil
}

func (s *AgentService) publish(ctx context.Context, eventType events.EventType, actor string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Actor:     actor,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}

func agentFromInput(input AgentInput) *domain.Agent {
	return &domain.Agent{
		FirstName:      strings.TrimSpace(input.FirstName),
		MiddleName:     strings.TrimSpace(input.MiddleName),
		LastName:       strings.TrimSpace(input.LastName),
		DateOfBirth:    input.DateOfBirth,
		Gender:         input.Gender,
		Email:          strings.TrimSpace(input.Email),
		Mobile:         strings.TrimSpace(input.Mobile),
		PANCard:        validation.FormatPAN(strings.TrimSpace(input.PANCard)),
		AadhaarCard:    strings.TrimSpace(input.AadhaarCard),
		Qualification:  strings.TrimSpace(input.Qualification),
		Address:        strings.TrimSpace(input.Address),
		City:           strings.TrimSpace(input.City),
		State:          strings.TrimSpace(input.State),
		Pincode:        strings.TrimSpace(input.Pincode),
		BankName:       strings.TrimSpace(input.BankName),
		AccountNumber:  strings.TrimSpace(input.AccountNumber),
		IFSCCode:       strings.TrimSpace(input.IFSCCode),
		Designation:    strings.TrimSpace(input.Designation),
		Level:          strings.TrimSpace(input.Level),
		Location:       strings.TrimSpace(input.Location),
		LocationType:   strings.TrimSpace(input.LocationType),
		SourceOfHiring: strings.TrimSpace(input.SourceOfHiring),
		ReferredBy:     strings.TrimSpace(input.ReferredBy),
		Nominee:        input.Nominee,
		ExamDetails:    input.ExamDetails,
	}
}

func scoreAgent(input AgentInput) int {
	return scoring.Score(scoring.Input{
		Qualification:     input.Qualification,
		ExperienceYears:   input.ExperienceYears,
		Age:               validation.Age(input.DateOfBirth, time.Now()),
		PriorInsuranceExp: input.PriorInsurance,
		ReferralSource:    input.SourceOfHiring,
	})
}

func validateAgentInput(input AgentInput) error {
	issues := map[string]any{}

	if strings.TrimSpace(input.FirstName) == "" {
		issues["first_name"] = "required"
	}
	if strings.TrimSpace(input.LastName) == "" {
		issues["last_name"] = "required"
	}
	if input.DateOfBirth.IsZero() {
		issues["date_of_birth"] = "required"
	}
	if strings.TrimSpace(input.Qualification) == "" {
		issues["qualification"] = "required"
	}
	if strings.TrimSpace(input.SourceOfHiring) == "" {
		issues["source_of_hiring"] = "required"
	}
	if !validation.ValidEmail(input.Email) {
		issues["email"] = "must be a valid email address"
	}
	if !validation.ValidMobile(input.Mobile) {
		issues["mobile"] = "must be a 10 digit mobile number"
	}
	if !validation.ValidPAN(validation.FormatPAN(strings.TrimSpace(input.PANCard))) {
		issues["pan_card"] = "must match AAAAA9999A"
	}
	if !validation.ValidAadhaar(input.AadhaarCard) {
		issues["aadhaar_card"] = "must be a 12 digit number"
	}
	if input.Pincode != "" && !validation.ValidPincode(input.Pincode) {
		issues["pincode"] = "must be a 6 digit pincode"
	}
	if input.AccountNumber != "" && !validation.ValidAccountNumber(input.AccountNumber) {
		issues["account_number"] = "must be 9 to 18 digits"
	}
	if input.IFSCCode != "" && !validation.ValidIFSC(input.IFSCCode) {
		issues["ifsc_code"] = "must match AAAA0XXXXXX"
	}

	if len(issues) > 0 {
		return apperrors.NewValidationError("invalid agent details", issues)
	}
	return nil
}

func duplicateFieldValue(agent *domain.Agent, field DuplicateField) string {
	switch field {
	case DuplicateFieldPAN:
		return agent.PANCard
	case DuplicateFieldAadhaar:
		return agent.AadhaarCard
	case DuplicateFieldEmail:
		return agent.Email
	case DuplicateFieldMobile:
		return agent.Mobile
	}
	return ""
}
