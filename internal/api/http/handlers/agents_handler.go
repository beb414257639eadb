package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/agent-onboarding/internal/api/dto"
	"github.com/spec-kit/agent-onboarding/internal/auth"
	"github.com/spec-kit/agent-onboarding/internal/domain"
	"github.com/spec-kit/agent-onboarding/internal/service"
	apperrors "github.com/spec-kit/agent-onboarding/pkg/util"
)

const dateLayout = "2006-01-02"

// AgentsHandler manages agent endpoints.
type AgentsHandler struct {
	service *service.AgentService
}

// NewAgentsHandler constructs handler.
func NewAgentsHandler(agentService *service.AgentService) *AgentsHandler {
	return &AgentsHandler{service: agentService}
}

// CreateAgent POST /agents.
func (h *AgentsHandler) CreateAgent(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("operator required")
	}
	var req dto.CreateAgentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	input, err := agentInputFromRequest(req)
	if err != nil {
		return err
	}

	agent, err := h.service.CreateAgent(c.Context(), principal.User.Name, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": agentDetail(agent)})
}

// ListAgents GET /agents.
func (h *AgentsHandler) ListAgents(c *fiber.Ctx) error {
	filter := service.AgentListFilter{}
	if statusStr := c.Query("status"); statusStr != "" {
		status := domain.AgentStatus(statusStr)
		filter.Status = &status
	}
	if search := c.Query("search"); search != "" {
		filter.SearchTerm = &search
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize

	agents, err := h.service.ListAgents(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.AgentSummary, 0, len(agents))
	for i := range agents {
		items = append(items, agentSummary(&agents[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetAgent GET /agents/:id.
func (h *AgentsHandler) GetAgent(c *fiber.Ctx) error {
	agent, err := h.service.GetAgent(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": agentDetail(agent)})
}

// UpdateAgent PUT /agents/:id.
func (h *AgentsHandler) UpdateAgent(c *fiber.Ctx) error {
	var req dto.CreateAgentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	input, err := agentInputFromRequest(req)
	if err != nil {
		return err
	}

	agent, err := h.service.UpdateAgent(c.Context(), c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": agentDetail(agent)})
}

// CheckDuplicate GET /agents/check-duplicate.
func (h *AgentsHandler) CheckDuplicate(c *fiber.Ctx) error {
	field := service.DuplicateField(c.Query("field"))
	switch field {
	case service.DuplicateFieldPAN, service.DuplicateFieldAadhaar,
		service.DuplicateFieldEmail, service.DuplicateFieldMobile:
	default:
		return apperrors.NewValidationError("field must be pan, aadhaar, email or mobile", nil)
	}

	dup, err := h.service.IsDuplicate(c.Context(), field, c.Query("value"), c.Query("exclude"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.DuplicateCheckResponse{Field: string(field), Duplicate: dup}})
}

func agentInputFromRequest(req dto.CreateAgentRequest) (service.AgentInput, error) {
	dob, err := time.Parse(dateLayout, strings.TrimSpace(req.DateOfBirth))
	if err != nil {
		return service.AgentInput{}, apperrors.NewValidationError("invalid payload", map[string]any{"date_of_birth": "must be YYYY-MM-DD"})
	}

	input := service.AgentInput{
		FirstName:       req.FirstName,
		MiddleName:      req.MiddleName,
		LastName:        req.LastName,
		DateOfBirth:     dob,
		Gender:          req.Gender,
		Email:           req.Email,
		Mobile:          req.Mobile,
		PANCard:         req.PANCard,
		AadhaarCard:     req.AadhaarCard,
		Qualification:   req.Qualification,
		ExperienceYears: req.ExperienceYears,
		Address:         req.Address,
		City:            req.City,
		State:           req.State,
		Pincode:         req.Pincode,
		BankName:        req.BankName,
		AccountNumber:   req.AccountNumber,
		IFSCCode:        req.IFSCCode,
		Designation:     req.Designation,
		Level:           req.Level,
		Location:        req.Location,
		LocationType:    req.LocationType,
		SourceOfHiring:  req.SourceOfHiring,
		ReferredBy:      req.ReferredBy,
		PriorInsurance:  req.PriorInsurance,
	}
	if req.Nominee != nil {
		input.Nominee = &domain.Nominee{
			Name:         req.Nominee.Name,
			Relationship: req.Nominee.Relationship,
			DateOfBirth:  req.Nominee.DateOfBirth,
			Mobile:       req.Nominee.Mobile,
		}
	}
	if req.ExamDetails != nil {
		input.ExamDetails = &domain.ExamDetails{
			ExamDate:   req.ExamDetails.ExamDate,
			ExamCenter: req.ExamDetails.ExamCenter,
			Score:      req.ExamDetails.Score,
			Result:     req.ExamDetails.Result,
		}
	}
	return input, nil
}

func agentSummary(agent *domain.Agent) dto.AgentSummary {
	return dto.AgentSummary{
		ID:        agent.ID,
		AgentCode: agent.AgentCode,
		FirstName: agent.FirstName,
		LastName:  agent.LastName,
		Email:     agent.Email,
		Mobile:    agent.Mobile,
		City:      agent.City,
		QScore:    agent.QScore,
		Status:    agent.Status,
		CreatedAt: agent.CreatedAt,
	}
}

func agentDetail(agent *domain.Agent) dto.AgentDetailResponse {
	resp := dto.AgentDetailResponse{
		ID:             agent.ID,
		AgentCode:      agent.AgentCode,
		FirstName:      agent.FirstName,
		MiddleName:     agent.MiddleName,
		LastName:       agent.LastName,
		DateOfBirth:    agent.DateOfBirth.Format(dateLayout),
		Gender:         agent.Gender,
		Email:          agent.Email,
		Mobile:         agent.Mobile,
		PANCard:        agent.PANCard,
		AadhaarCard:    agent.AadhaarCard,
		Qualification:  agent.Qualification,
		Address:        agent.Address,
		City:           agent.City,
		State:          agent.State,
		Pincode:        agent.Pincode,
		BankName:       agent.BankName,
		AccountNumber:  agent.AccountNumber,
		IFSCCode:       agent.IFSCCode,
		Designation:    agent.Designation,
		Level:          agent.Level,
		Location:       agent.Location,
		LocationType:   agent.LocationType,
		SourceOfHiring: agent.SourceOfHiring,
		ReferredBy:     agent.ReferredBy,
		QScore:         agent.QScore,
		Status:         agent.Status,
		CreatedAt:      agent.CreatedAt,
		ApprovedAt:     agent.ApprovedAt,
	}
	if agent.Nominee != nil {
		resp.Nominee = &dto.NomineePayload{
			Name:         agent.Nominee.Name,
			Relationship: agent.Nominee.Relationship,
			DateOfBirth:  agent.Nominee.DateOfBirth,
			Mobile:       agent.Nominee.Mobile,
		}
	}
	resp.Documents = make([]dto.DocumentResponse, 0, len(agent.Documents))
	for _, doc := range agent.Documents {
		resp.Documents = append(resp.Documents, dto.DocumentResponse{
			Type:       doc.Type,
			UploadDate: doc.UploadDate,
			Verified:   doc.Verified,
		})
	}
	if agent.ExamDetails != nil {
		resp.ExamDetails = &dto.ExamDetailsPayload{
			ExamDate:   agent.ExamDetails.ExamDate,
			ExamCenter: agent.ExamDetails.ExamCenter,
			Score:      agent.ExamDetails.Score,
			Result:     agent.ExamDetails.Result,
		}
	}
	return resp
}

func parseInt(val string, fallback int) int {
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}
