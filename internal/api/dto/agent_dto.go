package dto

import (
	"time"

	"github.com/spec-kit/agent-onboarding/internal/domain"
)

// NomineePayload carries nominee details.
type NomineePayload struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	DateOfBirth  string `json:"date_of_birth"`
	Mobile       string `json:"mobile"`
}

// ExamDetailsPayload carries licensing exam details.
type ExamDetailsPayload struct {
	ExamDate   string            `json:"exam_date"`
	ExamCenter string            `json:"exam_center"`
	Score      *int              `json:"score,omitempty"`
	Result     domain.ExamResult `json:"result,omitempty"`
}

// CreateAgentRequest payload.
type CreateAgentRequest struct {
	FirstName       string              `json:"first_name"`
	MiddleName      string              `json:"middle_name"`
	LastName        string              `json:"last_name"`
	DateOfBirth     string              `json:"date_of_birth"`
	Gender          domain.Gender       `json:"gender"`
	Email           string              `json:"email"`
	Mobile          string              `json:"mobile"`
	PANCard         string              `json:"pan_card"`
	AadhaarCard     string              `json:"aadhaar_card"`
	Qualification   string              `json:"qualification"`
	ExperienceYears int                 `json:"experience_years"`
	Address         string              `json:"address"`
	City            string              `json:"city"`
	State           string              `json:"state"`
	Pincode         string              `json:"pincode"`
	BankName        string              `json:"bank_name"`
	AccountNumber   string              `json:"account_number"`
	IFSCCode        string              `json:"ifsc_code"`
	Designation     string              `json:"designation"`
	Level           string              `json:"level"`
	Location        string              `json:"location"`
	LocationType    string              `json:"location_type"`
	SourceOfHiring  string              `json:"source_of_hiring"`
	ReferredBy      string              `json:"referred_by"`
	PriorInsurance  bool                `json:"prior_insurance_experience"`
	Nominee         *NomineePayload     `json:"nominee"`
	ExamDetails     *ExamDetailsPayload `json:"exam_details"`
}

// DocumentResponse metadata.
type DocumentResponse struct {
	Type       string    `json:"type"`
	UploadDate time.Time `json:"upload_date"`
	Verified   bool      `json:"verified"`
}

// AgentSummary response.
type AgentSummary struct {
	ID        string             `json:"id"`
	AgentCode string             `json:"agent_code"`
	FirstName string             `json:"first_name"`
	LastName  string             `json:"last_name"`
	Email     string             `json:"email"`
	Mobile    string             `json:"mobile"`
	City      string             `json:"city"`
	QScore    int                `json:"q_score"`
	Status    domain.AgentStatus `json:"status"`
	CreatedAt time.Time          `json:"created_at"`
}

// AgentDetailResponse provides full agent info.
type AgentDetailResponse struct {
	ID             string              `json:"id"`
	AgentCode      string              `json:"agent_code"`
	FirstName      string              `json:"first_name"`
	MiddleName     string              `json:"middle_name,omitempty"`
	LastName       string              `json:"last_name"`
	DateOfBirth    string              `json:"date_of_birth"`
	Gender         domain.Gender       `json:"gender"`
	Email          string              `json:"email"`
	Mobile         string              `json:"mobile"`
	PANCard        string              `json:"pan_card"`
	AadhaarCard    string              `json:"aadhaar_card"`
	Qualification  string              `json:"qualification"`
	Address        string              `json:"address"`
	City           string              `json:"city"`
	State          string              `json:"state"`
	Pincode        string              `json:"pincode"`
	BankName       string              `json:"bank_name"`
	AccountNumber  string              `json:"account_number"`
	IFSCCode       string              `json:"ifsc_code"`
	Designation    string              `json:"designation"`
	Level          string              `json:"level,omitempty"`
	Location       string              `json:"location,omitempty"`
	LocationType   string              `json:"location_type,omitempty"`
	SourceOfHiring string              `json:"source_of_hiring"`
	ReferredBy     string              `json:"referred_by,omitempty"`
	QScore         int                 `json:"q_score"`
	Status         domain.AgentStatus  `json:"status"`
	CreatedAt      time.Time           `json:"created_at"`
	ApprovedAt     *time.Time          `json:"approved_at,omitempty"`
	Nominee        *NomineePayload     `json:"nominee,omitempty"`
	Documents      []DocumentResponse  `json:"documents"`
	ExamDetails    *ExamDetailsPayload `json:"exam_details,omitempty"`
}

// DuplicateCheckResponse reports an identifier collision probe.
type DuplicateCheckResponse struct {
	Field     string `json:"field"`
	Duplicate bool   `json:"duplicate"`
}
