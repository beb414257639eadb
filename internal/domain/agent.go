package domain

import "time"

// AgentStatus enumerates lifecycle states for agents.
type AgentStatus string

const (
	AgentStatusActive     AgentStatus = "active"
	AgentStatusPending    AgentStatus = "pending"
	AgentStatusSuspended  AgentStatus = "suspended"
	AgentStatusTerminated AgentStatus = "terminated"
	AgentStatusTraining   AgentStatus = "training"
)

// Gender enumerates accepted gender values.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// ExamResult enumerates certification exam outcomes.
type ExamResult string

const (
	ExamResultPass    ExamResult = "Pass"
	ExamResultFail    ExamResult = "Fail"
	ExamResultPending ExamResult = "Pending"
)

// Nominee is the agent's nominated beneficiary.
type Nominee struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	DateOfBirth  string `json:"date_of_birth"`
	Mobile       string `json:"mobile"`
}

// Document records an uploaded KYC document.
type Document struct {
	Type       string    `json:"type"`
	UploadDate time.Time `json:"upload_date"`
	Verified   bool      `json:"verified"`
}

// ExamDetails captures the licensing exam attempt.
type ExamDetails struct {
	ExamDate   string     `json:"exam_date"`
	ExamCenter string     `json:"exam_center"`
	Score      *int       `json:"score,omitempty"`
	Result     ExamResult `json:"result,omitempty"`
}

// Agent is the aggregate for insurance sales agents.
type Agent struct {
	ID             string
	AgentCode      string
	FirstName      string
	MiddleName     string
	LastName       string
	DateOfBirth    time.Time
	Gender         Gender
	Email          string
	Mobile         string
	PANCard        string
	AadhaarCard    string
	Qualification  string
	Address        string
	City           string
	State          string
	Pincode        string
	BankName       string
	AccountNumber  string
	IFSCCode       string
	Designation    string
	Level          string
	Location       string
	LocationType   string
	SourceOfHiring string
	ReferredBy     string
	QScore         int
	Status         AgentStatus
	CreatedAt      time.Time
	ApprovedAt     *time.Time
	Nominee        *Nominee
	Documents      []Document
	ExamDetails    *ExamDetails
}

// FullName joins the agent's first and last names for display snapshots.
func (a *Agent) FullName() string {
	return a.FirstName + " " + a.LastName
}
