// Package scoring computes the applicant quality score (Q-Score) used to
// rank incoming agent applications.
package scoring

// Credential identifies a recognized qualification class.
type Credential string

const (
	CredentialMBA   Credential = "MBA"
	CredentialCA    Credential = "CA"
	CredentialCS    Credential = "CS"
	CredentialCFA   Credential = "CFA"
	CredentialBTech Credential = "BTech"
	CredentialBE    Credential = "BE"
	CredentialMCom  Credential = "MCom"
	CredentialMA    Credential = "MA"
	CredentialMSc   Credential = "MSc"
	CredentialBCom  Credential = "BCom"
	CredentialBA    Credential = "BA"
	CredentialBSc   Credential = "BSc"
	CredentialNone  Credential = ""
)

// credentialByQualification maps catalog qualification names and bare
// abbreviations to credentials. Exact match only; unrecognized or entry-level
// qualifications map to CredentialNone.
var credentialByQualification = map[string]Credential{
	"Master of Business Administration (MBA)": CredentialMBA,
	"Chartered Accountant (CA)":               CredentialCA,
	"Company Secretary (CS)":                  CredentialCS,
	"Chartered Financial Analyst (CFA)":       CredentialCFA,
	"Bachelor of Technology (BTech)":          CredentialBTech,
	"Bachelor of Engineering (BE)":            CredentialBE,
	"Master of Commerce (MCom)":               CredentialMCom,
	"Master of Arts (MA)":                     CredentialMA,
	"Master of Science (MSc)":                 CredentialMSc,
	"Bachelor of Commerce (BCom)":             CredentialBCom,
	"Bachelor of Arts (BA)":                   CredentialBA,
	"Bachelor of Science (BSc)":               CredentialBSc,
	"MBA":                                     CredentialMBA,
	"CA":                                      CredentialCA,
	"CS":                                      CredentialCS,
	"CFA":                                     CredentialCFA,
	"BTech":                                   CredentialBTech,
	"BE":                                      CredentialBE,
	"MCom":                                    CredentialMCom,
	"MA":                                      CredentialMA,
	"MSc":                                     CredentialMSc,
	"BCom":                                    CredentialBCom,
	"BA":                                      CredentialBA,
	"BSc":                                     CredentialBSc,
}

var credentialPoints = map[Credential]int{
	CredentialMBA:   20,
	CredentialCA:    20,
	CredentialCS:    18,
	CredentialCFA:   18,
	CredentialBTech: 15,
	CredentialBE:    15,
	CredentialMCom:  12,
	CredentialMA:    10,
	CredentialMSc:   10,
	CredentialBCom:  10,
	CredentialBA:    8,
	CredentialBSc:   8,
}

const (
	baseScore         = 50
	maxScore          = 100
	experienceCap     = 20
	pointsPerExpYear  = 2
	insuranceExpBonus = 15
	referralBonus     = 10
	primeAgeBonus     = 10
	secondaryAgeBonus = 5
	primeAgeLower     = 25
	primeAgeUpper     = 35
	secondaryAgeUpper = 45
)

// referralChannels are internal sourcing channels that earn a bonus.
var referralChannels = map[string]bool{
	"Agent Referral":    true,
	"Employee Referral": true,
}

// Input carries the applicant attributes the Q-Score depends on.
type Input struct {
	Qualification     string
	ExperienceYears   int
	Age               int
	PriorInsuranceExp bool
	ReferralSource    string
}

// CredentialFor resolves a qualification string to its credential class.
func CredentialFor(qualification string) Credential {
	return credentialByQualification[qualification]
}

// Score computes the Q-Score for an applicant. The result is deterministic
// and always within [0, 100].
func Score(in Input) int {
	score := baseScore

	score += credentialPoints[CredentialFor(in.Qualification)]

	exp := in.ExperienceYears * pointsPerExpYear
	if exp > experienceCap {
		exp = experienceCap
	}
	if exp > 0 {
		score += exp
	}

	switch {
	case in.Age >= primeAgeLower && in.Age <= primeAgeUpper:
		score += primeAgeBonus
	case in.Age > primeAgeUpper && in.Age <= secondaryAgeUpper:
		score += secondaryAgeBonus
	}

	if in.PriorInsuranceExp {
		score += insuranceExpBonus
	}

	if referralChannels[in.ReferralSource] {
		score += referralBonus
	}

	if score > maxScore {
		score = maxScore
	}
	return score
}
