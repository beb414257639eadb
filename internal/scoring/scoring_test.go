package scoring

import "testing"

func TestScoreBase(t *testing.T) {
	got := Score(Input{Qualification: "10th Pass", Age: 50})
	if got != baseScore {
		t.Fatalf("unrecognized qualification outside bonus ages should score %d, got %d", baseScore, got)
	}
}

func TestScoreQualification(t *testing.T) {
	cases := []struct {
		qualification string
		want          int
	}{
		{"Master of Business Administration (MBA)", 70},
		{"MBA", 70},
		{"Chartered Accountant (CA)", 70},
		{"Company Secretary (CS)", 68},
		{"Bachelor of Technology (BTech)", 65},
		{"Master of Commerce (MCom)", 62},
		{"Bachelor of Commerce (BCom)", 60},
		{"Bachelor of Arts (BA)", 58},
		{"mba", 50},
	}
	for _, tc := range cases {
		t.Run(tc.qualification, func(t *testing.T) {
			got := Score(Input{Qualification: tc.qualification, Age: 50})
			if got != tc.want {
				t.Fatalf("Score(%q) = %d, want %d", tc.qualification, got, tc.want)
			}
		})
	}
}

func TestScoreExperience(t *testing.T) {
	cases := []struct {
		years int
		want  int
	}{
		{0, 50},
		{1, 52},
		{5, 60},
		{10, 70},
		{15, 70},
		{-3, 50},
	}
	for _, tc := range cases {
		got := Score(Input{ExperienceYears: tc.years, Age: 50})
		if got != tc.want {
			t.Fatalf("Score with %d years = %d, want %d", tc.years, got, tc.want)
		}
	}
}

func TestScoreAgeBands(t *testing.T) {
	cases := []struct {
		age  int
		want int
	}{
		{24, 50},
		{25, 60},
		{35, 60},
		{36, 55},
		{45, 55},
		{46, 50},
	}
	for _, tc := range cases {
		got := Score(Input{Age: tc.age})
		if got != tc.want {
			t.Fatalf("Score at age %d = %d, want %d", tc.age, got, tc.want)
		}
	}
}

func TestScoreReferral(t *testing.T) {
	if got := Score(Input{ReferralSource: "Agent Referral", Age: 50}); got != 60 {
		t.Fatalf("agent referral = %d, want 60", got)
	}
	if got := Score(Input{ReferralSource: "Employee Referral", Age: 50}); got != 60 {
		t.Fatalf("employee referral = %d, want 60", got)
	}
	if got := Score(Input{ReferralSource: "Job Portal", Age: 50}); got != 50 {
		t.Fatalf("non-referral channel = %d, want 50", got)
	}
}

func TestScorePriorInsurance(t *testing.T) {
	if got := Score(Input{PriorInsuranceExp: true, Age: 50}); got != 65 {
		t.Fatalf("prior insurance = %d, want 65", got)
	}
}

func TestScoreCapped(t *testing.T) {
	got := Score(Input{
		Qualification:     "MBA",
		ExperienceYears:   12,
		Age:               30,
		PriorInsuranceExp: true,
		ReferralSource:    "Agent Referral",
	})
	if got != maxScore {
		t.Fatalf("stacked bonuses should cap at %d, got %d", maxScore, got)
	}
}

func TestCredentialFor(t *testing.T) {
	if got := CredentialFor("Chartered Financial Analyst (CFA)"); got != CredentialCFA {
		t.Fatalf("CredentialFor = %q", got)
	}
	if got := CredentialFor("Diploma"); got != CredentialNone {
		t.Fatalf("unknown qualification should map to none, got %q", got)
	}
}
