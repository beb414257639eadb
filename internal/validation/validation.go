package validation

import (
	"regexp"
	"strings"
	"time"
)

var (
	panPattern     = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	aadhaarPattern = regexp.MustCompile(`^\d{12}$`)
	mobilePattern  = regexp.MustCompile(`^[6-9]\d{9}$`)
	emailPattern   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	ifscPattern    = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)
	accountPattern = regexp.MustCompile(`^\d{9,18}$`)
	pincodePattern = regexp.MustCompile(`^[1-9][0-9]{5}$`)
)

// ValidPAN reports whether pan is a well-formed permanent account number
// (five uppercase letters, four digits, one uppercase letter).
func ValidPAN(pan string) bool {
	return panPattern.MatchString(pan)
}

// ValidAadhaar reports whether aadhaar holds exactly twelve digits,
// ignoring internal whitespace.
func ValidAadhaar(aadhaar string) bool {
	return aadhaarPattern.MatchString(stripSpaces(aadhaar))
}

// ValidMobile reports whether mobile is a ten digit number starting 6-9.
func ValidMobile(mobile string) bool {
	return mobilePattern.MatchString(mobile)
}

// ValidEmail reports whether email has a local@domain.tld shape.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidIFSC reports whether ifsc is a well-formed bank routing code
// (four uppercase letters, a literal zero, six uppercase alphanumerics).
func ValidIFSC(ifsc string) bool {
	return ifscPattern.MatchString(ifsc)
}

// ValidAccountNumber reports whether account holds 9 to 18 digits.
func ValidAccountNumber(account string) bool {
	return accountPattern.MatchString(account)
}

// ValidPincode reports whether pincode is six digits with a non-zero lead.
func ValidPincode(pincode string) bool {
	return pincodePattern.MatchString(pincode)
}

// Age returns whole years between dob and at, counting a year only once
// the birthday has passed.
func Age(dob, at time.Time) int {
	age := at.Year() - dob.Year()
	if at.Month() < dob.Month() || (at.Month() == dob.Month() && at.Day() < dob.Day()) {
		age--
	}
	return age
}

// FormatPAN normalizes a PAN for display. Presentation only.
func FormatPAN(pan string) string {
	return strings.ToUpper(pan)
}

// FormatAadhaar groups an Aadhaar number as 4-4-4 digits. Presentation only.
func FormatAadhaar(aadhaar string) string {
	cleaned := stripSpaces(aadhaar)
	if len(cleaned) != 12 {
		return cleaned
	}
	return cleaned[0:4] + " " + cleaned[4:8] + " " + cleaned[8:12]
}

// FormatMobile groups a mobile number as 5-5 digits. Presentation only.
func FormatMobile(mobile string) string {
	if len(mobile) != 10 {
		return mobile
	}
	return mobile[0:5] + " " + mobile[5:10]
}

func stripSpaces(s string) string {
	return strings.Join(strings.Fields(s), "")
}
