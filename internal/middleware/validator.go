package middleware

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/healthmate-app/healthmate-api/internal/domain/reports"
	"github.com/healthmate-app/healthmate-api/internal/domain/vitals"
)

// Input validation and sanitization utilities

// ValidateReportType checks the report type against the allowed list.
func ValidateReportType(t string) error {
	allowed := map[reports.ReportType]bool{
		reports.TypeBloodTest: true,
		reports.TypeXRay:      true,
		reports.TypeECG:       true,
		reports.TypeMRIScan:   true,
		reports.TypeUrineTest: true,
		reports.TypeOther:     true,
	}
	if !allowed[reports.ReportType(t)] {
		return fmt.Errorf("invalid report type: %s", t)
	}
	return nil
}

// ValidateVitalType checks the vital type against the allowed list.
func ValidateVitalType(t string) error {
	allowed := map[vitals.VitalType]bool{
		vitals.TypeBP:        true,
		vitals.TypeSugar:     true,
		vitals.TypeWeight:    true,
		vitals.TypeHeartRate: true,
	}
	if !allowed[vitals.VitalType(t)] {
		return fmt.Errorf("invalid vital type: %s", t)
	}
	return nil
}

// ValidateDate accepts YYYY-MM-DD dates.
func ValidateDate(date string) error {
	if date == "" {
		return fmt.Errorf("date cannot be empty")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("invalid date format (expected YYYY-MM-DD): %s", date)
	}
	return nil
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateEmail does a shape check, not full RFC validation.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// SanitizeString removes null bytes and control characters.
func SanitizeString(input string) string {
	input = strings.ReplaceAll(input, "\x00", "")

	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}
	return strings.TrimSpace(result.String())
}

// ValidateLimit validates pagination limit
func ValidateLimit(limit int) int {
	if limit <= 0 {
		return 20 // default
	}
	if limit > 100 {
		return 100 // max limit
	}
	return limit
}
