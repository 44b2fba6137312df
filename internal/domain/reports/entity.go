package reports

import "time"

// ReportID identifier type
type ReportID string

// ReportType enum
type ReportType string

const (
	TypeBloodTest ReportType = "Blood Test"
	TypeXRay      ReportType = "X-Ray"
	TypeECG       ReportType = "ECG"
	TypeMRIScan   ReportType = "MRI Scan"
	TypeUrineTest ReportType = "Urine Test"
	TypeOther     ReportType = "Other"
)

// Status enum for the display status of a report
type Status string

const (
	StatusUploaded Status = "Uploaded"
	StatusPending  Status = "Pending"
	StatusReviewed Status = "Reviewed"
)

// Input is the data submitted for analysis. It is built per submission and
// discarded after use. FileName and EncodedFile must both be present or the
// submission is rejected before any invocation.
type Input struct {
	Type        ReportType `json:"type"`
	Date        string     `json:"date"`
	BP          string     `json:"bp,omitempty"`
	Sugar       string     `json:"sugar,omitempty"`
	Weight      string     `json:"weight,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	FileName    string     `json:"fileName"`
	EncodedFile string     `json:"-"`
}

// Aggregate Root: Report
type Report struct {
	ID        ReportID   `json:"id"`
	UserID    string     `json:"user_id"`
	Type      ReportType `json:"type"`
	Date      string     `json:"date"`
	Status    Status     `json:"status"`
	FileName  string     `json:"file_name"`
	FileURL   string     `json:"file_url,omitempty"`
	BP        string     `json:"bp,omitempty"`
	Sugar     string     `json:"sugar,omitempty"`
	Weight    string     `json:"weight,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	Summary   string     `json:"summary,omitempty"`
	Analysis  string     `json:"analysis,omitempty"` // full analysis JSON as returned
	CreatedAt time.Time  `json:"created_at"`
}

// StatusFromAnalysis derives the display status from the analysis booleans.
// Checked in priority order: reviewed wins when both are true. The two flags
// are not mutually exclusive in the model contract.
func StatusFromAnalysis(reviewed, pending bool) Status {
	switch {
	case reviewed:
		return StatusReviewed
	case pending:
		return StatusPending
	default:
		return StatusUploaded
	}
}
