package analysis

import (
	"fmt"
	"strings"
)

// PromptInput carries everything the prompt builder interpolates. Optional
// readings are passed through verbatim; empty ones get a literal placeholder
// so the model always sees the full set of labeled inputs.
type PromptInput struct {
	FileName   string
	ReportType string
	Date       string
	Kind       string // "document" or "image"
	BP         string
	Sugar      string
	Weight     string
	Notes      string
}

const schemaExample = `{
  "reviewed": true|false,
  "pending": true|false,
  "highlights": ["..."],
  "summary": {"english": "...", "romanUrdu": "..."},
  "doctorQuestions": ["..."],
  "foods": {"avoid": ["..."], "recommend": ["..."]},
  "homeRemedies": ["..."],
  "note": "Always consult..."
}`

// BuildPrompt produces the single deterministic instruction string sent to
// the inference provider. No randomness, no truncation; long notes are
// passed through whole.
func BuildPrompt(in PromptInput) string {
	orNA := func(s string) string {
		if strings.TrimSpace(s) == "" {
			return "N/A"
		}
		return s
	}
	notes := in.Notes
	if strings.TrimSpace(notes) == "" {
		notes = "None"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are a medical AI assistant. Read the uploaded %s %s (%s) directly and analyze it.\n\n",
		in.Kind, in.FileName, in.ReportType)

	b.WriteString("Manual inputs:\n")
	fmt.Fprintf(&b, "- Type: %s\n", orNA(in.ReportType))
	fmt.Fprintf(&b, "- Date: %s\n", orNA(in.Date))
	fmt.Fprintf(&b, "- BP: %s\n", orNA(in.BP))
	fmt.Fprintf(&b, "- Sugar: %s mg/dL\n", orNA(in.Sugar))
	fmt.Fprintf(&b, "- Weight: %s kg\n", orNA(in.Weight))
	fmt.Fprintf(&b, "- Notes: %s\n\n", notes)

	b.WriteString("Do:\n")
	b.WriteString("1. Highlight abnormal values (e.g., \"WBC high: 15 (normal 4-11)\")\n")
	b.WriteString("2. Give English + Roman Urdu summary\n")
	b.WriteString("3. Suggest 3-5 doctor questions\n")
	b.WriteString("4. Suggest foods to avoid & better foods\n")
	b.WriteString("5. Suggest 2-3 home remedies\n")
	fmt.Fprintf(&b, "6. End with: %q\n\n", Disclaimer)

	b.WriteString("Respond ONLY with valid JSON matching this schema:\n")
	b.WriteString(schemaExample)

	return strings.TrimSpace(b.String())
}
