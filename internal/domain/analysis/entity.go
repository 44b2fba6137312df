package analysis

// Disclaimer is the fixed closing sentence every analysis must end with.
const Disclaimer = "Always consult your doctor before making any decision."

// Summary holds the bilingual plain-language summary of a report.
type Summary struct {
	English   string `json:"english"`
	RomanUrdu string `json:"romanUrdu"`
}

// Foods holds dietary guidance derived from the report.
type Foods struct {
	Avoid     []string `json:"avoid"`
	Recommend []string `json:"recommend"`
}

// Result is the validated structured output of a report analysis.
// Every field is required; a response missing any of them is rejected
// as a whole and replaced by Fallback().
type Result struct {
	Reviewed        bool     `json:"reviewed"`
	Pending         bool     `json:"pending"`
	Highlights      []string `json:"highlights"`
	Summary         Summary  `json:"summary"`
	DoctorQuestions []string `json:"doctorQuestions"`
	Foods           Foods    `json:"foods"`
	HomeRemedies    []string `json:"homeRemedies"`
	Note            string   `json:"note"`
}

// Fallback returns the fixed, schema-valid result substituted whenever
// any stage after invocation fails. It always marks the report pending.
func Fallback() Result {
	return Result{
		Reviewed:   false,
		Pending:    true,
		Highlights: []string{},
		Summary: Summary{
			English:   "Analysis failed.",
			RomanUrdu: "Jaanch nahi ho saki.",
		},
		DoctorQuestions: []string{"Please consult a doctor."},
		Foods: Foods{
			Avoid:     []string{},
			Recommend: []string{},
		},
		HomeRemedies: []string{},
		Note:         Disclaimer,
	}
}
