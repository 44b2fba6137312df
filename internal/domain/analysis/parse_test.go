package analysis

import (
	"reflect"
	"testing"
)

const validJSON = `{"reviewed":true,"pending":false,"highlights":[],"summary":{"english":"ok","romanUrdu":"theek"},"doctorQuestions":[],"foods":{"avoid":[],"recommend":[]},"homeRemedies":[],"note":"x"}`

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		response string
		wantErr  bool
		expected *Result
	}{
		{
			name:     "bare valid JSON",
			response: validJSON,
			wantErr:  false,
			expected: &Result{
				Reviewed:        true,
				Pending:         false,
				Highlights:      []string{},
				Summary:         Summary{English: "ok", RomanUrdu: "theek"},
				DoctorQuestions: []string{},
				Foods:           Foods{Avoid: []string{}, Recommend: []string{}},
				HomeRemedies:    []string{},
				Note:            "x",
			},
		},
		{
			name:     "JSON surrounded by prose",
			response: "Sure! " + validJSON + " Thanks!",
			wantErr:  false,
			expected: &Result{
				Reviewed:        true,
				Pending:         false,
				Highlights:      []string{},
				Summary:         Summary{English: "ok", RomanUrdu: "theek"},
				DoctorQuestions: []string{},
				Foods:           Foods{Avoid: []string{}, Recommend: []string{}},
				HomeRemedies:    []string{},
				Note:            "x",
			},
		},
		{
			name: "JSON inside markdown code fence",
			response: "```json\n" + validJSON + "\n```",
			wantErr:  false,
			expected: &Result{
				Reviewed:        true,
				Pending:         false,
				Highlights:      []string{},
				Summary:         Summary{English: "ok", RomanUrdu: "theek"},
				DoctorQuestions: []string{},
				Foods:           Foods{Avoid: []string{}, Recommend: []string{}},
				HomeRemedies:    []string{},
				Note:            "x",
			},
		},
		{
			name: "populated arrays pass through unclamped",
			response: `{"reviewed":false,"pending":true,
				"highlights":["WBC high: 15 (normal 4-11)"],
				"summary":{"english":"Elevated WBC.","romanUrdu":"WBC zyada hai."},
				"doctorQuestions":["Q1","Q2","Q3","Q4","Q5","Q6","Q7"],
				"foods":{"avoid":["sugar"],"recommend":["greens"]},
				"homeRemedies":["rest"],
				"note":"Always consult your doctor before making any decision."}`,
			wantErr: false,
			expected: &Result{
				Reviewed:        false,
				Pending:         true,
				Highlights:      []string{"WBC high: 15 (normal 4-11)"},
				Summary:         Summary{English: "Elevated WBC.", RomanUrdu: "WBC zyada hai."},
				DoctorQuestions: []string{"Q1", "Q2", "Q3", "Q4", "Q5", "Q6", "Q7"},
				Foods:           Foods{Avoid: []string{"sugar"}, Recommend: []string{"greens"}},
				HomeRemedies:    []string{"rest"},
				Note:            "Always consult your doctor before making any decision.",
			},
		},
		{
			name:     "no braces at all",
			response: "I could not analyze the report, sorry.",
			wantErr:  true,
		},
		{
			name:     "malformed JSON",
			response: "{bad json",
			wantErr:  true,
		},
		{
			name:     "missing note field",
			response: `{"reviewed":true,"pending":false,"highlights":[],"summary":{"english":"ok","romanUrdu":"theek"},"doctorQuestions":[],"foods":{"avoid":[],"recommend":[]},"homeRemedies":[]}`,
			wantErr:  true,
		},
		{
			name:     "missing nested summary language",
			response: `{"reviewed":true,"pending":false,"highlights":[],"summary":{"english":"ok"},"doctorQuestions":[],"foods":{"avoid":[],"recommend":[]},"homeRemedies":[],"note":"x"}`,
			wantErr:  true,
		},
		{
			name:     "mistyped reviewed field",
			response: `{"reviewed":"yes","pending":false,"highlights":[],"summary":{"english":"ok","romanUrdu":"theek"},"doctorQuestions":[],"foods":{"avoid":[],"recommend":[]},"homeRemedies":[],"note":"x"}`,
			wantErr:  true,
		},
		{
			name:     "empty response",
			response: "",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.response)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) expected error, got %+v", tt.response, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.response, err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Parse() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestParseIsPure(t *testing.T) {
	raw := "Sure! " + validJSON + " Thanks!"
	first, err := Parse(raw)
	if err != nil {
		t.Fatalf("first Parse: %v", err)
	}
	second, err := Parse(raw)
	if err != nil {
		t.Fatalf("second Parse: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Parse is not idempotent: %+v vs %+v", first, second)
	}
}

func TestFallbackShape(t *testing.T) {
	fb := Fallback()
	if fb.Reviewed || !fb.Pending {
		t.Errorf("fallback flags = reviewed=%v pending=%v, want false/true", fb.Reviewed, fb.Pending)
	}
	if fb.Summary.English != "Analysis failed." {
		t.Errorf("fallback english summary = %q", fb.Summary.English)
	}
	if fb.Summary.RomanUrdu != "Jaanch nahi ho saki." {
		t.Errorf("fallback roman urdu summary = %q", fb.Summary.RomanUrdu)
	}
	if len(fb.DoctorQuestions) != 1 || fb.DoctorQuestions[0] != "Please consult a doctor." {
		t.Errorf("fallback doctor questions = %v", fb.DoctorQuestions)
	}
	if fb.Note != Disclaimer {
		t.Errorf("fallback note = %q, want disclaimer", fb.Note)
	}
	if fb.Highlights == nil || fb.Foods.Avoid == nil || fb.Foods.Recommend == nil || fb.HomeRemedies == nil {
		t.Error("fallback arrays must be empty, not nil, so the JSON body stays schema-valid")
	}
}
