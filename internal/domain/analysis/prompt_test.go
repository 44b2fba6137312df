package analysis

import (
	"strings"
	"testing"
)

func TestBuildPromptLabels(t *testing.T) {
	in := PromptInput{
		FileName:   "blood_report.pdf",
		ReportType: "Blood Test",
		Date:       "2025-10-15",
		Kind:       "document",
		BP:         "120/80",
		Sugar:      "95",
		Weight:     "72",
		Notes:      "fasting sample",
	}
	p := BuildPrompt(in)

	for _, want := range []string{
		"- Type: Blood Test",
		"- Date: 2025-10-15",
		"- BP: 120/80",
		"- Sugar: 95 mg/dL",
		"- Weight: 72 kg",
		"- Notes: fasting sample",
		"blood_report.pdf",
		"Respond ONLY with valid JSON",
		`"romanUrdu"`,
		Disclaimer,
	} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildPromptPlaceholders(t *testing.T) {
	p := BuildPrompt(PromptInput{
		FileName:   "xray.jpg",
		ReportType: "X-Ray",
		Date:       "2025-10-20",
		Kind:       "image",
	})

	for _, want := range []string{
		"- BP: N/A",
		"- Sugar: N/A mg/dL",
		"- Weight: N/A kg",
		"- Notes: None",
	} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing placeholder line %q", want)
		}
	}
}

func TestBuildPromptDeterministic(t *testing.T) {
	in := PromptInput{FileName: "ecg.pdf", ReportType: "ECG", Date: "2025-10-25", Kind: "document", Notes: strings.Repeat("long note ", 500)}
	if BuildPrompt(in) != BuildPrompt(in) {
		t.Error("BuildPrompt must be deterministic")
	}
	// Long notes are passed through whole, never truncated.
	if !strings.Contains(BuildPrompt(in), strings.Repeat("long note ", 500)) {
		t.Error("BuildPrompt truncated the notes field")
	}
}
