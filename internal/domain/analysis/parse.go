package analysis

import (
	"encoding/json"
	"errors"
	"strings"
)

// extractJSONSpan takes the substring between the first '{' and the last '}'
// inclusive. Models often wrap the JSON object in prose or code fences; the
// greedy span tolerates both.
func extractJSONSpan(response string) (string, error) {
	start := strings.Index(response, "{")
	if start == -1 {
		return "", errors.New("no JSON object found in response")
	}
	end := strings.LastIndex(response, "}")
	if end == -1 || end < start {
		return "", errors.New("no JSON object found in response")
	}
	return strings.TrimSpace(response[start : end+1]), nil
}

// rawResult mirrors Result with pointer fields so missing keys are
// distinguishable from zero values during validation.
type rawResult struct {
	Reviewed   *bool    `json:"reviewed"`
	Pending    *bool    `json:"pending"`
	Highlights []string `json:"highlights"`
	Summary    *struct {
		English   *string `json:"english"`
		RomanUrdu *string `json:"romanUrdu"`
	} `json:"summary"`
	DoctorQuestions []string `json:"doctorQuestions"`
	Foods           *struct {
		Avoid     []string `json:"avoid"`
		Recommend []string `json:"recommend"`
	} `json:"foods"`
	HomeRemedies []string `json:"homeRemedies"`
	Note         *string  `json:"note"`
}

// Parse extracts the structured analysis embedded in raw model output and
// validates it against the Result schema. It is a pure function: identical
// input always yields identical output. There is no partial acceptance; a
// response with any missing or mistyped field fails as a whole.
func Parse(response string) (*Result, error) {
	span, err := extractJSONSpan(strings.TrimSpace(response))
	if err != nil {
		return nil, err
	}

	var raw rawResult
	if err := json.Unmarshal([]byte(span), &raw); err != nil {
		return nil, errors.New("failed to parse JSON response: " + err.Error())
	}

	switch {
	case raw.Reviewed == nil:
		return nil, errors.New("reviewed is required")
	case raw.Pending == nil:
		return nil, errors.New("pending is required")
	case raw.Highlights == nil:
		return nil, errors.New("highlights is required")
	case raw.Summary == nil:
		return nil, errors.New("summary is required")
	case raw.Summary.English == nil:
		return nil, errors.New("summary.english is required")
	case raw.Summary.RomanUrdu == nil:
		return nil, errors.New("summary.romanUrdu is required")
	case raw.DoctorQuestions == nil:
		return nil, errors.New("doctorQuestions is required")
	case raw.Foods == nil:
		return nil, errors.New("foods is required")
	case raw.Foods.Avoid == nil:
		return nil, errors.New("foods.avoid is required")
	case raw.Foods.Recommend == nil:
		return nil, errors.New("foods.recommend is required")
	case raw.HomeRemedies == nil:
		return nil, errors.New("homeRemedies is required")
	case raw.Note == nil:
		return nil, errors.New("note is required")
	}

	// Validated content is returned unchanged; the schema enforces types
	// but never clamps array lengths or string content.
	return &Result{
		Reviewed:        *raw.Reviewed,
		Pending:         *raw.Pending,
		Highlights:      raw.Highlights,
		Summary:         Summary{English: *raw.Summary.English, RomanUrdu: *raw.Summary.RomanUrdu},
		DoctorQuestions: raw.DoctorQuestions,
		Foods:           Foods{Avoid: raw.Foods.Avoid, Recommend: raw.Foods.Recommend},
		HomeRemedies:    raw.HomeRemedies,
		Note:            *raw.Note,
	}, nil
}
