package stub

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/healthmate-app/healthmate-api/internal/domain/analysis"
)

// Client is a deterministic, no-network inference stub intended for CI and
// local end-to-end runs. It returns schema-valid JSON so downstream
// extraction, validation and persistence exercise the full pipeline.
type Client struct{}

func NewClient() *Client { return &Client{} }

func (c *Client) SourceName() string { return "Stub" }

func (c *Client) Analyze(_ context.Context, prompt string, doc analysis.Document) (string, error) {
	// Deterministic per-input so the pipeline is stable in CI.
	sum := sha256.Sum256(append([]byte(prompt), doc.Data...))
	short := hex.EncodeToString(sum[:8])

	out := analysis.Result{
		Reviewed:   true,
		Pending:    false,
		Highlights: []string{},
		Summary: analysis.Summary{
			English:   fmt.Sprintf("Stub analysis (%s): no findings.", short),
			RomanUrdu: fmt.Sprintf("Stub jaanch (%s): sab theek hai.", short),
		},
		DoctorQuestions: []string{
			"Is any follow-up test needed?",
			"Are my readings within the normal range?",
			"When should the next check-up be?",
		},
		Foods: analysis.Foods{
			Avoid:     []string{},
			Recommend: []string{},
		},
		HomeRemedies: []string{},
		Note:         analysis.Disclaimer,
	}

	b, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
