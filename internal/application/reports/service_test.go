package reports

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/healthmate-app/healthmate-api/internal/domain/analysis"
	domain "github.com/healthmate-app/healthmate-api/internal/domain/reports"
)

const validResponse = `{"reviewed":true,"pending":false,"highlights":["WBC high: 15 (normal 4-11)"],"summary":{"english":"Mostly normal.","romanUrdu":"Zyada tar theek."},"doctorQuestions":["Ask about WBC"],"foods":{"avoid":["fried food"],"recommend":["fruit"]},"homeRemedies":["hydration"],"note":"Always consult your doctor before making any decision."}`

type fakeRepo struct {
	saved []*domain.Report
	err   error
}

func (f *fakeRepo) Save(_ context.Context, r *domain.Report) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, r)
	return nil
}
func (f *fakeRepo) Get(context.Context, string, domain.ReportID) (*domain.Report, error) {
	return nil, nil
}
func (f *fakeRepo) Latest(context.Context, string, int) ([]*domain.Report, error) { return nil, nil }
func (f *fakeRepo) Paginate(context.Context, string, int, int) (domain.PaginatedResult, error) {
	return domain.PaginatedResult{}, nil
}
func (f *fakeRepo) Delete(context.Context, string, domain.ReportID) error { return nil }
func (f *fakeRepo) CountByStatus(context.Context, string) (map[domain.Status]int, error) {
	return nil, nil
}

// scriptedClient returns a canned response or error and records the call.
type scriptedClient struct {
	response string
	err      error
	prompt   string
	doc      analysis.Document
	calls    int
}

func (c *scriptedClient) Analyze(_ context.Context, prompt string, doc analysis.Document) (string, error) {
	c.calls++
	c.prompt = prompt
	c.doc = doc
	if c.err != nil {
		return "", c.err
	}
	return c.response, nil
}

func (c *scriptedClient) SourceName() string { return "Scripted" }

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func testInput() domain.Input {
	return domain.Input{
		Type:        domain.TypeBloodTest,
		Date:        "2025-10-15",
		BP:          "120/80",
		FileName:    "blood_report.pdf",
		EncodedFile: domain.EncodePayload("application/pdf", []byte("%PDF-1.4 fake")),
	}
}

func newService(repo *fakeRepo, client analysis.Client) *Service {
	return &Service{
		Repo:  repo,
		AI:    client,
		Clock: fixedClock{t: time.Date(2025, 10, 30, 12, 0, 0, 0, time.UTC)},
	}
}

func TestAnalyzeSuccess(t *testing.T) {
	client := &scriptedClient{response: "Sure! " + validResponse + " Thanks!"}
	svc := newService(&fakeRepo{}, client)

	res, err := svc.Analyze(context.Background(), testInput())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if !res.Reviewed || res.Pending {
		t.Errorf("flags = %v/%v, want reviewed only", res.Reviewed, res.Pending)
	}
	if res.Summary.English != "Mostly normal." {
		t.Errorf("summary = %q", res.Summary.English)
	}
	if client.calls != 1 {
		t.Errorf("provider invoked %d times, want exactly 1", client.calls)
	}
	if client.doc.MIME != "application/pdf" {
		t.Errorf("document MIME = %q, want application/pdf", client.doc.MIME)
	}
	if !strings.Contains(client.prompt, "- BP: 120/80") {
		t.Error("prompt missing interpolated BP reading")
	}
	if !strings.Contains(client.prompt, "- Sugar: N/A mg/dL") {
		t.Error("prompt missing N/A placeholder for absent sugar reading")
	}
}

func TestAnalyzeMissingInput(t *testing.T) {
	client := &scriptedClient{response: validResponse}
	svc := newService(&fakeRepo{}, client)

	tests := []struct {
		name   string
		mutate func(*domain.Input)
	}{
		{"no file name", func(in *domain.Input) { in.FileName = "" }},
		{"no encoded file", func(in *domain.Input) { in.EncodedFile = "" }},
		{"undecodable payload", func(in *domain.Input) { in.EncodedFile = "data:x;base64,???" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := testInput()
			tt.mutate(&in)
			_, err := svc.Analyze(context.Background(), in)
			if !errors.Is(err, ErrMissingInput) {
				t.Errorf("err = %v, want ErrMissingInput", err)
			}
		})
	}
	if client.calls != 0 {
		t.Errorf("provider invoked %d times on rejected input, want 0", client.calls)
	}
}

func TestAnalyzeFallbackPaths(t *testing.T) {
	tests := []struct {
		name   string
		client *scriptedClient
	}{
		{"invocation error", &scriptedClient{err: errors.New("network down")}},
		{"no JSON in response", &scriptedClient{response: "sorry, I cannot read this"}},
		{"malformed JSON", &scriptedClient{response: "{bad json"}},
		{"schema mismatch", &scriptedClient{response: `{"reviewed":true}`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newService(&fakeRepo{}, tt.client)
			res, err := svc.Analyze(context.Background(), testInput())
			if !errors.Is(err, analysis.ErrAnalysisFailed) {
				t.Fatalf("err = %v, want ErrAnalysisFailed", err)
			}
			// Each failure layer yields the same fixed fallback body.
			if res.Reviewed || !res.Pending {
				t.Errorf("fallback flags = %v/%v, want false/true", res.Reviewed, res.Pending)
			}
			if res.Summary.English != "Analysis failed." {
				t.Errorf("fallback summary = %q", res.Summary.English)
			}
		})
	}
}

func TestSubmitMergesAnalysis(t *testing.T) {
	repo := &fakeRepo{}
	svc := newService(repo, &scriptedClient{response: validResponse})

	rec, err := svc.Submit(context.Background(), SubmitCommand{UserID: "u1", Input: testInput()})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if rec.Status != domain.StatusReviewed {
		t.Errorf("status = %q, want Reviewed", rec.Status)
	}
	if rec.Summary != "Mostly normal." {
		t.Errorf("summary = %q", rec.Summary)
	}
	if rec.Analysis == "" || !strings.Contains(rec.Analysis, "romanUrdu") {
		t.Errorf("analysis JSON not persisted: %q", rec.Analysis)
	}
	if len(repo.saved) != 1 || repo.saved[0] != rec {
		t.Error("record was not appended to the repository")
	}
	if rec.UserID != "u1" || rec.ID == "" {
		t.Errorf("record identity not set: %+v", rec)
	}
}

func TestSubmitPendingOnFallback(t *testing.T) {
	repo := &fakeRepo{}
	svc := newService(repo, &scriptedClient{response: "no json here"})

	rec, err := svc.Submit(context.Background(), SubmitCommand{UserID: "u1", Input: testInput()})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	// The pipeline fallback marks the report pending for manual follow-up.
	if rec.Status != domain.StatusPending {
		t.Errorf("status = %q, want Pending", rec.Status)
	}
	if rec.Summary != "Analysis failed." {
		t.Errorf("summary = %q, want pipeline fallback text", rec.Summary)
	}
}

func TestSubmitUnavailableWithoutProvider(t *testing.T) {
	repo := &fakeRepo{}
	svc := newService(repo, nil)

	rec, err := svc.Submit(context.Background(), SubmitCommand{UserID: "u1", Input: testInput()})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	// Caller-level fallback, distinct from the pipeline's own text.
	if rec.Status != domain.StatusUploaded {
		t.Errorf("status = %q, want Uploaded", rec.Status)
	}
	if rec.Summary != UnavailableSummary {
		t.Errorf("summary = %q, want %q", rec.Summary, UnavailableSummary)
	}
	if len(repo.saved) != 1 {
		t.Errorf("saved %d records, want 1", len(repo.saved))
	}
}

func TestSubmitRejectsMissingInput(t *testing.T) {
	repo := &fakeRepo{}
	svc := newService(repo, &scriptedClient{response: validResponse})

	in := testInput()
	in.EncodedFile = ""
	_, err := svc.Submit(context.Background(), SubmitCommand{UserID: "u1", Input: in})
	if !errors.Is(err, ErrMissingInput) {
		t.Fatalf("err = %v, want ErrMissingInput", err)
	}
	if len(repo.saved) != 0 {
		t.Error("rejected submission must not persist a record")
	}
}
