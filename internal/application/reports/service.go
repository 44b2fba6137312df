package reports

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/healthmate-app/healthmate-api/internal/domain/analysis"
	domain "github.com/healthmate-app/healthmate-api/internal/domain/reports"
)

// ErrMissingInput indicates required fields were absent at the boundary.
// Rejected before any invocation is attempted.
var ErrMissingInput = errors.New("missing report or file")

// UnavailableSummary is the caller-level fallback text, distinct from the
// pipeline's own "Analysis failed." summary. It marks records whose analysis
// could not even be attempted (no provider wired, undecodable payload after
// storage), as opposed to records where the model misbehaved.
const UnavailableSummary = "AI analysis unavailable."

// Service implements use-cases for report submission and analysis.
// One submission triggers exactly one sequential pipeline run; there is no
// batching, queueing or retry.
type Service struct {
	Repo  domain.Repository
	Files domain.FileStore
	AI    analysis.Client
	Clock Clock
}

// Clock abstraction so services are easy to test
type Clock interface {
	Now() time.Time
}

// Analyze runs the core pipeline: decode the payload, build the prompt,
// invoke the provider once, and extract/validate the structured result.
//
// Error contract:
//   - ErrMissingInput (also covers undecodable payloads): hard error, no
//     invocation happened, the returned Result is meaningless.
//   - analysis.ErrAnalysisFailed: every failure after invocation began
//     (transport, extraction, parse, validation). The returned Result is the
//     schema-valid fallback, so callers never branch on error type to build
//     a response body.
//   - analysis.ErrUnavailable: no provider is configured at all.
func (s *Service) Analyze(ctx context.Context, in domain.Input) (analysis.Result, error) {
	if strings.TrimSpace(in.FileName) == "" || strings.TrimSpace(in.EncodedFile) == "" {
		return analysis.Result{}, ErrMissingInput
	}
	if s.AI == nil {
		return analysis.Result{}, analysis.ErrUnavailable
	}

	data, err := domain.DecodePayload(in.EncodedFile)
	if err != nil {
		return analysis.Result{}, fmt.Errorf("%w: %s", ErrMissingInput, err)
	}

	kind := domain.DetectKind(in.FileName)
	doc := analysis.Document{
		MIME: domain.DocumentMIME(kind, data),
		Data: data,
	}

	prompt := analysis.BuildPrompt(analysis.PromptInput{
		FileName:   in.FileName,
		ReportType: string(in.Type),
		Date:       in.Date,
		Kind:       string(kind),
		BP:         in.BP,
		Sugar:      in.Sugar,
		Weight:     in.Weight,
		Notes:      in.Notes,
	})

	// Single invocation per submission; any failure from here on is
	// normalized into the fallback result.
	raw, err := s.AI.Analyze(ctx, prompt, doc)
	if err != nil {
		log.Printf("inference error (source=%s): %v", s.AI.SourceName(), err)
		return analysis.Fallback(), analysis.ErrAnalysisFailed
	}

	result, err := analysis.Parse(raw)
	if err != nil {
		log.Printf("response rejected (source=%s): %v", s.AI.SourceName(), err)
		return analysis.Fallback(), analysis.ErrAnalysisFailed
	}
	return *result, nil
}

// SubmitCommand carries a new report submission.
type SubmitCommand struct {
	UserID string
	Input  domain.Input
}

// Submit runs the pipeline and merges the outcome into a new report record:
// upload the file bytes, analyze, derive the display status, persist. The
// returned record is always well-formed; the only hard failures are missing
// input and repository errors. Existing records are never mutated by this
// flow, the merged record is appended.
func (s *Service) Submit(ctx context.Context, cmd SubmitCommand) (*domain.Report, error) {
	in := cmd.Input
	if strings.TrimSpace(in.FileName) == "" || strings.TrimSpace(in.EncodedFile) == "" {
		return nil, ErrMissingInput
	}

	id := domain.ReportID(uuid.New().String())
	rec := &domain.Report{
		ID:        id,
		UserID:    cmd.UserID,
		Type:      in.Type,
		Date:      in.Date,
		Status:    domain.StatusUploaded,
		FileName:  in.FileName,
		BP:        in.BP,
		Sugar:     in.Sugar,
		Weight:    in.Weight,
		Notes:     in.Notes,
		CreatedAt: s.Clock.Now(),
	}

	if s.Files != nil {
		data, err := domain.DecodePayload(in.EncodedFile)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingInput, err)
		}
		kind := domain.DetectKind(in.FileName)
		key := fmt.Sprintf("%s/%s/%s", cmd.UserID, id, in.FileName)
		url, err := s.Files.UploadBytes(ctx, key, domain.DocumentMIME(kind, data), data)
		if err != nil {
			// Storage is best-effort for a submission; the analysis still runs.
			log.Printf("warning: report file upload failed: %v", err)
		} else {
			rec.FileURL = url
		}
	}

	result, err := s.Analyze(ctx, in)
	switch {
	case errors.Is(err, ErrMissingInput):
		return nil, err
	case errors.Is(err, analysis.ErrAnalysisFailed):
		// The pipeline's own fallback: a fully-formed result that marks the
		// report pending for manual follow-up.
		mergeResult(rec, result)
	case err != nil:
		// Caller-level fallback: the pipeline never reached an invocation.
		rec.Status = domain.StatusUploaded
		rec.Summary = UnavailableSummary
	default:
		mergeResult(rec, result)
	}

	if err := s.Repo.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("saving report: %w", err)
	}
	return rec, nil
}

func mergeResult(rec *domain.Report, result analysis.Result) {
	rec.Status = domain.StatusFromAnalysis(result.Reviewed, result.Pending)
	rec.Summary = result.Summary.English
	if b, err := json.Marshal(result); err == nil {
		rec.Analysis = string(b)
	}
}

// Latest returns the N most recent reports for a user
func (s *Service) Latest(ctx context.Context, userID string, limit int) ([]*domain.Report, error) {
	return s.Repo.Latest(ctx, userID, limit)
}

// Paginate returns one page of reports for a user
func (s *Service) Paginate(ctx context.Context, userID string, page, pageSize int) (domain.PaginatedResult, error) {
	return s.Repo.Paginate(ctx, userID, page, pageSize)
}

// Get returns one report by id
func (s *Service) Get(ctx context.Context, userID string, id domain.ReportID) (*domain.Report, error) {
	return s.Repo.Get(ctx, userID, id)
}

// Delete removes one report by id
func (s *Service) Delete(ctx context.Context, userID string, id domain.ReportID) error {
	return s.Repo.Delete(ctx, userID, id)
}

// StatusSummary returns per-status report counts for the dashboard cards
func (s *Service) StatusSummary(ctx context.Context, userID string) (map[domain.Status]int, error) {
	return s.Repo.CountByStatus(ctx, userID)
}
