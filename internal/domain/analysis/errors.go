package analysis

import "errors"

// ErrAnalysisFailed indicates the pipeline produced the fallback result.
// The accompanying Result is still schema-valid; callers that need the
// transport-level error signal check for this sentinel.
var ErrAnalysisFailed = errors.New("analysis failed")

// ErrUnavailable indicates no inference provider is configured at all, so
// the pipeline could not even be attempted.
var ErrUnavailable = errors.New("ai analysis unavailable")

// ErrQuotaExceeded indicates the provider returned a quota/limit error
// (HTTP 429 or similar).
var ErrQuotaExceeded = errors.New("ai quota exceeded")
