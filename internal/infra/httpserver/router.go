package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appauth "github.com/healthmate-app/healthmate-api/internal/application/auth"
	appreports "github.com/healthmate-app/healthmate-api/internal/application/reports"
	appvitals "github.com/healthmate-app/healthmate-api/internal/application/vitals"
	"github.com/healthmate-app/healthmate-api/internal/domain/analysis"
	domreports "github.com/healthmate-app/healthmate-api/internal/domain/reports"
	domusers "github.com/healthmate-app/healthmate-api/internal/domain/users"
	domvitals "github.com/healthmate-app/healthmate-api/internal/domain/vitals"
	"github.com/healthmate-app/healthmate-api/internal/middleware"
)

type Router struct {
	reportsSvc *appreports.Service
	vitalsSvc  *appvitals.Service
	authSvc    *appauth.Service
}

// Options tunes the HTTP surface.
type Options struct {
	JWTSecret      []byte
	RateRPS        float64
	RateBurst      int
	AllowedOrigins []string
	HealthCheckers map[string]middleware.HealthChecker
}

func NewRouter(reportsSvc *appreports.Service, vitalsSvc *appvitals.Service, authSvc *appauth.Service, opts Options) http.Handler {
	r := &Router{reportsSvc: reportsSvc, vitalsSvc: vitalsSvc, authSvc: authSvc}
	mux := chi.NewRouter()

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)

	mux.Get("/health", middleware.HealthHandler(opts.HealthCheckers))
	mux.Get("/health/ready", middleware.ReadinessHandler)
	mux.Get("/health/live", middleware.LivenessHandler)
	mux.Handle("/metrics", promhttp.Handler())

	mux.Route("/v1", func(rt chi.Router) {
		rt.Post("/auth/register", r.wrap(r.handleRegister))
		rt.Post("/auth/login", r.wrap(r.handleLogin))

		// Standalone analysis endpoint. No account needed: the result is
		// returned, never persisted.
		rt.Post("/reports/analyze", r.handleAnalyze)

		rt.Group(func(pr chi.Router) {
			pr.Use(middleware.JWTAuth(opts.JWTSecret))
			pr.Use(middleware.RateLimitMiddleware(opts.RateRPS, opts.RateBurst))

			pr.Post("/reports", r.wrap(r.handleSubmit))
			pr.Get("/reports", r.wrap(r.handleList))
			pr.Get("/reports/latest", r.wrap(r.handleLatest))
			pr.Get("/reports/{id}", r.wrap(r.handleGet))
			pr.Delete("/reports/{id}", r.wrap(r.handleDelete))

			pr.Post("/vitals", r.wrap(r.handleRecordVital))
			pr.Get("/vitals", r.wrap(r.handleLatestVitals))
			pr.Delete("/vitals/{id}", r.wrap(r.handleDeleteVital))

			pr.Get("/summary", r.wrap(r.handleSummary))
		})
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// badRequest marks validation failures so wrap maps them to 400.
type badRequest struct{ err error }

func (b badRequest) Error() string { return b.err.Error() }

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}
		var br badRequest
		switch {
		case errors.Is(err, sql.ErrNoRows):
			writeError(w, http.StatusNotFound, "not found")
		case errors.Is(err, appreports.ErrMissingInput):
			writeError(w, http.StatusBadRequest, "Missing report or file")
		case errors.Is(err, analysis.ErrQuotaExceeded):
			writeError(w, http.StatusTooManyRequests, "ai quota exceeded")
		case errors.Is(err, appauth.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, err.Error())
		case errors.Is(err, appauth.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domusers.ErrEmailTaken):
			writeError(w, http.StatusConflict, err.Error())
		case errors.As(err, &br):
			writeError(w, http.StatusBadRequest, br.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
	}
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, code int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(v)
}

// reportBody mirrors the client payload for both analyze and submit.
type reportBody struct {
	Report *struct {
		Type     string `json:"type"`
		Date     string `json:"date"`
		BP       string `json:"bp"`
		Sugar    string `json:"sugar"`
		Weight   string `json:"weight"`
		Notes    string `json:"notes"`
		FileName string `json:"fileName"`
	} `json:"report"`
	FileBase64 string `json:"fileBase64"`
}

func (b *reportBody) toInput() domreports.Input {
	in := domreports.Input{EncodedFile: b.FileBase64}
	if b.Report != nil {
		in.Type = domreports.ReportType(b.Report.Type)
		in.Date = b.Report.Date
		in.BP = b.Report.BP
		in.Sugar = b.Report.Sugar
		in.Weight = b.Report.Weight
		in.Notes = b.Report.Notes
		in.FileName = b.Report.FileName
	}
	return in
}

// POST /v1/reports/analyze
// Body: {"report": {...}, "fileBase64": "data:...;base64,..."}
//
// Not wrapped: the 500 body must be the full fallback result, not a plain
// error string, so the client always renders a complete analysis shape.
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) {
	var body reportBody
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Missing report or file")
		return
	}

	result, err := r.reportsSvc.Analyze(req.Context(), body.toInput())
	switch {
	case errors.Is(err, appreports.ErrMissingInput):
		writeError(w, http.StatusBadRequest, "Missing report or file")
	case errors.Is(err, analysis.ErrAnalysisFailed):
		middleware.CountAnalysis("fallback")
		writeJSON(w, http.StatusInternalServerError, result)
	case err != nil:
		middleware.CountAnalysis("unavailable")
		writeJSON(w, http.StatusInternalServerError, analysis.Fallback())
	default:
		middleware.CountAnalysis("ok")
		writeJSON(w, http.StatusOK, result)
	}
}

// POST /v1/reports
func (r *Router) handleSubmit(w http.ResponseWriter, req *http.Request) error {
	userID := middleware.GetUserIDFromContext(req.Context())

	var body reportBody
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return appreports.ErrMissingInput
	}
	in := body.toInput()
	if in.Type != "" {
		if err := middleware.ValidateReportType(string(in.Type)); err != nil {
			return badRequest{err}
		}
	}
	if in.Date != "" {
		if err := middleware.ValidateDate(in.Date); err != nil {
			return badRequest{err}
		}
	}
	in.Notes = middleware.SanitizeString(in.Notes)

	rec, err := r.reportsSvc.Submit(req.Context(), appreports.SubmitCommand{
		UserID: userID,
		Input:  in,
	})
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusCreated, rec)
}

// GET /v1/reports?page=&page_size=
func (r *Router) handleList(w http.ResponseWriter, req *http.Request) error {
	userID := middleware.GetUserIDFromContext(req.Context())
	page, _ := strconv.Atoi(req.URL.Query().Get("page"))
	size, _ := strconv.Atoi(req.URL.Query().Get("page_size"))

	list, err := r.reportsSvc.Paginate(req.Context(), userID, page, middleware.ValidateLimit(size))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, list)
}

// GET /v1/reports/latest?limit=20
func (r *Router) handleLatest(w http.ResponseWriter, req *http.Request) error {
	userID := middleware.GetUserIDFromContext(req.Context())
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))

	list, err := r.reportsSvc.Latest(req.Context(), userID, middleware.ValidateLimit(limit))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, list)
}

// GET /v1/reports/{id}
func (r *Router) handleGet(w http.ResponseWriter, req *http.Request) error {
	userID := middleware.GetUserIDFromContext(req.Context())
	id := chi.URLParam(req, "id")

	rec, err := r.reportsSvc.Get(req.Context(), userID, domreports.ReportID(id))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, rec)
}

// DELETE /v1/reports/{id}
func (r *Router) handleDelete(w http.ResponseWriter, req *http.Request) error {
	userID := middleware.GetUserIDFromContext(req.Context())
	id := chi.URLParam(req, "id")

	if err := r.reportsSvc.Delete(req.Context(), userID, domreports.ReportID(id)); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// POST /v1/vitals
func (r *Router) handleRecordVital(w http.ResponseWriter, req *http.Request) error {
	userID := middleware.GetUserIDFromContext(req.Context())

	var body struct {
		Type   string `json:"type"`
		Value  string `json:"value"`
		Date   string `json:"date"`
		Status string `json:"status"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return badRequest{err}
	}
	if err := middleware.ValidateVitalType(body.Type); err != nil {
		return badRequest{err}
	}
	if err := middleware.ValidateDate(body.Date); err != nil {
		return badRequest{err}
	}

	v, err := r.vitalsSvc.Record(req.Context(), appvitals.RecordCommand{
		UserID: userID,
		Type:   domvitals.VitalType(body.Type),
		Value:  middleware.SanitizeString(body.Value),
		Date:   body.Date,
		Status: middleware.SanitizeString(body.Status),
	})
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusCreated, v)
}

// GET /v1/vitals?limit=20
func (r *Router) handleLatestVitals(w http.ResponseWriter, req *http.Request) error {
	userID := middleware.GetUserIDFromContext(req.Context())
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))

	list, err := r.vitalsSvc.Latest(req.Context(), userID, middleware.ValidateLimit(limit))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, list)
}

// DELETE /v1/vitals/{id}
func (r *Router) handleDeleteVital(w http.ResponseWriter, req *http.Request) error {
	userID := middleware.GetUserIDFromContext(req.Context())
	id := chi.URLParam(req, "id")

	if err := r.vitalsSvc.Delete(req.Context(), userID, domvitals.VitalID(id)); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// GET /v1/summary
func (r *Router) handleSummary(w http.ResponseWriter, req *http.Request) error {
	userID := middleware.GetUserIDFromContext(req.Context())

	counts, err := r.reportsSvc.StatusSummary(req.Context(), userID)
	if err != nil {
		return err
	}
	vitalCount, err := r.vitalsSvc.Count(req.Context(), userID)
	if err != nil {
		return err
	}

	return writeJSON(w, http.StatusOK, map[string]any{
		"reports": counts,
		"vitals":  vitalCount,
	})
}

// POST /v1/auth/register
func (r *Router) handleRegister(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		FullName string `json:"fullName"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return badRequest{err}
	}
	if err := middleware.ValidateEmail(body.Email); err != nil {
		return badRequest{err}
	}

	u, err := r.authSvc.Register(req.Context(), body.Email, body.Password, body.FullName)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusCreated, map[string]any{
		"id":       u.ID,
		"email":    u.Email,
		"fullName": u.FullName,
	})
}

// POST /v1/auth/login
func (r *Router) handleLogin(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return badRequest{err}
	}

	token, u, err := r.authSvc.Login(req.Context(), body.Email, body.Password)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user": map[string]any{
			"id":       u.ID,
			"email":    u.Email,
			"fullName": u.FullName,
		},
	})
}
