// Package mockservice is a local stand-in for the eligibility analysis
// service, used for demos and end-to-end tests.
package mockservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/yildizm/RFPCheck/internal/analysis"
	"github.com/yildizm/RFPCheck/internal/logger"
)

const (
	DefaultAddr  = "127.0.0.1:8000"
	maxUploadMem = 32 << 20
)

// Options configures the mock service
type Options struct {
	Addr       string
	Delay      time.Duration
	FailStatus int    // non-zero makes every analyze call fail with this status
	FailBody   string // body sent with FailStatus
	Criteria   []analysis.CriterionResult
	Logger     *logger.Logger
}

// DefaultCriteria is returned when Options.Criteria is empty
func DefaultCriteria() []analysis.CriterionResult {
	return []analysis.CriterionResult{
		{Criterion: "Budget", EligibilityMet: analysis.EligibilityYes, Reason: "The proposed cost is within the range stated in the RFP."},
		{Criterion: "Submission Deadline", EligibilityMet: analysis.EligibilityYes, Reason: "The proposal is dated before the closing date."},
		{Criterion: "Insurance Certificate", EligibilityMet: analysis.EligibilityNo, Reason: "No proof of professional liability insurance was found."},
		{Criterion: "Relevant Experience", EligibilityMet: analysis.EligibilityYes, Reason: "Three comparable projects are referenced in the proposal."},
	}
}

// Handler returns the HTTP handler serving POST /analyze/
func Handler(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	criteria := opts.Criteria
	if len(criteria) == 0 {
		criteria = DefaultCriteria()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		log.InfoWithFields("mock request", []logger.Field{
			logger.F("method", r.Method),
			logger.F("path", r.URL.Path),
			logger.F("request_id", r.Header.Get("X-Request-ID")),
		})

		p := r.URL.Path
		if len(p) > 1 {
			p = strings.TrimSuffix(p, "/")
		}

		switch {
		case r.Method == http.MethodPost && p == "/analyze":
			handleAnalyze(w, r, opts, criteria, log)
		case r.Method == http.MethodGet && p == "/health":
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		default:
			writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not Found"})
		}
	})
	return mux
}

func handleAnalyze(w http.ResponseWriter, r *http.Request, opts Options, criteria []analysis.CriterionResult, log *logger.Logger) {
	if err := r.ParseMultipartForm(maxUploadMem); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "expected multipart form data"})
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	for _, field := range []string{analysis.RFPField, analysis.ProposalField} {
		if files := r.MultipartForm.File[field]; len(files) == 0 {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": fmt.Sprintf("missing %s", field)})
			return
		}
	}

	if opts.Delay > 0 {
		select {
		case <-time.After(opts.Delay):
		case <-r.Context().Done():
			return
		}
	}

	if opts.FailStatus != 0 {
		log.Debug("failing request with status %d", opts.FailStatus)
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(opts.FailStatus)
		_, _ = w.Write([]byte(opts.FailBody))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"eligibility_criteria": criteria,
		"result":               "ok",
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// Start listens on opts.Addr (DefaultAddr when empty) and serves the mock
// in the background. It returns a shutdown function and the base URL.
func Start(opts Options) (func(context.Context) error, string, error) {
	addr := strings.TrimSpace(opts.Addr)
	if addr == "" {
		addr = DefaultAddr
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, "", fmt.Errorf("listen on %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:           Handler(opts),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("mock service error: %v", err)
		}
	}()

	baseURL := "http://" + ln.Addr().String()
	log.Info("mock service listening on %s (delay=%s)", baseURL, opts.Delay)
	return srv.Shutdown, baseURL, nil
}
