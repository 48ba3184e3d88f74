package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/yildizm/RFPCheck/internal/analysis"
	"github.com/yildizm/RFPCheck/internal/config"
	"github.com/yildizm/RFPCheck/internal/formatter"
	"github.com/yildizm/RFPCheck/internal/intake"
	"github.com/yildizm/RFPCheck/internal/loading"
	"github.com/yildizm/RFPCheck/internal/logger"
	"github.com/yildizm/RFPCheck/internal/mockservice"
	"github.com/yildizm/RFPCheck/internal/submission"
)

func TestShouldUseTUIMode(t *testing.T) {
	tests := []struct {
		name           string
		noTUI          bool
		outputFormat   string
		outputFile     string
		notTerminal    bool
		expectedResult bool
	}{
		{
			name:           "should use TUI - defaults",
			expectedResult: true,
		},
		{
			name:           "should use TUI - text output",
			outputFormat:   "text",
			expectedResult: true,
		},
		{
			name:           "should not use TUI - no-tui flag set",
			noTUI:          true,
			outputFormat:   "text",
			expectedResult: false,
		},
		{
			name:           "should not use TUI - json output",
			outputFormat:   "json",
			expectedResult: false,
		},
		{
			name:           "should not use TUI - stdout redirected",
			notTerminal:    true,
			expectedResult: false,
		},
		{
			name:           "should not use TUI - output file",
			outputFile:     "result.md",
			expectedResult: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldNoTUI, oldOutputFmt, oldOutputFile, oldIsTerminal := analyzeNoTUI, outputFmt, analyzeOutputFile, isTerminal
			analyzeNoTUI = tt.noTUI
			outputFmt = tt.outputFormat
			analyzeOutputFile = tt.outputFile
			isTerminal = func(io.Writer) bool { return !tt.notTerminal }
			defer func() {
				analyzeNoTUI, outputFmt, analyzeOutputFile, isTerminal = oldNoTUI, oldOutputFmt, oldOutputFile, oldIsTerminal
			}()

			result := shouldUseTUIMode(io.Discard)
			if result != tt.expectedResult {
				t.Errorf("shouldUseTUIMode() = %v, want %v", result, tt.expectedResult)
			}
		})
	}
}

func TestUseColor(t *testing.T) {
	oldIsTerminal, oldNoColor := isTerminal, noColor
	defer func() { isTerminal, noColor = oldIsTerminal, oldNoColor }()
	noColor = false
	t.Setenv("NO_COLOR", "")

	tests := []struct {
		name     string
		mode     string
		terminal bool
		want     bool
	}{
		{"auto on terminal", "auto", true, true},
		{"auto redirected", "auto", false, false},
		{"always redirected", "always", false, true},
		{"never on terminal", "never", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isTerminal = func(io.Writer) bool { return tt.terminal }
			cfg := config.DefaultConfig()
			cfg.Output.ColorMode = tt.mode
			if got := useColor(cfg, io.Discard); got != tt.want {
				t.Errorf("useColor() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDocumentPaths(t *testing.T) {
	oldRFP, oldProposal := analyzeRFP, analyzeProposal
	defer func() { analyzeRFP, analyzeProposal = oldRFP, oldProposal }()

	analyzeRFP = []string{"a.pdf"}
	analyzeProposal = nil

	rfp, proposal := documentPaths([]string{"b.pdf", "c.pdf"})
	if strings.Join(rfp, ",") != "a.pdf,b.pdf" {
		t.Errorf("rfp = %v", rfp)
	}
	if strings.Join(proposal, ",") != "c.pdf" {
		t.Errorf("proposal = %v", proposal)
	}

	rfp, proposal = documentPaths(nil)
	if len(rfp) != 1 || len(proposal) != 0 {
		t.Errorf("documentPaths(nil) = %v, %v", rfp, proposal)
	}
}

func TestGetOutputFormat(t *testing.T) {
	oldOutputFmt := outputFmt
	defer func() { outputFmt = oldOutputFmt }()

	cfg := config.DefaultConfig()
	cfg.Output.DefaultFormat = "markdown"

	outputFmt = ""
	if got := getOutputFormat(cfg); got != "markdown" {
		t.Errorf("getOutputFormat() = %q, want markdown", got)
	}
	if got := getOutputFormat(nil); got != "text" {
		t.Errorf("getOutputFormat(nil) = %q, want text", got)
	}
	outputFmt = "csv"
	if got := getOutputFormat(cfg); got != "csv" {
		t.Errorf("getOutputFormat() = %q, want csv", got)
	}
}

func writePDF(t *testing.T, dir, name string) intake.File {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("%PDF-1.4\n"), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	f, err := intake.NewFile(path)
	if err != nil {
		t.Fatalf("NewFile(%s): %v", name, err)
	}
	return f
}

func newTestClient(t *testing.T, opts mockservice.Options) *analysis.Client {
	t.Helper()
	server := httptest.NewServer(mockservice.Handler(opts))
	t.Cleanup(server.Close)

	client, err := analysis.NewClient(&analysis.Config{
		Endpoint:         server.URL,
		Timeout:          5 * time.Second,
		ValidateResponse: true,
	})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return client
}

func TestRunHeadlessJSON(t *testing.T) {
	oldOutputFmt := outputFmt
	outputFmt = "json"
	defer func() { outputFmt = oldOutputFmt }()

	dir := t.TempDir()
	client := newTestClient(t, mockservice.Options{})
	cfg := config.DefaultConfig()

	var out bytes.Buffer
	err := runHeadless(context.Background(), &out, cfg, client,
		[]intake.File{writePDF(t, dir, "rfp.pdf")},
		[]intake.File{writePDF(t, dir, "proposal.pdf")},
		logger.Nop())
	if err != nil {
		t.Fatalf("runHeadless() error = %v", err)
	}

	var doc formatter.JSONOutput
	if err := json.Unmarshal(out.Bytes(), &doc); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}
	want := len(mockservice.DefaultCriteria())
	if len(doc.Criteria) != want {
		t.Errorf("criteria = %d, want %d", len(doc.Criteria), want)
	}
	if doc.Summary == nil || doc.Summary.Total != want || doc.Summary.NotMet != 1 {
		t.Errorf("unexpected summary: %+v", doc.Summary)
	}
}

func TestRunHeadlessMissingDocument(t *testing.T) {
	dir := t.TempDir()
	client := newTestClient(t, mockservice.Options{})

	var out bytes.Buffer
	err := runHeadless(context.Background(), &out, config.DefaultConfig(), client,
		[]intake.File{writePDF(t, dir, "rfp.pdf")}, nil, logger.Nop())
	if !submission.IsPrecondition(err) {
		t.Fatalf("expected precondition error, got %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("expected no output, got %q", out.String())
	}
}

func TestRunHeadlessServiceFailure(t *testing.T) {
	dir := t.TempDir()
	client := newTestClient(t, mockservice.Options{FailStatus: 500, FailBody: "internal error"})

	var out bytes.Buffer
	err := runHeadless(context.Background(), &out, config.DefaultConfig(), client,
		[]intake.File{writePDF(t, dir, "rfp.pdf")},
		[]intake.File{writePDF(t, dir, "proposal.pdf")},
		logger.Nop())
	if err == nil {
		t.Fatal("expected error")
	}
	var reqErr *analysis.RequestFailedError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected *analysis.RequestFailedError in chain, got %T: %v", err, err)
	}
	if reqErr.Status != 500 {
		t.Errorf("status = %d, want 500", reqErr.Status)
	}
	if !strings.Contains(err.Error(), "There was an error analyzing the documents.") {
		t.Errorf("error should carry the failure message: %v", err)
	}
}

func TestRunHeadlessOutputFile(t *testing.T) {
	oldOutputFmt, oldOutputFile := outputFmt, analyzeOutputFile
	dir := t.TempDir()
	outputFmt = "markdown"
	analyzeOutputFile = filepath.Join(dir, "out", "result.md")
	defer func() { outputFmt, analyzeOutputFile = oldOutputFmt, oldOutputFile }()

	client := newTestClient(t, mockservice.Options{})

	var out bytes.Buffer
	err := runHeadless(context.Background(), &out, config.DefaultConfig(), client,
		[]intake.File{writePDF(t, dir, "rfp.pdf")},
		[]intake.File{writePDF(t, dir, "proposal.pdf")},
		logger.Nop())
	if err != nil {
		t.Fatalf("runHeadless() error = %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("stdout should be empty when writing to a file, got %q", out.String())
	}
	data, err := os.ReadFile(analyzeOutputFile)
	if err != nil {
		t.Fatalf("read output file: %v", err)
	}
	if !strings.Contains(string(data), "Insurance Certificate") {
		t.Errorf("output file missing criterion:\n%s", data)
	}
}

func TestRunLoadingHeadless(t *testing.T) {
	facts := []loading.Fact{{Text: "first fact"}, {Text: "second fact"}}

	var out bytes.Buffer
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := runLoadingHeadless(ctx, &out, facts,
		loading.WithRotationPeriod(10*time.Millisecond),
		loading.WithTickPeriod(10*time.Millisecond),
		loading.WithMinimum(60*time.Millisecond))
	if err != nil {
		t.Fatalf("runLoadingHeadless() error = %v", err)
	}
	if ctx.Err() != nil {
		t.Fatal("runLoadingHeadless did not stop at the minimum")
	}

	text := out.String()
	for _, want := range []string{"Analyzing", "first fact", "second fact"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
}

func TestLoadCriteria(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "criteria.json")
	body := `{"eligibility_criteria":[{"criterion":"Budget","eligibility_met":"No","reason":"Too high."}]}`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	criteria, err := loadCriteria(path)
	if err != nil {
		t.Fatalf("loadCriteria() error = %v", err)
	}
	if len(criteria) != 1 || criteria[0].Criterion != "Budget" || criteria[0].EligibilityMet != analysis.EligibilityNo {
		t.Errorf("unexpected criteria: %+v", criteria)
	}

	if _, err := loadCriteria(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestVersionCommand(t *testing.T) {
	cmd := NewRootCommand("1.2.3", "abc123", "2026-01-01")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got := out.String(); !strings.Contains(got, "RFPCheck 1.2.3 (abc123)") {
		t.Errorf("unexpected version output: %q", got)
	}
}
