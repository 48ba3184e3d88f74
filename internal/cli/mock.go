package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/yildizm/RFPCheck/internal/analysis"
	"github.com/yildizm/RFPCheck/internal/config"
	"github.com/yildizm/RFPCheck/internal/emoji"
	"github.com/yildizm/RFPCheck/internal/mockservice"
)

var (
	mockAddr       string
	mockDelay      time.Duration
	mockFailStatus int
	mockFailBody   string
	mockCriteria   string
)

func newMockServerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mock-server",
		Short: "Run a local stand-in for the analysis service",
		Long: `Run a local HTTP server that answers POST /analyze/ like the analysis
service, for demos and offline testing.

Examples:
  rfpcheck mock-server
  rfpcheck mock-server --delay 3s
  rfpcheck mock-server --fail-status 500 --fail-body "internal error"
  rfpcheck mock-server --criteria ./criteria.json`,
		Args: cobra.NoArgs,
		RunE: runMockServer,
	}

	cmd.Flags().StringVar(&mockAddr, "addr", mockservice.DefaultAddr, "listen address")
	cmd.Flags().DurationVar(&mockDelay, "delay", 0, "delay before answering")
	cmd.Flags().IntVar(&mockFailStatus, "fail-status", 0, "answer every analysis with this HTTP status")
	cmd.Flags().StringVar(&mockFailBody, "fail-body", "internal error", "body sent with --fail-status")
	cmd.Flags().StringVar(&mockCriteria, "criteria", "", `JSON file shaped like a service response ({"eligibility_criteria": [...]})`)

	return cmd
}

func runMockServer(cmd *cobra.Command, args []string) error {
	log, closeLog, err := newLogger("mock", false)
	if err != nil {
		return err
	}
	defer closeLog()

	opts := mockservice.Options{
		Addr:       mockAddr,
		Delay:      mockDelay,
		FailStatus: mockFailStatus,
		FailBody:   mockFailBody,
		Logger:     log,
	}
	if mockCriteria != "" {
		criteria, err := loadCriteria(mockCriteria)
		if err != nil {
			return err
		}
		opts.Criteria = criteria
	}

	shutdown, baseURL, err := mockservice.Start(opts)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s Mock analysis service listening on %s\n", emoji.GetEmoji("rocket"), baseURL)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "   rfpcheck analyze --endpoint %s\n", baseURL)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return shutdown(shutdownCtx)
}

func loadCriteria(path string) ([]analysis.CriterionResult, error) {
	// #nosec G304 - path supplied by the user
	data, err := os.ReadFile(config.ExpandPath(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read criteria: %w", err)
	}
	outcome, err := analysis.DecodeOutcome(data, true)
	if err != nil {
		return nil, fmt.Errorf("invalid criteria file: %w", err)
	}
	return outcome.Criteria, nil
}
