package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/yildizm/RFPCheck/internal/analysis"
	"github.com/yildizm/RFPCheck/internal/config"
	"github.com/yildizm/RFPCheck/internal/formatter"
	"github.com/yildizm/RFPCheck/internal/inbox"
	"github.com/yildizm/RFPCheck/internal/intake"
	"github.com/yildizm/RFPCheck/internal/logger"
	"github.com/yildizm/RFPCheck/internal/submission"
	"github.com/yildizm/RFPCheck/internal/ui"
)

var (
	analyzeRFP        []string
	analyzeProposal   []string
	analyzeNoTUI      bool
	analyzeOutputFile string
	analyzeMinWait    time.Duration
	analyzeEndpoint   string
	analyzeTimeout    time.Duration
	analyzeInbox      string
	analyzeFacts      string
	analyzeNoSplash   bool
	analyzeView       string
)

func newAnalyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [rfp] [proposal]",
		Short: "Check a proposal against an RFP",
		Long: `Check a proposal against the eligibility criteria of an RFP.

By default a terminal UI opens with the upload slots pre-filled from the
arguments and flags. With --no-tui the documents are submitted directly and
the result is printed in the --output format.

Examples:
  rfpcheck analyze
  rfpcheck analyze rfp.pdf proposal.pdf
  rfpcheck analyze --rfp rfp.pdf --proposal proposal.pdf --no-tui -o json
  rfpcheck analyze --inbox ~/rfp-inbox
  rfpcheck analyze --no-tui --inbox ./drop --output-file result.md -o markdown`,
		Args: cobra.MaximumNArgs(2),
		RunE: runAnalyze,
	}

	cmd.Flags().StringSliceVar(&analyzeRFP, "rfp", nil, "RFP document(s)")
	cmd.Flags().StringSliceVar(&analyzeProposal, "proposal", nil, "proposal document(s)")
	cmd.Flags().BoolVar(&analyzeNoTUI, "no-tui", false, "disable terminal UI, output to stdout")
	cmd.Flags().StringVar(&analyzeOutputFile, "output-file", "", "save output to file instead of stdout")
	cmd.Flags().DurationVar(&analyzeMinWait, "min-wait", 0, "hold a successful result at least this long (headless)")
	cmd.Flags().StringVar(&analyzeEndpoint, "endpoint", "", "analysis service base URL")
	cmd.Flags().DurationVar(&analyzeTimeout, "timeout", 0, "analysis request timeout")
	cmd.Flags().StringVar(&analyzeInbox, "inbox", "", "watch <dir>/rfp and <dir>/proposal for dropped files")
	cmd.Flags().StringVar(&analyzeFacts, "facts", "", "facts file or URL for the loading screen")
	cmd.Flags().BoolVar(&analyzeNoSplash, "no-splash", false, "skip the welcome screen")
	cmd.Flags().StringVar(&analyzeView, "view", "", "open a specific view (intake, loading, results)")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := GetGlobalConfig()
	if err != nil {
		return err
	}
	applyAnalyzeFlags(cmd, cfg)

	rfpPaths, proposalPaths := documentPaths(args)
	rfpFiles, err := openFiles(rfpPaths)
	if err != nil {
		return err
	}
	proposalFiles, err := openFiles(proposalPaths)
	if err != nil {
		return err
	}

	tui := shouldUseTUIMode(cmd.OutOrStdout())
	log, closeLog, err := newLogger("rfpcheck", tui)
	if err != nil {
		return err
	}
	defer closeLog()

	client, err := analysis.NewClient(&analysis.Config{
		Endpoint:         cfg.Service.Endpoint,
		Timeout:          cfg.Service.Timeout,
		ValidateResponse: cfg.Service.ValidateResponse,
	})
	if err != nil {
		return err
	}
	log.Debug("analysis endpoint: %s", client.Endpoint())

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	if !tui {
		return runHeadless(ctx, cmd.OutOrStdout(), cfg, client, rfpFiles, proposalFiles, log)
	}

	return ui.Run(ui.Options{
		Analyzer:        client,
		AcceptedTypes:   cfg.Intake.AcceptedTypes,
		MaxFiles:        cfg.Intake.MaxFiles,
		RFPFiles:        rfpFiles,
		ProposalFiles:   proposalFiles,
		FactsSource:     cfg.Loading.FactsFile,
		RotationPeriod:  cfg.Loading.RotationPeriod,
		TickPeriod:      cfg.Loading.TickPeriod,
		MinimumDuration: cfg.Loading.MinimumDuration,
		EnforceMinimum:  cfg.Loading.EnforceMinimum,
		ShowSplash:      !analyzeNoSplash,
		InitialView:     analyzeView,
		InboxDir:        config.ExpandPath(cfg.Intake.InboxDir),
		Logger:          log,
		Context:         ctx,
	})
}

// applyAnalyzeFlags lets explicitly set flags override the configuration
func applyAnalyzeFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flag("endpoint").Changed {
		cfg.Service.Endpoint = analyzeEndpoint
	}
	if cmd.Flag("timeout").Changed {
		cfg.Service.Timeout = analyzeTimeout
	}
	if cmd.Flag("inbox").Changed {
		cfg.Intake.InboxDir = analyzeInbox
	}
	if cmd.Flag("facts").Changed {
		cfg.Loading.FactsFile = analyzeFacts
	}
}

// documentPaths merges positional arguments with the --rfp and --proposal flags
func documentPaths(args []string) (rfp, proposal []string) {
	rfp = append(rfp, analyzeRFP...)
	proposal = append(proposal, analyzeProposal...)
	if len(args) > 0 {
		rfp = append(rfp, args[0])
	}
	if len(args) > 1 {
		proposal = append(proposal, args[1])
	}
	return rfp, proposal
}

func openFiles(paths []string) ([]intake.File, error) {
	files := make([]intake.File, 0, len(paths))
	for _, p := range paths {
		f, err := intake.NewFile(config.ExpandPath(p))
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

// shouldUseTUIMode reports whether the interactive UI should run. Structured
// output formats, output files and a redirected stdout imply headless mode.
func shouldUseTUIMode(stdout io.Writer) bool {
	if analyzeNoTUI || analyzeOutputFile != "" || !isTerminal(stdout) {
		return false
	}
	switch outputFmt {
	case "", "text", "terminal":
		return true
	default:
		return false
	}
}

func runHeadless(ctx context.Context, out io.Writer, cfg *config.Config, analyzer submission.Analyzer, rfpFiles, proposalFiles []intake.File, log *logger.Logger) error {
	rfp := intake.NewSlot(ui.RFPSlot, cfg.Intake.AcceptedTypes, cfg.Intake.MaxFiles)
	proposal := intake.NewSlot(ui.ProposalSlot, cfg.Intake.AcceptedTypes, cfg.Intake.MaxFiles)
	for _, s := range []struct {
		slot  *intake.Slot
		files []intake.File
	}{{rfp, rfpFiles}, {proposal, proposalFiles}} {
		if len(s.files) == 0 {
			continue
		}
		if err := s.slot.Check(s.files); err != nil {
			return err
		}
		s.slot.Submit(s.files)
	}

	opts := []submission.Option{
		submission.WithLogger(log.WithComponent("submission")),
		submission.OnStateChange(func(from, to submission.State) {
			if isVerbose() {
				_, _ = fmt.Fprintf(os.Stderr, "%s -> %s\n", from, to)
			}
		}),
	}
	if analyzeMinWait > 0 {
		opts = append(opts, submission.WithMinimumDuration(analyzeMinWait))
	}
	coord := submission.New(rfp, proposal, analyzer, opts...)

	if !coord.Ready() && cfg.Intake.InboxDir != "" {
		if err := waitForInbox(ctx, config.ExpandPath(cfg.Intake.InboxDir), coord, map[string]*intake.Slot{
			ui.RFPSlot:      rfp,
			ui.ProposalSlot: proposal,
		}, log); err != nil {
			return err
		}
	}

	outcome, err := coord.Submit(ctx)
	if err != nil {
		if submission.IsPrecondition(err) {
			return err
		}
		return fmt.Errorf("%s %w", ui.FailureMessage, err)
	}

	f, err := formatter.New(getOutputFormat(cfg), useColor(cfg, out))
	if err != nil {
		return err
	}
	output, err := f.Format(outcome)
	if err != nil {
		return fmt.Errorf("failed to format result: %w", err)
	}
	return handleOutputDestination(out, output)
}

// waitForInbox blocks until both slots hold a document dropped into the inbox
func waitForInbox(ctx context.Context, dir string, coord *submission.Coordinator, slots map[string]*intake.Slot, log *logger.Logger) error {
	watcher, err := inbox.New(dir, []string{ui.RFPSlot, ui.ProposalSlot}, inbox.WithLogger(log.WithComponent("inbox")))
	if err != nil {
		return fmt.Errorf("failed to watch inbox: %w", err)
	}
	_, _ = fmt.Fprintf(os.Stderr, "Waiting for documents in %s and %s\n", watcher.SlotDir(ui.RFPSlot), watcher.SlotDir(ui.ProposalSlot))

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	err = watcher.Run(watchCtx, func(d inbox.Drop) {
		slot := slots[d.Slot]
		slot.Submit([]intake.File{d.File})
		if msg := slot.Error(); msg != "" {
			log.WarnWithFields("drop rejected", []logger.Field{logger.Slot(d.Slot), logger.F("reason", msg)})
			return
		}
		if coord.Ready() {
			cancel()
		}
	})
	if err != nil {
		return err
	}
	return ctx.Err()
}

// handleOutputDestination writes output to file or the writer
func handleOutputDestination(out io.Writer, output []byte) error {
	if analyzeOutputFile == "" {
		_, err := out.Write(output)
		return err
	}

	path := filepath.Clean(config.ExpandPath(analyzeOutputFile))
	if err := config.WriteFile(path, output); err != nil {
		return fmt.Errorf("failed to write output to file: %w", err)
	}
	if isVerbose() {
		_, _ = fmt.Fprintf(os.Stderr, "Output saved to: %s\n", path)
	}
	return nil
}
