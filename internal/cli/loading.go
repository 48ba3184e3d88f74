package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"github.com/yildizm/RFPCheck/internal/emoji"
	"github.com/yildizm/RFPCheck/internal/loading"
	"github.com/yildizm/RFPCheck/internal/ui"
)

var (
	loadingFacts   string
	loadingNoTUI   bool
	loadingMinimum time.Duration
)

func newLoadingCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "loading",
		Short: "Show the loading screen on its own",
		Long: `Show the loading screen without running an analysis. Facts rotate as
they would during a request and the command exits once the minimum display
time has passed.

Examples:
  rfpcheck loading
  rfpcheck loading --facts ./facts.json --minimum 5s
  rfpcheck loading --no-tui`,
		Args: cobra.NoArgs,
		RunE: runLoading,
	}

	cmd.Flags().StringVar(&loadingFacts, "facts", "", "facts file or URL (default: built-in facts)")
	cmd.Flags().BoolVar(&loadingNoTUI, "no-tui", false, "print facts to stdout instead of opening the UI")
	cmd.Flags().DurationVar(&loadingMinimum, "minimum", 0, "minimum display time")

	return cmd
}

func runLoading(cmd *cobra.Command, args []string) error {
	cfg, err := GetGlobalConfig()
	if err != nil {
		return err
	}
	if cmd.Flag("facts").Changed {
		cfg.Loading.FactsFile = loadingFacts
	}
	if cmd.Flag("minimum").Changed {
		cfg.Loading.MinimumDuration = loadingMinimum
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	if loadingNoTUI {
		facts, err := loading.LoadFacts(ctx, cfg.Loading.FactsFile)
		if err != nil {
			return err
		}
		return runLoadingHeadless(ctx, cmd.OutOrStdout(), facts,
			loading.WithRotationPeriod(cfg.Loading.RotationPeriod),
			loading.WithTickPeriod(cfg.Loading.TickPeriod),
			loading.WithMinimum(cfg.Loading.MinimumDuration))
	}

	log, closeLog, err := newLogger("rfpcheck", true)
	if err != nil {
		return err
	}
	defer closeLog()

	return ui.Run(ui.Options{
		FactsSource:     cfg.Loading.FactsFile,
		RotationPeriod:  cfg.Loading.RotationPeriod,
		TickPeriod:      cfg.Loading.TickPeriod,
		MinimumDuration: cfg.Loading.MinimumDuration,
		EnforceMinimum:  true,
		InitialView:     "loading",
		Logger:          log,
		Context:         ctx,
	})
}

// runLoadingHeadless prints each fact as it comes up and returns when the
// minimum display time is reached or ctx ends
func runLoadingHeadless(ctx context.Context, out io.Writer, facts []loading.Fact, opts ...loading.Option) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	printFact := func(f loading.Fact) {
		_, _ = fmt.Fprintf(out, "%s %s\n", emoji.GetEmoji("insight"), f.Text)
	}
	opts = append(opts,
		loading.OnRotate(printFact),
		loading.OnMinimum(cancel),
	)
	presenter := loading.NewPresenter(facts, opts...)

	_, _ = fmt.Fprintf(out, "%s Analyzing\n", emoji.GetEmoji("hourglass"))
	if len(facts) > 0 {
		printFact(facts[0])
	}

	if err := presenter.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
