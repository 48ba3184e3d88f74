package cli

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/yildizm/RFPCheck/internal/config"
	"github.com/yildizm/RFPCheck/internal/emoji"
	"github.com/yildizm/RFPCheck/internal/logger"
	"github.com/yildizm/RFPCheck/internal/ui"
)

var (
	cfgFile   string
	verbose   bool
	noColor   bool
	noEmoji   bool
	outputFmt string
	logFile   string

	globalConfig *config.Config
	configMu     sync.Mutex
)

// NewRootCommand creates the root command
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rfpcheck",
		Short: "RFP eligibility checker",
		Long: `RFPCheck sends an RFP (Request for Proposal) and a proposal to an analysis
service and shows, criterion by criterion, whether the proposal meets the
RFP's eligibility requirements.

Documents are picked in a terminal UI, dropped into a watched inbox
directory, or passed as flags for scripted use.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Auto-disable emojis on Windows if not explicitly set
			if runtime.GOOS == "windows" && !cmd.Flag("no-emoji").Changed {
				noEmoji = true
			}
			// Set emoji state for all components
			emoji.SetEmojiDisabled(noEmoji)
			ui.SetColorDisabled(noColor)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&noEmoji, "no-emoji", false, "disable emoji output (useful for Windows terminals)")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "", "output format (text, json, markdown, csv)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "append logs to this file")

	// Add subcommands
	rootCmd.AddCommand(newAnalyzeCommand())
	rootCmd.AddCommand(newLoadingCommand())
	rootCmd.AddCommand(newMockServerCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display version number, build commit, date, and runtime information",
		Run: func(cmd *cobra.Command, args []string) {
			displayVersion := version
			displayCommit := commit
			displayDate := date

			if version == "dev" || version == "" {
				displayVersion = "development"
			}
			if commit == "none" || commit == "" {
				displayCommit = "local-build"
			}
			if date == "unknown" || date == "" {
				displayDate = "local-build"
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "RFPCheck %s (%s) built on %s\n", displayVersion, displayCommit, displayDate)
			_, _ = fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			_, _ = fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

// GetGlobalConfig loads the configuration once per process and applies its
// display settings
func GetGlobalConfig() (*config.Config, error) {
	configMu.Lock()
	defer configMu.Unlock()

	if globalConfig != nil {
		return globalConfig, nil
	}

	cfg, err := config.NewLoader().LoadConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	applyDisplaySettings(cfg)
	globalConfig = cfg
	return cfg, nil
}

func applyDisplaySettings(cfg *config.Config) {
	if !ui.SetThemeByName(cfg.Output.Theme) {
		ui.SetThemeByName("default")
	}
	switch cfg.Output.ColorMode {
	case "never":
		ui.SetColorDisabled(true)
	case "always":
		if !noColor {
			lipgloss.SetColorProfile(termenv.TrueColor)
		}
	}
	if cfg.Output.Verbose {
		verbose = true
	}
}

// newLogger builds a component logger. In TUI mode nothing may be written to
// the terminal, so logs are dropped unless --log-file is set.
func newLogger(component string, tui bool) (*logger.Logger, func(), error) {
	log := logger.NewWithCallback(component, isVerbose)
	if logFile != "" {
		// #nosec G304 - path supplied by the user
		f, err := os.OpenFile(config.ExpandPath(logFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		log.SetOutput(f)
		return log, func() { _ = f.Close() }, nil
	}
	if tui {
		log.SetOutput(io.Discard)
	}
	return log, func() {}, nil
}

// Global helpers
func isVerbose() bool {
	return verbose
}

// getOutputFormat returns the --output flag, falling back to the configured
// default format
func getOutputFormat(cfg *config.Config) string {
	if outputFmt != "" {
		return outputFmt
	}
	if cfg != nil && cfg.Output.DefaultFormat != "" {
		return cfg.Output.DefaultFormat
	}
	return "text"
}
