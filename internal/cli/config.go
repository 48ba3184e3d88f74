package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/yildizm/RFPCheck/internal/analysis"
	"github.com/yildizm/RFPCheck/internal/config"
	"github.com/yildizm/RFPCheck/internal/emoji"
	"github.com/yildizm/RFPCheck/internal/loading"
	"github.com/yildizm/RFPCheck/internal/ui"
	"gopkg.in/yaml.v3"
)

const (
	defaultConfigFile = ".rfpcheck.yaml"
	factsCheckTimeout = 5 * time.Second
)

// newConfigCommand creates the config command with subcommands
func newConfigCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage RFPCheck configuration",
		Long: `Manage the RFPCheck configuration: the analysis service endpoint, the
upload slots, the loading screen and output defaults.

Subcommands read the file given with --config, or the first file found on
the search path (see "rfpcheck config path").`,
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand())
	configCmd.AddCommand(newConfigValidateCommand())
	configCmd.AddCommand(newConfigPathCommand())

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var (
		path    string
		minimal bool
		force   bool
	)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter configuration file",
		Example: `  rfpcheck config init
  rfpcheck config init --minimal
  rfpcheck config init --path ~/.config/rfpcheck/config.yaml --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			target := config.ExpandPath(path)
			if !force && fileExists(target) {
				return fmt.Errorf("config file already exists at %s (use --force to overwrite)", target)
			}

			content := config.SampleConfig()
			if minimal {
				content = config.MinimalSampleConfig()
			}
			if err := config.WriteFile(target, []byte(content)); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "%s Configuration file created at: %s\n", emoji.GetEmoji("success"), target)
			_, _ = fmt.Fprintf(out, "   Check it with: rfpcheck config validate --config %s\n", target)
			return nil
		},
	}

	initCmd.Flags().StringVar(&path, "path", defaultConfigFile, "where to write the config file")
	initCmd.Flags().BoolVarP(&minimal, "minimal", "m", false, "only the service endpoint")
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	return initCmd
}

func newConfigShowCommand() *cobra.Command {
	var format string

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Display the effective configuration",
		Long: `Display the configuration after defaults, config files and RFPCHECK_*
environment overrides are merged.

The summary format resolves derived values: the full analyze URL, the
inbox directories watched per slot and the facts source.`,
		Example: `  rfpcheck config show
  rfpcheck config show --format yaml
  rfpcheck --config ./ci.yaml config show --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewLoader().LoadConfig(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			out := cmd.OutOrStdout()
			switch format {
			case "summary":
				return writeConfigSummary(out, cfg)
			case "json":
				data, err := json.MarshalIndent(cfg, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal config to JSON: %w", err)
				}
				_, err = fmt.Fprintln(out, string(data))
				return err
			case "yaml":
				data, err := yaml.Marshal(cfg)
				if err != nil {
					return fmt.Errorf("failed to marshal config to YAML: %w", err)
				}
				_, err = out.Write(data)
				return err
			default:
				return fmt.Errorf("unsupported format: %s (use summary, yaml or json)", format)
			}
		},
	}

	showCmd.Flags().StringVar(&format, "format", "summary", "output format (summary, yaml, json)")

	return showCmd
}

// analyzeURL is the URL the client posts documents to
func analyzeURL(cfg *config.Config) string {
	client, err := analysis.NewClient(&analysis.Config{
		Endpoint:         cfg.Service.Endpoint,
		Timeout:          cfg.Service.Timeout,
		ValidateResponse: cfg.Service.ValidateResponse,
	})
	if err != nil {
		return cfg.Service.Endpoint + " (invalid)"
	}
	return client.Endpoint()
}

func writeConfigSummary(out io.Writer, cfg *config.Config) error {
	facts := "built-in"
	if cfg.Loading.FactsFile != "" {
		facts = cfg.Loading.FactsFile
	}
	inbox := "disabled"
	if cfg.Intake.InboxDir != "" {
		dir := config.ExpandPath(cfg.Intake.InboxDir)
		inbox = fmt.Sprintf("%s, %s", filepath.Join(dir, ui.RFPSlot), filepath.Join(dir, ui.ProposalSlot))
	}
	minimum := cfg.Loading.MinimumDuration.String()
	if !cfg.Loading.EnforceMinimum {
		minimum += " (not enforced)"
	}

	sections := []struct {
		title string
		rows  [][2]string
	}{
		{"Service", [][2]string{
			{"Analyze URL", analyzeURL(cfg)},
			{"Timeout", cfg.Service.Timeout.String()},
			{"Validate responses", fmt.Sprint(cfg.Service.ValidateResponse)},
		}},
		{"Intake", [][2]string{
			{"Accepted types", strings.Join(cfg.Intake.AcceptedTypes, ", ")},
			{"Files per slot", fmt.Sprint(cfg.Intake.MaxFiles)},
			{"Inbox", inbox},
		}},
		{"Loading", [][2]string{
			{"Facts", facts},
			{"Rotation", cfg.Loading.RotationPeriod.String()},
			{"Minimum display", minimum},
		}},
		{"Output", [][2]string{
			{"Format", cfg.Output.DefaultFormat},
			{"Color", cfg.Output.ColorMode},
			{"Theme", cfg.Output.Theme},
		}},
	}

	var b strings.Builder
	for i, section := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(section.title + "\n")
		for _, row := range section.rows {
			fmt.Fprintf(&b, "  %-20s %s\n", row[0]+":", row[1])
		}
	}
	_, err := io.WriteString(out, b.String())
	return err
}

// configCheck is one line of "config validate" output. Warnings do not fail
// validation.
type configCheck struct {
	name    string
	message string
	warn    bool
	err     error
}

// checkConfig runs the checks that go beyond Config.Validate: they resolve
// the values the way analyze and loading would use them
func checkConfig(ctx context.Context, cfg *config.Config) []configCheck {
	var checks []configCheck

	if _, err := analysis.NewClient(&analysis.Config{
		Endpoint:         cfg.Service.Endpoint,
		Timeout:          cfg.Service.Timeout,
		ValidateResponse: cfg.Service.ValidateResponse,
	}); err != nil {
		checks = append(checks, configCheck{name: "service", err: err})
	} else {
		checks = append(checks, configCheck{name: "service", message: "documents go to " + analyzeURL(cfg)})
	}

	intakeCheck := configCheck{name: "intake", message: fmt.Sprintf("%d file(s) per slot", cfg.Intake.MaxFiles)}
	for _, t := range cfg.Intake.AcceptedTypes {
		if _, _, err := mime.ParseMediaType(t); err != nil {
			intakeCheck.err = fmt.Errorf("invalid media type %q: %w", t, err)
			break
		}
	}
	if intakeCheck.err == nil && !slices.Contains(cfg.Intake.AcceptedTypes, "application/pdf") {
		intakeCheck.warn = true
		intakeCheck.message = "application/pdf is not accepted; RFPs and proposals are usually PDF"
	}
	checks = append(checks, intakeCheck)

	if cfg.Intake.InboxDir != "" {
		dir := config.ExpandPath(cfg.Intake.InboxDir)
		inboxCheck := configCheck{name: "inbox", message: "watching " + dir}
		if info, err := os.Stat(dir); err == nil && !info.IsDir() {
			inboxCheck.err = fmt.Errorf("%s is not a directory", dir)
		} else if err != nil {
			inboxCheck.warn = true
			inboxCheck.message = dir + " does not exist yet; it is created on first use"
		}
		checks = append(checks, inboxCheck)
	}

	factsCtx, cancel := context.WithTimeout(ctx, factsCheckTimeout)
	defer cancel()
	facts, err := loading.LoadFacts(factsCtx, config.ExpandPath(cfg.Loading.FactsFile))
	switch {
	case err != nil:
		checks = append(checks, configCheck{name: "facts", err: err})
	case len(facts) == 0:
		checks = append(checks, configCheck{name: "facts", warn: true, message: "no facts; the loading screen shows only the timer"})
	default:
		checks = append(checks, configCheck{name: "facts", message: fmt.Sprintf("%d facts loaded", len(facts))})
	}

	loadingCheck := configCheck{name: "loading", message: "minimum display " + cfg.Loading.MinimumDuration.String()}
	switch {
	case !cfg.Loading.EnforceMinimum:
		loadingCheck.message = "results are shown as soon as they arrive"
	case cfg.Loading.MinimumDuration < cfg.Loading.RotationPeriod:
		loadingCheck.warn = true
		loadingCheck.message = fmt.Sprintf("minimum_duration %s is shorter than rotation_period %s; only one fact is shown",
			cfg.Loading.MinimumDuration, cfg.Loading.RotationPeriod)
	}
	checks = append(checks, loadingCheck)

	return checks
}

func newConfigValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration",
		Long: `Load the configuration and check it the way analyze would use it: the
analyze URL is built, accepted media types are parsed, the inbox directory is
inspected and the facts source is read.`,
		Example: `  rfpcheck config validate
  rfpcheck --config ./ci.yaml config validate`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			cfg, err := config.NewLoader().LoadConfig(cfgFile)
			if err != nil {
				_, _ = fmt.Fprintf(out, "%s %v\n", emoji.GetEmoji("error"), err)
				return err
			}

			failed := 0
			for _, c := range checkConfig(cmd.Context(), cfg) {
				switch {
				case c.err != nil:
					failed++
					_, _ = fmt.Fprintf(out, "%s %-8s %v\n", emoji.GetEmoji("error"), c.name, c.err)
				case c.warn:
					_, _ = fmt.Fprintf(out, "%s %-8s %s\n", emoji.GetEmoji("warning"), c.name, c.message)
				default:
					_, _ = fmt.Fprintf(out, "%s %-8s %s\n", emoji.GetEmoji("success"), c.name, c.message)
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d configuration check(s) failed", failed)
			}
			_, _ = fmt.Fprintf(out, "%s Configuration is valid\n", emoji.GetEmoji("success"))
			return nil
		},
	}
}

func newConfigPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show configuration file search paths",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(out, "Configuration search paths, highest priority first:")
			for i, p := range config.GetConfigPaths() {
				state := "not found"
				if fileExists(config.ExpandPath(p)) {
					state = "exists"
				}
				_, _ = fmt.Fprintf(out, "  %d. %s (%s)\n", i+1, p, state)
			}

			if current, found := config.FindConfigFile(); found {
				_, _ = fmt.Fprintf(out, "\nIn use: %s\n", current)
			} else {
				_, _ = fmt.Fprintln(out, "\nNo config file found, using defaults")
			}
			_, _ = fmt.Fprintln(out, "RFPCHECK_* environment variables (e.g. RFPCHECK_SERVICE_ENDPOINT) override file settings")
		},
	}
}

func fileExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}
