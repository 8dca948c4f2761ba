package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/archcritic/internal/config"
	"github.com/dshills/archcritic/internal/examples"
	"github.com/dshills/archcritic/internal/input"
	"github.com/dshills/archcritic/internal/logging"
	"github.com/dshills/archcritic/internal/patch"
	"github.com/dshills/archcritic/internal/pipeline"
	"github.com/dshills/archcritic/internal/render"
	"github.com/dshills/archcritic/internal/review"
	"github.com/dshills/archcritic/internal/schema"
	"github.com/dshills/archcritic/internal/schema/validate"
	"github.com/dshills/archcritic/internal/server"
)

// version is set at build time via -ldflags "-X main.version=x.y.z".
var version = "dev"

// exitErr carries a numeric exit code through the cobra error path.
type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

// codeError returns an exitErr for the given code.
func codeError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}

// streams bundles the process I/O so tests can substitute buffers.
type streams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

func main() {
	std := streams{in: os.Stdin, out: os.Stdout, err: os.Stderr}
	if err := newRootCmd(std).Execute(); err != nil {
		var ee *exitErr
		if errors.As(err, &ee) {
			fmt.Fprintln(os.Stderr, "Error:", ee.msg)
			os.Exit(ee.code)
		}
		// cobra already printed the error
		os.Exit(1)
	}
}

func newRootCmd(std streams) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "archcritic",
		Short:        "Analyse SAP enterprise-architecture requirements",
		Long:         "archcritic turns free-text SAP architecture requirements into a parsed profile, advisory findings, an architecture graph, an FMEA risk register and mitigation guidance.",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ./archcritic.yaml if present)")

	root.AddCommand(
		newCheckCmd(std, &configPath),
		newDiffCmd(std, &configPath),
		newExamplesCmd(std),
		newServeCmd(std, &configPath),
	)
	return root
}

// --- check ---

func newCheckCmd(std streams, configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [requirements-file|-]",
		Short: "Analyse requirements and produce a report",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, *configPath)
			if err != nil {
				return err
			}
			return runCheck(firstArg(args), cfg, std)
		},
	}
	addReportFlags(cmd)
	cmd.Flags().String("fail-on", "", "Exit 2 if any risk band >= this level (MEDIUM or HIGH)")
	cmd.Flags().Int("min-rpn", 0, "Only emit risks with RPN >= this value (summary is unaffected)")
	return cmd
}

func runCheck(path string, cfg *config.Config, std streams) error {
	logger := newLogger(cfg, std)

	// --- Step 1: Validate config ---
	if err := cfg.Validate(render.Formats); err != nil {
		return codeError(3, "invalid flags: %s", err)
	}

	// --- Step 2: Load requirements ---
	reqs, err := loadRequirements(path, cfg.Example, std.in)
	if err != nil {
		return codeError(3, "loading requirements: %s", err)
	}
	logger.Debug("loaded requirements", "source", reqs.Source, "bytes", len(reqs.Text))

	// --- Step 3: Analyse ---
	b, err := pipeline.Analyze(context.Background(), reqs.Text, pipeline.Options{
		Version: version,
		Redact:  cfg.Redact,
		Logger:  logger,
	})
	if err != nil {
		return codeError(3, "analysing requirements: %s", err)
	}
	logger.Info("analysis complete",
		"source", reqs.Source, "hosting", b.Analysis.Hosting,
		"top_rpn", b.Summary.TopRPN, "top_mode", b.Summary.TopFailureMode)

	// --- Step 4: Band the full register before any output filtering ---
	worst := review.WorstBand(b.FMEA)
	b.FMEA = review.FilterByRPN(b.FMEA, cfg.MinRPN)
	b.MinRPN = cfg.MinRPN

	// --- Step 5: Render and write ---
	if err := writeReport(b, cfg, std); err != nil {
		return err
	}

	// --- Step 6: Evaluate --fail-on ---
	if cfg.FailOn != "" {
		threshold := schema.Band(cfg.FailOn)
		if schema.BandOrdinal(worst) >= schema.BandOrdinal(threshold) {
			return codeError(2, "risk band %s meets or exceeds --fail-on threshold %s", worst, threshold)
		}
	}
	return nil
}

// --- diff ---

func newDiffCmd(std streams, configPath *string) *cobra.Command {
	var exitCode bool
	cmd := &cobra.Command{
		Use:   "diff <baseline-bundle.json> [requirements-file|-]",
		Short: "Compare a stored JSON bundle with a fresh analysis",
		Long:  "Validates a previously exported JSON bundle, analyses the given requirements, and writes a diff-match-patch patch between the two Markdown reports.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, *configPath)
			if err != nil {
				return err
			}
			return runDiff(args[0], firstArg(args[1:]), exitCode, cfg, std)
		},
	}
	cmd.Flags().String("out", "", "Write the patch to file instead of stdout")
	cmd.Flags().String("example", "", "Analyse a built-in example instead of a file")
	cmd.Flags().Bool("verbose", false, "Log processing steps to stderr")
	cmd.Flags().BoolVar(&exitCode, "exit-code", false, "Exit 2 when the reports differ")
	return cmd
}

func runDiff(baselinePath, path string, exitCode bool, cfg *config.Config, std streams) error {
	logger := newLogger(cfg, std)

	raw, err := os.ReadFile(baselinePath)
	if err != nil {
		return codeError(3, "reading baseline: %s", err)
	}
	baseline, err := validate.Parse(string(raw))
	if err != nil {
		return codeError(3, "invalid baseline bundle: %s", err)
	}

	reqs, err := loadRequirements(path, cfg.Example, std.in)
	if err != nil {
		return codeError(3, "loading requirements: %s", err)
	}
	current, err := pipeline.Analyze(context.Background(), reqs.Text, pipeline.Options{Version: version, Logger: logger})
	if err != nil {
		return codeError(3, "analysing requirements: %s", err)
	}
	// Compare against the same slice of the register the baseline kept.
	current.FMEA = review.FilterByRPN(current.FMEA, baseline.MinRPN)
	current.MinRPN = baseline.MinRPN

	md, _ := render.NewRenderer("md")
	before, err := md.Render(comparable(baseline))
	if err != nil {
		return codeError(3, "rendering baseline: %s", err)
	}
	after, err := md.Render(comparable(current))
	if err != nil {
		return codeError(3, "rendering current: %s", err)
	}

	diffText, stats := patch.GenerateDiff(reqs.Source, string(before), string(after))
	logger.Info("compared reports", "baseline", baselinePath, "inserted", stats.Inserted, "deleted", stats.Deleted)

	if err := writeOutput([]byte(diffText), cfg.Out, std.out); err != nil {
		return err
	}
	if exitCode && stats.Changed() {
		return codeError(2, "reports differ (+%d -%d lines)", stats.Inserted, stats.Deleted)
	}
	return nil
}

// comparable drops per-run identity so only analysis content is diffed.
func comparable(b *schema.Bundle) *schema.Bundle {
	c := *b
	c.RunID = ""
	c.Version = ""
	return &c
}

// --- examples ---

func newExamplesCmd(std streams) *cobra.Command {
	return &cobra.Command{
		Use:   "examples [name]",
		Short: "List built-in requirement examples or print one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				ex, err := examples.Get(args[0])
				if err != nil {
					return codeError(3, "%s", err)
				}
				fmt.Fprintln(std.out, ex.Text)
				return nil
			}
			for _, ex := range examples.All() {
				fmt.Fprintf(std.out, "%-14s %s\n", ex.Slug, ex.Name)
			}
			return nil
		},
	}
}

// --- serve ---

func newServeCmd(std streams, configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve analyses over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, *configPath)
			if err != nil {
				return err
			}
			if err := cfg.Validate(render.Formats); err != nil {
				return codeError(3, "invalid flags: %s", err)
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(server.Options{
				Addr:     cfg.Serve.Addr,
				MaxBytes: cfg.Serve.MaxBytes,
				Version:  version,
				Logger:   logging.New(std.err, logging.Options{Verbose: cfg.Verbose, JSON: true}),
			})
			if err := srv.Run(ctx); err != nil {
				return codeError(1, "%s", err)
			}
			return nil
		},
	}
	cmd.Flags().String("addr", "", "Listen address (default :8080)")
	cmd.Flags().Bool("verbose", false, "Log debug detail")
	return cmd
}

// --- shared helpers ---

func addReportFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("format", "json", "Output format: json, md, yaml, text, or dot")
	f.String("out", "", "Write output to file instead of stdout")
	f.String("example", "", "Analyse a built-in example instead of a file (see 'archcritic examples')")
	f.Bool("redact", false, "Scrub secrets from the input echoed in the report")
	f.Bool("verbose", false, "Log processing steps to stderr")
}

// flagKeys maps command-line flags onto config keys.
var flagKeys = map[string]func(c *config.Config, cmd *cobra.Command){
	"format":  func(c *config.Config, cmd *cobra.Command) { c.Format, _ = cmd.Flags().GetString("format") },
	"out":     func(c *config.Config, cmd *cobra.Command) { c.Out, _ = cmd.Flags().GetString("out") },
	"example": func(c *config.Config, cmd *cobra.Command) { c.Example, _ = cmd.Flags().GetString("example") },
	"redact":  func(c *config.Config, cmd *cobra.Command) { c.Redact, _ = cmd.Flags().GetBool("redact") },
	"verbose": func(c *config.Config, cmd *cobra.Command) { c.Verbose, _ = cmd.Flags().GetBool("verbose") },
	"fail-on": func(c *config.Config, cmd *cobra.Command) { c.FailOn, _ = cmd.Flags().GetString("fail-on") },
	"min-rpn": func(c *config.Config, cmd *cobra.Command) { c.MinRPN, _ = cmd.Flags().GetInt("min-rpn") },
	"addr":    func(c *config.Config, cmd *cobra.Command) { c.Serve.Addr, _ = cmd.Flags().GetString("addr") },
}

// resolveConfig loads file and environment settings, then applies every flag
// the user set explicitly.
func resolveConfig(cmd *cobra.Command, path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, codeError(3, "%s", err)
	}
	for name, apply := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			apply(cfg, cmd)
		}
	}
	return cfg, nil
}

// loadRequirements picks the example when named, otherwise the file or stdin.
func loadRequirements(path, example string, stdin io.Reader) (*input.Requirements, error) {
	if example != "" {
		if path != "" {
			return nil, fmt.Errorf("give either a requirements file or --example, not both")
		}
		ex, err := examples.Get(example)
		if err != nil {
			return nil, err
		}
		return input.FromBytes(ex.Source(), []byte(ex.Text))
	}
	if path == "" {
		return nil, fmt.Errorf("a requirements file, '-' for stdin, or --example is required")
	}
	return input.Load(path, stdin)
}

func writeReport(b *schema.Bundle, cfg *config.Config, std streams) error {
	// Files never get colour; stdout does when it is a terminal.
	var dest io.Writer
	if cfg.Out == "" {
		dest = std.out
	}
	renderer, err := render.NewRendererFor(cfg.Format, dest)
	if err != nil {
		return codeError(3, "invalid format: %s", err)
	}
	out, err := renderer.Render(b)
	if err != nil {
		return codeError(3, "rendering output: %s", err)
	}
	return writeOutput(out, cfg.Out, std.out)
}

func writeOutput(data []byte, path string, stdout io.Writer) error {
	if path != "" {
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return codeError(3, "writing output file: %s", err)
		}
		return nil
	}
	if _, err := stdout.Write(data); err != nil {
		return codeError(3, "writing output: %s", err)
	}
	// Ensure output ends with a newline for terminal friendliness.
	if len(data) > 0 && data[len(data)-1] != '\n' {
		fmt.Fprintln(stdout)
	}
	return nil
}

func newLogger(cfg *config.Config, std streams) *slog.Logger {
	return logging.New(std.err, logging.Options{Verbose: cfg.Verbose})
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
