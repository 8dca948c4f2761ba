// Package pipeline runs one complete analysis: extraction, then the advisory
// panel, graph and risk register side by side, then the mitigation narrative.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/archcritic/internal/agents"
	"github.com/dshills/archcritic/internal/extract"
	"github.com/dshills/archcritic/internal/fmea"
	"github.com/dshills/archcritic/internal/graph"
	"github.com/dshills/archcritic/internal/input"
	"github.com/dshills/archcritic/internal/mitigation"
	"github.com/dshills/archcritic/internal/redact"
	"github.com/dshills/archcritic/internal/review"
	"github.com/dshills/archcritic/internal/schema"
)

// Tool is the bundle tool name.
const Tool = "archcritic"

// Options configures a run. The zero value is usable.
type Options struct {
	Version string
	// Redact scrubs secrets from the echoed input. Analysis always runs on
	// the original text.
	Redact bool
	Now    func() time.Time
	NewID  func() string
	Logger *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Version == "" {
		o.Version = "dev"
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.NewID == nil {
		o.NewID = uuid.NewString
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	return o
}

// Analyze runs the full pipeline over text. The only error is ctx being
// done before the run completes.
func Analyze(ctx context.Context, text string, opts Options) (*schema.Bundle, error) {
	opts = opts.withDefaults()
	runID := opts.NewID()
	logger := opts.Logger.With("run_id", runID)

	a := extract.Extract(text)
	logger.Debug("extracted profile",
		"modules", len(a.Modules), "external", len(a.External),
		"hosting", a.Hosting, "compliance", len(a.Compliance), "users", a.Users)

	var (
		findings []schema.Finding
		g        schema.Graph
		risks    []schema.Risk
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		findings = agents.Run(a)
		return egCtx.Err()
	})
	eg.Go(func() error {
		g = graph.Build(a)
		return egCtx.Err()
	})
	eg.Go(func() error {
		risks = fmea.Register(a)
		return egCtx.Err()
	})
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("analysis cancelled: %w", err)
	}

	narrative := mitigation.Compose(risks, a)
	summary := review.Summarize(risks, a)
	logger.Debug("scored register", "top_rpn", summary.TopRPN, "top_mode", summary.TopFailureMode)

	echoed := text
	if opts.Redact {
		echoed = redact.Redact(text)
	}

	return &schema.Bundle{
		Tool:        Tool,
		Version:     opts.Version,
		RunID:       runID,
		GeneratedAt: opts.Now().UTC(),
		Input:       echoed,
		InputHash:   input.Hash(text),
		Analysis:    a,
		Agents:      findings,
		FMEA:        risks,
		Graph:       g,
		Mitigation:  narrative,
		Summary:     summary,
	}, nil
}
