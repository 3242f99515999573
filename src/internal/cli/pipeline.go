// FILE: eventweaver/src/internal/cli/pipeline.go
package cli

import (
	"time"

	"eventweaver/src/internal/analysis"
	"eventweaver/src/internal/config"
	"eventweaver/src/internal/core"
	"eventweaver/src/internal/dsl"
	"eventweaver/src/internal/source"
	"eventweaver/src/internal/timeline"

	"github.com/lixenwraith/log"
)

// pipeline bundles the loaded configuration with the logger every
// command needs. Close shuts the logger down.
type pipeline struct {
	cfg    *config.Config
	logger *log.Logger
}

// newPipeline loads the configuration and brings up logging. Config
// problems are command errors (exit code 2).
func newPipeline(opts *RootOptions) (*pipeline, error) {
	path := config.ConfigPath(opts.ConfigFile)
	cfg, err := config.Load(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load config", err)
	}

	logger, err := initializeLogger(cfg, opts)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to initialize logger", err)
	}

	return &pipeline{cfg: cfg, logger: logger}, nil
}

func (p *pipeline) Close() {
	p.logger.Shutdown(2 * time.Second)
}

// collect runs the full fusion pipeline: build producers, compile
// the optional filter expression, fuse and drain.
func (p *pipeline) collect(query string) ([]core.Event, error) {
	producers, err := source.BuildProducers(p.cfg, p.logger)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to build sources", err)
	}

	var pred timeline.Predicate
	if query != "" {
		program, err := dsl.Compile(query)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to compile query", err)
		}
		pred = program.Eval
	}

	cursor, err := timeline.Fuse(producers, pred)
	if err != nil {
		return nil, WrapExitError(ExitFailure, "fusion failed", err)
	}

	events, err := timeline.Collect(cursor)
	if err != nil {
		return nil, WrapExitError(ExitFailure, "fusion failed", err)
	}

	p.logger.Info("msg", "Timeline fused",
		"component", "cli",
		"sources", len(producers),
		"events", len(events))

	return events, nil
}

// heuristics maps the configured thresholds onto the analysis
// runner's knobs.
func (p *pipeline) heuristics() analysis.Config {
	h := p.cfg.Heuristics
	return analysis.Config{
		GapMS:           h.GapMS(),
		BurstWindowMS:   h.BurstWindowMS(),
		BurstThreshold:  h.BurstCount(),
		SeverityHorizon: h.SeverityHorizon(),
		SeverityDelta:   h.SeverityDelta(),
	}
}
