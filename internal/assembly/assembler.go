package assembly

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"cuemix/internal/assets"
	"cuemix/internal/config"
	"cuemix/internal/logging"
	"cuemix/internal/timeline"
)

// Recorder persists a completed run's metadata to the history ledger.
type Recorder interface {
	Record(ctx context.Context, md *Metadata) error
}

// Result summarizes a completed assembly run.
type Result struct {
	RunID    string
	OutDir   string
	Metadata *Metadata
}

// Assembler orchestrates a full run: assign markers to buses, mix each bus,
// then emit stems, composite, and metadata.
type Assembler struct {
	cfg      *config.Config
	logger   *slog.Logger
	resolver assets.Resolver
	recorder Recorder
}

// New builds an assembler. The recorder may be nil when history is disabled.
func New(cfg *config.Config, logger *slog.Logger, resolver assets.Resolver, recorder Recorder) *Assembler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Assembler{cfg: cfg, logger: logger, resolver: resolver, recorder: recorder}
}

// Assemble runs the engine against a template, writing all output into
// outDir. Buses mix concurrently; each bus's markers mix in timeline order
// so the result is deterministic regardless of scheduling.
//
// Per-marker problems (missing assets, non-generated versions, offsets past
// the asset end) skip the marker and continue. A run where nothing at all
// contributed fails with ErrNoGeneratedAssets before any file is written.
func (a *Assembler) Assemble(ctx context.Context, tpl *timeline.Template, outDir string) (*Result, error) {
	if err := tpl.Validate(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	ctx = logging.WithTemplate(ctx, tpl.TemplateID)
	ctx = logging.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, a.logger).With(slog.String(logging.FieldComponent, "assembler"))

	plan := NewPlan(a.cfg.Assembly.SFXBuses)
	assignments, err := Assign(tpl, plan)
	if err != nil {
		return nil, err
	}

	buses := plan.Buses()
	logger.Info("assembly started",
		slog.Int("markers", len(tpl.Markers)),
		slog.Int("buses", len(buses)),
		slog.Int64("duration_ms", tpl.DurationMs))

	mixes := make([]*BusMix, len(buses))
	errs := make([]error, len(buses))
	var wg sync.WaitGroup
	for i, bus := range buses {
		wg.Add(1)
		go func(i int, bus Bus) {
			defer wg.Done()
			mixes[i], errs[i] = MixBus(ctx, bus, assignments[bus.ID], tpl.DurationMs, a.resolver, logger)
		}(i, bus)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	placed := 0
	for _, mix := range mixes {
		placed += mix.Placed
	}
	if placed == 0 {
		return nil, fmt.Errorf("template %s: %w", tpl.TemplateID, ErrNoGeneratedAssets)
	}

	md := newMetadata(runID, tpl.TemplateID, tpl.TemplateName, tpl.DurationMs, plan)
	emitter := &Emitter{
		OutDir:       outDir,
		WritePreview: a.cfg.Assembly.WritePreview,
		Logger:       logger,
	}
	if err := emitter.Emit(md, mixes); err != nil {
		return nil, err
	}

	if a.recorder != nil {
		if err := a.recorder.Record(ctx, md); err != nil {
			logger.Warn("history record failed", slog.Any("error", err))
		}
	}

	logger.Info("assembly complete",
		slog.Int("placed", placed),
		slog.Int("skipped", len(md.Skipped)),
		slog.String("composite", md.CompositeFile))

	return &Result{RunID: runID, OutDir: outDir, Metadata: md}, nil
}
