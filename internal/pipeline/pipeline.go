// Package pipeline runs the normalize-then-merge reconciliation for one
// main/secondary file pairing.
package pipeline

import (
	"fmt"

	"github.com/trufl/Compile-Lists/internal/dataset"
	"github.com/trufl/Compile-Lists/internal/logger"
	"github.com/trufl/Compile-Lists/internal/reconciler"
	"github.com/trufl/Compile-Lists/internal/tabular"
)

// Result reports the row counts observed at each stage of a pairing run.
type Result struct {
	MainRows       int
	NormalizedRows int
	SecondaryRows  int
	AppendedRows   int
	FinalRows      int
}

// Pipeline wires the fanout normalizer and the merge reconciler together
// with loading and persistence for a single pairing at a time. Pairings run
// strictly sequentially; a Pipeline holds no per-run state.
type Pipeline struct {
	normalizer *reconciler.Normalizer
	merger     *reconciler.Merger
	mapping    map[string]string
	log        *logger.Logger
}

// New creates a pipeline applying the given column mapping to every
// secondary file it processes.
func New(mapping map[string]string, log *logger.Logger) *Pipeline {
	return &Pipeline{
		normalizer: reconciler.NewNormalizer(),
		merger:     reconciler.NewMerger(),
		mapping:    mapping,
		log:        log,
	}
}

// Run processes one pairing: load main, normalize, load secondary, merge,
// then persist the intermediate and final outputs.
//
// Both stages validate their schemas before anything is written, so a failed
// pairing leaves no partial output behind. The normalized dataset is handed
// to the merger in memory; the intermediate file is written as the durable
// artifact of the normalize stage.
func (p *Pipeline) Run(mainPath, secondaryPath, intermediatePath, finalPath string) (*Result, error) {
	mainData, err := tabular.Load(mainPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load main file: %w", err)
	}

	normalized, err := p.normalizer.Normalize(mainData)
	if err != nil {
		return nil, fmt.Errorf("normalization failed: %w", err)
	}

	secondaryData, err := tabular.Load(secondaryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load secondary file: %w", err)
	}

	final, err := p.merger.Merge(normalized, secondaryData, p.mapping)
	if err != nil {
		return nil, fmt.Errorf("merge failed: %w", err)
	}

	if err := tabular.Save(normalized, intermediatePath); err != nil {
		return nil, fmt.Errorf("failed to save intermediate output: %w", err)
	}

	p.log.Info("intermediate output saved", "path", intermediatePath, "rows", len(normalized.Rows))

	if err := tabular.Save(final, finalPath); err != nil {
		return nil, fmt.Errorf("failed to save final output: %w", err)
	}

	p.log.Info("final output saved", "path", finalPath, "rows", len(final.Rows))

	return &Result{
		MainRows:       len(mainData.Rows),
		NormalizedRows: len(normalized.Rows),
		SecondaryRows:  len(secondaryData.Rows),
		AppendedRows:   len(final.Rows) - len(normalized.Rows),
		FinalRows:      len(final.Rows),
	}, nil
}

// Normalize runs only the fanout stage for a single file, persisting the
// result. Used by the standalone normalize driver.
func (p *Pipeline) Normalize(mainPath, outputPath string) (*dataset.Dataset, error) {
	mainData, err := tabular.Load(mainPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load main file: %w", err)
	}

	normalized, err := p.normalizer.Normalize(mainData)
	if err != nil {
		return nil, fmt.Errorf("normalization failed: %w", err)
	}

	if err := tabular.Save(normalized, outputPath); err != nil {
		return nil, fmt.Errorf("failed to save normalized output: %w", err)
	}

	p.log.Info("normalized output saved", "path", outputPath, "rows", len(normalized.Rows))

	return normalized, nil
}

// Merge runs only the reconcile stage against an already-normalized file,
// persisting the result. Used by the standalone merge driver.
func (p *Pipeline) Merge(normalizedPath, secondaryPath, outputPath string) (*dataset.Dataset, error) {
	normalized, err := tabular.Load(normalizedPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load normalized file: %w", err)
	}

	secondaryData, err := tabular.Load(secondaryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load secondary file: %w", err)
	}

	final, err := p.merger.Merge(normalized, secondaryData, p.mapping)
	if err != nil {
		return nil, fmt.Errorf("merge failed: %w", err)
	}

	if err := tabular.Save(final, outputPath); err != nil {
		return nil, fmt.Errorf("failed to save final output: %w", err)
	}

	p.log.Info("final output saved", "path", outputPath, "rows", len(final.Rows))

	return final, nil
}
