// Package batch pairs input files from the main and secondary folders and
// drives the reconciliation pipeline over each confirmed pairing.
package batch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/trufl/Compile-Lists/internal/config"
	"github.com/trufl/Compile-Lists/internal/dataset"
	"github.com/trufl/Compile-Lists/internal/logger"
	"github.com/trufl/Compile-Lists/internal/pipeline"
	"github.com/trufl/Compile-Lists/internal/tabular"
	"github.com/trufl/Compile-Lists/pkg/preview"
)

// Batch control errors.
var (
	ErrBatchAborted  = errors.New("batch aborted by user")
	ErrNoInputFiles  = errors.New("input folder contains no files")
	ErrEmptyBaseName = errors.New("output base name must not be empty")
)

// Pairing is one main/secondary file combination to reconcile.
type Pairing struct {
	MainFile      string
	SecondaryFile string
}

// Runner walks the configured folders and runs the pipeline per pairing,
// consulting the prompter at the decision points the workflow requires.
type Runner struct {
	cfg      *config.Config
	pipe     *pipeline.Pipeline
	prompter Prompter
	log      *logger.Logger
}

// NewRunner creates a batch runner.
func NewRunner(cfg *config.Config, prompter Prompter, log *logger.Logger) *Runner {
	return &Runner{
		cfg:      cfg,
		pipe:     pipeline.New(cfg.ColumnMapping, log),
		prompter: prompter,
		log:      log,
	}
}

// ListInputFiles returns the sorted file names in dir, excluding
// subdirectories and hidden (dot-prefixed) entries.
func ListInputFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input folder: %w", err)
	}

	var files []string

	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		files = append(files, entry.Name())
	}

	sort.Strings(files)

	return files, nil
}

// PairFiles matches the two sorted lists positionally, padding the shorter
// list by repeating its final entry.
func PairFiles(mainFiles, secondaryFiles []string) []Pairing {
	count := len(mainFiles)
	if len(secondaryFiles) > count {
		count = len(secondaryFiles)
	}

	pairings := make([]Pairing, 0, count)

	for i := 0; i < count; i++ {
		p := Pairing{
			MainFile:      mainFiles[len(mainFiles)-1],
			SecondaryFile: secondaryFiles[len(secondaryFiles)-1],
		}

		if i < len(mainFiles) {
			p.MainFile = mainFiles[i]
		}

		if i < len(secondaryFiles) {
			p.SecondaryFile = secondaryFiles[i]
		}

		pairings = append(pairings, p)
	}

	return pairings
}

// Run processes the whole batch. A declined confirmation aborts the
// remaining batch with ErrBatchAborted; a pairing that fails with a schema
// or format violation is reported and skipped, and the batch continues.
// Other failures abort the batch.
func (r *Runner) Run() error {
	mainFiles, err := ListInputFiles(r.cfg.Folders.Main)
	if err != nil {
		return err
	}

	secondaryFiles, err := ListInputFiles(r.cfg.Folders.Secondary)
	if err != nil {
		return err
	}

	if len(mainFiles) == 0 || len(secondaryFiles) == 0 {
		return ErrNoInputFiles
	}

	if len(mainFiles) != len(secondaryFiles) {
		smaller := "Main"
		if len(secondaryFiles) < len(mainFiles) {
			smaller = "Secondary"
		}

		r.log.Warn("input folders hold different file counts",
			"main", len(mainFiles), "secondary", len(secondaryFiles))

		ok, err := r.prompter.Confirm(
			fmt.Sprintf("The %s folder will reuse its last file. Proceed?", smaller))
		if err != nil {
			return err
		}

		if !ok {
			return ErrBatchAborted
		}
	}

	for _, pairing := range PairFiles(mainFiles, secondaryFiles) {
		if err := r.runPairing(pairing); err != nil {
			return err
		}
	}

	return nil
}

func (r *Runner) runPairing(pairing Pairing) error {
	mainPath := filepath.Join(r.cfg.Folders.Main, pairing.MainFile)
	secondaryPath := filepath.Join(r.cfg.Folders.Secondary, pairing.SecondaryFile)

	r.log.Info("next pairing", "main", pairing.MainFile, "secondary", pairing.SecondaryFile)

	r.showPreview(mainPath)

	ok, err := r.prompter.Confirm(fmt.Sprintf(
		"Main: %s / Secondary: %s. Are these files correct?",
		pairing.MainFile, pairing.SecondaryFile))
	if err != nil {
		return err
	}

	if !ok {
		return ErrBatchAborted
	}

	baseName, err := r.prompter.Ask("Enter a base name for output files")
	if err != nil {
		return err
	}

	if baseName == "" {
		return ErrEmptyBaseName
	}

	intermediatePath := filepath.Join(r.cfg.Folders.Intermediate, baseName+"-intermediate.csv")
	finalPath := filepath.Join(r.cfg.Folders.Final, baseName+"-final.csv")

	result, err := r.pipe.Run(mainPath, secondaryPath, intermediatePath, finalPath)
	if err != nil {
		if isPairingError(err) {
			r.log.Error("pairing skipped", "main", pairing.MainFile, "error", err)

			return nil
		}

		return err
	}

	r.log.Info("pairing complete",
		"main_rows", result.MainRows,
		"normalized_rows", result.NormalizedRows,
		"appended_rows", result.AppendedRows,
		"final_rows", result.FinalRows,
	)

	return nil
}

// showPreview prints the head of the main file before confirmation.
// Preview is best effort: a file the loader rejects here will be reported
// properly by the pipeline itself.
func (r *Runner) showPreview(mainPath string) {
	if !r.cfg.Preview.Enabled {
		return
	}

	ds, err := tabular.Load(mainPath)
	if err != nil {
		r.log.Debug("preview unavailable", "path", mainPath, "error", err)

		return
	}

	fmt.Println(preview.Render(ds, r.cfg.Preview.Rows))
}

// isPairingError reports whether the failure is scoped to the current
// pairing (schema or format violation) rather than the whole batch.
func isPairingError(err error) bool {
	var schemaErr *dataset.SchemaError
	if errors.As(err, &schemaErr) {
		return true
	}

	var formatErr *tabular.UnsupportedFormatError

	return errors.As(err, &formatErr)
}
