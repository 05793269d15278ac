// Package main provides the batch compile command: it pairs files from the
// main and secondary folders and runs the reconciliation pipeline per
// confirmed pairing.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/trufl/Compile-Lists/internal/batch"
	"github.com/trufl/Compile-Lists/internal/config"
	"github.com/trufl/Compile-Lists/internal/logger"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML configuration file")
	mainFolder := flag.String("main", "", "Folder containing main input files")
	secondaryFolder := flag.String("secondary", "", "Folder containing secondary input files")
	intermediateFolder := flag.String("intermediate", "", "Folder for intermediate output files")
	finalFolder := flag.String("final", "", "Folder for final output files")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	flag.Parse()

	cfg, err := resolveConfig(*configPath, *mainFolder, *secondaryFolder, *intermediateFolder, *finalFolder, *logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n\n", err)
		fmt.Fprintln(os.Stderr, "Usage: compile -config <config.yaml>")
		fmt.Fprintln(os.Stderr, "   or: compile -main <dir> -secondary <dir> -intermediate <dir> -final <dir>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	log := logger.NewLogger(cfg.Logging.Level)

	log.Info("🚀 starting list compilation batch")
	log.Info("📍 input folders", "main", cfg.Folders.Main, "secondary", cfg.Folders.Secondary)

	prompter := batch.NewTerminalPrompter(os.Stdin, os.Stdout)
	runner := batch.NewRunner(cfg, prompter, log)

	if err := runner.Run(); err != nil {
		if errors.Is(err, batch.ErrBatchAborted) {
			log.Info("aborting process")
			return
		}

		log.Error("❌ batch failed", "error", err)
		os.Exit(1)
	}

	log.Info("✨ batch complete")
}

// resolveConfig loads the config file when given, otherwise assembles a
// configuration from the folder flags. Flag values override file values.
func resolveConfig(path, mainDir, secondaryDir, intermediateDir, finalDir, level string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)

	if path != "" {
		cfg, err = config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
	} else {
		cfg = config.Default()
	}

	if mainDir != "" {
		cfg.Folders.Main = mainDir
	}

	if secondaryDir != "" {
		cfg.Folders.Secondary = secondaryDir
	}

	if intermediateDir != "" {
		cfg.Folders.Intermediate = intermediateDir
	}

	if finalDir != "" {
		cfg.Folders.Final = finalDir
	}

	if level != "" {
		cfg.Logging.Level = level
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
