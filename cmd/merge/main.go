// Package main provides the standalone merge command for reconciling one
// secondary file against an already-normalized file.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/trufl/Compile-Lists/internal/config"
	"github.com/trufl/Compile-Lists/internal/logger"
	"github.com/trufl/Compile-Lists/internal/pipeline"
	"github.com/trufl/Compile-Lists/pkg/preview"
)

func main() {
	normalizedPath := flag.String("normalized", "", "Path to normalized (intermediate) CSV file")
	secondaryPath := flag.String("secondary", "", "Path to secondary input file (.csv, .tsv, .xlsx)")
	outputPath := flag.String("output", "", "Path to final CSV output file")
	configPath := flag.String("config", "", "Optional YAML config supplying the column mapping")
	previewRows := flag.Int("preview", 5, "Rows of the result to print (0 disables)")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	if *normalizedPath == "" || *secondaryPath == "" || *outputPath == "" {
		fmt.Println("Usage: merge -normalized <intermediate.csv> -secondary <secondary.csv> -output <final.csv>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	log := logger.NewLogger(*logLevel)

	mapping := config.DefaultColumnMapping()

	if *configPath != "" {
		cfg, err := config.LoadConfig(*configPath)
		if err != nil {
			log.Error("❌ failed to load config", "error", err)
			os.Exit(1)
		}

		mapping = cfg.ColumnMapping
	}

	pipe := pipeline.New(mapping, log)

	final, err := pipe.Merge(*normalizedPath, *secondaryPath, *outputPath)
	if err != nil {
		log.Error("❌ merge failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Merged %s + %s → %s (%d rows)\n",
		*normalizedPath, *secondaryPath, *outputPath, len(final.Rows))

	if *previewRows > 0 {
		fmt.Println(preview.Render(final, *previewRows))
	}
}
