// Package main provides the standalone normalize command for running the
// email fanout stage over a single main file.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/trufl/Compile-Lists/internal/logger"
	"github.com/trufl/Compile-Lists/internal/pipeline"
	"github.com/trufl/Compile-Lists/pkg/preview"
)

func main() {
	inputPath := flag.String("input", "", "Path to main input file (.csv, .tsv, .xlsx)")
	outputPath := flag.String("output", "", "Path to normalized CSV output file")
	previewRows := flag.Int("preview", 5, "Rows of the result to print (0 disables)")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	if *inputPath == "" || *outputPath == "" {
		fmt.Println("Usage: normalize -input <main.csv> -output <intermediate.csv>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	log := logger.NewLogger(*logLevel)

	pipe := pipeline.New(nil, log)

	normalized, err := pipe.Normalize(*inputPath, *outputPath)
	if err != nil {
		log.Error("❌ normalization failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Normalized %s → %s (%d rows)\n", *inputPath, *outputPath, len(normalized.Rows))

	if *previewRows > 0 {
		fmt.Println(preview.Render(normalized, *previewRows))
	}
}
