// Package main provides the spreadsheet ranking converter command-line tool.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"rankings/internal/config"
	"rankings/internal/crawler"
	"rankings/internal/logger"
	"rankings/pkg/metadata"
)

func main() {
	inputDir := flag.String("input-dir", "data/financial_times", "Directory containing .xlsx ranking exports")
	outputDir := flag.String("output-dir", "data/rankings", "Directory to write JSON payloads")
	continueOnError := flag.Bool("continue-on-error", false, "Convert the remaining files after a failure")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error (default: "+config.EnvLogLevel+" or info)")
	envFile := flag.String("env", ".env", "Optional .env file seeding the environment")
	help := flag.Bool("help", false, "Show usage information")

	flag.Parse()

	if *help {
		printUsage()
		os.Exit(0)
	}

	settings, err := config.LoadSettings(*envFile)
	if err != nil {
		fatal(err)
	}

	if *logLevel != "" {
		if err := config.ValidateLogLevel(*logLevel); err != nil {
			fatal(err)
		}

		settings.LogLevel = *logLevel
	}

	log := logger.NewLogger(settings.LogLevel).WithRunID()
	converter := crawler.NewConverter(log)

	result, err := converter.ConvertAll(*inputDir, *outputDir, *continueOnError)
	if result != nil {
		for _, path := range result.Written {
			fmt.Printf("Wrote %s\n", path)
		}
	}

	if err == nil {
		return
	}

	if result != nil && len(result.Failed) > 0 {
		for _, fileErr := range result.Failed {
			fmt.Fprintf(os.Stderr, "[ERROR] %v\n", fileErr)
		}

		fatal(fmt.Errorf("%d of %d files failed", len(result.Failed), len(result.Failed)+len(result.Written)))
	}

	fatal(err)
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[ERROR] %v\n", err)
	os.Exit(1)
}

func printUsage() {
	fmt.Println("Usage: ./bin/converter [OPTIONS]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  ./bin/converter")
	fmt.Println("  ./bin/converter -input-dir exports -output-dir out -continue-on-error")
	fmt.Println()
	fmt.Println("Recognized filename patterns (first match wins):")
	fmt.Printf("  %s\n", strings.Join(metadata.Patterns(), ", "))
}
