// Package main provides the ranking scraper command-line tool.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"rankings/internal/config"
	"rankings/internal/crawler"
	"rankings/internal/formatter"
	"rankings/internal/logger"
	"rankings/internal/models"
)

func main() {
	input := flag.String("input", "-", "Path to the scrape-job config (JSON or YAML). Use '-' to read from stdin")
	timeout := flag.Float64("timeout", 0, "HTTP timeout in seconds (default: "+config.EnvTimeoutSec+" or 10)")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error (default: "+config.EnvLogLevel+" or info)")
	htmlFile := flag.String("html", "", "Parse this local HTML file instead of fetching the job URL")
	preview := flag.Bool("preview", false, "Print a markdown preview of the ranking to stdout")
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

	if *timeout > 0 {
		settings.Timeout = time.Duration(*timeout * float64(time.Second))
	}

	if *logLevel != "" {
		if err := config.ValidateLogLevel(*logLevel); err != nil {
			fatal(err)
		}

		settings.LogLevel = *logLevel
	}

	log := logger.NewLogger(settings.LogLevel).WithRunID()

	job, err := config.LoadScrapeConfig(*input)
	if err != nil {
		fatal(err)
	}

	log = log.With("url", job.URL, "adapter", job.Adapter)
	log.Info("loaded job", "job", job.String(), "timeout", settings.Timeout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	scraper := crawler.NewScraperWithConfig(settings.Timeout, settings.UserAgent, settings.MaxBodyKb)
	client := crawler.NewClientWithDeps(scraper, nil, log)

	payload, err := scrape(ctx, client, job, *htmlFile)
	if err != nil {
		fatal(err)
	}

	if err := crawler.SavePayloadJSON(payload, job.OutputPath); err != nil {
		fatal(err)
	}

	log.Info("saved payload", "output", job.OutputPath, "entries", len(payload.Entries))

	if *preview {
		fmt.Println(formatter.FormatPayload(payload))
	}

	fmt.Printf("Wrote normalized ranking to %s\n", job.OutputPath)
}

func scrape(ctx context.Context, client *crawler.Client, job *config.ScrapeConfig, htmlFile string) (*models.LeaderboardPayload, error) {
	if htmlFile == "" {
		return client.Scrape(ctx, job)
	}

	content, err := os.ReadFile(htmlFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read HTML file %s: %w", htmlFile, err)
	}

	return client.ScrapeHTML(ctx, job, string(content))
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[ERROR] %v\n", err)
	os.Exit(1)
}

func printUsage() {
	fmt.Println("Usage: ./bin/scraper [OPTIONS]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  ./bin/scraper -input configs/mim-2025.json")
	fmt.Println("  cat job.yaml | ./bin/scraper -timeout 5 -preview")
	fmt.Println("  ./bin/scraper -input job.json -html saved-page.html")
}
