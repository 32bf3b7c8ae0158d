// Package main provides the ranking preview formatter command-line tool.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"rankings/internal/formatter"
	"rankings/internal/models"
	"rankings/internal/normalizer"
)

func main() {
	input := flag.String("input", "", "Payload JSON to render, or a markdown file to re-align")
	output := flag.String("output", "", "Write the result here instead of stdout")
	help := flag.Bool("help", false, "Show usage information")

	flag.Parse()

	if *help || *input == "" {
		printUsage()

		if *help {
			os.Exit(0)
		}

		os.Exit(1)
	}

	content, err := os.ReadFile(*input)
	if err != nil {
		fatal(fmt.Errorf("failed to read %s: %w", *input, err))
	}

	var rendered string

	if strings.EqualFold(filepath.Ext(*input), ".md") {
		rendered = formatter.FormatMarkdown(string(content))
	} else {
		rendered, err = renderPayload(content)
		if err != nil {
			fatal(err)
		}
	}

	if *output == "" {
		fmt.Print(rendered)

		return
	}

	if err := os.WriteFile(*output, []byte(rendered), 0644); err != nil {
		fatal(fmt.Errorf("failed to write %s: %w", *output, err))
	}

	fmt.Printf("Wrote %s\n", *output)
}

func renderPayload(content []byte) (string, error) {
	var payload models.LeaderboardPayload
	if err := json.Unmarshal(content, &payload); err != nil {
		return "", fmt.Errorf("invalid payload JSON: %w", err)
	}

	if err := normalizer.NewValidator().Validate(&payload); err != nil {
		return "", fmt.Errorf("validation failed: %w", err)
	}

	return formatter.FormatPayload(&payload), nil
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[ERROR] %v\n", err)
	os.Exit(1)
}

func printUsage() {
	fmt.Println("Usage: ./bin/formatter -input <payload.json|table.md> [-output <file.md>]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  ./bin/formatter -input data/rankings/ft-mba-2025.json")
	fmt.Println("  ./bin/formatter -input data/rankings/ft-mba-2025.json -output preview.md")
}
