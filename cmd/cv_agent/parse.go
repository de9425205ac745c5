package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-ingest/internal/config"
	"github.com/jonathan/cv-ingest/internal/extraction"
	"github.com/jonathan/cv-ingest/internal/llm"
	"github.com/jonathan/cv-ingest/internal/parsing"
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse a CV file into structured records",
	Long:  "Extract and parse a CV file into a structured ParsedCV JSON with per-record confidence scores. Entity resolution and the catalog are not involved.",
	RunE:  runParse,
}

var (
	parseInputFile  string
	parseOutputFile string
	parseUseLLM     bool
	parseProvider   string
	parseAPIKey     string
	parseConfidence float64
)

func init() {
	parseCmd.Flags().StringVarP(&parseInputFile, "file", "f", "", "Path to the CV file (required)")
	parseCmd.Flags().StringVarP(&parseOutputFile, "out", "o", "", "Path to write the ParsedCV JSON (default: stdout)")
	parseCmd.Flags().BoolVar(&parseUseLLM, "use-llm", false, "Consult the LLM parser when deterministic confidence is low")
	parseCmd.Flags().StringVar(&parseProvider, "llm-provider", config.DefaultLLMProvider, "LLM provider: gemini, openai, or anthropic")
	parseCmd.Flags().StringVar(&parseAPIKey, "api-key", "", "Provider API key (optional, defaults to the provider's env var)")
	parseCmd.Flags().Float64Var(&parseConfidence, "confidence-threshold", 0, "Deterministic confidence below which the LLM is consulted")

	rootCmd.AddCommand(parseCmd)
}

func runParse(_ *cobra.Command, _ []string) error {
	if parseInputFile == "" {
		return fmt.Errorf("--file is required")
	}
	ctx := context.Background()

	extracted, err := extraction.DefaultExtractor().ExtractFile(parseInputFile)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	var llmParser parsing.CVParser
	if parseUseLLM {
		cfg := config.Config{UseLLM: true, LLMProvider: parseProvider, APIKey: parseAPIKey}
		cfg.LoadEnv()
		if cfg.APIKey == "" {
			return fmt.Errorf("--use-llm requires an API key (flag or provider env var)")
		}
		client, err := llm.NewClient(ctx, llm.DefaultConfigFor(llm.Provider(cfg.LLMProvider)), cfg.APIKey)
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()
		llmParser = parsing.NewLLMParser(client)
	}

	parser := parsing.NewHybridParser(llmParser, parsing.HybridOptions{
		UseLLM:                  parseUseLLM,
		ConfidenceThreshold:     parseConfidence,
		FallbackToDeterministic: true,
	})
	cv, err := parser.Parse(ctx, extracted)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	return writeResultJSON(cv, parseOutputFile)
}
