package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-ingest/internal/config"
	"github.com/jonathan/cv-ingest/internal/pipeline"
	"github.com/jonathan/cv-ingest/internal/store"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run the full CV ingestion pipeline end-to-end",
	Long: `Orchestrates the entire ingestion process: extraction -> parsing -> entity resolution -> normalization -> entity creation -> remapping -> validation.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runIngestionCmd,
}

var (
	runConfigPath   string
	runFile         string
	runOutputFile   string
	runUseLLM       bool
	runProvider     string
	runAPIKey       string
	runFallback     bool
	runConfidence   float64
	runMatch        float64
	runSkipCreation bool
	runPDFBackend   string
	runVerbose      bool
	runDatabaseURL  string
)

func init() {
	// Config file flag (processed first)
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	runCommand.Flags().StringVarP(&runFile, "file", "f", "", "Path to the CV file (pdf, docx, or txt)")
	runCommand.Flags().StringVarP(&runOutputFile, "out", "o", "", "Path to write the result JSON (default: stdout)")
	runCommand.Flags().BoolVar(&runUseLLM, "use-llm", false, "Consult the LLM parser when deterministic confidence is low")
	runCommand.Flags().StringVar(&runProvider, "llm-provider", "", "LLM provider: gemini, openai, or anthropic")
	runCommand.Flags().StringVar(&runAPIKey, "api-key", "", "Provider API key (optional, defaults to the provider's env var)")
	runCommand.Flags().BoolVar(&runFallback, "fallback", true, "Fall back to the deterministic result when the LLM fails")
	runCommand.Flags().Float64Var(&runConfidence, "confidence-threshold", 0, "Deterministic confidence below which the LLM is consulted")
	runCommand.Flags().Float64Var(&runMatch, "match-threshold", 0, "Fuzzy similarity required for a catalog match")
	runCommand.Flags().BoolVar(&runSkipCreation, "skip-creation", false, "Never write new entities to the catalog (dry run)")
	runCommand.Flags().StringVar(&runPDFBackend, "pdf-backend", "", "PDF text backend: structure (pure Go, default) or render (MuPDF)")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed debug information")

	// Database URL for the reference catalog
	runCommand.Flags().StringVar(&runDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(runCommand)
}

func runIngestionCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadMergedConfig(cmd)
	if err != nil {
		return err
	}

	if runFile == "" {
		return fmt.Errorf("--file is required")
	}

	opts := pipeline.RunOptions{
		FilePath:                runFile,
		UseLLM:                  cfg.UseLLM,
		LLMProvider:             cfg.LLMProvider,
		APIKey:                  cfg.APIKey,
		ConfidenceThreshold:     cfg.ConfidenceThreshold,
		FallbackToDeterministic: cfg.FallbackToDeterministic,
		MatchThreshold:          cfg.MatchThreshold,
		SkipEntityCreation:      runSkipCreation,
		PDFBackend:              runPDFBackend,
		Verbose:                 cfg.DebugMode,
		Out:                     os.Stdout,
	}

	// The catalog is optional: without a database the CV is still
	// extracted and parsed, just with every field unresolved.
	if cfg.DatabaseURL != "" {
		pg, err := store.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to catalog database: %w", err)
		}
		defer pg.Close()
		opts.Store = pg
	} else if cfg.DebugMode {
		fmt.Println("No database configured; running without catalog resolution")
	}

	result, err := pipeline.Run(ctx, opts)
	if err != nil {
		return err
	}

	return writeResultJSON(result, runOutputFile)
}

// loadMergedConfig folds the config file, explicit flags, and the
// environment into one Config, in that priority order (flags win).
func loadMergedConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if runConfigPath != "" {
		loaded, err := config.LoadConfig(runConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	// Only override if the flag was explicitly set
	if cmd.Flags().Changed("use-llm") {
		cfg.UseLLM = runUseLLM
	}
	if cmd.Flags().Changed("llm-provider") {
		cfg.LLMProvider = runProvider
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = runAPIKey
	}
	if cmd.Flags().Changed("fallback") {
		cfg.FallbackToDeterministic = runFallback
	}
	if cmd.Flags().Changed("confidence-threshold") {
		cfg.ConfidenceThreshold = runConfidence
	}
	if cmd.Flags().Changed("match-threshold") {
		cfg.MatchThreshold = runMatch
	}
	if cmd.Flags().Changed("verbose") {
		cfg.DebugMode = runVerbose
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = runDatabaseURL
	}

	cfg.LoadEnv()
	cfg = cfg.MergeWithDefaults(config.Config{})
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func writeResultJSON(result any, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Printf("Result written to %s\n", path)
	return nil
}
