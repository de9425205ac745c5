package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-ingest/internal/extraction"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract plain text and sections from a CV file",
	Long:  "Extract plain text from a pdf, docx, or txt CV file, detect section headings, and print the result as JSON. No parsing or catalog access happens.",
	RunE:  runExtract,
}

var (
	extractInputFile  string
	extractOutputFile string
	extractPDFBackend string
)

func init() {
	extractCmd.Flags().StringVarP(&extractInputFile, "file", "f", "", "Path to the CV file (required)")
	extractCmd.Flags().StringVarP(&extractOutputFile, "out", "o", "", "Path to write the extraction JSON (default: stdout)")
	extractCmd.Flags().StringVar(&extractPDFBackend, "pdf-backend", "", "PDF text backend: structure (pure Go, default) or render (MuPDF)")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(_ *cobra.Command, _ []string) error {
	if extractInputFile == "" {
		return fmt.Errorf("--file is required")
	}

	backend, err := extraction.BackendByName(extractPDFBackend)
	if err != nil {
		return err
	}

	extracted, err := extraction.NewExtractor(backend).ExtractFile(extractInputFile)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	return writeResultJSON(extracted, extractOutputFile)
}
