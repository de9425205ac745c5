// Package pipeline provides the high-level orchestration for the CV
// ingestion process: extract, parse, resolve, normalize, create
// missing catalog entities, remap, and validate.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jonathan/cv-ingest/internal/catalog"
	"github.com/jonathan/cv-ingest/internal/entities"
	"github.com/jonathan/cv-ingest/internal/extraction"
	"github.com/jonathan/cv-ingest/internal/llm"
	"github.com/jonathan/cv-ingest/internal/normalize"
	"github.com/jonathan/cv-ingest/internal/observability"
	"github.com/jonathan/cv-ingest/internal/parsing"
	"github.com/jonathan/cv-ingest/internal/store"
	"github.com/jonathan/cv-ingest/internal/types"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// RunOptions holds configuration for running the ingestion pipeline
type RunOptions struct {
	FilePath string

	// PDFBackend names the PDF text backend: "structure" (pure Go,
	// the default) or "render" (MuPDF).
	PDFBackend string

	// LLM behavior
	UseLLM                  bool
	LLMProvider             string
	APIKey                  string
	ConfidenceThreshold     float64
	FallbackToDeterministic bool

	// MatchThreshold tunes fuzzy entity resolution; zero means the
	// resolver default.
	MatchThreshold float64

	// SkipEntityCreation resolves and normalizes but never writes to
	// the catalog. Useful for dry runs.
	SkipEntityCreation bool

	Verbose bool
	Out     io.Writer // verbose output target; nil discards

	// Store gives the pipeline its catalog. When nil the CV is parsed
	// and normalized with every field unresolved, and entity creation
	// and remapping are skipped.
	Store store.DocumentStore

	// LLMParser overrides the provider-built parser. Tests inject a
	// double here; the CLI leaves it nil.
	LLMParser parsing.CVParser

	OnProgress ProgressCallback
}

// Result is the outcome of one ingestion run, consumed by the
// form-population layer.
type Result struct {
	Success    bool                        `json:"success"`
	Extracted  *types.ExtractedText        `json:"extracted,omitempty"`
	ParsedCV   *types.ParsedCV             `json:"parsed_cv,omitempty"`
	FormData   types.PortfolioFormData     `json:"form_data"`
	Unmapped   types.UnmappedFields        `json:"unmapped_fields"`
	Creation   *types.EntityCreationResult `json:"entity_creation,omitempty"`
	Validation *ValidationReport           `json:"validation,omitempty"`
	Warnings   []string                    `json:"warnings,omitempty"`
	DurationMS int64                       `json:"duration_ms"`
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *RunOptions, stage, message string, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{Stage: stage, Message: message, Content: content})
	}
}

// Run executes the full ingestion pipeline for one CV file. Extraction
// and parsing failures abort the run; entity-creation failures are
// per-item and recorded in the result instead.
func Run(ctx context.Context, opts RunOptions) (*Result, error) {
	started := time.Now()
	result := &Result{}
	printer := observability.NewPrinter(verboseWriter(opts))

	// Stage 1: text extraction
	backend, err := extraction.BackendByName(opts.PDFBackend)
	if err != nil {
		return result, &IngestionError{Stage: StageExtraction, Cause: err}
	}
	extracted, err := extraction.NewExtractor(backend).ExtractFile(opts.FilePath)
	if err != nil {
		return result, &IngestionError{Stage: StageExtraction, Cause: err}
	}
	result.Extracted = extracted
	if opts.Verbose {
		printer.PrintExtractedText(extracted)
	}
	emitProgress(&opts, StageExtraction,
		fmt.Sprintf("extracted %d words in %d sections", extracted.Metadata.WordCount, len(extracted.Sections)), nil)

	// Stage 2: parsing (deterministic, optionally merged with LLM)
	parser, err := buildParser(ctx, &opts)
	if err != nil {
		return result, &IngestionError{Stage: StageParsing, Cause: err}
	}
	cv, err := parser.Parse(ctx, extracted)
	if err != nil {
		return result, &IngestionError{Stage: StageParsing, Cause: err}
	}
	result.ParsedCV = cv
	if opts.Verbose {
		printer.PrintParsedCV(cv)
	}
	emitProgress(&opts, StageParsing,
		fmt.Sprintf("parsed CV via %s, confidence %.2f", cv.Metadata.Method, cv.Metadata.TotalConfidence), cv)

	// Stage 3: catalog load
	var resolver *catalog.Resolver
	var snapshot *store.Catalog
	if opts.Store != nil {
		snapshot, err = store.LoadAll(ctx, opts.Store)
		if err != nil {
			return result, &IngestionError{Stage: StageCatalog, Cause: err}
		}
		resolver = newResolver(opts.MatchThreshold, snapshot)
		emitProgress(&opts, StageCatalog, fmt.Sprintf("loaded catalog: %d degrees, %d institutions, %d skills, %d categories",
			len(snapshot.Degrees), len(snapshot.Institutions), len(snapshot.Skills), len(snapshot.Categories)), nil)
	}

	// Stage 4: normalization
	normalized := normalize.New(resolver).Normalize(cv)
	result.FormData = normalized.FormData
	result.Unmapped = normalized.Unmapped
	result.Warnings = append(result.Warnings, normalized.Warnings...)
	if opts.Verbose {
		printer.PrintUnmappedFields(normalized.Unmapped)
	}
	emitProgress(&opts, StageNormalize, "normalized CV into form data", nil)

	// Stages 5-6: entity creation and remapping, only with a store
	if opts.Store != nil && !opts.SkipEntityCreation && !normalized.Unmapped.IsEmpty() {
		creation, err := entities.NewCreator(opts.Store, snapshot).CreateUnmapped(ctx, normalized.Unmapped)
		result.Creation = creation
		if err != nil {
			return result, &IngestionError{Stage: StageCreation, Cause: err}
		}
		if opts.Verbose {
			printer.PrintCreationResult(creation)
		}
		emitProgress(&opts, StageCreation,
			fmt.Sprintf("created %d catalog entities (%d failed)", creation.TotalCreated(), len(creation.Failed)), creation)

		// Remap against the refreshed catalog so newly created records
		// resolve like any other.
		snapshot, err = store.LoadAll(ctx, opts.Store)
		if err != nil {
			return result, &IngestionError{Stage: StageRemap, Cause: err}
		}
		result.FormData, result.Unmapped = entities.NewRemapper(newResolver(opts.MatchThreshold, snapshot)).
			Remap(result.FormData, cv)
		emitProgress(&opts, StageRemap, "remapped form data against refreshed catalog", nil)
	}

	// Stage 7: validation
	result.Validation = ValidateResult(cv, result.Unmapped)
	emitProgress(&opts, StageValidation,
		fmt.Sprintf("completeness %d, quality %d", result.Validation.CompletenessScore, result.Validation.QualityScore), result.Validation)

	result.Success = true
	result.DurationMS = time.Since(started).Milliseconds()
	return result, nil
}

// buildParser assembles the hybrid parser from the options. Without
// LLM use the hybrid wrapper still runs, it just never consults the
// model.
func buildParser(ctx context.Context, opts *RunOptions) (parsing.CVParser, error) {
	hybridOpts := parsing.HybridOptions{
		UseLLM:                  opts.UseLLM,
		ConfidenceThreshold:     opts.ConfidenceThreshold,
		FallbackToDeterministic: opts.FallbackToDeterministic,
	}

	llmParser := opts.LLMParser
	if llmParser == nil && opts.UseLLM {
		client, err := llm.NewClient(ctx, llm.DefaultConfigFor(llm.Provider(opts.LLMProvider)), opts.APIKey)
		if err != nil {
			return nil, err
		}
		llmParser = parsing.NewLLMParser(client)
	}
	return parsing.NewHybridParser(llmParser, hybridOpts), nil
}

func newResolver(threshold float64, snapshot *store.Catalog) *catalog.Resolver {
	r := catalog.NewResolver(threshold)
	r.LoadEntities(snapshot.Degrees, snapshot.Institutions, snapshot.Skills, snapshot.Categories)
	return r
}

func verboseWriter(opts RunOptions) io.Writer {
	if opts.Out != nil {
		return opts.Out
	}
	return io.Discard
}
