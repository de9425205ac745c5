package pipeline

import "fmt"

// Ingestion stage names used in IngestionError and progress events
const (
	StageExtraction = "extraction"
	StageParsing    = "parsing"
	StageCatalog    = "catalog"
	StageNormalize  = "normalization"
	StageCreation   = "entity_creation"
	StageRemap      = "remapping"
	StageValidation = "validation"
)

// IngestionError wraps a stage failure that aborts the whole run
type IngestionError struct {
	Stage string
	Cause error
}

func (e *IngestionError) Error() string {
	return fmt.Sprintf("ingestion failed at %s: %v", e.Stage, e.Cause)
}

func (e *IngestionError) Unwrap() error {
	return e.Cause
}
