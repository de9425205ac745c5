package parsing

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/cv-ingest/internal/types"
)

// DefaultConfidenceThreshold is the aggregate confidence below which
// the hybrid parser escalates to the LLM.
const DefaultConfidenceThreshold = 0.75

// CVParser is the contract shared by the LLM parser and test doubles.
type CVParser interface {
	Parse(ctx context.Context, extracted *types.ExtractedText) (*types.ParsedCV, error)
}

// HybridOptions controls when the hybrid parser escalates to the LLM.
type HybridOptions struct {
	UseLLM                  bool
	ConfidenceThreshold     float64
	FallbackToDeterministic bool
}

// HybridParser runs the deterministic parser first and consults the
// LLM only when the deterministic result is weak. Deterministic output
// is cheap and reproducible; the model is a paid fallback, not the
// default path.
type HybridParser struct {
	deterministic *Parser
	llm           CVParser
	opts          HybridOptions
}

// NewHybridParser creates a hybrid parser. llm may be nil when
// opts.UseLLM is false.
func NewHybridParser(llm CVParser, opts HybridOptions) *HybridParser {
	if opts.ConfidenceThreshold <= 0 {
		opts.ConfidenceThreshold = DefaultConfidenceThreshold
	}
	return &HybridParser{
		deterministic: NewParser(),
		llm:           llm,
		opts:          opts,
	}
}

// Parse returns the deterministic result directly when it clears the
// confidence threshold (or the LLM is disabled). Otherwise the LLM
// result is merged over it, section by section.
func (p *HybridParser) Parse(ctx context.Context, extracted *types.ExtractedText) (*types.ParsedCV, error) {
	start := time.Now()

	det, err := p.deterministic.Parse(extracted)
	if err != nil {
		return nil, err
	}

	if !p.opts.UseLLM || p.llm == nil {
		return det, nil
	}
	if det.Metadata.TotalConfidence >= p.opts.ConfidenceThreshold {
		return det, nil
	}

	modelCV, err := p.llm.Parse(ctx, extracted)
	if err != nil {
		if p.opts.FallbackToDeterministic {
			det.Metadata.Warnings = append(det.Metadata.Warnings,
				fmt.Sprintf("LLM parse failed, using deterministic result: %v", err))
			return det, nil
		}
		return nil, err
	}

	merged := mergeParsedCVs(det, modelCV)
	merged.Metadata = types.ParseMetadata{
		Method:          types.MethodHybrid,
		DurationMS:      time.Since(start).Milliseconds(),
		TotalConfidence: merged.AggregateConfidence(),
		Warnings:        append(det.Metadata.Warnings, modelCV.Metadata.Warnings...),
		Errors:          append(det.Metadata.Errors, modelCV.Metadata.Errors...),
	}
	return merged, nil
}

// mergeParsedCVs overlays the LLM result on the deterministic one. A
// non-empty LLM section replaces its deterministic counterpart; empty
// LLM sections keep whatever the heuristics found. Personal info merges
// field-wise, keeping deterministic values where present since the
// regex extractors do not hallucinate.
func mergeParsedCVs(det, model *types.ParsedCV) *types.ParsedCV {
	merged := &types.ParsedCV{
		PersonalInfo:   mergePersonalInfo(det.PersonalInfo, model.PersonalInfo),
		Education:      det.Education,
		Certifications: det.Certifications,
		Courses:        det.Courses,
		Skills:         det.Skills,
		WorkExperience: det.WorkExperience,
		Projects:       det.Projects,
	}
	if len(model.Education) > 0 {
		merged.Education = model.Education
	}
	if len(model.Certifications) > 0 {
		merged.Certifications = model.Certifications
	}
	if len(model.Courses) > 0 {
		merged.Courses = model.Courses
	}
	if len(model.Skills.Categories) > 0 || len(model.Skills.Raw) > 0 {
		merged.Skills = model.Skills
	}
	if len(model.WorkExperience) > 0 {
		merged.WorkExperience = model.WorkExperience
	}
	if len(model.Projects) > 0 {
		merged.Projects = model.Projects
	}
	return merged
}

func mergePersonalInfo(det, llm types.PersonalInfo) types.PersonalInfo {
	pick := func(primary, fallback string) string {
		if primary != "" {
			return primary
		}
		return fallback
	}
	return types.PersonalInfo{
		Name:        pick(det.Name, llm.Name),
		Email:       pick(det.Email, llm.Email),
		Phone:       pick(det.Phone, llm.Phone),
		Summary:     pick(det.Summary, llm.Summary),
		Location:    pick(det.Location, llm.Location),
		Nationality: pick(det.Nationality, llm.Nationality),
		LinkedIn:    pick(det.LinkedIn, llm.LinkedIn),
		GitHub:      pick(det.GitHub, llm.GitHub),
	}
}
