package parsing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-ingest/internal/types"
)

// spyParser records calls and returns a canned result.
type spyParser struct {
	calls  int
	result *types.ParsedCV
	err    error
}

func (s *spyParser) Parse(_ context.Context, _ *types.ExtractedText) (*types.ParsedCV, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

const confidentResume = "John Doe\njohn@x.com\n\nEducation\nBachelor of Science\nXYZ University\n2020"

func TestHybridParse_HighConfidenceSkipsLLM(t *testing.T) {
	spy := &spyParser{}
	parser := NewHybridParser(spy, HybridOptions{
		UseLLM:              true,
		ConfidenceThreshold: 0.5,
	})

	cv, err := parser.Parse(t.Context(), buildExtracted(confidentResume))
	require.NoError(t, err)

	assert.Zero(t, spy.calls, "LLM must not be consulted above the threshold")
	assert.Equal(t, types.MethodDeterministic, cv.Metadata.Method)
}

func TestHybridParse_LLMDisabled(t *testing.T) {
	spy := &spyParser{}
	parser := NewHybridParser(spy, HybridOptions{UseLLM: false})

	cv, err := parser.Parse(t.Context(), buildExtracted("sparse text"))
	require.NoError(t, err)

	assert.Zero(t, spy.calls)
	assert.Equal(t, types.MethodDeterministic, cv.Metadata.Method)
}

func TestHybridParse_LowConfidenceMergesLLM(t *testing.T) {
	spy := &spyParser{
		result: &types.ParsedCV{
			PersonalInfo: types.PersonalInfo{Name: "John Doe", Location: "Dhaka"},
			Education: []types.EducationEntry{
				{Degree: "BSc in CS", Institution: "XYZ University", Confidence: LLMConfidenceStructured},
			},
		},
	}
	parser := NewHybridParser(spy, HybridOptions{
		UseLLM:              true,
		ConfidenceThreshold: 0.9,
	})

	// Sparse text: the deterministic pass finds nothing structured.
	cv, err := parser.Parse(t.Context(), buildExtracted("unstructured blob of text"))
	require.NoError(t, err)

	assert.Equal(t, 1, spy.calls)
	assert.Equal(t, types.MethodHybrid, cv.Metadata.Method)
	require.Len(t, cv.Education, 1)
	assert.Equal(t, "BSc in CS", cv.Education[0].Degree)
	assert.Equal(t, "Dhaka", cv.PersonalInfo.Location)
	assert.InDelta(t, LLMConfidenceStructured, cv.Metadata.TotalConfidence, 1e-9)
}

func TestHybridParse_LLMFailureFallsBack(t *testing.T) {
	spy := &spyParser{err: errors.New("rate limited")}
	parser := NewHybridParser(spy, HybridOptions{
		UseLLM:                  true,
		ConfidenceThreshold:     0.9,
		FallbackToDeterministic: true,
	})

	cv, err := parser.Parse(t.Context(), buildExtracted(confidentResume))
	require.NoError(t, err)

	assert.Equal(t, 1, spy.calls)
	assert.Equal(t, types.MethodDeterministic, cv.Metadata.Method)
	require.NotEmpty(t, cv.Metadata.Warnings)
	assert.Contains(t, cv.Metadata.Warnings[0], "rate limited")
}

func TestHybridParse_LLMFailurePropagates(t *testing.T) {
	spy := &spyParser{err: errors.New("rate limited")}
	parser := NewHybridParser(spy, HybridOptions{
		UseLLM:              true,
		ConfidenceThreshold: 0.9,
	})

	_, err := parser.Parse(t.Context(), buildExtracted(confidentResume))
	assert.ErrorContains(t, err, "rate limited")
}

func TestMergeParsedCVs_EmptyLLMSectionsKeepDeterministic(t *testing.T) {
	det := &types.ParsedCV{
		PersonalInfo: types.PersonalInfo{Name: "John Doe", Email: "john@x.com"},
		WorkExperience: []types.WorkExperienceEntry{
			{Position: "Engineer", Company: "Acme Ltd", Confidence: ConfidenceWorkExperience},
		},
	}
	model := &types.ParsedCV{
		PersonalInfo: types.PersonalInfo{Name: "J. Doe", Phone: "555-1234"},
	}

	merged := mergeParsedCVs(det, model)

	// Deterministic values win field-wise; the model only fills gaps.
	assert.Equal(t, "John Doe", merged.PersonalInfo.Name)
	assert.Equal(t, "john@x.com", merged.PersonalInfo.Email)
	assert.Equal(t, "555-1234", merged.PersonalInfo.Phone)

	require.Len(t, merged.WorkExperience, 1)
	assert.Equal(t, "Acme Ltd", merged.WorkExperience[0].Company)
}
