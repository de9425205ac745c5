package parsing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-ingest/internal/llm"
	"github.com/jonathan/cv-ingest/internal/types"
)

// stubClient returns a fixed response for every generation call.
type stubClient struct {
	response string
	err      error
}

func (c *stubClient) GenerateContent(context.Context, string, llm.ModelTier) (string, error) {
	return c.response, c.err
}

func (c *stubClient) GenerateJSON(context.Context, string, llm.ModelTier) (string, error) {
	return llm.CleanJSONBlock(c.response), c.err
}

func (c *stubClient) GetModel(llm.ModelTier) string { return "stub-model" }
func (c *stubClient) Close() error                  { return nil }

func TestLLMParser_ValidResponse(t *testing.T) {
	client := &stubClient{response: `{
		"personal_info": {"name": "John Doe", "email": "john@x.com"},
		"education": [{"degree": "BSc in CS", "institution": "XYZ University", "graduation_year": 2020}],
		"skills": [
			{"category": "Languages", "skills": ["Go", "Python"]},
			{"category": "", "skills": ["Teamwork"]}
		],
		"work_experience": [{"position": "Engineer", "company": "Acme Ltd", "end_date": "Present"}]
	}`}

	cv, err := NewLLMParser(client).Parse(t.Context(), buildExtracted("irrelevant"))
	require.NoError(t, err)

	assert.Equal(t, types.MethodLLM, cv.Metadata.Method)
	assert.Equal(t, "John Doe", cv.PersonalInfo.Name)

	require.Len(t, cv.Education, 1)
	assert.InDelta(t, LLMConfidenceStructured, cv.Education[0].Confidence, 1e-9)

	require.Len(t, cv.Skills.Categories, 1)
	assert.Equal(t, "Languages", cv.Skills.Categories[0].Name)
	require.Len(t, cv.Skills.Raw, 1)
	assert.Equal(t, "Teamwork", cv.Skills.Raw[0].Name)
	assert.InDelta(t, LLMConfidenceDefault, cv.Skills.Raw[0].Confidence, 1e-9)

	require.Len(t, cv.WorkExperience, 1)
	assert.True(t, cv.WorkExperience[0].IsCurrentRole, "Present end date implies a current role")
}

func TestLLMParser_FencedResponseAccepted(t *testing.T) {
	client := &stubClient{response: "```json\n{\"personal_info\": {\"name\": \"Jane\"}}\n```"}

	cv, err := NewLLMParser(client).Parse(t.Context(), buildExtracted("irrelevant"))
	require.NoError(t, err)
	assert.Equal(t, "Jane", cv.PersonalInfo.Name)
}

func TestLLMParser_SchemaViolationRejected(t *testing.T) {
	// graduation_year must be an integer.
	client := &stubClient{response: `{
		"personal_info": {"name": "John"},
		"education": [{"degree": "BSc", "institution": "XYZ", "graduation_year": "2020"}]
	}`}

	_, err := NewLLMParser(client).Parse(t.Context(), buildExtracted("irrelevant"))

	var malformed *MalformedResponseError
	assert.ErrorAs(t, err, &malformed)
}

func TestLLMParser_NonJSONRejected(t *testing.T) {
	client := &stubClient{response: "I could not parse this resume, sorry."}

	_, err := NewLLMParser(client).Parse(t.Context(), buildExtracted("irrelevant"))

	var malformed *MalformedResponseError
	assert.ErrorAs(t, err, &malformed)
}

func TestLLMParser_ProviderErrorPassedThrough(t *testing.T) {
	client := &stubClient{err: &llm.ProviderError{Provider: llm.ProviderGemini, Message: "quota exceeded"}}

	_, err := NewLLMParser(client).Parse(t.Context(), buildExtracted("irrelevant"))

	var provider *llm.ProviderError
	assert.ErrorAs(t, err, &provider)
}
