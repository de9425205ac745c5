package parsing

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jonathan/cv-ingest/internal/llm"
	"github.com/jonathan/cv-ingest/internal/prompts"
	"github.com/jonathan/cv-ingest/internal/schemas"
	"github.com/jonathan/cv-ingest/internal/types"
)

// LLMParser parses a whole CV in one model call. The response is
// validated against the embedded ParsedCV schema before decoding, so a
// drifting model cannot push malformed records into the pipeline.
type LLMParser struct {
	client llm.Client
	tier   llm.ModelTier
}

// NewLLMParser creates an LLM-backed parser using the standard tier.
func NewLLMParser(client llm.Client) *LLMParser {
	return &LLMParser{client: client, tier: llm.TierStandard}
}

// llmCV is the wire format the model is prompted to produce. It mirrors
// ParsedCV without confidences or metadata; those are assigned here.
type llmCV struct {
	PersonalInfo types.PersonalInfo `json:"personal_info"`
	Education    []struct {
		Degree         string `json:"degree"`
		Institution    string `json:"institution"`
		GraduationYear int    `json:"graduation_year"`
		Grade          string `json:"grade"`
	} `json:"education"`
	Certifications []struct {
		Name   string `json:"name"`
		Issuer string `json:"issuer"`
		Year   string `json:"year"`
	} `json:"certifications"`
	Courses []struct {
		Name     string `json:"name"`
		Provider string `json:"provider"`
		Year     string `json:"year"`
	} `json:"courses"`
	Skills []struct {
		Category string   `json:"category"`
		Skills   []string `json:"skills"`
	} `json:"skills"`
	WorkExperience []struct {
		Position         string   `json:"position"`
		Company          string   `json:"company"`
		StartDate        string   `json:"start_date"`
		EndDate          string   `json:"end_date"`
		IsCurrentRole    bool     `json:"is_current_role"`
		Responsibilities []string `json:"responsibilities"`
		Technologies     []string `json:"technologies"`
	} `json:"work_experience"`
	Projects []struct {
		Title        string   `json:"title"`
		Description  string   `json:"description"`
		Technologies []string `json:"technologies"`
		StartDate    string   `json:"start_date"`
		EndDate      string   `json:"end_date"`
		URL          string   `json:"url"`
		Repository   string   `json:"repository"`
	} `json:"projects"`
}

// Parse sends the full extracted text to the model and decodes the
// structured response.
func (p *LLMParser) Parse(ctx context.Context, extracted *types.ExtractedText) (*types.ParsedCV, error) {
	start := time.Now()

	template := prompts.MustGet("parsing.json", "parse-cv")
	prompt := prompts.Format(template, map[string]string{
		"CVText": extracted.FullText,
	})

	raw, err := p.client.GenerateJSON(ctx, prompt, p.tier)
	if err != nil {
		return nil, err
	}

	if err := schemas.ValidateParsedCV(raw); err != nil {
		return nil, &MalformedResponseError{Message: "schema validation failed", Cause: err}
	}

	var wire llmCV
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		return nil, &MalformedResponseError{Message: "invalid JSON", Cause: err}
	}

	cv := wire.toParsedCV()
	cv.Metadata = types.ParseMetadata{
		Method:          types.MethodLLM,
		DurationMS:      time.Since(start).Milliseconds(),
		TotalConfidence: cv.AggregateConfidence(),
	}
	return cv, nil
}

func (w *llmCV) toParsedCV() *types.ParsedCV {
	cv := &types.ParsedCV{PersonalInfo: w.PersonalInfo}

	for _, e := range w.Education {
		cv.Education = append(cv.Education, types.EducationEntry{
			Degree:         e.Degree,
			Institution:    e.Institution,
			GraduationYear: e.GraduationYear,
			Grade:          e.Grade,
			Confidence:     LLMConfidenceStructured,
		})
	}
	for _, c := range w.Certifications {
		cv.Certifications = append(cv.Certifications, types.CertificationEntry{
			Name:       c.Name,
			Issuer:     c.Issuer,
			Year:       c.Year,
			Confidence: LLMConfidenceStructured,
		})
	}
	for _, c := range w.Courses {
		cv.Courses = append(cv.Courses, types.CourseEntry{
			Name:       c.Name,
			Provider:   c.Provider,
			Year:       c.Year,
			Confidence: LLMConfidenceDefault,
		})
	}
	for _, group := range w.Skills {
		mentions := make([]types.SkillMention, 0, len(group.Skills))
		for _, name := range group.Skills {
			mentions = append(mentions, types.SkillMention{
				Name:       name,
				Confidence: LLMConfidenceDefault,
			})
		}
		if group.Category == "" {
			cv.Skills.Raw = append(cv.Skills.Raw, mentions...)
			continue
		}
		cv.Skills.Categories = append(cv.Skills.Categories, types.SkillCategoryGroup{
			Name:   group.Category,
			Skills: mentions,
		})
	}
	for _, j := range w.WorkExperience {
		cv.WorkExperience = append(cv.WorkExperience, types.WorkExperienceEntry{
			Position:         j.Position,
			Company:          j.Company,
			StartDate:        j.StartDate,
			EndDate:          j.EndDate,
			IsCurrentRole:    j.IsCurrentRole || isOngoing(j.EndDate),
			Responsibilities: j.Responsibilities,
			Technologies:     j.Technologies,
			Confidence:       LLMConfidenceStructured,
		})
	}
	for _, proj := range w.Projects {
		cv.Projects = append(cv.Projects, types.ProjectEntry{
			Title:        proj.Title,
			Description:  proj.Description,
			Technologies: proj.Technologies,
			StartDate:    proj.StartDate,
			EndDate:      proj.EndDate,
			URL:          proj.URL,
			Repository:   proj.Repository,
			Confidence:   LLMConfidenceDefault,
		})
	}
	return cv
}
