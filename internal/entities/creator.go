// Package entities turns unmapped free-text mentions into new catalog
// records and remaps form data against the refreshed catalog.
package entities

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/jonathan/cv-ingest/internal/catalog"
	"github.com/jonathan/cv-ingest/internal/store"
	"github.com/jonathan/cv-ingest/internal/types"
)

const (
	// createMatchThreshold guards creation of categories, degrees, and
	// institutions: a candidate this close to an existing record is a
	// duplicate, not a new entity.
	createMatchThreshold = 0.85

	// skillCreateThreshold is stricter. Skill names are short, so loose
	// matching merges distinct skills ("Java" / "JavaScript" territory).
	skillCreateThreshold = 0.90

	// fallbackCategoryName must already exist in the catalog before any
	// skill can be created under it.
	fallbackCategoryName = "Other"

	placeholderLocation = "Unknown"
	placeholderDivision = "Dhaka"
)

// Creator inserts catalog records for unmapped mentions. It checks
// each candidate against a catalog snapshot plus everything created
// earlier in the same batch, so re-running creation for the same CV
// never duplicates records.
type Creator struct {
	store   store.DocumentStore
	catalog *store.Catalog
}

// NewCreator builds a Creator over the given store and a catalog
// snapshot taken before creation started.
func NewCreator(s store.DocumentStore, snapshot *store.Catalog) *Creator {
	if snapshot == nil {
		snapshot = &store.Catalog{}
	}
	return &Creator{store: s, catalog: snapshot}
}

// CreateUnmapped inserts records for every unmapped mention, in
// dependency order: skill categories first, then degrees, then
// institutions, then skills. Skills go last so a skill whose category
// was created in the same batch lands in that category; mentions with
// no usable category fall back to "Other", which must already be in
// the catalog — its absence is the only error that aborts the batch.
// A failed individual insert is recorded in Failed and the batch
// continues.
func (c *Creator) CreateUnmapped(ctx context.Context, unmapped types.UnmappedFields) (*types.EntityCreationResult, error) {
	result := &types.EntityCreationResult{
		SkillCategoryIDs: make(map[string]string),
		DegreeIDs:        make(map[string]string),
		InstitutionIDs:   make(map[string]string),
		SkillIDs:         make(map[string]string),
	}

	c.createCategories(ctx, unmapped.SkillCategories, result)
	c.createDegrees(ctx, unmapped.Degrees, result)
	c.createInstitutions(ctx, unmapped.Institutions, result)
	if err := c.createSkills(ctx, unmapped.Skills, result); err != nil {
		return result, err
	}
	return result, nil
}

func (c *Creator) createCategories(ctx context.Context, names []string, result *types.EntityCreationResult) {
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if id, ok := result.SkillCategoryIDs[name]; ok && id != "" {
			continue
		}
		if existing := c.findCategory(name, createMatchThreshold); existing != nil {
			result.SkillCategoryIDs[name] = existing.ID
			continue
		}
		category := types.SkillCategory{Name: name}
		id, err := c.store.InsertSkillCategory(ctx, category)
		if err != nil {
			result.Failed = append(result.Failed, fmt.Sprintf("SkillCategory: %s", name))
			continue
		}
		category.ID = id
		c.catalog.Categories = append(c.catalog.Categories, category)
		result.SkillCategoryIDs[name] = id
		result.CreatedCategories++
	}
}

func (c *Creator) createDegrees(ctx context.Context, names []string, result *types.EntityCreationResult) {
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if id, ok := result.DegreeIDs[name]; ok && id != "" {
			continue
		}
		if existing := c.findDegree(name, createMatchThreshold); existing != nil {
			result.DegreeIDs[name] = existing.ID
			continue
		}
		degree := types.Degree{
			Name:      name,
			ShortName: degreeShortName(name),
			Level:     inferDegreeLevel(name),
			IsActive:  true,
		}
		id, err := c.store.InsertDegree(ctx, degree)
		if err != nil {
			result.Failed = append(result.Failed, fmt.Sprintf("Degree: %s", name))
			continue
		}
		degree.ID = id
		c.catalog.Degrees = append(c.catalog.Degrees, degree)
		result.DegreeIDs[name] = id
		result.CreatedDegrees++
	}
}

func (c *Creator) createInstitutions(ctx context.Context, names []string, result *types.EntityCreationResult) {
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if id, ok := result.InstitutionIDs[name]; ok && id != "" {
			continue
		}
		if existing := c.findInstitution(name, createMatchThreshold); existing != nil {
			result.InstitutionIDs[name] = existing.ID
			continue
		}
		institution := types.Institution{
			Name:     name,
			Type:     inferInstitutionType(name),
			Location: placeholderLocation,
			Division: placeholderDivision,
			Verified: true,
			IsActive: true,
		}
		id, err := c.store.InsertInstitution(ctx, institution)
		if err != nil {
			result.Failed = append(result.Failed, fmt.Sprintf("Institution: %s", name))
			continue
		}
		institution.ID = id
		c.catalog.Institutions = append(c.catalog.Institutions, institution)
		result.InstitutionIDs[name] = id
		result.CreatedInstitutions++
	}
}

func (c *Creator) createSkills(ctx context.Context, mentions []types.UnmappedSkill, result *types.EntityCreationResult) error {
	if len(mentions) == 0 {
		return nil
	}
	fallback := c.findCategory(fallbackCategoryName, 1.0)
	if fallback == nil {
		return &MissingCategoryError{Name: fallbackCategoryName}
	}

	for _, mention := range mentions {
		name := strings.TrimSpace(mention.Name)
		if name == "" {
			continue
		}
		if id, ok := result.SkillIDs[name]; ok && id != "" {
			continue
		}
		if existing := c.findSkill(name, skillCreateThreshold); existing != nil {
			result.SkillIDs[name] = existing.ID
			continue
		}

		// The category created earlier in this batch (or already in the
		// catalog) wins over the fallback bucket.
		categoryID := fallback.ID
		if mention.Category != "" {
			if category := c.findCategory(mention.Category, createMatchThreshold); category != nil {
				categoryID = category.ID
			}
		}
		skill := types.Skill{Name: name, CategoryID: categoryID}
		id, err := c.store.InsertSkill(ctx, skill)
		if err != nil {
			result.Failed = append(result.Failed, fmt.Sprintf("Skill: %s", name))
			continue
		}
		skill.ID = id
		c.catalog.Skills = append(c.catalog.Skills, skill)
		result.SkillIDs[name] = id
		result.CreatedSkills++
	}
	return nil
}

func (c *Creator) findCategory(name string, threshold float64) *types.SkillCategory {
	for i := range c.catalog.Categories {
		if catalog.Similarity(name, c.catalog.Categories[i].Name) >= threshold {
			return &c.catalog.Categories[i]
		}
	}
	return nil
}

func (c *Creator) findDegree(name string, threshold float64) *types.Degree {
	for i := range c.catalog.Degrees {
		d := &c.catalog.Degrees[i]
		if strings.EqualFold(name, d.ShortName) {
			return d
		}
		if catalog.Similarity(name, d.Name) >= threshold {
			return d
		}
	}
	return nil
}

func (c *Creator) findInstitution(name string, threshold float64) *types.Institution {
	for i := range c.catalog.Institutions {
		if catalog.Similarity(name, c.catalog.Institutions[i].Name) >= threshold {
			return &c.catalog.Institutions[i]
		}
	}
	return nil
}

func (c *Creator) findSkill(name string, threshold float64) *types.Skill {
	for i := range c.catalog.Skills {
		if catalog.Similarity(name, c.catalog.Skills[i].Name) >= threshold {
			return &c.catalog.Skills[i]
		}
	}
	return nil
}

// inferDegreeLevel picks a catalog level from keywords in the degree
// name. Unknown names default to Undergraduate, the most common case
// in practice.
func inferDegreeLevel(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "phd") || strings.Contains(lower, "ph.d") ||
		strings.Contains(lower, "doctor"):
		return types.DegreeLevelPostgraduate
	case strings.Contains(lower, "master") || strings.Contains(lower, "msc") ||
		strings.Contains(lower, "m.sc") || strings.Contains(lower, "mba"):
		return types.DegreeLevelGraduate
	case strings.Contains(lower, "bachelor") || strings.Contains(lower, "bsc") ||
		strings.Contains(lower, "b.sc"):
		return types.DegreeLevelUndergraduate
	case strings.Contains(lower, "diploma"):
		return types.DegreeLevelDiploma
	case strings.Contains(lower, "certificate"):
		return types.DegreeLevelCertificate
	default:
		return types.DegreeLevelUndergraduate
	}
}

// degreeShortName derives an abbreviation: a parenthetical wins
// ("Bachelor of Science (BSc)" -> "BSc"), otherwise the initials of
// the capitalized words ("Master of Business Administration" -> "MBA").
func degreeShortName(name string) string {
	if open := strings.Index(name, "("); open != -1 {
		if end := strings.Index(name[open:], ")"); end != -1 {
			if inner := strings.TrimSpace(name[open+1 : open+end]); inner != "" {
				return inner
			}
		}
	}

	var b strings.Builder
	for _, word := range strings.Fields(name) {
		r := []rune(word)[0]
		if unicode.IsUpper(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	if b.Len() < 2 {
		return ""
	}
	return b.String()
}

func inferInstitutionType(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "college"):
		return types.InstitutionTypeCollege
	case strings.Contains(lower, "school"):
		return types.InstitutionTypeSchool
	case strings.Contains(lower, "institute"):
		return types.InstitutionTypeInstitute
	default:
		return types.InstitutionTypeUniversity
	}
}
