package entities

import (
	"strings"

	"github.com/jonathan/cv-ingest/internal/catalog"
	"github.com/jonathan/cv-ingest/internal/types"
)

// Remapper re-resolves the unresolved fields of form data against a
// resolver built over the refreshed catalog, after entity creation has
// run. Fields that were already resolved are left alone.
type Remapper struct {
	resolver *catalog.Resolver
}

// NewRemapper builds a Remapper over the given resolver
func NewRemapper(r *catalog.Resolver) *Remapper {
	return &Remapper{resolver: r}
}

// Remap walks every MappedField of the form data and retries
// resolution for the unresolved ones. The parsed CV supplies the
// original category names for skill sets whose own original text is
// missing, aligned by position first and by case-insensitive name as
// fallback. Anything still unresolved afterwards is reported so the
// caller can surface it for manual review.
func (r *Remapper) Remap(form types.PortfolioFormData, cv *types.ParsedCV) (types.PortfolioFormData, types.UnmappedFields) {
	var remaining types.UnmappedFields
	if r.resolver == nil || !r.resolver.Loaded() {
		collectUnresolved(form, &remaining)
		return form, remaining
	}

	for i := range form.Education {
		edu := &form.Education[i]
		if !edu.Degree.Resolved {
			edu.Degree = r.remapDegree(edu.Degree, &remaining)
		}
		if !edu.Institution.Resolved {
			edu.Institution = r.remapInstitution(edu.Institution, &remaining)
		}
	}

	for i := range form.SkillSets {
		set := &form.SkillSets[i]
		if !set.Category.Resolved {
			set.Category = r.remapCategory(set.Category, categoryNameFromCV(set, i, cv), &remaining)
		}
		hint := ""
		if set.Category.Resolved {
			hint = set.Category.ID
		}
		for j := range set.Skills {
			if set.Skills[j].Resolved {
				continue
			}
			set.Skills[j] = r.remapSkill(set.Skills[j], hint, set.Category.Value(), &remaining)
		}
	}

	return form, remaining
}

func (r *Remapper) remapDegree(field types.MappedField, remaining *types.UnmappedFields) types.MappedField {
	if match := r.resolver.ResolveDegree(field.Original); match.Matched {
		return types.ResolvedField(match.Entity.ID, match.Entity.Name)
	}
	remaining.Degrees = appendOnce(remaining.Degrees, field.Original)
	return field
}

func (r *Remapper) remapInstitution(field types.MappedField, remaining *types.UnmappedFields) types.MappedField {
	if match := r.resolver.ResolveInstitution(field.Original); match.Matched {
		return types.ResolvedField(match.Entity.ID, match.Entity.Name)
	}
	remaining.Institutions = appendOnce(remaining.Institutions, field.Original)
	return field
}

func (r *Remapper) remapCategory(field types.MappedField, fallbackName string, remaining *types.UnmappedFields) types.MappedField {
	name := field.Original
	if name == "" {
		name = fallbackName
	}
	if name == "" {
		return field
	}
	if match := r.resolver.ResolveSkillCategory(name); match.Matched {
		return types.ResolvedField(match.Entity.ID, match.Entity.Name)
	}
	remaining.SkillCategories = appendOnce(remaining.SkillCategories, name)
	return field
}

func (r *Remapper) remapSkill(field types.MappedField, categoryHint, categoryName string, remaining *types.UnmappedFields) types.MappedField {
	if match := r.resolver.ResolveSkill(field.Original, categoryHint); match.Matched {
		return types.ResolvedField(match.Entity.ID, match.Entity.Name)
	}
	remaining.Skills = appendSkillOnce(remaining.Skills, field.Original, categoryName)
	return field
}

// categoryNameFromCV recovers the original category name for a skill
// set that lost its original text: the group at the same position in
// the parsed CV, or the first group whose name matches the set's
// display value case-insensitively.
func categoryNameFromCV(set *types.FormSkillSet, index int, cv *types.ParsedCV) string {
	if set.Category.Original != "" || cv == nil {
		return set.Category.Original
	}
	groups := cv.Skills.Categories
	if index < len(groups) && groups[index].Name != "" {
		return groups[index].Name
	}
	for _, group := range groups {
		if strings.EqualFold(group.Name, set.Category.Value()) {
			return group.Name
		}
	}
	return ""
}

func collectUnresolved(form types.PortfolioFormData, remaining *types.UnmappedFields) {
	for _, edu := range form.Education {
		if !edu.Degree.Resolved {
			remaining.Degrees = appendOnce(remaining.Degrees, edu.Degree.Original)
		}
		if !edu.Institution.Resolved {
			remaining.Institutions = appendOnce(remaining.Institutions, edu.Institution.Original)
		}
	}
	for _, set := range form.SkillSets {
		if !set.Category.Resolved && set.Category.Original != "" {
			remaining.SkillCategories = appendOnce(remaining.SkillCategories, set.Category.Original)
		}
		for _, skill := range set.Skills {
			if !skill.Resolved {
				remaining.Skills = appendSkillOnce(remaining.Skills, skill.Original, set.Category.Value())
			}
		}
	}
}

func appendOnce(list []string, value string) []string {
	if value == "" {
		return list
	}
	for _, existing := range list {
		if strings.EqualFold(existing, value) {
			return list
		}
	}
	return append(list, value)
}

func appendSkillOnce(list []types.UnmappedSkill, name, category string) []types.UnmappedSkill {
	if name == "" {
		return list
	}
	for _, existing := range list {
		if strings.EqualFold(existing.Name, name) {
			return list
		}
	}
	return append(list, types.UnmappedSkill{Name: name, Category: category})
}
