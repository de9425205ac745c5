// Package normalize transforms a ParsedCV into the portfolio form
// shape, resolving free-text degree/institution/skill mentions against
// the catalog and collecting everything that did not resolve.
package normalize

import (
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/cv-ingest/internal/catalog"
	"github.com/jonathan/cv-ingest/internal/types"
)

// DefaultDesignation is used when the CV carries no work history to
// infer a current title from.
const DefaultDesignation = "Not Specified"

// Fallback bucket for skills listed without a category. The id literal
// is used only when the catalog has no resolvable "Other" category.
const (
	fallbackCategoryID   = "other"
	fallbackCategoryName = "Other"
)

// Normalizer converts parsed CVs to form data. The resolver is
// optional: with a nil resolver every entity field stays unresolved
// and raw skills are dropped.
type Normalizer struct {
	resolver *catalog.Resolver
}

// New creates a Normalizer. resolver may be nil.
func New(resolver *catalog.Resolver) *Normalizer {
	return &Normalizer{resolver: resolver}
}

// Normalize is a pure transformation: it never mutates the input CV
// and touches no external state.
func (n *Normalizer) Normalize(cv *types.ParsedCV) *types.NormalizationResult {
	result := &types.NormalizationResult{}

	result.FormData.PersonalInfo = n.normalizePersonalInfo(cv)
	result.FormData.Education = n.normalizeEducation(cv.Education, result)
	result.FormData.SkillSets = n.normalizeSkills(cv.Skills, result)

	for _, c := range cv.Certifications {
		result.FormData.Certifications = append(result.FormData.Certifications, types.FormCertification{
			Name:   c.Name,
			Issuer: c.Issuer,
			Year:   c.Year,
		})
	}
	for _, c := range cv.Courses {
		result.FormData.Courses = append(result.FormData.Courses, types.FormCourse{
			Name:     c.Name,
			Provider: c.Provider,
			Year:     c.Year,
		})
	}
	for _, w := range cv.WorkExperience {
		result.FormData.WorkExperience = append(result.FormData.WorkExperience, types.FormWorkExperience{
			Position:         w.Position,
			Company:          w.Company,
			StartDate:        w.StartDate,
			EndDate:          w.EndDate,
			IsCurrentRole:    w.IsCurrentRole,
			Responsibilities: w.Responsibilities,
			Technologies:     w.Technologies,
		})
	}
	for _, p := range cv.Projects {
		result.FormData.Projects = append(result.FormData.Projects, types.FormProject{
			Title:        p.Title,
			Description:  p.Description,
			Technologies: p.Technologies,
			URL:          p.URL,
			Repository:   p.Repository,
		})
	}
	return result
}

func (n *Normalizer) normalizePersonalInfo(cv *types.ParsedCV) types.FormPersonalInfo {
	return types.FormPersonalInfo{
		Name:              cv.PersonalInfo.Name,
		Email:             cv.PersonalInfo.Email,
		Phone:             cv.PersonalInfo.Phone,
		Designation:       inferDesignation(cv.WorkExperience),
		YearsOfExperience: totalYearsOfExperience(cv.WorkExperience, time.Now()),
		Summary:           cv.PersonalInfo.Summary,
		Location:          cv.PersonalInfo.Location,
		Nationality:       cv.PersonalInfo.Nationality,
	}
}

func (n *Normalizer) normalizeEducation(entries []types.EducationEntry, result *types.NormalizationResult) []types.FormEducation {
	out := make([]types.FormEducation, 0, len(entries))
	for _, e := range entries {
		row := types.FormEducation{
			GraduationYear: e.GraduationYear,
			Grade:          e.Grade,
		}

		row.Degree = types.UnresolvedField(e.Degree)
		if n.resolver != nil {
			if match := n.resolver.ResolveDegree(e.Degree); match.Matched {
				row.Degree = types.ResolvedField(match.Entity.ID, match.Entity.Name)
			}
		}
		if !row.Degree.Resolved && e.Degree != "" {
			if added := appendUnique(&result.Unmapped.Degrees, e.Degree); added {
				result.Warnings = append(result.Warnings, fmt.Sprintf("degree not in catalog: %s", e.Degree))
			}
		}

		row.Institution = types.UnresolvedField(e.Institution)
		if n.resolver != nil {
			if match := n.resolver.ResolveInstitution(e.Institution); match.Matched {
				row.Institution = types.ResolvedField(match.Entity.ID, match.Entity.Name)
			}
		}
		if !row.Institution.Resolved && e.Institution != "" {
			if added := appendUnique(&result.Unmapped.Institutions, e.Institution); added {
				result.Warnings = append(result.Warnings, fmt.Sprintf("institution not in catalog: %s", e.Institution))
			}
		}

		out = append(out, row)
	}
	return out
}

func (n *Normalizer) normalizeSkills(groups types.SkillGroups, result *types.NormalizationResult) []types.FormSkillSet {
	var sets []types.FormSkillSet

	for _, group := range groups.Categories {
		set := types.FormSkillSet{Category: types.UnresolvedField(group.Name)}
		categoryID := ""

		if n.resolver != nil {
			if match := n.resolver.ResolveSkillCategory(group.Name); match.Matched {
				set.Category = types.ResolvedField(match.Entity.ID, match.Entity.Name)
				categoryID = match.Entity.ID
			}
		}
		if !set.Category.Resolved && group.Name != "" {
			if added := appendUnique(&result.Unmapped.SkillCategories, group.Name); added {
				result.Warnings = append(result.Warnings, fmt.Sprintf("skill category not in catalog: %s", group.Name))
			}
		}

		for _, skill := range group.Skills {
			set.Skills = append(set.Skills, n.resolveSkillField(skill.Name, categoryID, group.Name, result))
		}
		sets = append(sets, set)
	}

	// Raw skills need a resolver to be useful; without one there is no
	// category to attach them to, so they are dropped.
	if len(groups.Raw) > 0 && n.resolver != nil {
		other := types.FormSkillSet{Category: n.fallbackCategory()}
		for _, skill := range groups.Raw {
			other.Skills = append(other.Skills, n.resolveSkillField(skill.Name, "", "", result))
		}
		sets = append(sets, other)
	}
	return sets
}

// resolveSkillField resolves one skill mention. categoryName is the
// free-text category the mention appeared under (empty for raw
// mentions); it travels with the unmapped record so the creator can
// place a new skill in its own category.
func (n *Normalizer) resolveSkillField(name, categoryID, categoryName string, result *types.NormalizationResult) types.MappedField {
	if n.resolver != nil {
		if match := n.resolver.ResolveSkill(name, categoryID); match.Matched {
			return types.ResolvedField(match.Entity.ID, match.Entity.Name)
		}
	}
	if name != "" {
		if added := appendUniqueSkill(&result.Unmapped.Skills, name, categoryName); added {
			result.Warnings = append(result.Warnings, fmt.Sprintf("skill not in catalog: %s", name))
		}
	}
	return types.UnresolvedField(name)
}

func (n *Normalizer) fallbackCategory() types.MappedField {
	if match := n.resolver.ResolveSkillCategory(fallbackCategoryName); match.Matched {
		return types.ResolvedField(match.Entity.ID, match.Entity.Name)
	}
	return types.ResolvedField(fallbackCategoryID, fallbackCategoryName)
}

// inferDesignation takes the position of the most recently started job,
// preferring a current role when one exists.
func inferDesignation(jobs []types.WorkExperienceEntry) string {
	if len(jobs) == 0 {
		return DefaultDesignation
	}

	best := -1
	var bestStart time.Time
	for i, job := range jobs {
		if job.IsCurrentRole {
			return job.Position
		}
		start, ok := parseLooseDate(job.StartDate)
		if best == -1 || (ok && start.After(bestStart)) {
			best = i
			if ok {
				bestStart = start
			}
		}
	}
	return jobs[best].Position
}

// totalYearsOfExperience sums month deltas across all jobs, clamping
// negative ranges to zero, then floor-divides by 12. Overlapping jobs
// are double-counted; that matches how candidates present parallel
// engagements.
func totalYearsOfExperience(jobs []types.WorkExperienceEntry, now time.Time) int {
	months := 0
	for _, job := range jobs {
		start, ok := parseLooseDate(job.StartDate)
		if !ok {
			continue
		}
		end := now
		if !job.IsCurrentRole && !isOpenEnded(job.EndDate) {
			var endOK bool
			end, endOK = parseLooseDate(job.EndDate)
			if !endOK {
				continue
			}
		}
		delta := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
		if delta > 0 {
			months += delta
		}
	}
	return months / 12
}

func isOpenEnded(endDate string) bool {
	switch strings.ToLower(strings.TrimSpace(endDate)) {
	case "", "present", "current", "now":
		return true
	}
	return false
}

// looseDateLayouts covers the date shapes the parsers leave in place.
var looseDateLayouts = []string{
	"Jan 2006",
	"January 2006",
	"Jan. 2006",
	"1/2006",
	"01/2006",
	"2006-01",
	"2006",
}

func parseLooseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range looseDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// appendUnique adds value to the list unless an equal entry (case
// insensitive) is already present, reporting whether it was added.
func appendUnique(list *[]string, value string) bool {
	for _, existing := range *list {
		if strings.EqualFold(existing, value) {
			return false
		}
	}
	*list = append(*list, value)
	return true
}

func appendUniqueSkill(list *[]types.UnmappedSkill, name, category string) bool {
	for _, existing := range *list {
		if strings.EqualFold(existing.Name, name) {
			return false
		}
	}
	*list = append(*list, types.UnmappedSkill{Name: name, Category: category})
	return true
}
