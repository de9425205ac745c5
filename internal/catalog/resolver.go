// Package catalog resolves free-text entity mentions from a parsed CV
// against the reference catalog of degrees, institutions, skills, and
// skill categories. Matching is exact-first, then fuzzy with a
// configurable similarity threshold.
package catalog

import (
	"strings"

	"github.com/jonathan/cv-ingest/internal/types"
)

// DefaultMatchThreshold is the similarity below which fuzzy candidates
// are discarded.
const DefaultMatchThreshold = 0.75

// synonymConfidence is assigned to category matches recovered through
// the synonym dictionary rather than name similarity.
const synonymConfidence = 0.8

// categorySynonyms maps common shorthand category mentions to canonical
// catalog category names. Lookup keys are lowercase.
var categorySynonyms = map[string]string{
	"frontend":         "Frontend",
	"front-end":        "Frontend",
	"front end":        "Frontend",
	"backend":          "Backend",
	"back-end":         "Backend",
	"back end":         "Backend",
	"fullstack":        "Full Stack",
	"full-stack":       "Full Stack",
	"devops":           "DevOps",
	"db":               "Databases",
	"database":         "Databases",
	"databases":        "Databases",
	"programming":      "Programming Languages",
	"languages":        "Programming Languages",
	"tools":            "Tools",
	"soft skills":      "Soft Skills",
	"interpersonal":    "Soft Skills",
	"cloud":            "Cloud",
	"mobile":           "Mobile",
	"ml":               "Machine Learning",
	"ai":               "Machine Learning",
	"machine learning": "Machine Learning",
	"testing":          "Testing",
	"qa":               "Testing",
	"other":            "Other",
	"misc":             "Other",
	"miscellaneous":    "Other",
}

// Resolver matches mentions against an in-memory catalog snapshot.
// Before LoadEntities is called the catalog is empty and every lookup
// returns no match; callers decide whether that is an error.
type Resolver struct {
	threshold float64

	degrees      []types.Degree
	institutions []types.Institution
	skills       []types.Skill
	categories   []types.SkillCategory

	loaded bool
}

// NewResolver creates a resolver with the given similarity threshold.
// A non-positive threshold selects DefaultMatchThreshold.
func NewResolver(threshold float64) *Resolver {
	if threshold <= 0 {
		threshold = DefaultMatchThreshold
	}
	return &Resolver{threshold: threshold}
}

// LoadEntities replaces the catalog snapshot. Inactive degrees and
// institutions are filtered out here so lookups never see them. Fresh
// backing arrays are allocated on every call: EntityMatch results
// point into them, and matches handed out before a reload must keep
// reading the snapshot they were resolved against.
func (r *Resolver) LoadEntities(
	degrees []types.Degree,
	institutions []types.Institution,
	skills []types.Skill,
	categories []types.SkillCategory,
) {
	r.degrees = make([]types.Degree, 0, len(degrees))
	for _, d := range degrees {
		if d.IsActive {
			r.degrees = append(r.degrees, d)
		}
	}
	r.institutions = make([]types.Institution, 0, len(institutions))
	for _, inst := range institutions {
		if inst.IsActive {
			r.institutions = append(r.institutions, inst)
		}
	}
	r.skills = append([]types.Skill(nil), skills...)
	r.categories = append([]types.SkillCategory(nil), categories...)
	r.loaded = true
}

// Loaded reports whether LoadEntities has been called.
func (r *Resolver) Loaded() bool {
	return r.loaded
}

// Threshold returns the similarity threshold in effect.
func (r *Resolver) Threshold() float64 {
	return r.threshold
}

// ResolveDegree matches a degree mention by name or short name.
func (r *Resolver) ResolveDegree(name string) types.EntityMatch[types.Degree] {
	name = strings.TrimSpace(name)
	if name == "" {
		return types.NoMatch[types.Degree]()
	}
	lower := strings.ToLower(name)

	for i := range r.degrees {
		d := &r.degrees[i]
		if strings.EqualFold(d.Name, name) || (d.ShortName != "" && strings.ToLower(d.ShortName) == lower) {
			return exactMatch(d)
		}
	}

	return bestFuzzy(name, r.degrees, r.threshold, func(d *types.Degree) string { return d.Name })
}

// ResolveInstitution matches an institution mention. Substring
// containment in either direction is treated as an exact match:
// resumes routinely shorten official institution names.
func (r *Resolver) ResolveInstitution(name string) types.EntityMatch[types.Institution] {
	name = strings.TrimSpace(name)
	if name == "" {
		return types.NoMatch[types.Institution]()
	}
	lower := strings.ToLower(name)

	for i := range r.institutions {
		inst := &r.institutions[i]
		instLower := strings.ToLower(inst.Name)
		if instLower == lower || strings.Contains(instLower, lower) || strings.Contains(lower, instLower) {
			return exactMatch(inst)
		}
	}

	return bestFuzzy(name, r.institutions, r.threshold, func(i *types.Institution) string { return i.Name })
}

// ResolveSkill matches a skill mention. When categoryID is non-empty,
// skills in that category are tried first; the full catalog is the
// fallback so a wrong category hint cannot hide a correct match.
func (r *Resolver) ResolveSkill(name, categoryID string) types.EntityMatch[types.Skill] {
	name = strings.TrimSpace(name)
	if name == "" {
		return types.NoMatch[types.Skill]()
	}

	if categoryID != "" {
		var scoped []types.Skill
		for _, s := range r.skills {
			if s.CategoryID == categoryID {
				scoped = append(scoped, s)
			}
		}
		if match := r.resolveSkillIn(name, scoped); match.Matched {
			return match
		}
	}
	return r.resolveSkillIn(name, r.skills)
}

func (r *Resolver) resolveSkillIn(name string, skills []types.Skill) types.EntityMatch[types.Skill] {
	for i := range skills {
		if strings.EqualFold(skills[i].Name, name) {
			return exactMatch(&skills[i])
		}
	}
	return bestFuzzy(name, skills, r.threshold, func(s *types.Skill) string { return s.Name })
}

// ResolveSkillCategory matches a category mention, falling back to the
// synonym dictionary before declaring no match.
func (r *Resolver) ResolveSkillCategory(name string) types.EntityMatch[types.SkillCategory] {
	name = strings.TrimSpace(name)
	if name == "" {
		return types.NoMatch[types.SkillCategory]()
	}

	for i := range r.categories {
		if strings.EqualFold(r.categories[i].Name, name) {
			return exactMatch(&r.categories[i])
		}
	}

	if match := bestFuzzy(name, r.categories, r.threshold, func(c *types.SkillCategory) string { return c.Name }); match.Matched {
		return match
	}

	if canonical, ok := categorySynonyms[strings.ToLower(name)]; ok {
		for i := range r.categories {
			if strings.EqualFold(r.categories[i].Name, canonical) {
				return types.EntityMatch[types.SkillCategory]{
					Matched:    true,
					Entity:     &r.categories[i],
					Confidence: synonymConfidence,
					Kind:       types.MatchFuzzy,
				}
			}
		}
	}
	return types.NoMatch[types.SkillCategory]()
}

func exactMatch[T any](entity *T) types.EntityMatch[T] {
	return types.EntityMatch[T]{
		Matched:    true,
		Entity:     entity,
		Confidence: 1.0,
		Kind:       types.MatchExact,
	}
}

// bestFuzzy returns the highest-scoring candidate at or above the
// threshold. Ties break to the lexicographically smaller name so
// resolution is independent of catalog load order.
func bestFuzzy[T any](name string, candidates []T, threshold float64, nameOf func(*T) string) types.EntityMatch[T] {
	var best *T
	bestScore := 0.0

	for i := range candidates {
		score := Similarity(name, nameOf(&candidates[i]))
		if score < threshold {
			continue
		}
		if best == nil || score > bestScore ||
			(score == bestScore && nameOf(&candidates[i]) < nameOf(best)) {
			best = &candidates[i]
			bestScore = score
		}
	}

	if best == nil {
		return types.NoMatch[T]()
	}
	return types.EntityMatch[T]{
		Matched:    true,
		Entity:     best,
		Confidence: bestScore,
		Kind:       types.MatchFuzzy,
	}
}
