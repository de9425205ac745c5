package entities

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-ingest/internal/catalog"
	"github.com/jonathan/cv-ingest/internal/types"
)

func refreshedResolver(t *testing.T) *catalog.Resolver {
	t.Helper()
	r := catalog.NewResolver(0)
	r.LoadEntities(
		[]types.Degree{
			{ID: "d1", Name: "Bachelor of Science in Computer Science", ShortName: "BSc in CS", Level: types.DegreeLevelUndergraduate, IsActive: true},
			{ID: "d2", Name: "Master of Ceremonies", Level: types.DegreeLevelGraduate, IsActive: true},
		},
		[]types.Institution{
			{ID: "i1", Name: "XYZ University of Engineering", Type: types.InstitutionTypeUniversity, IsActive: true},
			{ID: "i2", Name: "Clown College", Type: types.InstitutionTypeCollege, IsActive: true},
		},
		[]types.Skill{
			{ID: "s1", Name: "JavaScript", CategoryID: "c1"},
			{ID: "s2", Name: "Juggling", CategoryID: "c3"},
		},
		[]types.SkillCategory{
			{ID: "c1", Name: "Programming Languages"},
			{ID: "c3", Name: "Other"},
		},
	)
	return r
}

func TestRemap_ResolvesCreatedEntities(t *testing.T) {
	remapper := NewRemapper(refreshedResolver(t))

	form := types.PortfolioFormData{
		Education: []types.FormEducation{
			{
				Degree:      types.UnresolvedField("Master of Ceremonies"),
				Institution: types.UnresolvedField("Clown College"),
			},
		},
		SkillSets: []types.FormSkillSet{
			{
				Category: types.ResolvedField("c3", "Other"),
				Skills:   []types.MappedField{types.UnresolvedField("Juggling")},
			},
		},
	}

	remapped, remaining := remapper.Remap(form, &types.ParsedCV{})
	assert.True(t, remaining.IsEmpty())

	edu := remapped.Education[0]
	assert.Equal(t, "d2", edu.Degree.ID)
	assert.Equal(t, "Master of Ceremonies", edu.Degree.Name)
	assert.Equal(t, "i2", edu.Institution.ID)
	assert.Equal(t, "s2", remapped.SkillSets[0].Skills[0].ID)
}

func TestRemap_ResolvedFieldsUntouched(t *testing.T) {
	remapper := NewRemapper(refreshedResolver(t))

	form := types.PortfolioFormData{
		Education: []types.FormEducation{
			{
				Degree:      types.ResolvedField("d9", "Bachelor of Fine Arts"),
				Institution: types.ResolvedField("i9", "Conservatory"),
			},
		},
	}

	remapped, remaining := remapper.Remap(form, &types.ParsedCV{})
	assert.True(t, remaining.IsEmpty())
	assert.Equal(t, "d9", remapped.Education[0].Degree.ID)
	assert.Equal(t, "Bachelor of Fine Arts", remapped.Education[0].Degree.Name)
}

func TestRemap_StillUnresolvedReported(t *testing.T) {
	remapper := NewRemapper(refreshedResolver(t))

	form := types.PortfolioFormData{
		Education: []types.FormEducation{
			{
				Degree:      types.UnresolvedField("Doctorate of Thaumaturgy"),
				Institution: types.UnresolvedField("Unseen University"),
			},
		},
		SkillSets: []types.FormSkillSet{
			{
				Category: types.UnresolvedField("Wizardry"),
				Skills:   []types.MappedField{types.UnresolvedField("Octarine Weaving")},
			},
		},
	}

	remapped, remaining := remapper.Remap(form, &types.ParsedCV{})
	assert.Equal(t, []string{"Doctorate of Thaumaturgy"}, remaining.Degrees)
	assert.Equal(t, []string{"Unseen University"}, remaining.Institutions)
	assert.Equal(t, []string{"Wizardry"}, remaining.SkillCategories)
	assert.Equal(t, []types.UnmappedSkill{{Name: "Octarine Weaving", Category: "Wizardry"}}, remaining.Skills)

	// unresolved fields keep their original text for review
	assert.False(t, remapped.Education[0].Degree.Resolved)
	assert.Equal(t, "Doctorate of Thaumaturgy", remapped.Education[0].Degree.Value())
}

func TestRemap_CategoryHintScopesSkillLookup(t *testing.T) {
	r := catalog.NewResolver(0)
	r.LoadEntities(nil, nil,
		[]types.Skill{
			{ID: "s1", Name: "Java", CategoryID: "c1"},
			{ID: "s2", Name: "Java", CategoryID: "c2"},
		},
		[]types.SkillCategory{
			{ID: "c1", Name: "Programming Languages"},
			{ID: "c2", Name: "Beverages"},
		},
	)
	remapper := NewRemapper(r)

	form := types.PortfolioFormData{
		SkillSets: []types.FormSkillSet{
			{
				Category: types.ResolvedField("c2", "Beverages"),
				Skills:   []types.MappedField{types.UnresolvedField("Java")},
			},
		},
	}

	remapped, remaining := remapper.Remap(form, &types.ParsedCV{})
	assert.True(t, remaining.IsEmpty())
	assert.Equal(t, "s2", remapped.SkillSets[0].Skills[0].ID)
}

func TestRemap_CategoryNameRecoveredFromParsedCV(t *testing.T) {
	remapper := NewRemapper(refreshedResolver(t))

	cv := &types.ParsedCV{}
	cv.Skills.Categories = []types.SkillCategoryGroup{{Name: "Programming"}}

	form := types.PortfolioFormData{
		SkillSets: []types.FormSkillSet{
			{
				// original text lost upstream; position 0 aligns with the
				// parsed "Programming" group
				Category: types.MappedField{},
				Skills:   []types.MappedField{types.UnresolvedField("JavaScript")},
			},
		},
	}

	remapped, remaining := remapper.Remap(form, cv)
	assert.True(t, remaining.IsEmpty())
	assert.Equal(t, "c1", remapped.SkillSets[0].Category.ID)
	assert.Equal(t, "s1", remapped.SkillSets[0].Skills[0].ID)
}

func TestRemap_NilResolverLeavesFormIntact(t *testing.T) {
	remapper := NewRemapper(nil)

	form := types.PortfolioFormData{
		Education: []types.FormEducation{
			{Degree: types.UnresolvedField("BA in History"), Institution: types.ResolvedField("i1", "XYZ University of Engineering")},
		},
	}

	remapped, remaining := remapper.Remap(form, nil)
	assert.Equal(t, []string{"BA in History"}, remaining.Degrees)
	assert.False(t, remapped.Education[0].Degree.Resolved)
}

func TestRemap_DuplicateUnresolvedReportedOnce(t *testing.T) {
	remapper := NewRemapper(refreshedResolver(t))

	form := types.PortfolioFormData{
		SkillSets: []types.FormSkillSet{
			{
				Category: types.ResolvedField("c3", "Other"),
				Skills: []types.MappedField{
					types.UnresolvedField("Octarine Weaving"),
					types.UnresolvedField("octarine weaving"),
				},
			},
		},
	}

	_, remaining := remapper.Remap(form, &types.ParsedCV{})
	assert.Equal(t, []types.UnmappedSkill{{Name: "Octarine Weaving", Category: "Other"}}, remaining.Skills)
}

func TestRemap_OutputCarriesNoSentinel(t *testing.T) {
	remapper := NewRemapper(refreshedResolver(t))

	form := types.PortfolioFormData{
		Education: []types.FormEducation{
			{Degree: types.UnresolvedField("Doctorate of Thaumaturgy"), Institution: types.UnresolvedField("Unseen University")},
		},
	}

	remapped, _ := remapper.Remap(form, &types.ParsedCV{})
	raw, err := json.Marshal(remapped)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "__UNMAPPED__")
}
