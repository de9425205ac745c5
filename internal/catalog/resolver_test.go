package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-ingest/internal/types"
)

func loadedResolver() *Resolver {
	r := NewResolver(0)
	r.LoadEntities(
		[]types.Degree{
			{ID: "d1", Name: "Bachelor of Science in Computer Science", ShortName: "BSc in CS", Level: types.DegreeLevelUndergraduate, IsActive: true},
			{ID: "d2", Name: "Master of Science in Computer Science", ShortName: "MSc in CS", Level: types.DegreeLevelGraduate, IsActive: true},
			{ID: "d3", Name: "Bachelor of Business Administration", ShortName: "BBA", Level: types.DegreeLevelUndergraduate, IsActive: false},
		},
		[]types.Institution{
			{ID: "i1", Name: "XYZ University of Engineering", Type: types.InstitutionTypeUniversity, IsActive: true},
			{ID: "i2", Name: "ABC College", Type: types.InstitutionTypeCollege, IsActive: true},
		},
		[]types.Skill{
			{ID: "s1", Name: "JavaScript", CategoryID: "c1"},
			{ID: "s2", Name: "Java", CategoryID: "c1"},
			{ID: "s3", Name: "PostgreSQL", CategoryID: "c2"},
		},
		[]types.SkillCategory{
			{ID: "c1", Name: "Programming Languages"},
			{ID: "c2", Name: "Databases"},
			{ID: "c3", Name: "Other"},
		},
	)
	return r
}

func TestResolveDegree_ExactName(t *testing.T) {
	match := loadedResolver().ResolveDegree("bachelor of science in computer science")

	require.True(t, match.Matched)
	assert.Equal(t, "d1", match.Entity.ID)
	assert.Equal(t, types.MatchExact, match.Kind)
	assert.InDelta(t, 1.0, match.Confidence, 1e-9)
}

func TestResolveDegree_ShortName(t *testing.T) {
	match := loadedResolver().ResolveDegree("bsc in cs")

	require.True(t, match.Matched)
	assert.Equal(t, "d1", match.Entity.ID)
	assert.Equal(t, types.MatchExact, match.Kind)
}

func TestResolveDegree_InactiveExcluded(t *testing.T) {
	match := loadedResolver().ResolveDegree("Bachelor of Business Administration")
	assert.False(t, match.Matched)
}

func TestResolveInstitution_ContainmentIsExact(t *testing.T) {
	match := loadedResolver().ResolveInstitution("XYZ University")

	require.True(t, match.Matched)
	assert.Equal(t, "i1", match.Entity.ID)
	assert.Equal(t, types.MatchExact, match.Kind)
}

func TestResolveSkill_ExactCaseInsensitive(t *testing.T) {
	match := loadedResolver().ResolveSkill("javascript", "")

	require.True(t, match.Matched)
	assert.Equal(t, "s1", match.Entity.ID)
	assert.InDelta(t, 1.0, match.Confidence, 1e-9)
}

func TestResolveSkill_BelowThresholdRejected(t *testing.T) {
	r := NewResolver(0)
	r.LoadEntities(nil, nil, []types.Skill{{ID: "s1", Name: "JavaScript"}}, nil)

	match := r.ResolveSkill("Jscript", "")
	assert.False(t, match.Matched)
}

func TestResolveSkill_CategoryHintPreferred(t *testing.T) {
	r := NewResolver(0)
	r.LoadEntities(nil, nil, []types.Skill{
		{ID: "s1", Name: "Java", CategoryID: "c1"},
		{ID: "s2", Name: "Java", CategoryID: "c9"},
	}, nil)

	match := r.ResolveSkill("Java", "c9")
	require.True(t, match.Matched)
	assert.Equal(t, "s2", match.Entity.ID)
}

func TestResolveSkill_WrongHintFallsBackToFullCatalog(t *testing.T) {
	match := loadedResolver().ResolveSkill("PostgreSQL", "c1")

	require.True(t, match.Matched)
	assert.Equal(t, "s3", match.Entity.ID)
}

func TestResolveSkillCategory_SynonymFallback(t *testing.T) {
	match := loadedResolver().ResolveSkillCategory("db")

	require.True(t, match.Matched)
	assert.Equal(t, "c2", match.Entity.ID)
	assert.Equal(t, types.MatchFuzzy, match.Kind)
	assert.InDelta(t, synonymConfidence, match.Confidence, 1e-9)
}

func TestResolveSkillCategory_NoMatch(t *testing.T) {
	assert.False(t, loadedResolver().ResolveSkillCategory("Astrology").Matched)
}

func TestLoadEntities_ReloadDoesNotOverwriteHeldMatches(t *testing.T) {
	r := loadedResolver()
	match := r.ResolveDegree("BSc in CS")
	require.True(t, match.Matched)
	require.Equal(t, "d1", match.Entity.ID)

	r.LoadEntities(
		[]types.Degree{{ID: "d9", Name: "Doctor of Philosophy", ShortName: "PhD", Level: types.DegreeLevelPostgraduate, IsActive: true}},
		nil, nil, nil,
	)

	assert.Equal(t, "d1", match.Entity.ID)
	assert.Equal(t, "Bachelor of Science in Computer Science", match.Entity.Name)

	after := r.ResolveDegree("PhD")
	require.True(t, after.Matched)
	assert.Equal(t, "d9", after.Entity.ID)
}

func TestResolve_EmptyCatalog(t *testing.T) {
	r := NewResolver(0)

	assert.False(t, r.Loaded())
	assert.False(t, r.ResolveDegree("BSc").Matched)
	assert.False(t, r.ResolveInstitution("XYZ University").Matched)
	assert.False(t, r.ResolveSkill("Go", "").Matched)
	assert.False(t, r.ResolveSkillCategory("Databases").Matched)
}

func TestResolve_EmptyMentionRejected(t *testing.T) {
	r := loadedResolver()

	assert.False(t, r.ResolveDegree("  ").Matched)
	assert.False(t, r.ResolveSkill("", "").Matched)
}

func TestBestFuzzy_TieBreaksAlphabetically(t *testing.T) {
	r := NewResolver(0)
	// Both candidates are edit distance 1 from the query.
	r.LoadEntities(nil, nil, []types.Skill{
		{ID: "s2", Name: "testerb"},
		{ID: "s1", Name: "testera"},
	}, nil)

	match := r.ResolveSkill("testerz", "")
	require.True(t, match.Matched)
	assert.Equal(t, "testera", match.Entity.Name)
}
