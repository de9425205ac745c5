package entities

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-ingest/internal/store"
	"github.com/jonathan/cv-ingest/internal/types"
)

func seededStoreAndCatalog(t *testing.T) (*store.Memory, *store.Catalog) {
	t.Helper()
	s := store.NewMemory()
	s.Seed(
		[]types.Degree{
			{ID: "d1", Name: "Bachelor of Science in Computer Science", ShortName: "BSc in CS", Level: types.DegreeLevelUndergraduate, IsActive: true},
		},
		[]types.Institution{
			{ID: "i1", Name: "XYZ University of Engineering", Type: types.InstitutionTypeUniversity, Verified: true, IsActive: true},
		},
		[]types.Skill{
			{ID: "s1", Name: "JavaScript", CategoryID: "c1"},
		},
		[]types.SkillCategory{
			{ID: "c1", Name: "Programming Languages"},
			{ID: "c3", Name: "Other"},
		},
	)
	snapshot, err := store.LoadAll(t.Context(), s)
	require.NoError(t, err)
	return s, snapshot
}

func TestCreateUnmapped_AllKinds(t *testing.T) {
	s, snapshot := seededStoreAndCatalog(t)
	creator := NewCreator(s, snapshot)

	result, err := creator.CreateUnmapped(t.Context(), types.UnmappedFields{
		SkillCategories: []string{"Astrological Arts"},
		Degrees:         []string{"Master of Business Administration"},
		Institutions:    []string{"ABC College of Commerce"},
		Skills:          []types.UnmappedSkill{{Name: "Juggling"}},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.CreatedCategories)
	assert.Equal(t, 1, result.CreatedDegrees)
	assert.Equal(t, 1, result.CreatedInstitutions)
	assert.Equal(t, 1, result.CreatedSkills)
	assert.Equal(t, 4, result.TotalCreated())
	assert.Empty(t, result.Failed)

	assert.NotEmpty(t, result.SkillCategoryIDs["Astrological Arts"])
	assert.NotEmpty(t, result.DegreeIDs["Master of Business Administration"])
	assert.NotEmpty(t, result.InstitutionIDs["ABC College of Commerce"])
	assert.NotEmpty(t, result.SkillIDs["Juggling"])

	degrees, err := s.FetchActiveDegrees(t.Context())
	require.NoError(t, err)
	require.Len(t, degrees, 2)
}

func TestCreateUnmapped_DegreeAttributesInferred(t *testing.T) {
	s, snapshot := seededStoreAndCatalog(t)
	creator := NewCreator(s, snapshot)

	_, err := creator.CreateUnmapped(t.Context(), types.UnmappedFields{
		Degrees: []string{"Master of Business Administration"},
	})
	require.NoError(t, err)

	degrees, err := s.FetchActiveDegrees(t.Context())
	require.NoError(t, err)
	var created *types.Degree
	for i := range degrees {
		if degrees[i].Name == "Master of Business Administration" {
			created = &degrees[i]
		}
	}
	require.NotNil(t, created)
	assert.Equal(t, types.DegreeLevelGraduate, created.Level)
	assert.Equal(t, "MBA", created.ShortName)
	assert.True(t, created.IsActive)
}

func TestCreateUnmapped_ParentheticalShortName(t *testing.T) {
	assert.Equal(t, "BSc", degreeShortName("Bachelor of Science (BSc)"))
	assert.Equal(t, "MOBA", degreeShortName("Master Of Business Administration"))
	assert.Equal(t, "", degreeShortName("diploma"))
}

func TestCreateUnmapped_InstitutionAttributesInferred(t *testing.T) {
	s, snapshot := seededStoreAndCatalog(t)
	creator := NewCreator(s, snapshot)

	_, err := creator.CreateUnmapped(t.Context(), types.UnmappedFields{
		Institutions: []string{"Dhaka Commerce College", "Atlantis Institute of Technology", "Northern Tech"},
	})
	require.NoError(t, err)

	institutions, err := s.FetchActiveInstitutions(t.Context())
	require.NoError(t, err)
	byName := make(map[string]types.Institution)
	for _, inst := range institutions {
		byName[inst.Name] = inst
	}
	assert.Equal(t, types.InstitutionTypeCollege, byName["Dhaka Commerce College"].Type)
	assert.Equal(t, types.InstitutionTypeInstitute, byName["Atlantis Institute of Technology"].Type)
	assert.Equal(t, types.InstitutionTypeUniversity, byName["Northern Tech"].Type)
	assert.Equal(t, "Unknown", byName["Northern Tech"].Location)
	assert.Equal(t, "Dhaka", byName["Northern Tech"].Division)
	assert.True(t, byName["Northern Tech"].Verified)
}

func TestCreateUnmapped_NearDuplicateReusesExisting(t *testing.T) {
	s, snapshot := seededStoreAndCatalog(t)
	creator := NewCreator(s, snapshot)

	result, err := creator.CreateUnmapped(t.Context(), types.UnmappedFields{
		Skills: []types.UnmappedSkill{{Name: "javascript"}},
	})
	require.NoError(t, err)

	assert.Zero(t, result.CreatedSkills)
	assert.Equal(t, "s1", result.SkillIDs["javascript"])
}

func TestCreateUnmapped_DuplicateWithinBatchCreatedOnce(t *testing.T) {
	s, snapshot := seededStoreAndCatalog(t)
	creator := NewCreator(s, snapshot)

	result, err := creator.CreateUnmapped(t.Context(), types.UnmappedFields{
		Skills: []types.UnmappedSkill{{Name: "Elixir"}, {Name: "elixir"}},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.CreatedSkills)
	assert.Equal(t, result.SkillIDs["Elixir"], result.SkillIDs["elixir"])
}

func TestCreateUnmapped_SecondCallReusesFirstCallsInsert(t *testing.T) {
	s, snapshot := seededStoreAndCatalog(t)
	creator := NewCreator(s, snapshot)

	first, err := creator.CreateUnmapped(t.Context(), types.UnmappedFields{
		Degrees: []string{"Master of Ceremonies"},
	})
	require.NoError(t, err)
	require.Equal(t, 1, first.CreatedDegrees)

	second, err := creator.CreateUnmapped(t.Context(), types.UnmappedFields{
		Degrees: []string{"Master of Ceremonies"},
	})
	require.NoError(t, err)
	assert.Zero(t, second.CreatedDegrees)
	assert.Equal(t, first.DegreeIDs["Master of Ceremonies"], second.DegreeIDs["Master of Ceremonies"])

	// a fresh creator over a reloaded snapshot must also find it
	reloaded, err := store.LoadAll(t.Context(), s)
	require.NoError(t, err)
	third, err := NewCreator(s, reloaded).CreateUnmapped(t.Context(), types.UnmappedFields{
		Degrees: []string{"master of ceremonies"},
	})
	require.NoError(t, err)
	assert.Zero(t, third.CreatedDegrees)
	assert.Equal(t, first.DegreeIDs["Master of Ceremonies"], third.DegreeIDs["master of ceremonies"])

	degrees, err := s.FetchActiveDegrees(t.Context())
	require.NoError(t, err)
	assert.Len(t, degrees, 2)
}

func TestCreateUnmapped_SkillStricterThreshold(t *testing.T) {
	s, snapshot := seededStoreAndCatalog(t)
	creator := NewCreator(s, snapshot)

	// "JavaScrapt" is one edit away from the existing skill, scoring
	// 0.9, so it must not be created; "Jscript" scores 0.7 and must be.
	result, err := creator.CreateUnmapped(t.Context(), types.UnmappedFields{
		Skills: []types.UnmappedSkill{{Name: "JavaScrapt"}, {Name: "Jscript"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "s1", result.SkillIDs["JavaScrapt"])
	assert.Equal(t, 1, result.CreatedSkills)
	assert.NotEqual(t, "s1", result.SkillIDs["Jscript"])
}

func TestCreateUnmapped_SkillsAssignedToOtherCategory(t *testing.T) {
	s, snapshot := seededStoreAndCatalog(t)
	creator := NewCreator(s, snapshot)

	_, err := creator.CreateUnmapped(t.Context(), types.UnmappedFields{
		Skills: []types.UnmappedSkill{{Name: "Juggling"}},
	})
	require.NoError(t, err)

	skills, err := s.FetchSkills(t.Context())
	require.NoError(t, err)
	for _, skill := range skills {
		if skill.Name == "Juggling" {
			assert.Equal(t, "c3", skill.CategoryID)
			return
		}
	}
	t.Fatal("created skill not found in store")
}

func TestCreateUnmapped_SkillFollowsCategoryCreatedInSameBatch(t *testing.T) {
	s, snapshot := seededStoreAndCatalog(t)
	creator := NewCreator(s, snapshot)

	result, err := creator.CreateUnmapped(t.Context(), types.UnmappedFields{
		SkillCategories: []string{"Circus Arts"},
		Skills:          []types.UnmappedSkill{{Name: "Juggling Torches", Category: "Circus Arts"}},
	})
	require.NoError(t, err)

	categoryID := result.SkillCategoryIDs["Circus Arts"]
	require.NotEmpty(t, categoryID)

	skills, err := s.FetchSkills(t.Context())
	require.NoError(t, err)
	for _, skill := range skills {
		if skill.Name == "Juggling Torches" {
			assert.Equal(t, categoryID, skill.CategoryID)
			return
		}
	}
	t.Fatal("created skill not found in store")
}

func TestCreateUnmapped_MissingOtherCategoryFails(t *testing.T) {
	s := store.NewMemory()
	s.Seed(nil, nil, nil, []types.SkillCategory{{ID: "c1", Name: "Programming Languages"}})
	snapshot, err := store.LoadAll(t.Context(), s)
	require.NoError(t, err)
	creator := NewCreator(s, snapshot)

	_, err = creator.CreateUnmapped(t.Context(), types.UnmappedFields{
		Skills: []types.UnmappedSkill{{Name: "Juggling"}},
	})
	var missing *MissingCategoryError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "Other", missing.Name)
}

func TestCreateUnmapped_CategoriesBeforeSkills(t *testing.T) {
	s, snapshot := seededStoreAndCatalog(t)
	order := &orderRecorder{Memory: s}
	creator := NewCreator(order, snapshot)

	_, err := creator.CreateUnmapped(t.Context(), types.UnmappedFields{
		Skills:          []types.UnmappedSkill{{Name: "Juggling"}},
		SkillCategories: []string{"Circus Arts"},
		Degrees:         []string{"Master of Ceremonies"},
		Institutions:    []string{"Clown College"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"category", "degree", "institution", "skill"}, order.calls)
}

func TestCreateUnmapped_InsertFailureDoesNotAbortBatch(t *testing.T) {
	s, snapshot := seededStoreAndCatalog(t)
	creator := NewCreator(&failingDegreeStore{Memory: s}, snapshot)

	result, err := creator.CreateUnmapped(t.Context(), types.UnmappedFields{
		Degrees: []string{"Master of Ceremonies"},
		Skills:  []types.UnmappedSkill{{Name: "Juggling"}},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Degree: Master of Ceremonies"}, result.Failed)
	assert.Zero(t, result.CreatedDegrees)
	assert.Equal(t, 1, result.CreatedSkills)
}

func TestCreateUnmapped_EmptyInputIsNoOp(t *testing.T) {
	s, snapshot := seededStoreAndCatalog(t)
	creator := NewCreator(s, snapshot)

	result, err := creator.CreateUnmapped(t.Context(), types.UnmappedFields{})
	require.NoError(t, err)
	assert.Zero(t, result.TotalCreated())
	assert.Empty(t, result.Failed)
}

type orderRecorder struct {
	*store.Memory
	calls []string
}

func (o *orderRecorder) InsertDegree(ctx context.Context, degree types.Degree) (string, error) {
	o.calls = append(o.calls, "degree")
	return o.Memory.InsertDegree(ctx, degree)
}

func (o *orderRecorder) InsertInstitution(ctx context.Context, institution types.Institution) (string, error) {
	o.calls = append(o.calls, "institution")
	return o.Memory.InsertInstitution(ctx, institution)
}

func (o *orderRecorder) InsertSkill(ctx context.Context, skill types.Skill) (string, error) {
	o.calls = append(o.calls, "skill")
	return o.Memory.InsertSkill(ctx, skill)
}

func (o *orderRecorder) InsertSkillCategory(ctx context.Context, category types.SkillCategory) (string, error) {
	o.calls = append(o.calls, "category")
	return o.Memory.InsertSkillCategory(ctx, category)
}

type failingDegreeStore struct {
	*store.Memory
}

func (f *failingDegreeStore) InsertDegree(context.Context, types.Degree) (string, error) {
	return "", assert.AnError
}
