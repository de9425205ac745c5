package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/jonathan/cv-ingest/internal/types"
)

// Memory is an in-memory DocumentStore for tests and dry runs. All
// methods are safe for concurrent use.
type Memory struct {
	mu           sync.RWMutex
	degrees      []types.Degree
	institutions []types.Institution
	skills       []types.Skill
	categories   []types.SkillCategory
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

// Seed replaces the store contents. Records without an id get one.
func (m *Memory) Seed(
	degrees []types.Degree,
	institutions []types.Institution,
	skills []types.Skill,
	categories []types.SkillCategory,
) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.degrees = append([]types.Degree(nil), degrees...)
	for i := range m.degrees {
		if m.degrees[i].ID == "" {
			m.degrees[i].ID = uuid.NewString()
		}
	}
	m.institutions = append([]types.Institution(nil), institutions...)
	for i := range m.institutions {
		if m.institutions[i].ID == "" {
			m.institutions[i].ID = uuid.NewString()
		}
	}
	m.skills = append([]types.Skill(nil), skills...)
	for i := range m.skills {
		if m.skills[i].ID == "" {
			m.skills[i].ID = uuid.NewString()
		}
	}
	m.categories = append([]types.SkillCategory(nil), categories...)
	for i := range m.categories {
		if m.categories[i].ID == "" {
			m.categories[i].ID = uuid.NewString()
		}
	}
}

// FetchActiveDegrees returns active degree records
func (m *Memory) FetchActiveDegrees(_ context.Context) ([]types.Degree, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]types.Degree, 0, len(m.degrees))
	for _, d := range m.degrees {
		if d.IsActive {
			out = append(out, d)
		}
	}
	return out, nil
}

// FetchActiveInstitutions returns active institution records
func (m *Memory) FetchActiveInstitutions(_ context.Context) ([]types.Institution, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]types.Institution, 0, len(m.institutions))
	for _, i := range m.institutions {
		if i.IsActive {
			out = append(out, i)
		}
	}
	return out, nil
}

// FetchSkills returns all skill records
func (m *Memory) FetchSkills(_ context.Context) ([]types.Skill, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]types.Skill(nil), m.skills...), nil
}

// FetchSkillCategories returns all skill category records
func (m *Memory) FetchSkillCategories(_ context.Context) ([]types.SkillCategory, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]types.SkillCategory(nil), m.categories...), nil
}

// InsertDegree stores a degree and returns its generated id
func (m *Memory) InsertDegree(_ context.Context, degree types.Degree) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	degree.ID = uuid.NewString()
	m.degrees = append(m.degrees, degree)
	return degree.ID, nil
}

// InsertInstitution stores an institution and returns its generated id
func (m *Memory) InsertInstitution(_ context.Context, institution types.Institution) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	institution.ID = uuid.NewString()
	m.institutions = append(m.institutions, institution)
	return institution.ID, nil
}

// InsertSkill stores a skill and returns its generated id
func (m *Memory) InsertSkill(_ context.Context, skill types.Skill) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	skill.ID = uuid.NewString()
	m.skills = append(m.skills, skill)
	return skill.ID, nil
}

// InsertSkillCategory stores a category and returns its generated id
func (m *Memory) InsertSkillCategory(_ context.Context, category types.SkillCategory) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	category.ID = uuid.NewString()
	m.categories = append(m.categories, category)
	return category.ID, nil
}
