// Package store provides access to the reference catalog backing
// entity resolution: degrees, institutions, skills, and skill
// categories. The PostgreSQL implementation is the production path;
// the in-memory implementation serves tests and dry runs.
package store

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/cv-ingest/internal/types"
)

// DocumentStore is the catalog persistence contract. Fetch methods
// return full collections; the catalog is small enough to hold in
// memory for resolution. Insert methods return the new record's id.
type DocumentStore interface {
	FetchActiveDegrees(ctx context.Context) ([]types.Degree, error)
	FetchActiveInstitutions(ctx context.Context) ([]types.Institution, error)
	FetchSkills(ctx context.Context) ([]types.Skill, error)
	FetchSkillCategories(ctx context.Context) ([]types.SkillCategory, error)

	InsertDegree(ctx context.Context, degree types.Degree) (string, error)
	InsertInstitution(ctx context.Context, institution types.Institution) (string, error)
	InsertSkill(ctx context.Context, skill types.Skill) (string, error)
	InsertSkillCategory(ctx context.Context, category types.SkillCategory) (string, error)
}

// Catalog is a point-in-time snapshot of the four reference
// collections.
type Catalog struct {
	Degrees      []types.Degree
	Institutions []types.Institution
	Skills       []types.Skill
	Categories   []types.SkillCategory
}

// LoadAll fetches the four collections concurrently. The reads are
// independent, so a failure in any one cancels the rest.
func LoadAll(ctx context.Context, s DocumentStore) (*Catalog, error) {
	var catalog Catalog

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		catalog.Degrees, err = s.FetchActiveDegrees(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		catalog.Institutions, err = s.FetchActiveInstitutions(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		catalog.Skills, err = s.FetchSkills(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		catalog.Categories, err = s.FetchSkillCategories(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &catalog, nil
}
