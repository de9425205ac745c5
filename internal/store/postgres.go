package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/cv-ingest/internal/types"
)

// Postgres implements DocumentStore on a pgx connection pool.
type Postgres struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Postgres{pool: pool}, nil
}

// Close closes the connection pool
func (p *Postgres) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}

// FetchActiveDegrees returns all active degree records
func (p *Postgres) FetchActiveDegrees(ctx context.Context) ([]types.Degree, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT id, name, COALESCE(short_name, ''), level, is_active
		 FROM degrees
		 WHERE is_active = true
		 ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch degrees: %w", err)
	}
	defer rows.Close()

	return scanAll(rows, func(rows pgx.Rows) (types.Degree, error) {
		var d types.Degree
		err := rows.Scan(&d.ID, &d.Name, &d.ShortName, &d.Level, &d.IsActive)
		return d, err
	})
}

// FetchActiveInstitutions returns all active institution records
func (p *Postgres) FetchActiveInstitutions(ctx context.Context) ([]types.Institution, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT id, name, type, COALESCE(location, ''), COALESCE(division, ''), verified, is_active
		 FROM institutions
		 WHERE is_active = true
		 ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch institutions: %w", err)
	}
	defer rows.Close()

	return scanAll(rows, func(rows pgx.Rows) (types.Institution, error) {
		var i types.Institution
		err := rows.Scan(&i.ID, &i.Name, &i.Type, &i.Location, &i.Division, &i.Verified, &i.IsActive)
		return i, err
	})
}

// FetchSkills returns all skill records
func (p *Postgres) FetchSkills(ctx context.Context) ([]types.Skill, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT id, name, category_id FROM skills ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch skills: %w", err)
	}
	defer rows.Close()

	return scanAll(rows, func(rows pgx.Rows) (types.Skill, error) {
		var s types.Skill
		err := rows.Scan(&s.ID, &s.Name, &s.CategoryID)
		return s, err
	})
}

// FetchSkillCategories returns all skill category records
func (p *Postgres) FetchSkillCategories(ctx context.Context) ([]types.SkillCategory, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT id, name FROM skill_categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch skill categories: %w", err)
	}
	defer rows.Close()

	return scanAll(rows, func(rows pgx.Rows) (types.SkillCategory, error) {
		var c types.SkillCategory
		err := rows.Scan(&c.ID, &c.Name)
		return c, err
	})
}

// InsertDegree creates a degree record and returns its id
func (p *Postgres) InsertDegree(ctx context.Context, degree types.Degree) (string, error) {
	var id string
	err := p.pool.QueryRow(ctx,
		`INSERT INTO degrees (name, short_name, level, is_active)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		degree.Name, degree.ShortName, degree.Level, degree.IsActive,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to insert degree %q: %w", degree.Name, err)
	}
	return id, nil
}

// InsertInstitution creates an institution record and returns its id
func (p *Postgres) InsertInstitution(ctx context.Context, institution types.Institution) (string, error) {
	var id string
	err := p.pool.QueryRow(ctx,
		`INSERT INTO institutions (name, type, location, division, verified, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		institution.Name, institution.Type, institution.Location,
		institution.Division, institution.Verified, institution.IsActive,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to insert institution %q: %w", institution.Name, err)
	}
	return id, nil
}

// InsertSkill creates a skill record and returns its id
func (p *Postgres) InsertSkill(ctx context.Context, skill types.Skill) (string, error) {
	var id string
	err := p.pool.QueryRow(ctx,
		`INSERT INTO skills (name, category_id)
		 VALUES ($1, $2)
		 RETURNING id`,
		skill.Name, skill.CategoryID,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to insert skill %q: %w", skill.Name, err)
	}
	return id, nil
}

// InsertSkillCategory creates a skill category record and returns its id
func (p *Postgres) InsertSkillCategory(ctx context.Context, category types.SkillCategory) (string, error) {
	var id string
	err := p.pool.QueryRow(ctx,
		`INSERT INTO skill_categories (name)
		 VALUES ($1)
		 RETURNING id`,
		category.Name,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to insert skill category %q: %w", category.Name, err)
	}
	return id, nil
}

// scanAll collects every row through the given scanner
func scanAll[T any](rows pgx.Rows, scan func(pgx.Rows) (T, error)) ([]T, error) {
	var out []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration failed: %w", err)
	}
	return out, nil
}
