package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS projects (
	position INTEGER NOT NULL,
	id INTEGER NOT NULL,
	name TEXT NOT NULL,
	complexity TEXT NOT NULL,
	time TEXT NOT NULL,
	features TEXT,
	skills TEXT,
	learning TEXT,
	image_url TEXT,
	github_url TEXT,
	live_demo_url TEXT,
	tags TEXT,
	prerequisites TEXT,
	popularity INTEGER,
	last_updated TEXT
);
CREATE TABLE IF NOT EXISTS skills (
	position INTEGER NOT NULL,
	id INTEGER NOT NULL,
	title TEXT NOT NULL,
	content TEXT,
	level TEXT,
	icon TEXT,
	category TEXT,
	projects TEXT,
	resources TEXT
);
CREATE TABLE IF NOT EXISTS techniques (
	position INTEGER NOT NULL,
	id INTEGER NOT NULL,
	title TEXT NOT NULL,
	content TEXT,
	relevance TEXT,
	difficulty TEXT,
	category TEXT,
	icon TEXT,
	code_example TEXT,
	use_cases TEXT,
	related_skills TEXT,
	resources TEXT
);`

// OpenSQLite opens a sqlite catalog file.
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	return db, nil
}

// SaveSQLite replaces the catalog tables with c in one transaction.
func SaveSQLite(ctx context.Context, db *sql.DB, c Catalog) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("create catalog tables: %w", err)
	}
	for _, table := range []string{"projects", "skills", "techniques"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for i, p := range c.Projects {
		var lastUpdated sql.NullString
		if p.LastUpdated != nil {
			lastUpdated = sql.NullString{String: p.LastUpdated.UTC().Format(time.RFC3339), Valid: true}
		}
		var popularity sql.NullInt64
		if p.Popularity != nil {
			popularity = sql.NullInt64{Int64: int64(*p.Popularity), Valid: true}
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO projects (position, id, name, complexity, time, features, skills, learning,
				image_url, github_url, live_demo_url, tags, prerequisites, popularity, last_updated)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			i, p.ID, p.Name, string(p.Complexity), p.Time, jsonText(p.Features), jsonText(p.Skills), p.Learning,
			p.ImageURL, p.GithubURL, p.LiveDemoURL, jsonText(p.Tags), jsonText(p.Prerequisites), popularity, lastUpdated)
		if err != nil {
			return fmt.Errorf("insert project %d: %w", p.ID, err)
		}
	}

	for i, s := range c.Skills {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO skills (position, id, title, content, level, icon, category, projects, resources)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			i, s.ID, s.Title, s.Content, string(s.Level), s.Icon, s.Category, jsonText(s.Projects), jsonText(s.Resources))
		if err != nil {
			return fmt.Errorf("insert skill %d: %w", s.ID, err)
		}
	}

	for i, t := range c.Techniques {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO techniques (position, id, title, content, relevance, difficulty, category, icon,
				code_example, use_cases, related_skills, resources)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			i, t.ID, t.Title, t.Content, jsonText(t.Relevance), string(t.Difficulty), t.Category, t.Icon,
			t.CodeExample, jsonText(t.UseCases), jsonText(t.RelatedSkills), jsonText(t.Resources))
		if err != nil {
			return fmt.Errorf("insert technique %d: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// LoadSQLite reads a catalog written by SaveSQLite, in stored order.
func LoadSQLite(ctx context.Context, db *sql.DB) (Catalog, error) {
	var c Catalog

	rows, err := db.QueryContext(ctx, `
		SELECT id, name, complexity, time, features, skills, learning, image_url, github_url,
			live_demo_url, tags, prerequisites, popularity, last_updated
		FROM projects ORDER BY position`)
	if err != nil {
		return Catalog{}, fmt.Errorf("query projects: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			p                                   Project
			complexity                          string
			features, skills, tags, prereqs     sql.NullString
			learning, image, github, demo, last sql.NullString
			popularity                          sql.NullInt64
		)
		if err := rows.Scan(&p.ID, &p.Name, &complexity, &p.Time, &features, &skills, &learning, &image,
			&github, &demo, &tags, &prereqs, &popularity, &last); err != nil {
			return Catalog{}, fmt.Errorf("scan project: %w", err)
		}
		p.Complexity = Complexity(complexity)
		p.Learning, p.ImageURL, p.GithubURL, p.LiveDemoURL = learning.String, image.String, github.String, demo.String
		for _, f := range []struct {
			src sql.NullString
			dst *StringList
		}{{features, &p.Features}, {skills, &p.Skills}, {tags, &p.Tags}, {prereqs, &p.Prerequisites}} {
			if err := fromJSONText(f.src, f.dst); err != nil {
				return Catalog{}, fmt.Errorf("project %d: %w", p.ID, err)
			}
		}
		if popularity.Valid {
			v := int(popularity.Int64)
			p.Popularity = &v
		}
		if last.Valid && last.String != "" {
			ts, err := time.Parse(time.RFC3339, last.String)
			if err != nil {
				return Catalog{}, fmt.Errorf("project %d last_updated: %w", p.ID, err)
			}
			p.LastUpdated = &ts
		}
		c.Projects = append(c.Projects, p)
	}
	if err := rows.Err(); err != nil {
		return Catalog{}, fmt.Errorf("iterate projects: %w", err)
	}

	skillRows, err := db.QueryContext(ctx, `
		SELECT id, title, content, level, icon, category, projects, resources
		FROM skills ORDER BY position`)
	if err != nil {
		return Catalog{}, fmt.Errorf("query skills: %w", err)
	}
	defer skillRows.Close()
	for skillRows.Next() {
		var (
			s                              Skill
			content, level, icon, category sql.NullString
			projects, resources            sql.NullString
		)
		if err := skillRows.Scan(&s.ID, &s.Title, &content, &level, &icon, &category, &projects, &resources); err != nil {
			return Catalog{}, fmt.Errorf("scan skill: %w", err)
		}
		s.Content, s.Level, s.Icon, s.Category = content.String, SkillLevel(level.String), icon.String, category.String
		if err := fromJSONText(projects, &s.Projects); err != nil {
			return Catalog{}, fmt.Errorf("skill %d: %w", s.ID, err)
		}
		if err := fromJSONText(resources, &s.Resources); err != nil {
			return Catalog{}, fmt.Errorf("skill %d: %w", s.ID, err)
		}
		c.Skills = append(c.Skills, s)
	}
	if err := skillRows.Err(); err != nil {
		return Catalog{}, fmt.Errorf("iterate skills: %w", err)
	}

	techRows, err := db.QueryContext(ctx, `
		SELECT id, title, content, relevance, difficulty, category, icon, code_example,
			use_cases, related_skills, resources
		FROM techniques ORDER BY position`)
	if err != nil {
		return Catalog{}, fmt.Errorf("query techniques: %w", err)
	}
	defer techRows.Close()
	for techRows.Next() {
		var (
			t                                        Technique
			content, relevance, difficulty, category sql.NullString
			icon, code, useCases, related, resources sql.NullString
		)
		if err := techRows.Scan(&t.ID, &t.Title, &content, &relevance, &difficulty, &category, &icon, &code,
			&useCases, &related, &resources); err != nil {
			return Catalog{}, fmt.Errorf("scan technique: %w", err)
		}
		t.Content, t.Difficulty, t.Category = content.String, TechniqueDifficulty(difficulty.String), category.String
		t.Icon, t.CodeExample = icon.String, code.String
		if err := fromJSONText(relevance, &t.Relevance); err != nil {
			return Catalog{}, fmt.Errorf("technique %d: %w", t.ID, err)
		}
		if err := fromJSONText(useCases, &t.UseCases); err != nil {
			return Catalog{}, fmt.Errorf("technique %d: %w", t.ID, err)
		}
		if err := fromJSONText(related, &t.RelatedSkills); err != nil {
			return Catalog{}, fmt.Errorf("technique %d: %w", t.ID, err)
		}
		if err := fromJSONText(resources, &t.Resources); err != nil {
			return Catalog{}, fmt.Errorf("technique %d: %w", t.ID, err)
		}
		c.Techniques = append(c.Techniques, t)
	}
	if err := techRows.Err(); err != nil {
		return Catalog{}, fmt.Errorf("iterate techniques: %w", err)
	}

	c.normalize()
	return c, nil
}

func jsonText(v any) sql.NullString {
	b, err := json.Marshal(v)
	if err != nil || string(b) == "null" {
		return sql.NullString{}
	}
	return sql.NullString{String: string(b), Valid: true}
}

func fromJSONText(src sql.NullString, dst any) error {
	if !src.Valid || src.String == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(src.String), dst); err != nil {
		return fmt.Errorf("decode json column: %w", err)
	}
	return nil
}
