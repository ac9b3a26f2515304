// Package analytics records privacy-conscious page and project views and
// serves them to the admin dashboard.
package analytics

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// PageView is one tracked request. The visitor address is stored hashed.
type PageView struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

// ProjectView is one opening of a project's detail dialog.
type ProjectView struct {
	ProjectID   int       `json:"project_id"`
	ProjectName string    `json:"project_name"`
	HashedIP    string    `json:"hashed_ip"`
	Timestamp   time.Time `json:"timestamp"`
}

type ProjectStat struct {
	ProjectID   int    `json:"project_id"`
	ProjectName string `json:"project_name"`
	Views       int64  `json:"views"`
}

type Stats struct {
	TotalViews     int64         `json:"total_views"`
	UniqueVisitors int64         `json:"unique_visitors"`
	ViewsToday     int64         `json:"views_today"`
	ViewsThisWeek  int64         `json:"views_this_week"`
	ProjectViews   int64         `json:"project_views"`
	TopProjects    []ProjectStat `json:"top_projects"`
	RecentViews    []PageView    `json:"recent_views"`
	GeneratedAt    time.Time     `json:"generated_at"`
}

const (
	topProjectsLimit = 10
	recentViewsLimit = 50
)

const schema = `
CREATE TABLE IF NOT EXISTS page_views (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	hashed_ip TEXT NOT NULL,
	user_agent TEXT NOT NULL DEFAULT '',
	path TEXT NOT NULL,
	ts INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS page_views_ts ON page_views (ts);
CREATE TABLE IF NOT EXISTS project_views (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	project_id INTEGER NOT NULL,
	project_name TEXT NOT NULL,
	hashed_ip TEXT NOT NULL,
	ts INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS project_views_ts ON project_views (ts);
`

// Store persists views in SQLite. Timestamps are Unix seconds.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the database at path and migrates it.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open analytics db: %w", err)
	}
	// sqlite serializes writers; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	s := NewStore(db)
	if err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewStore wraps an open database. Call Migrate before use.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate analytics db: %w", err)
	}
	return nil
}

func (s *Store) stamp(t time.Time) int64 {
	if t.IsZero() {
		t = s.now()
	}
	return t.UTC().Unix()
}

func (s *Store) RecordPageView(ctx context.Context, v PageView) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO page_views (hashed_ip, user_agent, path, ts) VALUES (?, ?, ?, ?)`,
		v.HashedIP, v.UserAgent, v.Path, s.stamp(v.Timestamp))
	if err != nil {
		return fmt.Errorf("record page view: %w", err)
	}
	return nil
}

func (s *Store) RecordProjectView(ctx context.Context, v ProjectView) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO project_views (project_id, project_name, hashed_ip, ts) VALUES (?, ?, ?, ?)`,
		v.ProjectID, v.ProjectName, v.HashedIP, s.stamp(v.Timestamp))
	if err != nil {
		return fmt.Errorf("record project view: %w", err)
	}
	return nil
}

// Stats aggregates everything the dashboard shows.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	now := s.now().UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	stats := &Stats{
		TopProjects: []ProjectStat{},
		RecentViews: []PageView{},
		GeneratedAt: now,
	}

	counts := []struct {
		dst   *int64
		query string
		args  []any
	}{
		{&stats.TotalViews, `SELECT COUNT(*) FROM page_views`, nil},
		{&stats.UniqueVisitors, `SELECT COUNT(DISTINCT hashed_ip) FROM page_views`, nil},
		{&stats.ViewsToday, `SELECT COUNT(*) FROM page_views WHERE ts >= ?`, []any{midnight.Unix()}},
		{&stats.ViewsThisWeek, `SELECT COUNT(*) FROM page_views WHERE ts >= ?`, []any{now.Add(-7 * 24 * time.Hour).Unix()}},
		{&stats.ProjectViews, `SELECT COUNT(*) FROM project_views`, nil},
	}
	for _, q := range counts {
		if err := s.db.QueryRowContext(ctx, q.query, q.args...).Scan(q.dst); err != nil {
			return nil, fmt.Errorf("query stats: %w", err)
		}
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT project_id, project_name, COUNT(*) AS views
		FROM project_views
		GROUP BY project_id, project_name
		ORDER BY views DESC, project_id ASC
		LIMIT ?`, topProjectsLimit)
	if err != nil {
		return nil, fmt.Errorf("query top projects: %w", err)
	}
	for rows.Next() {
		var p ProjectStat
		if err := rows.Scan(&p.ProjectID, &p.ProjectName, &p.Views); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan top project: %w", err)
		}
		stats.TopProjects = append(stats.TopProjects, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query top projects: %w", err)
	}

	rows, err = s.db.QueryContext(ctx, `
		SELECT id, hashed_ip, user_agent, path, ts
		FROM page_views
		ORDER BY ts DESC, id DESC
		LIMIT ?`, recentViewsLimit)
	if err != nil {
		return nil, fmt.Errorf("query recent views: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			v  PageView
			ts int64
		)
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &ts); err != nil {
			return nil, fmt.Errorf("scan recent view: %w", err)
		}
		v.Timestamp = time.Unix(ts, 0).UTC()
		stats.RecentViews = append(stats.RecentViews, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query recent views: %w", err)
	}
	return stats, nil
}

// Cleanup deletes views older than retention and returns how many rows went.
func (s *Store) Cleanup(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := s.now().UTC().Add(-retention).Unix()
	var removed int64
	for _, table := range []string{"page_views", "project_views"} {
		res, err := s.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE ts < ?`, cutoff)
		if err != nil {
			return removed, fmt.Errorf("cleanup %s: %w", table, err)
		}
		n, _ := res.RowsAffected()
		removed += n
	}
	return removed, nil
}
