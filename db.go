package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/MyOne00/portfolio/internal/repofeed"
)

// Timestamps are stored as UTC text in this layout; lexical order is time order.
const timeLayout = "2006-01-02 15:04:05"

const visitorRetention = 12 * 30 * 24 * time.Hour

type Store struct {
	db *sql.DB
}

func OpenStore(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// A single connection keeps ":memory:" databases shared and serialises writes.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS visitors (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			hashed_ip TEXT NOT NULL,
			user_agent TEXT,
			path TEXT,
			visited_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS visitors_visited_at ON visitors (visited_at)`,
		`CREATE TABLE IF NOT EXISTS feed_loads (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			owner TEXT NOT NULL,
			source TEXT NOT NULL,
			repo_count INTEGER NOT NULL,
			error TEXT,
			duration_ms INTEGER NOT NULL,
			loaded_at TEXT NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

type VisitorMetric struct {
	ID        int       `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

type FeedLoad struct {
	ID         int             `json:"id"`
	Owner      string          `json:"owner"`
	Source     repofeed.Source `json:"source"`
	RepoCount  int             `json:"repo_count"`
	Error      string          `json:"error,omitempty"`
	DurationMS int64           `json:"duration_ms"`
	LoadedAt   time.Time       `json:"loaded_at"`
}

type AdminStats struct {
	TotalVisitors    int64           `json:"total_visitors"`
	UniqueVisitors   int64           `json:"unique_visitors"`
	VisitorsToday    int64           `json:"visitors_today"`
	VisitorsThisWeek int64           `json:"visitors_this_week"`
	TotalLoads       int64           `json:"total_loads"`
	FallbackLoads    int64           `json:"fallback_loads"`
	RecentVisitors   []VisitorMetric `json:"recent_visitors"`
	RecentLoads      []FeedLoad      `json:"recent_loads"`
}

func (s *Store) RecordVisit(ctx context.Context, v VisitorMetric) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO visitors (hashed_ip, user_agent, path, visited_at)
		VALUES (?, ?, ?, ?)
	`, v.HashedIP, v.UserAgent, v.Path, v.Timestamp.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("record visit: %w", err)
	}
	return nil
}

// RecordLoad persists one repository feed load.
func (s *Store) RecordLoad(ctx context.Context, load repofeed.Load) error {
	var errText sql.NullString
	if load.Err != nil {
		errText = sql.NullString{String: load.Err.Error(), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO feed_loads (owner, source, repo_count, error, duration_ms, loaded_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, load.Owner, string(load.Source), load.Count, errText, load.Duration.Milliseconds(), load.At.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("record feed load: %w", err)
	}
	return nil
}

func (s *Store) RecentVisitors(ctx context.Context, limit int) ([]VisitorMetric, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, hashed_ip, COALESCE(user_agent, ''), COALESCE(path, ''), visited_at
		FROM visitors
		ORDER BY visited_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query visitors: %w", err)
	}
	defer rows.Close()

	var visitors []VisitorMetric
	for rows.Next() {
		var v VisitorMetric
		var at string
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &at); err != nil {
			return nil, fmt.Errorf("scan visitor: %w", err)
		}
		v.Timestamp = parseStored(at)
		visitors = append(visitors, v)
	}
	return visitors, rows.Err()
}

func (s *Store) RecentLoads(ctx context.Context, limit int) ([]FeedLoad, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, owner, source, repo_count, COALESCE(error, ''), duration_ms, loaded_at
		FROM feed_loads
		ORDER BY loaded_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query feed loads: %w", err)
	}
	defer rows.Close()

	var loads []FeedLoad
	for rows.Next() {
		var l FeedLoad
		var source, at string
		if err := rows.Scan(&l.ID, &l.Owner, &source, &l.RepoCount, &l.Error, &l.DurationMS, &at); err != nil {
			return nil, fmt.Errorf("scan feed load: %w", err)
		}
		l.Source = repofeed.Source(source)
		l.LoadedAt = parseStored(at)
		loads = append(loads, l)
	}
	return loads, rows.Err()
}

// Stats aggregates visitor and feed figures relative to now.
func (s *Store) Stats(ctx context.Context, now time.Time) (*AdminStats, error) {
	stats := &AdminStats{}
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	weekAgo := now.Add(-7 * 24 * time.Hour)

	counts := []struct {
		query string
		args  []any
		dst   *int64
	}{
		{`SELECT COUNT(*) FROM visitors`, nil, &stats.TotalVisitors},
		{`SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, nil, &stats.UniqueVisitors},
		{`SELECT COUNT(*) FROM visitors WHERE visited_at >= ?`, []any{today.Format(timeLayout)}, &stats.VisitorsToday},
		{`SELECT COUNT(*) FROM visitors WHERE visited_at >= ?`, []any{weekAgo.Format(timeLayout)}, &stats.VisitorsThisWeek},
		{`SELECT COUNT(*) FROM feed_loads`, nil, &stats.TotalLoads},
		{`SELECT COUNT(*) FROM feed_loads WHERE source = ?`, []any{string(repofeed.SourceFallback)}, &stats.FallbackLoads},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query, c.args...).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("stats: %w", err)
		}
	}

	var err error
	if stats.RecentVisitors, err = s.RecentVisitors(ctx, 50); err != nil {
		return nil, err
	}
	if stats.RecentLoads, err = s.RecentLoads(ctx, 20); err != nil {
		return nil, err
	}
	return stats, nil
}

// CleanupVisitors deletes visitor rows older than the retention window.
func (s *Store) CleanupVisitors(ctx context.Context, now time.Time) (int64, error) {
	cutoff := now.Add(-visitorRetention).UTC().Format(timeLayout)
	res, err := s.db.ExecContext(ctx, `DELETE FROM visitors WHERE visited_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("cleanup visitors: %w", err)
	}
	return res.RowsAffected()
}

func parseStored(s string) time.Time {
	t, err := time.ParseInLocation(timeLayout, s, time.UTC)
	if err != nil {
		return time.Time{}
	}
	return t
}
