// Package history archives ended sessions in SQLite and aggregates
// them into the statistics block.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/ports"
	_ "modernc.org/sqlite"
)

// Repository implements ports.History using SQLite.
type Repository struct {
	db *sql.DB
}

// Ensure Repository implements ports.History.
var _ ports.History = (*Repository)(nil)

// New opens (or creates) the archive database at dbPath.
func New(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// An in-memory database exists per connection; cap the pool so
	// every query sees the same one.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	repo := &Repository{db: db}
	if err := repo.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return repo, nil
}

// NewMemory opens an in-memory archive for testing.
func NewMemory() (*Repository, error) {
	return New(":memory:")
}

// Close closes the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		mode TEXT NOT NULL,
		completed_at DATETIME NOT NULL,
		duration_s INTEGER NOT NULL,
		completed INTEGER NOT NULL,
		focus_score INTEGER NOT NULL,
		distractions INTEGER NOT NULL,
		energy_level INTEGER NOT NULL,
		git_branch TEXT,
		git_commit TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_completed_at ON sessions(completed_at);
	CREATE INDEX IF NOT EXISTS idx_sessions_mode ON sessions(mode);
	`

	if _, err := r.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

// Record persists one ended session.
func (r *Repository) Record(ctx context.Context, rec *domain.SessionRecord) error {
	query := `
		INSERT INTO sessions (
			id, mode, completed_at, duration_s, completed,
			focus_score, distractions, energy_level, git_branch, git_commit
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		rec.ID,
		string(rec.Mode),
		rec.CompletedAt.UTC(),
		rec.DurationSeconds,
		rec.Completed,
		rec.FocusScore,
		rec.Distractions,
		rec.EnergyLevel,
		rec.GitBranch,
		rec.GitCommit,
	)
	if err != nil {
		return fmt.Errorf("failed to record session: %w", err)
	}
	return nil
}

// Recent returns archived sessions since the given time, newest first.
func (r *Repository) Recent(ctx context.Context, since time.Time) ([]*domain.SessionRecord, error) {
	query := `
		SELECT id, mode, completed_at, duration_s, completed,
			focus_score, distractions, energy_level, git_branch, git_commit
		FROM sessions
		WHERE completed_at >= ?
		ORDER BY completed_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, since.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var records []*domain.SessionRecord
	for rows.Next() {
		var rec domain.SessionRecord
		var mode string
		if err := rows.Scan(
			&rec.ID, &mode, &rec.CompletedAt, &rec.DurationSeconds, &rec.Completed,
			&rec.FocusScore, &rec.Distractions, &rec.EnergyLevel, &rec.GitBranch, &rec.GitCommit,
		); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		rec.Mode = domain.Mode(mode)
		records = append(records, &rec)
	}
	return records, rows.Err()
}

// Statistics aggregates the work-session archive relative to now:
// best-focus hours, completion rate, most productive weekdays, and the
// weekly (7-day) and monthly (30-day) progress buckets.
func (r *Repository) Statistics(ctx context.Context, now time.Time) (domain.Statistics, error) {
	stats := domain.Statistics{
		BestFocusHours:     []int{},
		MostProductiveDays: []time.Weekday{},
		WeeklyProgress:     make([]int, 7),
		MonthlyProgress:    make([]int, 30),
	}

	since := now.AddDate(0, 0, -30)
	records, err := r.Recent(ctx, since)
	if err != nil {
		return stats, err
	}

	hourCounts := map[int]int{}
	dayCounts := map[time.Weekday]int{}
	var workTotal, workCompleted int

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	for _, rec := range records {
		if rec.Mode != domain.ModeWork {
			continue
		}
		workTotal++
		if !rec.Completed {
			continue
		}
		workCompleted++

		local := rec.CompletedAt.In(now.Location())
		hourCounts[local.Hour()]++
		dayCounts[local.Weekday()]++

		day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, now.Location())
		daysAgo := int(today.Sub(day).Hours() / 24)
		if daysAgo >= 0 && daysAgo < 7 {
			stats.WeeklyProgress[daysAgo]++
		}
		if daysAgo >= 0 && daysAgo < 30 {
			stats.MonthlyProgress[daysAgo]++
		}
	}

	if workTotal > 0 {
		stats.AverageCompletionRate = 100 * float64(workCompleted) / float64(workTotal)
	}
	stats.BestFocusHours = topHours(hourCounts, 3)
	stats.MostProductiveDays = topWeekdays(dayCounts, 2)

	return stats, nil
}

// topHours returns the n busiest hours, busiest first, ties by hour.
func topHours(counts map[int]int, n int) []int {
	hours := make([]int, 0, len(counts))
	for h := range counts {
		hours = append(hours, h)
	}
	sort.Slice(hours, func(i, j int) bool {
		if counts[hours[i]] != counts[hours[j]] {
			return counts[hours[i]] > counts[hours[j]]
		}
		return hours[i] < hours[j]
	})
	if len(hours) > n {
		hours = hours[:n]
	}
	return hours
}

// topWeekdays returns the n busiest weekdays, busiest first.
func topWeekdays(counts map[time.Weekday]int, n int) []time.Weekday {
	days := make([]time.Weekday, 0, len(counts))
	for d := range counts {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool {
		if counts[days[i]] != counts[days[j]] {
			return counts[days[i]] > counts[days[j]]
		}
		return days[i] < days[j]
	})
	if len(days) > n {
		days = days[:n]
	}
	return days
}
