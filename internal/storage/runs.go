package storage

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-runner/internal/registry"
)

// RunRecord is one finished run of the runner.
type RunRecord struct {
	ID         int64
	GameID     string
	Level      int
	Distance   float64
	Score      int
	Life       int
	Seed       int64
	Ticks      uint64
	Spawned    int
	Pits       int
	Recoveries int
	Completed  bool
	CreatedAt  time.Time
}

// RecordFromSummary builds the record of a run reported by a game.
func RecordFromSummary(gameID string, sum registry.RunSummary) RunRecord {
	return RunRecord{
		GameID:     gameID,
		Level:      sum.Level,
		Distance:   sum.Distance,
		Score:      sum.Score,
		Life:       sum.Life,
		Seed:       sum.Seed,
		Ticks:      sum.Ticks,
		Spawned:    sum.Spawned,
		Pits:       sum.Pits,
		Recoveries: sum.Recoveries,
		Completed:  sum.Completed,
	}
}

// SaveRun records a finished run. Returns the ID of the inserted record.
func (s *Store) SaveRun(r RunRecord) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO runs
		 (game_id, level, distance, score, life, seed, ticks, spawned, pits, recoveries, completed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.GameID, r.Level, r.Distance, r.Score, r.Life, r.Seed,
		int64(r.Ticks), r.Spawned, r.Pits, r.Recoveries, r.Completed,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecentRuns returns the latest runs of a game, newest first.
// An empty gameID returns runs of every game.
func (s *Store) RecentRuns(gameID string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT id, game_id, level, distance, score, life, seed, ticks, spawned, pits, recoveries, completed, created_at
		 FROM runs
		 WHERE (? = '' OR game_id = ?)
		 ORDER BY id DESC
		 LIMIT ?`,
		gameID, gameID, limit,
	)
}

// LongestRuns returns the runs of a game that covered the most distance.
func (s *Store) LongestRuns(gameID string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT id, game_id, level, distance, score, life, seed, ticks, spawned, pits, recoveries, completed, created_at
		 FROM runs
		 WHERE game_id = ?
		 ORDER BY distance DESC
		 LIMIT ?`,
		gameID, limit,
	)
}

// BestLevel returns the highest level completed in a game, 0 if none.
func (s *Store) BestLevel(gameID string) (int, error) {
	var level int
	err := s.db.QueryRow(
		"SELECT COALESCE(MAX(level), 0) FROM runs WHERE game_id = ? AND completed = 1",
		gameID,
	).Scan(&level)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best level: %w", err)
	}
	return level, nil
}

func (s *Store) queryRuns(query string, args ...any) ([]RunRecord, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		var ticks int64
		var createdAt any
		if err := rows.Scan(
			&r.ID, &r.GameID, &r.Level, &r.Distance, &r.Score, &r.Life, &r.Seed,
			&ticks, &r.Spawned, &r.Pits, &r.Recoveries, &r.Completed, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan run: %w", err)
		}
		r.Ticks = uint64(ticks)
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}
