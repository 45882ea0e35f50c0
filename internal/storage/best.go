package storage

import (
	"database/sql"
	"errors"
	"fmt"
)

// GridKey returns the best-score key of a rows x cols board.
func GridKey(rows, cols int) string {
	return fmt.Sprintf("grid-%dx%d", rows, cols)
}

// BestScore returns the best score recorded for the grid size, 0 if none.
func (s *Store) BestScore(rows, cols int) (int, error) {
	var score int
	err := s.db.QueryRow(
		"SELECT score FROM best_scores WHERE grid = ?",
		GridKey(rows, cols),
	).Scan(&score)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}
	return score, nil
}

// RecordBest stores score as the grid's best if it beats the stored one.
// It reports whether the best score changed.
func (s *Store) RecordBest(rows, cols, score int) (bool, error) {
	if score <= 0 {
		return false, nil
	}

	res, err := s.db.Exec(
		`INSERT INTO best_scores (grid, score, updated_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(grid) DO UPDATE
		 SET score = excluded.score, updated_at = excluded.updated_at
		 WHERE excluded.score > best_scores.score`,
		GridKey(rows, cols), score,
	)
	if err != nil {
		return false, fmt.Errorf("storage: cannot record best score: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("storage: cannot get affected rows: %w", err)
	}
	return n > 0, nil
}

// AllBestScores returns every recorded best score keyed by GridKey.
func (s *Store) AllBestScores() (map[string]int, error) {
	rows, err := s.db.Query("SELECT grid, score FROM best_scores")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query best scores: %w", err)
	}
	defer rows.Close()

	best := make(map[string]int)
	for rows.Next() {
		var grid string
		var score int
		if err := rows.Scan(&grid, &score); err != nil {
			return nil, fmt.Errorf("storage: cannot scan best score: %w", err)
		}
		best[grid] = score
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return best, nil
}
