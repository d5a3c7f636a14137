package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"contestbot/core/logger"
	"contestbot/internal/contest"
)

// InsertActive stores a new contest with active status. The caller is
// responsible for not invoking this twice for the same logical submission
// within one conversation.
func (r *Repository) InsertActive(ctx context.Context, link, date string, channels sql.NullString) error {
	const q = `
		INSERT INTO contests (link, date, dop_channels, status)
		VALUES (?, ?, ?, ?)
	`
	start := time.Now()
	_, err := r.db.ExecContext(ctx, r.db.Rebind(q), link, date, channels, contest.StatusActive)
	if err != nil {
		logger.Error(ctx, "db", "contests.insert",
			slog.String("link", link),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("insert contest: %w", err)
	}
	logger.Debug(ctx, "db", "contests.insert",
		slog.String("status", "ok"),
		slog.String("link", link),
		slog.Duration("duration", logger.Took(start)),
	)
	return nil
}

// FinishByLink moves the contest with the given link from active to finished.
// It reports whether a row changed; a missing or already finished contest is a
// no-op, never an error, so repeated finishes are safe.
func (r *Repository) FinishByLink(ctx context.Context, link string) (bool, error) {
	const q = `
		UPDATE contests
		SET status = ?
		WHERE link = ? AND status = ?
	`
	res, err := r.db.ExecContext(ctx, r.db.Rebind(q), contest.StatusFinished, link, contest.StatusActive)
	if err != nil {
		logger.Error(ctx, "db", "contests.finish",
			slog.String("link", link),
			slog.String("err", err.Error()),
		)
		return false, fmt.Errorf("finish contest: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("finish contest: rows affected: %w", err)
	}
	logger.Debug(ctx, "db", "contests.finish",
		slog.String("status", "ok"),
		slog.String("link", link),
		slog.Int64("count", affected),
	)
	return affected > 0, nil
}

// ListByStatus returns contests for the given status ordered by date
// ascending, each annotated with the count of distinct historical
// participation records joined by link. A non-empty dateFilter restricts the
// listing to a single ISO day.
func (r *Repository) ListByStatus(ctx context.Context, status contest.Status, dateFilter string) ([]contest.ContestWithCount, error) {
	q := `
		SELECT c.link, c.date, c.dop_channels, c.status,
		       COUNT(DISTINCT h.id) AS participant_count
		FROM contests c
		LEFT JOIN participation_history h ON c.link = h.link
		WHERE c.status = ?
	`
	args := []any{status}
	if dateFilter != "" {
		q += ` AND c.date = ?`
		args = append(args, dateFilter)
	}
	q += `
		GROUP BY c.link, c.date, c.dop_channels, c.status
		ORDER BY c.date ASC
	`

	var out []contest.ContestWithCount
	if err := r.db.SelectContext(ctx, &out, r.db.Rebind(q), args...); err != nil {
		logger.Error(ctx, "db", "contests.list",
			slog.String("contest_status", string(status)),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("list contests: %w", err)
	}
	return out, nil
}

// LinkExists reports whether any contest row carries the given link.
func (r *Repository) LinkExists(ctx context.Context, link string) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM contests WHERE link = ?)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, r.db.Rebind(q), link); err != nil {
		return false, fmt.Errorf("link exists: %w", err)
	}
	return exists, nil
}
