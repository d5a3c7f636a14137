package repository

import (
	"context"
	"fmt"
	"log/slog"

	"contestbot/core/logger"
	"contestbot/internal/contest"
)

// UpsertTracked stores a per-user bookmark. Re-tracking the same link updates
// the date in place; the (user_id, link) key never gains a second row.
func (r *Repository) UpsertTracked(ctx context.Context, userID int64, link, date string) error {
	const q = `
		INSERT INTO tracked_contests (user_id, link, date)
		VALUES (?, ?, ?)
		ON CONFLICT (user_id, link) DO UPDATE SET date = EXCLUDED.date
	`
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(q), userID, link, date); err != nil {
		logger.Error(ctx, "db", "tracked.upsert",
			slog.Int64("user_id", userID),
			slog.String("link", link),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("upsert tracked contest: %w", err)
	}
	return nil
}

// DeleteTracked removes one bookmark of the given user.
func (r *Repository) DeleteTracked(ctx context.Context, userID int64, link string) error {
	const q = `DELETE FROM tracked_contests WHERE user_id = ? AND link = ?`
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(q), userID, link); err != nil {
		return fmt.Errorf("delete tracked contest: %w", err)
	}
	return nil
}

// ListTracked returns the user's bookmarks ordered by date ascending.
func (r *Repository) ListTracked(ctx context.Context, userID int64) ([]contest.TrackedContest, error) {
	const q = `
		SELECT user_id, link, date
		FROM tracked_contests
		WHERE user_id = ?
		ORDER BY date ASC
	`
	var out []contest.TrackedContest
	if err := r.db.SelectContext(ctx, &out, r.db.Rebind(q), userID); err != nil {
		return nil, fmt.Errorf("list tracked contests: %w", err)
	}
	return out, nil
}
