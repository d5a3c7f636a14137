package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"contestbot/core/logger"
	"contestbot/internal/contest"
)

// StagePending stores a contest in the pending table for later review.
func (r *Repository) StagePending(ctx context.Context, link, date string, channels sql.NullString) error {
	const q = `
		INSERT INTO pending_contests (link, date, dop_channels)
		VALUES (?, ?, ?)
	`
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(q), link, date, channels); err != nil {
		logger.Error(ctx, "db", "pending.stage",
			slog.String("link", link),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("stage pending contest: %w", err)
	}
	logger.Debug(ctx, "db", "pending.stage",
		slog.String("status", "ok"),
		slog.String("link", link),
	)
	return nil
}

// ListPending returns all staged contests ordered by date ascending.
func (r *Repository) ListPending(ctx context.Context) ([]contest.PendingContest, error) {
	const q = `
		SELECT link, date, dop_channels
		FROM pending_contests
		ORDER BY date ASC
	`
	var out []contest.PendingContest
	if err := r.db.SelectContext(ctx, &out, r.db.Rebind(q)); err != nil {
		return nil, fmt.Errorf("list pending contests: %w", err)
	}
	return out, nil
}

// PromotePending moves a staged contest into the main table as active. The
// insert and the delete run in one transaction: a failure partway leaves the
// pending row intact, and the contest is never lost or duplicated. Promoting
// a link that is no longer pending reports false without error, so a repeated
// promotion request is a no-op.
func (r *Repository) PromotePending(ctx context.Context, link string) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("promote pending: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var row contest.PendingContest
	const get = `SELECT link, date, dop_channels FROM pending_contests WHERE link = ?`
	if err := tx.GetContext(ctx, &row, tx.Rebind(get), link); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("promote pending: fetch: %w", err)
	}

	const ins = `
		INSERT INTO contests (link, date, dop_channels, status)
		VALUES (?, ?, ?, ?)
	`
	if _, err := tx.ExecContext(ctx, tx.Rebind(ins), row.Link, row.Date, row.DopChannels, contest.StatusActive); err != nil {
		return false, fmt.Errorf("promote pending: insert: %w", err)
	}

	const del = `DELETE FROM pending_contests WHERE link = ?`
	if _, err := tx.ExecContext(ctx, tx.Rebind(del), link); err != nil {
		return false, fmt.Errorf("promote pending: delete: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("promote pending: commit: %w", err)
	}
	logger.Debug(ctx, "db", "pending.promote",
		slog.String("status", "ok"),
		slog.String("link", link),
	)
	return true, nil
}
