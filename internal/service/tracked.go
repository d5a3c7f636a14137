package service

import (
	"context"
	"log/slog"

	"contestbot/core/logger"
	"contestbot/internal/contest"
	"contestbot/internal/repository"
)

const componentTracked = "service.tracked"

// Tracked exposes the per-user bookmark operations.
type Tracked struct {
	repo *repository.Repository
}

// NewTracked wires the tracked service over the repository.
func NewTracked(repo *repository.Repository) *Tracked {
	return &Tracked{repo: repo}
}

// Track bookmarks a contest for the user. Re-tracking the same link updates
// the stored date in place.
func (s *Tracked) Track(ctx context.Context, userID int64, link, isoDate string) error {
	if err := s.repo.UpsertTracked(ctx, userID, link, isoDate); err != nil {
		return err
	}
	logger.Info(ctx, componentTracked, "tracked.saved",
		slog.Int64("user_id", userID),
		slog.String("link", link),
		slog.String("date", isoDate),
	)
	return nil
}

// List returns the user's bookmarks ordered by date.
func (s *Tracked) List(ctx context.Context, userID int64) ([]contest.TrackedContest, error) {
	return s.repo.ListTracked(ctx, userID)
}

// DeleteByIndex resolves a position in the user's date-ordered bookmark
// listing and removes that row. An out-of-range index reports false.
func (s *Tracked) DeleteByIndex(ctx context.Context, userID int64, index int) (string, bool, error) {
	rows, err := s.repo.ListTracked(ctx, userID)
	if err != nil {
		return "", false, err
	}
	if index < 0 || index >= len(rows) {
		logger.Warn(ctx, componentTracked, "tracked.delete.stale_index",
			slog.Int64("user_id", userID),
			slog.Int("index", index),
			slog.Int("tracked_count", len(rows)),
		)
		return "", false, nil
	}
	link := rows[index].Link
	if err := s.repo.DeleteTracked(ctx, userID, link); err != nil {
		return "", false, err
	}
	logger.Info(ctx, componentTracked, "tracked.deleted",
		slog.Int64("user_id", userID),
		slog.String("link", link),
	)
	return link, true, nil
}
