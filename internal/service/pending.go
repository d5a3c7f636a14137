package service

import (
	"context"
	"log/slog"

	"contestbot/core/logger"
	"contestbot/internal/contest"
	"contestbot/internal/repository"
)

const componentPending = "service.pending"

// Pending exposes the staged-contest review operations.
type Pending struct {
	repo *repository.Repository
}

// NewPending wires the pending service over the repository.
func NewPending(repo *repository.Repository) *Pending {
	return &Pending{repo: repo}
}

// Stage stores a contest for later administrative review.
func (s *Pending) Stage(ctx context.Context, link, isoDate, channels string) error {
	if err := s.repo.StagePending(ctx, link, isoDate, contest.Channels(channels)); err != nil {
		return err
	}
	logger.Info(ctx, componentPending, "pending.staged",
		slog.String("link", link),
		slog.String("date", isoDate),
	)
	return nil
}

// List returns all staged contests ordered by date.
func (s *Pending) List(ctx context.Context) ([]contest.PendingContest, error) {
	return s.repo.ListPending(ctx)
}

// Promote moves a staged contest into the main listing. A link that is no
// longer pending reports false without error.
func (s *Pending) Promote(ctx context.Context, link string) (bool, error) {
	done, err := s.repo.PromotePending(ctx, link)
	if err != nil {
		return false, err
	}
	if done {
		logger.Info(ctx, componentPending, "pending.promoted",
			slog.String("link", link),
		)
	}
	return done, nil
}

// PromoteByIndex resolves a position in the date-ordered pending listing and
// promotes that contest. An out-of-range index reports false; the listing may
// have changed since it was rendered.
func (s *Pending) PromoteByIndex(ctx context.Context, index int) (string, bool, error) {
	rows, err := s.repo.ListPending(ctx)
	if err != nil {
		return "", false, err
	}
	if index < 0 || index >= len(rows) {
		logger.Warn(ctx, componentPending, "pending.promote.stale_index",
			slog.Int("index", index),
			slog.Int("pending_count", len(rows)),
		)
		return "", false, nil
	}
	link := rows[index].Link
	done, err := s.Promote(ctx, link)
	return link, done, err
}
