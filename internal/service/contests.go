package service

import (
	"context"
	"log/slog"

	"contestbot/core/logger"
	"contestbot/internal/contest"
	"contestbot/internal/repository"
)

const componentContests = "service.contests"

// Contests exposes the main contest listing operations.
type Contests struct {
	repo *repository.Repository
	now  Clock
}

// NewContests wires the contest service over the repository.
func NewContests(repo *repository.Repository, now Clock) *Contests {
	return &Contests{repo: repo, now: orNow(now)}
}

// Submit stores a confirmed draft as a new active contest.
func (s *Contests) Submit(ctx context.Context, link, isoDate, channels string) error {
	if err := s.repo.InsertActive(ctx, link, isoDate, contest.Channels(channels)); err != nil {
		return err
	}
	logger.Info(ctx, componentContests, "contest.submitted",
		slog.String("link", link),
		slog.String("date", isoDate),
	)
	return nil
}

// Finish marks the contest with the given link as finished. It reports whether
// anything changed; finishing an unknown or already finished link is a no-op.
func (s *Contests) Finish(ctx context.Context, link string) (bool, error) {
	done, err := s.repo.FinishByLink(ctx, link)
	if err != nil {
		return false, err
	}
	if done {
		logger.Info(ctx, componentContests, "contest.finished",
			slog.String("link", link),
		)
	}
	return done, nil
}

// Active returns the open contests ordered by date, each with its
// participation count.
func (s *Contests) Active(ctx context.Context) ([]contest.ContestWithCount, error) {
	return s.repo.ListByStatus(ctx, contest.StatusActive, "")
}

// FinishedToday returns the contests that finished on the current day. The
// finished listing is deliberately scoped to today so it stays short.
func (s *Contests) FinishedToday(ctx context.Context) ([]contest.ContestWithCount, error) {
	return s.repo.ListByStatus(ctx, contest.StatusFinished, contest.Today(s.now()))
}

// LinkKnown reports whether any contest row carries the link.
func (s *Contests) LinkKnown(ctx context.Context, link string) (bool, error) {
	return s.repo.LinkExists(ctx, link)
}
