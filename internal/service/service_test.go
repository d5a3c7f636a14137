package service

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"contestbot/internal/repository"
)

const schema = `
	CREATE TABLE contests (
		link         TEXT NOT NULL,
		date         TEXT NOT NULL,
		dop_channels TEXT,
		status       TEXT NOT NULL
	);
	CREATE TABLE pending_contests (
		link         TEXT NOT NULL,
		date         TEXT NOT NULL,
		dop_channels TEXT
	);
	CREATE TABLE tracked_contests (
		user_id INTEGER NOT NULL,
		link    TEXT NOT NULL,
		date    TEXT NOT NULL,
		UNIQUE (user_id, link)
	);
	CREATE TABLE participation_history (
		id      INTEGER PRIMARY KEY AUTOINCREMENT,
		link    TEXT NOT NULL,
		user_id INTEGER
	);
`

func newRepo(t *testing.T) *repository.Repository {
	t.Helper()
	db, err := sqlx.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	return repository.New(db)
}

func fixedClock(iso string) Clock {
	return func() time.Time {
		t, _ := time.Parse("2006-01-02", iso)
		return t
	}
}

func TestFinishedTodayScopedToCurrentDay(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	svc := NewContests(repo, fixedClock("2026-08-31"))

	for _, row := range []struct{ link, date string }{
		{"https://t.me/c/today", "2026-08-31"},
		{"https://t.me/c/earlier", "2026-08-20"},
	} {
		if err := svc.Submit(ctx, row.link, row.date, ""); err != nil {
			t.Fatalf("submit: %v", err)
		}
		if _, err := svc.Finish(ctx, row.link); err != nil {
			t.Fatalf("finish: %v", err)
		}
	}

	got, err := svc.FinishedToday(ctx)
	if err != nil {
		t.Fatalf("finished today: %v", err)
	}
	if len(got) != 1 || got[0].Link != "https://t.me/c/today" {
		t.Fatalf("finished listing = %+v, want only today's contest", got)
	}
}

func TestPromoteByIndex(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	pending := NewPending(repo)
	contests := NewContests(repo, nil)

	// Staged out of order; the listing sorts by date, so index 0 is the earliest.
	if err := pending.Stage(ctx, "https://t.me/p/late", "2026-09-20", ""); err != nil {
		t.Fatalf("stage: %v", err)
	}
	if err := pending.Stage(ctx, "https://t.me/p/early", "2026-09-01", ""); err != nil {
		t.Fatalf("stage: %v", err)
	}

	link, done, err := pending.PromoteByIndex(ctx, 0)
	if err != nil || !done {
		t.Fatalf("promote index 0 = (%v, %v)", done, err)
	}
	if link != "https://t.me/p/early" {
		t.Fatalf("promoted %q, want the earliest staged contest", link)
	}

	active, err := contests.Active(ctx)
	if err != nil || len(active) != 1 {
		t.Fatalf("active after promote = %v rows (%v)", len(active), err)
	}

	if _, done, err := pending.PromoteByIndex(ctx, 5); err != nil || done {
		t.Fatalf("stale index must be a no-op, got (%v, %v)", done, err)
	}
}

func TestDeleteTrackedByIndex(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	tracked := NewTracked(repo)

	if err := tracked.Track(ctx, 7, "https://t.me/c/a", "2026-09-10"); err != nil {
		t.Fatalf("track: %v", err)
	}
	if err := tracked.Track(ctx, 7, "https://t.me/c/b", "2026-09-01"); err != nil {
		t.Fatalf("track: %v", err)
	}

	link, done, err := tracked.DeleteByIndex(ctx, 7, 0)
	if err != nil || !done {
		t.Fatalf("delete index 0 = (%v, %v)", done, err)
	}
	if link != "https://t.me/c/b" {
		t.Fatalf("deleted %q, want the earliest bookmark", link)
	}

	rest, err := tracked.List(ctx, 7)
	if err != nil || len(rest) != 1 || rest[0].Link != "https://t.me/c/a" {
		t.Fatalf("remaining bookmarks = %+v (%v)", rest, err)
	}

	if _, done, err := tracked.DeleteByIndex(ctx, 7, 3); err != nil || done {
		t.Fatalf("stale index must be a no-op, got (%v, %v)", done, err)
	}
}
