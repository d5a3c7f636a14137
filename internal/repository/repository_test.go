package repository

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"contestbot/internal/contest"
)

const testSchema = `
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

func newTestRepo(t *testing.T, schema string) *Repository {
	t.Helper()
	db, err := sqlx.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	return New(db)
}

func TestInsertAndListByStatus(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t, testSchema)

	if err := repo.InsertActive(ctx, "https://t.me/c/2", "2026-09-02", contest.Channels("")); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := repo.InsertActive(ctx, "https://t.me/c/1", "2026-09-01", contest.Channels("@ch1,@ch2")); err != nil {
		t.Fatalf("insert: %v", err)
	}

	// Two distinct participation records for c/1, duplicates must not inflate the count.
	for _, uid := range []int64{10, 11, 11} {
		if _, err := repo.db.Exec(`INSERT INTO participation_history (link, user_id) VALUES (?, ?)`, "https://t.me/c/1", uid); err != nil {
			t.Fatalf("seed history: %v", err)
		}
	}

	got, err := repo.ListByStatus(ctx, contest.StatusActive, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("list returned %d rows, want 2", len(got))
	}
	if got[0].Link != "https://t.me/c/1" || got[1].Link != "https://t.me/c/2" {
		t.Fatalf("listing not ordered by date: %q, %q", got[0].Link, got[1].Link)
	}
	if got[0].ParticipantCount != 3 {
		t.Fatalf("participant count = %d, want 3", got[0].ParticipantCount)
	}
	if got[1].ParticipantCount != 0 {
		t.Fatalf("participant count = %d, want 0", got[1].ParticipantCount)
	}
	if !got[0].DopChannels.Valid || got[0].DopChannels.String != "@ch1,@ch2" {
		t.Fatalf("dop_channels = %+v", got[0].DopChannels)
	}
	if got[1].DopChannels.Valid {
		t.Fatal("absent channels should be NULL")
	}
}

func TestListByStatusDateFilter(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t, testSchema)

	for _, row := range []struct{ link, date string }{
		{"https://t.me/f/1", "2026-08-31"},
		{"https://t.me/f/2", "2026-08-30"},
	} {
		if err := repo.InsertActive(ctx, row.link, row.date, contest.Channels("")); err != nil {
			t.Fatalf("insert: %v", err)
		}
		if _, err := repo.FinishByLink(ctx, row.link); err != nil {
			t.Fatalf("finish: %v", err)
		}
	}

	got, err := repo.ListByStatus(ctx, contest.StatusFinished, "2026-08-31")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].Link != "https://t.me/f/1" {
		t.Fatalf("date filter returned %+v", got)
	}
}

func TestFinishByLinkIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t, testSchema)

	if err := repo.InsertActive(ctx, "https://t.me/c/9", "2026-09-09", contest.Channels("")); err != nil {
		t.Fatalf("insert: %v", err)
	}

	done, err := repo.FinishByLink(ctx, "https://t.me/c/9")
	if err != nil || !done {
		t.Fatalf("first finish = (%v, %v), want (true, nil)", done, err)
	}

	done, err = repo.FinishByLink(ctx, "https://t.me/c/9")
	if err != nil {
		t.Fatalf("second finish errored: %v", err)
	}
	if done {
		t.Fatal("second finish should be a no-op")
	}

	done, err = repo.FinishByLink(ctx, "https://t.me/c/absent")
	if err != nil || done {
		t.Fatalf("finishing unknown link = (%v, %v), want (false, nil)", done, err)
	}

	got, err := repo.ListByStatus(ctx, contest.StatusFinished, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].Status != contest.StatusFinished {
		t.Fatalf("status after double finish: %+v", got)
	}
}

func TestLinkExists(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t, testSchema)

	ok, err := repo.LinkExists(ctx, "https://t.me/c/1")
	if err != nil || ok {
		t.Fatalf("LinkExists on empty store = (%v, %v)", ok, err)
	}
	if err := repo.InsertActive(ctx, "https://t.me/c/1", "2026-09-01", contest.Channels("")); err != nil {
		t.Fatalf("insert: %v", err)
	}
	ok, err = repo.LinkExists(ctx, "https://t.me/c/1")
	if err != nil || !ok {
		t.Fatalf("LinkExists = (%v, %v), want (true, nil)", ok, err)
	}
}

func TestUpsertTrackedUpdatesInPlace(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t, testSchema)

	if err := repo.UpsertTracked(ctx, 42, "https://t.me/c/1", "2026-09-01"); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := repo.UpsertTracked(ctx, 42, "https://t.me/c/1", "2026-09-15"); err != nil {
		t.Fatalf("re-upsert: %v", err)
	}

	got, err := repo.ListTracked(ctx, 42)
	if err != nil {
		t.Fatalf("list tracked: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("re-tracking created %d rows, want 1", len(got))
	}
	if got[0].Date != "2026-09-15" {
		t.Fatalf("date not updated in place: %q", got[0].Date)
	}

	// Another user tracking the same link gets an independent row.
	if err := repo.UpsertTracked(ctx, 43, "https://t.me/c/1", "2026-09-01"); err != nil {
		t.Fatalf("upsert other user: %v", err)
	}
	other, err := repo.ListTracked(ctx, 43)
	if err != nil || len(other) != 1 {
		t.Fatalf("other user's tracked = %v, %v", other, err)
	}
}

func TestDeleteTracked(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t, testSchema)

	if err := repo.UpsertTracked(ctx, 42, "https://t.me/c/1", "2026-09-01"); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := repo.DeleteTracked(ctx, 42, "https://t.me/c/1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, err := repo.ListTracked(ctx, 42)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("tracked rows after delete: %d", len(got))
	}
}

func TestPromotePending(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t, testSchema)

	if err := repo.StagePending(ctx, "https://t.me/p/1", "2026-09-05", contest.Channels("@extra")); err != nil {
		t.Fatalf("stage: %v", err)
	}

	done, err := repo.PromotePending(ctx, "https://t.me/p/1")
	if err != nil || !done {
		t.Fatalf("promote = (%v, %v), want (true, nil)", done, err)
	}

	pending, err := repo.ListPending(ctx)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("pending rows after promote: %d", len(pending))
	}

	active, err := repo.ListByStatus(ctx, contest.StatusActive, "")
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("active rows after promote: %d, want exactly 1", len(active))
	}
	if active[0].Date != "2026-09-05" || active[0].DopChannels.String != "@extra" {
		t.Fatalf("promoted row lost fields: %+v", active[0])
	}

	// A duplicate promotion request is a no-op, not a duplicate.
	done, err = repo.PromotePending(ctx, "https://t.me/p/1")
	if err != nil {
		t.Fatalf("second promote errored: %v", err)
	}
	if done {
		t.Fatal("second promote should report no-op")
	}
	active, err = repo.ListByStatus(ctx, contest.StatusActive, "")
	if err != nil || len(active) != 1 {
		t.Fatalf("active rows after duplicate promote: %d (%v)", len(active), err)
	}
}

func TestPromotePendingFailureKeepsRow(t *testing.T) {
	// A schema with a unique link makes the promotion insert fail partway,
	// which must leave the pending row intact.
	const schema = `
		CREATE TABLE contests (
			link         TEXT NOT NULL UNIQUE,
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
	ctx := context.Background()
	repo := newTestRepo(t, schema)

	if err := repo.InsertActive(ctx, "https://t.me/p/1", "2026-09-01", contest.Channels("")); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := repo.StagePending(ctx, "https://t.me/p/1", "2026-09-05", contest.Channels("")); err != nil {
		t.Fatalf("stage: %v", err)
	}

	if _, err := repo.PromotePending(ctx, "https://t.me/p/1"); err == nil {
		t.Fatal("promotion into a conflicting row should fail")
	}

	pending, err := repo.ListPending(ctx)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("pending row lost after failed promotion: %d rows", len(pending))
	}
}
