package session

import "testing"

func TestStoreLifecycle(t *testing.T) {
	s := NewStore()

	if got := s.State(1); got != StateIdle {
		t.Fatalf("fresh user state = %q, want idle", got)
	}
	if s.InProgress(1) {
		t.Fatal("fresh user should not be in progress")
	}

	s.SetState(1, StateWaitingDate)
	if !s.InProgress(1) {
		t.Fatal("user should be in progress after SetState")
	}

	s.Clear(1)
	if got := s.State(1); got != StateIdle {
		t.Fatalf("cleared user state = %q, want idle", got)
	}
}

func TestDraftNamespacing(t *testing.T) {
	s := NewStore()
	s.Update(7, func(sess *Session) {
		sess.Draft.Link = "https://example.com/add"
		sess.Pending.Link = "https://example.com/pending"
		sess.TrackedLink = "https://example.com/tracked"
	})

	got := s.Get(7)
	if got.Draft.Link == got.Pending.Link || got.Draft.Link == got.TrackedLink {
		t.Fatal("flow drafts must stay independent")
	}
	if got.Pending.Link != "https://example.com/pending" {
		t.Fatalf("pending draft = %q", got.Pending.Link)
	}
}

func TestEndFlowKeepsConversationSurface(t *testing.T) {
	s := NewStore()
	s.Update(3, func(sess *Session) {
		sess.State = StateConfirmation
		sess.Draft = Draft{Link: "https://example.com", Date: "2026-09-01"}
		sess.Working = MessageRef{ChatID: 3, MessageID: 42}
		sess.IsAdmin = true
		sess.AdminCached = true
	})

	s.EndFlow(3)

	got := s.Get(3)
	if got.State != StateIdle {
		t.Fatalf("state after EndFlow = %q", got.State)
	}
	if got.Draft != (Draft{}) || got.Pending != (PendingDraft{}) || got.TrackedLink != "" {
		t.Fatal("EndFlow must clear all drafts")
	}
	if got.Working.Zero() {
		t.Fatal("EndFlow must keep the working message handle")
	}
	if !got.IsAdmin || !got.AdminCached {
		t.Fatal("EndFlow must keep the cached admin flag")
	}
}

func TestEndFlowKeepsPendingSavedFlag(t *testing.T) {
	s := NewStore()
	s.Update(7, func(sess *Session) {
		sess.State = StatePendingChannelsDecision
		sess.Pending = PendingDraft{Link: "https://example.com", Date: "2026-09-01", Saved: true}
	})

	s.EndFlow(7)

	got := s.Get(7)
	if !got.Pending.Saved {
		t.Fatal("EndFlow must keep the saved marker so a duplicate tap is a no-op")
	}
	if got.Pending.Link != "" || got.Pending.Date != "" {
		t.Fatalf("EndFlow must clear the pending draft fields, got %+v", got.Pending)
	}
}

func TestPendingSavedFlagSurvivesUpdates(t *testing.T) {
	s := NewStore()
	s.Update(9, func(sess *Session) {
		sess.Pending = PendingDraft{Link: "https://example.com", Date: "2026-09-01"}
	})
	s.Update(9, func(sess *Session) { sess.Pending.Saved = true })

	if !s.Get(9).Pending.Saved {
		t.Fatal("saved flag lost")
	}

	// A duplicate tap re-reads the flag before writing again.
	if sess := s.Get(9); !sess.Pending.Saved {
		t.Fatal("second read should still see saved flag")
	}
}

func TestGetReturnsSnapshot(t *testing.T) {
	s := NewStore()
	s.SetState(5, StateTrackedDate)

	snap := s.Get(5)
	snap.State = StateIdle

	if got := s.State(5); got != StateTrackedDate {
		t.Fatalf("mutating a snapshot changed the store: %q", got)
	}
}
