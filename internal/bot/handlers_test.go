package bot

import (
	"testing"
	"time"

	"contestbot/internal/session"
)

type fakePolicy struct {
	admin map[int64]bool
}

func (p *fakePolicy) IsAdmin(userID int64) bool {
	return p.admin[userID]
}

func TestIsAdminCachedPerConversation(t *testing.T) {
	policy := &fakePolicy{admin: map[int64]bool{1: true}}
	h := New(Options{Auth: policy})

	if !h.isAdmin(1) {
		t.Fatal("user 1 should be admin")
	}
	if h.isAdmin(2) {
		t.Fatal("user 2 should not be admin")
	}

	// The policy answer is cached for the conversation's duration.
	policy.admin[1] = false
	if !h.isAdmin(1) {
		t.Fatal("cached admin flag should survive a policy change")
	}

	// A cleared session re-consults the policy.
	h.sessions.Clear(1)
	if h.isAdmin(1) {
		t.Fatal("fresh conversation should see the new policy answer")
	}
}

func TestInProgressFollowsSessionState(t *testing.T) {
	h := New(Options{})
	if h.InProgress(5) {
		t.Fatal("new user should be idle")
	}
	h.sessions.SetState(5, session.StateWaitingDate)
	if !h.InProgress(5) {
		t.Fatal("waiting_date should count as in progress")
	}
	h.sessions.EndFlow(5)
	if h.InProgress(5) {
		t.Fatal("ended flow should be idle again")
	}
}

func TestParseDate(t *testing.T) {
	h := New(Options{
		Now: func() time.Time {
			return time.Date(2026, time.August, 31, 12, 0, 0, 0, time.Local)
		},
	})

	iso, reprompt := h.parseDate("07.09")
	if reprompt != "" || iso != "2026-09-07" {
		t.Fatalf("parseDate(07.09) = (%q, %q)", iso, reprompt)
	}

	if _, reprompt := h.parseDate("not a date"); reprompt != msgBadDateShape {
		t.Fatalf("shape failure reprompt = %q", reprompt)
	}
	// Shape-valid but not a real calendar day.
	if _, reprompt := h.parseDate("31.02"); reprompt != msgBadCalendar {
		t.Fatalf("calendar failure reprompt = %q", reprompt)
	}
}

func TestNewAppliesDefaults(t *testing.T) {
	h := New(Options{})
	if h.sessions == nil {
		t.Fatal("session store default missing")
	}
	if h.pageSize <= 0 {
		t.Fatal("page size default missing")
	}
	if h.now == nil {
		t.Fatal("clock default missing")
	}
}
