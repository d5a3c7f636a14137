package bot

import (
	"strings"
	"testing"

	"contestbot/internal/contest"
	"contestbot/internal/pagination"
)

func TestConfirmationText(t *testing.T) {
	got := confirmationText(draftView{
		Link: "https://t.me/c/1",
		Date: "2026-09-07",
	})
	if !strings.Contains(got, "https://t.me/c/1") {
		t.Fatalf("summary missing link: %q", got)
	}
	if !strings.Contains(got, "07.09.2026") {
		t.Fatalf("summary must show the display date form: %q", got)
	}
	if !strings.Contains(got, "none") {
		t.Fatalf("absent channels should read as none: %q", got)
	}

	withChannels := confirmationText(draftView{
		Link:        "https://t.me/c/1",
		Date:        "2026-09-07",
		DopChannels: "@ch1, @ch2",
	})
	if !strings.Contains(withChannels, "@ch1, @ch2") {
		t.Fatalf("summary missing channels: %q", withChannels)
	}
}

func TestActionMenuComposition(t *testing.T) {
	uniques := func(known, admin bool) []string {
		var out []string
		for _, row := range actionMenuKeyboard(known, admin).InlineKeyboard {
			for _, btn := range row {
				out = append(out, btn.Unique)
			}
		}
		return out
	}
	has := func(keys []string, key string) bool {
		for _, k := range keys {
			if k == key {
				return true
			}
		}
		return false
	}

	plain := uniques(false, false)
	if has(plain, cbFinishContest) || has(plain, cbAddToPending) {
		t.Fatalf("non-admin menu must not carry finish or stage: %v", plain)
	}
	if !has(plain, cbAddContest) || !has(plain, cbTrackContest) || !has(plain, cbCancel) {
		t.Fatalf("non-admin menu missing base actions: %v", plain)
	}

	adminUnknown := uniques(false, true)
	if has(adminUnknown, cbFinishContest) {
		t.Fatalf("finish must not render for a link the store does not know: %v", adminUnknown)
	}
	if !has(adminUnknown, cbAddToPending) {
		t.Fatalf("admin menu missing stage action: %v", adminUnknown)
	}

	adminKnown := uniques(true, true)
	if !has(adminKnown, cbFinishContest) {
		t.Fatalf("known link + admin must offer finish: %v", adminKnown)
	}

	// Knowing the link is not enough on its own.
	if knownOnly := uniques(true, false); has(knownOnly, cbFinishContest) {
		t.Fatalf("finish is an admin action: %v", knownOnly)
	}
}

func TestContestListTextNumberingContinuesAcrossPages(t *testing.T) {
	items := make([]contest.ContestWithCount, 12)
	for i := range items {
		items[i].Link = "https://t.me/c/x"
		items[i].Date = "2026-09-01"
	}

	second := pagination.Paginate(items, 2, 5)
	got := contestListText(listActive, second, 5)
	if !strings.Contains(got, "6. ") || !strings.Contains(got, "10. ") {
		t.Fatalf("page 2 should number rows 6..10:\n%s", got)
	}
	if strings.Contains(got, "1. ") && !strings.Contains(got, "10. ") {
		t.Fatalf("page 2 must not restart numbering:\n%s", got)
	}
}

func TestContestListTextEmpty(t *testing.T) {
	got := contestListText(listCompleted, pagination.Paginate([]contest.ContestWithCount(nil), 1, 5), 5)
	if !strings.Contains(got, "Nothing here yet.") {
		t.Fatalf("empty listing text = %q", got)
	}
}

func TestPendingListText(t *testing.T) {
	rows := []contest.PendingContest{
		{Link: "https://t.me/p/1", Date: "2026-09-01", DopChannels: contest.Channels("@extra")},
		{Link: "https://t.me/p/2", Date: "2026-09-02"},
	}
	got := pendingListText(rows)
	if !strings.Contains(got, "1. https://t.me/p/1") || !strings.Contains(got, "2. https://t.me/p/2") {
		t.Fatalf("pending rows not numbered:\n%s", got)
	}
	if !strings.Contains(got, "@extra") {
		t.Fatalf("pending channels missing:\n%s", got)
	}
	if !strings.Contains(got, "01.09.2026") {
		t.Fatalf("pending dates must use display form:\n%s", got)
	}
}

func TestListingKeyboardNavClampsAtEdges(t *testing.T) {
	markup := listingKeyboard(listActive, 1, 3, false)
	nav := markup.InlineKeyboard[0]
	if nav[0].Data != pagePayload(listActive, 1) {
		t.Fatalf("prev on first page should stay on page 1, got %q", nav[0].Data)
	}
	if nav[1].Unique != cbCurrentPage || nav[1].Text != "1/3" {
		t.Fatalf("indicator button = %+v", nav[1])
	}
	if nav[2].Data != pagePayload(listActive, 2) {
		t.Fatalf("next payload = %q", nav[2].Data)
	}

	last := listingKeyboard(listActive, 3, 3, false).InlineKeyboard[0]
	if last[2].Data != pagePayload(listActive, 3) {
		t.Fatalf("next on last page should stay on page 3, got %q", last[2].Data)
	}
}

func TestListingKeyboardPendingSwitcherIsAdminOnly(t *testing.T) {
	hasPending := func(admin bool) bool {
		markup := listingKeyboard(listActive, 1, 1, admin)
		for _, row := range markup.InlineKeyboard {
			for _, btn := range row {
				if btn.Unique == cbShowPending {
					return true
				}
			}
		}
		return false
	}
	if hasPending(false) {
		t.Fatal("pending switcher must not render for non-admins")
	}
	if !hasPending(true) {
		t.Fatal("pending switcher missing for admins")
	}
}

func TestListingKeyboardTrackedManageRow(t *testing.T) {
	markup := listingKeyboard(listTracked, 1, 1, false)
	var found bool
	for _, row := range markup.InlineKeyboard {
		for _, btn := range row {
			if btn.Unique == cbAddTracked || btn.Unique == cbDeleteTracked {
				found = true
			}
		}
	}
	if !found {
		t.Fatal("tracked listing must carry its manage buttons")
	}
}

func TestDeleteTrackedKeyboard(t *testing.T) {
	markup := deleteTrackedKeyboard(6)
	// 6 numbered buttons in rows of 4, then the keep-all row.
	if len(markup.InlineKeyboard) != 3 {
		t.Fatalf("rows = %d, want 3", len(markup.InlineKeyboard))
	}
	if got := markup.InlineKeyboard[0][3].Data; got != indexPayload(3) {
		t.Fatalf("fourth button payload = %q", got)
	}
	lastRow := markup.InlineKeyboard[2]
	if len(lastRow) != 1 || lastRow[0].Unique != cbCancelDelete {
		t.Fatalf("last row = %+v, want the keep-all button", lastRow)
	}
}

func TestPendingKeyboard(t *testing.T) {
	markup := pendingKeyboard(2)
	if len(markup.InlineKeyboard) != 3 {
		t.Fatalf("rows = %d, want 2 promote rows plus back", len(markup.InlineKeyboard))
	}
	if markup.InlineKeyboard[0][0].Unique != cbTransferToMain || markup.InlineKeyboard[0][0].Data != indexPayload(0) {
		t.Fatalf("first promote button = %+v", markup.InlineKeyboard[0][0])
	}
	back := markup.InlineKeyboard[2][0]
	if back.Unique != cbShowAll {
		t.Fatalf("back button = %+v", back)
	}
}
