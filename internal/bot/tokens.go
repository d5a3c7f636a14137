package bot

import (
	"fmt"
	"strconv"
	"strings"
)

// Callback unique keys. Parameterized actions (paging, refresh, per-row delete
// and promote) carry their argument in the callback payload after the key.
const (
	cbConfirm = "confirm"
	cbCancel  = "cancel"
	cbYes     = "yes"
	cbNo      = "no"

	cbAddContest    = "add_contest"
	cbFinishContest = "finish_contest"
	cbTrackContest  = "track_contest"
	cbAddToPending  = "add_to_pending"

	cbShowActive    = "show_active"
	cbShowCompleted = "show_completed"
	cbShowTracked   = "show_tracked"
	cbShowPending   = "show_pending_contests"
	cbShowAll       = "show_all_contests"

	cbPage        = "page"
	cbRefresh     = "refresh"
	cbCurrentPage = "current_page"

	cbAddTracked    = "add_tracked"
	cbDeleteTracked = "delete_tracked"
	cbDelete        = "delete"
	cbCancelDelete  = "cancel_delete"

	cbTransferToMain = "transfer_to_main_db"
)

// Listing identifiers carried in page and refresh payloads and in the
// session's listing cursor.
const (
	listActive    = "active"
	listCompleted = "completed"
	listTracked   = "tracked"
	listPending   = "pending"
)

func validListing(s string) bool {
	switch s {
	case listActive, listCompleted, listTracked, listPending:
		return true
	}
	return false
}

// pagePayload encodes a paging target as <listing>_<page>.
func pagePayload(listing string, page int) string {
	return fmt.Sprintf("%s_%d", listing, page)
}

// parsePagePayload decodes <listing>_<page>. The listing name itself may
// contain underscores, so the page number is taken from the last segment.
func parsePagePayload(p string) (string, int, error) {
	i := strings.LastIndex(p, "_")
	if i <= 0 || i == len(p)-1 {
		return "", 0, fmt.Errorf("bot: malformed page payload %q", p)
	}
	listing := p[:i]
	page, err := strconv.Atoi(p[i+1:])
	if err != nil {
		return "", 0, fmt.Errorf("bot: malformed page payload %q: %w", p, err)
	}
	if !validListing(listing) {
		return "", 0, fmt.Errorf("bot: unknown listing in page payload %q", p)
	}
	return listing, page, nil
}

// indexPayload encodes a zero-based row position for per-row actions.
func indexPayload(i int) string {
	return strconv.Itoa(i)
}
