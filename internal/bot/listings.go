package bot

import (
	tele "gopkg.in/telebot.v4"

	tghelpers "contestbot/core/telegram/helpers"
	"contestbot/internal/contest"
	"contestbot/internal/pagination"
	"contestbot/internal/session"
)

// renderListing dispatches to the renderer for the given listing and is the
// single entry point for paging, refreshing, and switching.
func (h *Handlers) renderListing(c tele.Context, listing string, page int) error {
	switch listing {
	case listTracked:
		return h.renderTrackedListing(c, page)
	case listPending:
		return h.renderPendingListing(c)
	default:
		return h.renderContestListing(c, listing, page)
	}
}

func (h *Handlers) renderContestListing(c tele.Context, listing string, page int) error {
	userID := c.Sender().ID
	ctx := tghelpers.BuildContext(c)

	var (
		items []contest.ContestWithCount
		err   error
	)
	if listing == listCompleted {
		items, err = h.contests.FinishedToday(ctx)
	} else {
		listing = listActive
		items, err = h.contests.Active(ctx)
	}
	if err != nil {
		return h.respond(c, msgSaveFailed, listingKeyboard(listing, 1, 1, h.isAdmin(userID)))
	}

	win := pagination.Paginate(items, page, h.pageSize)
	h.rememberCursor(userID, listing, win.Number)
	return h.respond(c,
		contestListText(listing, win, h.pageSize),
		listingKeyboard(listing, win.Number, win.Total, h.isAdmin(userID)))
}

func (h *Handlers) renderTrackedListing(c tele.Context, page int) error {
	userID := c.Sender().ID
	items, err := h.tracked.List(tghelpers.BuildContext(c), userID)
	if err != nil {
		return h.respond(c, msgSaveFailed, listingKeyboard(listTracked, 1, 1, h.isAdmin(userID)))
	}

	win := pagination.Paginate(items, page, h.pageSize)
	h.rememberCursor(userID, listTracked, win.Number)
	return h.respond(c,
		trackedListText(win, h.pageSize),
		listingKeyboard(listTracked, win.Number, win.Total, h.isAdmin(userID)))
}

// renderPendingListing shows every staged contest with a per-row promote
// button. Callers enforce the admin check.
func (h *Handlers) renderPendingListing(c tele.Context) error {
	userID := c.Sender().ID
	rows, err := h.pending.List(tghelpers.BuildContext(c))
	if err != nil {
		return h.respond(c, msgSaveFailed, listingKeyboard(listActive, 1, 1, true))
	}
	h.rememberCursor(userID, listPending, 1)
	return h.respond(c, pendingListText(rows), pendingKeyboard(len(rows)))
}

func (h *Handlers) rememberCursor(userID int64, listing string, page int) {
	h.sessions.Update(userID, func(s *session.Session) {
		s.ListStatus = listing
		s.Page = page
	})
}
