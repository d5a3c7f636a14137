package bot

import (
	tele "gopkg.in/telebot.v4"

	"contestbot/core/telegram/callbacks"
	tghelpers "contestbot/core/telegram/helpers"
	"contestbot/internal/pagination"
	"contestbot/internal/session"
)

// requireAdmin rejects the tap without touching dialog state. Returning a nil
// handler error keeps the interaction alive.
func (h *Handlers) requireAdmin(c tele.Context) bool {
	return h.isAdmin(c.Sender().ID)
}

func (h *Handlers) onAddContest(c tele.Context) error {
	userID := c.Sender().ID
	h.clearNotices(c)
	if !h.requireAdmin(c) {
		return h.respond(c, msgAdminOnly, listingKeyboard(listActive, 1, 1, false))
	}
	if h.sessions.Get(userID).Draft.Link == "" {
		return h.respond(c, msgNeedLinkFirst, listingKeyboard(listActive, 1, 1, true))
	}
	h.sessions.SetState(userID, session.StateWaitingDate)
	return h.respond(c, msgAskDate, cancelKeyboard())
}

func (h *Handlers) onFinishContest(c tele.Context) error {
	h.clearNotices(c)
	if !h.requireAdmin(c) {
		return h.respond(c, msgAdminOnly, listingKeyboard(listActive, 1, 1, false))
	}
	h.sessions.SetState(c.Sender().ID, session.StateFinishContest)
	return h.respond(c, msgFinishPrompt, cancelKeyboard())
}

func (h *Handlers) onTrackContest(c tele.Context) error {
	userID := c.Sender().ID
	h.clearNotices(c)
	link := h.sessions.Get(userID).Draft.Link
	if link == "" {
		// Entered from the tracked listing rather than a link menu.
		h.sessions.SetState(userID, session.StateTrackedLink)
		return h.respond(c, msgTrackedLinkPrompt, cancelKeyboard())
	}
	h.sessions.Update(userID, func(s *session.Session) {
		s.TrackedLink = link
		s.State = session.StateTrackedDate
	})
	return h.respond(c, msgTrackedDatePrompt, cancelKeyboard())
}

func (h *Handlers) onAddToPending(c tele.Context) error {
	userID := c.Sender().ID
	h.clearNotices(c)
	if !h.requireAdmin(c) {
		return h.respond(c, msgAdminOnly, listingKeyboard(listActive, 1, 1, false))
	}
	link := h.sessions.Get(userID).Draft.Link
	if link == "" {
		return h.respond(c, msgNeedLinkFirst, listingKeyboard(listActive, 1, 1, true))
	}
	h.sessions.Update(userID, func(s *session.Session) {
		s.Pending = session.PendingDraft{Link: link}
		s.State = session.StatePendingDate
	})
	return h.respond(c, msgPendingDatePrompt, cancelKeyboard())
}

func (h *Handlers) onYes(c tele.Context) error {
	userID := c.Sender().ID
	h.clearNotices(c)
	switch h.sessions.State(userID) {
	case session.StateAdditionalChannels:
		h.sessions.SetState(userID, session.StateChannelsInput)
		return h.respond(c, msgAskChannelList, cancelKeyboard())
	case session.StatePendingChannelsDecision:
		h.sessions.SetState(userID, session.StatePendingDopChannels)
		return h.respond(c, msgAskChannelList, cancelKeyboard())
	default:
		if h.sessions.Get(userID).Pending.Saved {
			// Duplicate tap on the staging answer after the save went through.
			return h.savePending(c)
		}
		return h.onUnknownCallback(c)
	}
}

func (h *Handlers) onNo(c tele.Context) error {
	userID := c.Sender().ID
	h.clearNotices(c)
	switch h.sessions.State(userID) {
	case session.StateAdditionalChannels:
		h.sessions.Update(userID, func(s *session.Session) {
			s.Draft.DopChannels = ""
			s.Draft.ChannelsDecided = true
			s.State = session.StateConfirmation
		})
		return h.showConfirmation(c)
	case session.StatePendingChannelsDecision:
		h.sessions.Update(userID, func(s *session.Session) {
			s.Pending.DopChannels = ""
		})
		return h.savePending(c)
	default:
		if h.sessions.Get(userID).Pending.Saved {
			return h.savePending(c)
		}
		return h.onUnknownCallback(c)
	}
}

func (h *Handlers) onConfirm(c tele.Context) error {
	userID := c.Sender().ID
	h.clearNotices(c)
	if h.sessions.State(userID) != session.StateConfirmation {
		// A duplicate tap after a successful save. Nothing to insert again.
		return nil
	}

	sess := h.sessions.Get(userID)
	err := h.contests.Submit(tghelpers.BuildContext(c), sess.Draft.Link, sess.Draft.Date, sess.Draft.DopChannels)
	if err != nil {
		// Draft and state survive so the user may retry the confirm.
		return h.respond(c, msgSaveFailed, confirmKeyboard())
	}
	h.sessions.EndFlow(userID)
	h.notifySuccess(c, noticeSaved)
	return h.renderContestListing(c, listActive, 1)
}

func (h *Handlers) onCancel(c tele.Context) error {
	userID := c.Sender().ID
	h.clearNotices(c)
	h.sessions.EndFlow(userID)
	h.notifyCancel(c, noticeCancelled)
	return h.respond(c, msgIdleHint, listingKeyboard(listActive, 1, 1, h.isAdmin(userID)))
}

func (h *Handlers) onShowListing(listing string) tele.HandlerFunc {
	return func(c tele.Context) error {
		h.clearNotices(c)
		if listing == listPending && !h.requireAdmin(c) {
			return h.respond(c, msgAdminOnly, listingKeyboard(listActive, 1, 1, false))
		}
		return h.renderListing(c, listing, 1)
	}
}

func (h *Handlers) onPage(c tele.Context) error {
	h.clearNotices(c)
	listing, page, err := parsePagePayload(callbacks.CallbackPayload(c))
	if err != nil {
		return h.onUnknownCallback(c)
	}
	if listing == listPending && !h.requireAdmin(c) {
		return h.respond(c, msgAdminOnly, listingKeyboard(listActive, 1, 1, false))
	}
	return h.renderListing(c, listing, page)
}

func (h *Handlers) onRefresh(c tele.Context) error {
	userID := c.Sender().ID
	h.clearNotices(c)
	listing := callbacks.CallbackPayload(c)
	if !validListing(listing) {
		return h.onUnknownCallback(c)
	}
	if listing == listPending && !h.requireAdmin(c) {
		return h.respond(c, msgAdminOnly, listingKeyboard(listActive, 1, 1, false))
	}
	page := h.sessions.Get(userID).Page
	return h.renderListing(c, listing, page)
}

// onCurrentPage is the page indicator button. Tapping it does nothing; the
// router has already answered the callback.
func (h *Handlers) onCurrentPage(tele.Context) error {
	return nil
}

func (h *Handlers) onShowAll(c tele.Context) error {
	h.clearNotices(c)
	return h.renderContestListing(c, listActive, 1)
}

func (h *Handlers) onAddTracked(c tele.Context) error {
	h.clearNotices(c)
	h.sessions.SetState(c.Sender().ID, session.StateTrackedLink)
	return h.respond(c, msgTrackedLinkPrompt, cancelKeyboard())
}

func (h *Handlers) onDeleteTracked(c tele.Context) error {
	userID := c.Sender().ID
	h.clearNotices(c)
	rows, err := h.tracked.List(tghelpers.BuildContext(c), userID)
	if err != nil {
		return h.respond(c, msgSaveFailed, listingKeyboard(listTracked, 1, 1, h.isAdmin(userID)))
	}
	if len(rows) == 0 {
		return h.renderTrackedListing(c, 1)
	}
	win := pagination.Paginate(rows, 1, len(rows))
	return h.respond(c,
		"Which tracked contest should be removed?\n\n"+trackedListText(win, len(rows)),
		deleteTrackedKeyboard(len(rows)))
}

func (h *Handlers) onDelete(c tele.Context) error {
	userID := c.Sender().ID
	h.clearNotices(c)
	index, err := callbacks.PayloadInt(c)
	if err != nil || index < 0 {
		return h.onUnknownCallback(c)
	}
	_, done, err := h.tracked.DeleteByIndex(tghelpers.BuildContext(c), userID, index)
	if err != nil {
		return h.respond(c, msgSaveFailed, listingKeyboard(listTracked, 1, 1, h.isAdmin(userID)))
	}
	if done {
		h.notifySuccess(c, noticeTrackedGone)
	} else {
		h.notifyCancel(c, noticeRowDisappears)
	}
	return h.renderTrackedListing(c, 1)
}

func (h *Handlers) onCancelDelete(c tele.Context) error {
	h.clearNotices(c)
	return h.renderTrackedListing(c, 1)
}

func (h *Handlers) onTransferToMain(c tele.Context) error {
	h.clearNotices(c)
	if !h.requireAdmin(c) {
		return h.respond(c, msgAdminOnly, listingKeyboard(listActive, 1, 1, false))
	}
	index, err := callbacks.PayloadInt(c)
	if err != nil || index < 0 {
		return h.onUnknownCallback(c)
	}
	_, done, err := h.pending.PromoteByIndex(tghelpers.BuildContext(c), index)
	if err != nil {
		return h.respond(c, msgSaveFailed, pendingKeyboard(0))
	}
	if done {
		h.notifySuccess(c, noticePromoted)
	} else {
		h.notifyCancel(c, noticeNothingToDo)
	}
	return h.renderPendingListing(c)
}
