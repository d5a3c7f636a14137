package bot

import (
	"strings"

	tele "gopkg.in/telebot.v4"

	tghelpers "contestbot/core/telegram/helpers"
	"contestbot/internal/contest"
	"contestbot/internal/input"
	"contestbot/internal/session"
)

// InProgress reports whether the user is mid-dialog, which routes their text
// updates into ManagerHandler instead of command lookup.
func (h *Handlers) InProgress(userID int64) bool {
	return h.sessions.InProgress(userID)
}

// ManagerHandler dispatches a text update to the handler of the user's
// current dialog state. Malformed input re-prompts in place and never moves
// the dialog or touches the draft.
func (h *Handlers) ManagerHandler(c tele.Context) error {
	userID := c.Sender().ID
	h.clearNotices(c)
	h.consumeInbound(c)

	switch h.sessions.State(userID) {
	case session.StateWaitingDate:
		return h.onAddDate(c)
	case session.StateAdditionalChannels:
		// Awaiting a button; re-issue the question for stray text.
		return h.respond(c, msgAskChannels, yesNoKeyboard())
	case session.StateChannelsInput:
		return h.onChannelsInput(c)
	case session.StateConfirmation:
		return h.showConfirmation(c)
	case session.StateFinishContest:
		return h.onFinishLink(c)
	case session.StateTrackedLink:
		return h.onTrackedLink(c)
	case session.StateTrackedDate:
		return h.onTrackedDate(c)
	case session.StatePendingDate:
		return h.onPendingDate(c)
	case session.StatePendingChannelsDecision:
		return h.respond(c, msgAskChannels, yesNoKeyboard())
	case session.StatePendingDopChannels:
		return h.onPendingChannels(c)
	default:
		return h.onIdleText(c)
	}
}

// parseDate validates a DD.MM input and returns the ISO form. The second
// return carries the re-prompt text when the input is unusable.
func (h *Handlers) parseDate(text string) (string, string) {
	if !input.IsDate(text) {
		return "", msgBadDateShape
	}
	iso, err := contest.NormalizeDate(text, h.now())
	if err != nil {
		return "", msgBadCalendar
	}
	return iso, ""
}

func (h *Handlers) onAddDate(c tele.Context) error {
	userID := c.Sender().ID
	iso, reprompt := h.parseDate(c.Text())
	if reprompt != "" {
		return h.respond(c, reprompt, cancelKeyboard())
	}

	var decided bool
	h.sessions.Update(userID, func(s *session.Session) {
		s.Draft.Date = iso
		decided = s.Draft.ChannelsDecided
	})
	if decided {
		h.sessions.SetState(userID, session.StateConfirmation)
		return h.showConfirmation(c)
	}
	h.sessions.SetState(userID, session.StateAdditionalChannels)
	return h.respond(c, msgAskChannels, yesNoKeyboard())
}

func (h *Handlers) onChannelsInput(c tele.Context) error {
	userID := c.Sender().ID
	h.sessions.Update(userID, func(s *session.Session) {
		s.Draft.DopChannels = c.Text()
		s.Draft.ChannelsDecided = true
		s.State = session.StateConfirmation
	})
	return h.showConfirmation(c)
}

func (h *Handlers) showConfirmation(c tele.Context) error {
	sess := h.sessions.Get(c.Sender().ID)
	view := draftView{
		Link:        sess.Draft.Link,
		Date:        sess.Draft.Date,
		DopChannels: sess.Draft.DopChannels,
	}
	return h.respond(c, confirmationText(view), confirmKeyboard())
}

func (h *Handlers) onFinishLink(c tele.Context) error {
	userID := c.Sender().ID
	text := c.Text()

	if strings.EqualFold(strings.TrimSpace(text), "cancel") {
		h.sessions.EndFlow(userID)
		h.notifyCancel(c, noticeCancelled)
		return h.respond(c, msgIdleHint, listingKeyboard(listActive, 1, 1, h.isAdmin(userID)))
	}
	if !input.IsLink(text) {
		return h.respond(c, msgFinishPrompt, cancelKeyboard())
	}

	done, err := h.contests.Finish(tghelpers.BuildContext(c), text)
	if err != nil {
		return h.respond(c, msgSaveFailed, cancelKeyboard())
	}
	if !done {
		return h.respond(c, msgFinishNotFound, cancelKeyboard())
	}
	h.sessions.EndFlow(userID)
	h.notifySuccess(c, noticeFinished)
	return h.renderContestListing(c, listActive, 1)
}

func (h *Handlers) onTrackedLink(c tele.Context) error {
	userID := c.Sender().ID
	text := c.Text()
	if !input.IsLink(text) {
		return h.respond(c, msgTrackedLinkPrompt, cancelKeyboard())
	}
	h.sessions.Update(userID, func(s *session.Session) {
		s.TrackedLink = text
		s.State = session.StateTrackedDate
	})
	return h.respond(c, msgTrackedDatePrompt, cancelKeyboard())
}

func (h *Handlers) onTrackedDate(c tele.Context) error {
	userID := c.Sender().ID
	iso, reprompt := h.parseDate(c.Text())
	if reprompt != "" {
		return h.respond(c, reprompt, cancelKeyboard())
	}

	link := h.sessions.Get(userID).TrackedLink
	if err := h.tracked.Track(tghelpers.BuildContext(c), userID, link, iso); err != nil {
		return h.respond(c, msgSaveFailed, cancelKeyboard())
	}
	h.sessions.EndFlow(userID)
	h.notifySuccess(c, noticeTracked)
	return h.renderTrackedListing(c, 1)
}

func (h *Handlers) onPendingDate(c tele.Context) error {
	userID := c.Sender().ID
	iso, reprompt := h.parseDate(c.Text())
	if reprompt != "" {
		return h.respond(c, reprompt, cancelKeyboard())
	}
	h.sessions.Update(userID, func(s *session.Session) {
		s.Pending.Date = iso
		s.State = session.StatePendingChannelsDecision
	})
	return h.respond(c, msgAskChannels, yesNoKeyboard())
}

func (h *Handlers) onPendingChannels(c tele.Context) error {
	h.sessions.Update(c.Sender().ID, func(s *session.Session) {
		s.Pending.DopChannels = c.Text()
	})
	return h.savePending(c)
}

// savePending writes the staged draft once. The session's saved flag guards
// the write so a duplicate tap or retried update never stages twice.
func (h *Handlers) savePending(c tele.Context) error {
	userID := c.Sender().ID
	sess := h.sessions.Get(userID)
	if sess.Pending.Saved {
		h.sessions.EndFlow(userID)
		h.notifySuccess(c, noticeAlreadySaved)
		return h.respond(c, msgIdleHint, listingKeyboard(listActive, 1, 1, h.isAdmin(userID)))
	}

	err := h.pending.Stage(tghelpers.BuildContext(c), sess.Pending.Link, sess.Pending.Date, sess.Pending.DopChannels)
	if err != nil {
		// Draft stays intact so the user can retry.
		return h.respond(c, msgSaveFailed, cancelKeyboard())
	}
	h.sessions.Update(userID, func(s *session.Session) {
		s.Pending.Saved = true
	})
	h.sessions.EndFlow(userID)
	h.notifySuccess(c, noticeStaged)
	return h.respond(c, msgIdleHint, listingKeyboard(listActive, 1, 1, h.isAdmin(userID)))
}
