// Package bot implements the dialog layer: the conversation state machine
// that guides one user through browsing, submitting, finishing, and tracking
// contests, the listing views, and the transport wiring.
package bot

import (
	"log/slog"
	"time"

	tele "gopkg.in/telebot.v4"

	"contestbot/core/logger"
	tghelpers "contestbot/core/telegram/helpers"
	"contestbot/internal/auth"
	"contestbot/internal/input"
	"contestbot/internal/service"
	"contestbot/internal/session"
)

// Options bundles the collaborators of the dialog layer.
type Options struct {
	Sessions *session.Store
	Contests *service.Contests
	Pending  *service.Pending
	Tracked  *service.Tracked
	Auth     auth.Policy
	PageSize int
	// Now overrides the clock for tests.
	Now func() time.Time
}

// Handlers drives the per-user conversation state machine.
type Handlers struct {
	sessions *session.Store
	contests *service.Contests
	pending  *service.Pending
	tracked  *service.Tracked
	auth     auth.Policy
	pageSize int
	now      func() time.Time
}

// New builds the dialog handlers.
func New(opts Options) *Handlers {
	h := &Handlers{
		sessions: opts.Sessions,
		contests: opts.Contests,
		pending:  opts.Pending,
		tracked:  opts.Tracked,
		auth:     opts.Auth,
		pageSize: opts.PageSize,
		now:      opts.Now,
	}
	if h.sessions == nil {
		h.sessions = session.NewStore()
	}
	if h.pageSize <= 0 {
		h.pageSize = 5
	}
	if h.now == nil {
		h.now = time.Now
	}
	return h
}

// isAdmin answers the policy once per conversation and caches the result in
// the session for its duration.
func (h *Handlers) isAdmin(userID int64) bool {
	sess := h.sessions.Get(userID)
	if sess.AdminCached {
		return sess.IsAdmin
	}
	admin := h.auth != nil && h.auth.IsAdmin(userID)
	h.sessions.Update(userID, func(s *session.Session) {
		s.IsAdmin = admin
		s.AdminCached = true
	})
	return admin
}

// onStart resets any in-progress flow and shows the entry surface.
func (h *Handlers) onStart(c tele.Context) error {
	userID := c.Sender().ID
	h.clearNotices(c)
	h.sessions.EndFlow(userID)
	return h.respond(c, msgGreeting, listingKeyboard(listActive, 1, 1, h.isAdmin(userID)))
}

// onHelp describes what the bot does.
func (h *Handlers) onHelp(c tele.Context) error {
	h.clearNotices(c)
	return h.respond(c,
		"Send me a contest link and pick an action: add it to the listing, "+
			"finish it, track it with a reminder date, or stage it for review. "+
			"The buttons below every listing switch between active, finished, "+
			"and tracked contests.",
		listingKeyboard(listActive, 1, 1, h.isAdmin(c.Sender().ID)))
}

// onIdleText handles freeform text outside any dialog flow. A link opens the
// per-contest action menu and is remembered in the draft; anything else gets
// a hint plus the listing surface.
func (h *Handlers) onIdleText(c tele.Context) error {
	userID := c.Sender().ID
	h.clearNotices(c)
	h.consumeInbound(c)
	text := c.Text()

	if input.Classify(text) == input.Link {
		h.sessions.Update(userID, func(s *session.Session) {
			s.Draft.Link = text
		})
		known, err := h.contests.LinkKnown(tghelpers.BuildContext(c), text)
		if err != nil {
			// The menu still renders; finishing stays reachable from the menu
			// entry on the next attempt or via the listings.
			logger.Warn(tghelpers.BuildContext(c), "tg", "link.lookup_failed",
				slog.String("err", err.Error()),
			)
			known = false
		}
		return h.respond(c, actionMenuText(text), actionMenuKeyboard(known, h.isAdmin(userID)))
	}
	return h.respond(c, msgIdleHint, listingKeyboard(listActive, 1, 1, h.isAdmin(userID)))
}

// onUnexpectedDocument answers non-text updates that reach the bot.
func (h *Handlers) onUnexpectedDocument(c tele.Context) error {
	h.clearNotices(c)
	return h.respond(c, "I can only work with text messages and buttons.", nil)
}

// onUnknownCallback handles button payloads that map to nothing. The
// interaction is abandoned: the user is told to retry and the dialog resets.
func (h *Handlers) onUnknownCallback(c tele.Context) error {
	userID := c.Sender().ID
	data := ""
	if cb := c.Callback(); cb != nil {
		data = cb.Data
	}
	logger.Warn(tghelpers.BuildContext(c), "tg", "callback.unmapped",
		slog.String("data", logger.SanitizeLimit(data, 64)),
	)
	h.sessions.EndFlow(userID)
	return h.respond(c, msgTryAgain, listingKeyboard(listActive, 1, 1, h.isAdmin(userID)))
}
