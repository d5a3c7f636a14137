package bot

import (
	tele "gopkg.in/telebot.v4"

	tg "contestbot/core/telegram"
	"contestbot/core/telegram/commands"
	"contestbot/core/telegram/middleware"
	"contestbot/core/telegram/router"
	"contestbot/core/telegram/ui"
	"contestbot/internal/session"
)

// stateGetter adapts the session store to the FSM-state middleware.
type stateGetter struct {
	sessions *session.Store
}

func (g stateGetter) GetState(userID int64) string {
	return string(g.sessions.State(userID))
}

var _ ui.FallbackProvider = (*Handlers)(nil)

// UnknownText handles text that maps to no command outside a dialog.
func (h *Handlers) UnknownText() tele.HandlerFunc { return h.onIdleText }

// UnknownDocument handles non-text updates.
func (h *Handlers) UnknownDocument() tele.HandlerFunc { return h.onUnexpectedDocument }

// UnknownCallback handles button payloads that map to nothing.
func (h *Handlers) UnknownCallback() tele.HandlerFunc { return h.onUnknownCallback }

// BuildRegistry declares every command and callback the bot answers.
func (h *Handlers) BuildRegistry() *tg.Registry {
	reg := tg.NewRegistry()

	reg.RegisterCommand("/start", commands.Command{
		Handler:     h.onStart,
		Description: "Open the contest listings",
	})
	reg.RegisterCommand("/help", commands.Command{
		Handler:     h.onHelp,
		Description: "What this bot can do",
	})

	// A confirm tap is only meaningful in the confirmation state; stale
	// duplicates after a successful save are dropped before the handler.
	confirmOnly := middleware.State(stateGetter{h.sessions}, string(session.StateConfirmation))

	cbs := map[string]tele.HandlerFunc{
		cbConfirm: confirmOnly(h.onConfirm),
		cbCancel:  h.onCancel,
		cbYes:     h.onYes,
		cbNo:      h.onNo,

		cbAddContest:    h.onAddContest,
		cbFinishContest: h.onFinishContest,
		cbTrackContest:  h.onTrackContest,
		cbAddToPending:  h.onAddToPending,

		cbShowActive:    h.onShowListing(listActive),
		cbShowCompleted: h.onShowListing(listCompleted),
		cbShowTracked:   h.onShowListing(listTracked),
		cbShowPending:   h.onShowListing(listPending),
		cbShowAll:       h.onShowAll,

		cbPage:        h.onPage,
		cbRefresh:     h.onRefresh,
		cbCurrentPage: h.onCurrentPage,

		cbAddTracked:    h.onAddTracked,
		cbDeleteTracked: h.onDeleteTracked,
		cbDelete:        h.onDelete,
		cbCancelDelete:  h.onCancelDelete,

		cbTransferToMain: h.onTransferToMain,
	}
	for key, handler := range cbs {
		_ = reg.RegisterCallback(key, handler)
	}

	reg.SetTextFallback(h.UnknownText())
	reg.SetCallbackNotFound(h.UnknownCallback())
	return reg
}

// Routes binds the registry to the transport: text updates go through the
// dialog state machine first, callbacks resolve by key, commands get the
// shared middleware chain with the admin policy attached.
func (h *Handlers) Routes(reg *tg.Registry) []tg.Route {
	fallbacks := fallbackOptions(h)

	routes := router.TextRoutes(h, reg, fallbacks)
	routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{
		NotFound: h.UnknownCallback(),
	}))
	routes = append(routes, router.CommandRoutes(reg, router.CommandRouteOptions{
		AdminPolicy:   h.auth,
		OnAdminReject: h.onAdminReject,
	})...)
	return routes
}

func fallbackOptions(p ui.FallbackProvider) router.TextOptions {
	return router.TextOptions{
		UnknownText:     p.UnknownText(),
		UnknownDocument: p.UnknownDocument(),
	}
}

func (h *Handlers) onAdminReject(c tele.Context) error {
	return h.respond(c, msgAdminOnly, listingKeyboard(listActive, 1, 1, false))
}
