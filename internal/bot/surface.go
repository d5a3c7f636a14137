package bot

import (
	"errors"
	"log/slog"
	"strconv"

	tele "gopkg.in/telebot.v4"

	"contestbot/core/logger"
	tghelpers "contestbot/core/telegram/helpers"
	"contestbot/internal/session"
)

func storedRef(ref session.MessageRef) tele.StoredMessage {
	return tele.StoredMessage{
		MessageID: strconv.Itoa(ref.MessageID),
		ChatID:    ref.ChatID,
	}
}

// respond edits the conversation's single working message in place. When the
// edit fails because the message is no longer addressable, the reply is sent
// fresh and re-anchors the working message; the user never sees the fallback.
func (h *Handlers) respond(c tele.Context, text string, markup *tele.ReplyMarkup) error {
	userID := c.Sender().ID
	sess := h.sessions.Get(userID)

	if !sess.Working.Zero() {
		var err error
		if markup != nil {
			_, err = c.Bot().Edit(storedRef(sess.Working), text, markup)
		} else {
			_, err = c.Bot().Edit(storedRef(sess.Working), text)
		}
		if err == nil || errors.Is(err, tele.ErrSameMessageContent) {
			return nil
		}
		logger.Debug(tghelpers.BuildContext(c), "tg", "working.reanchor",
			slog.String("err", err.Error()),
		)
	}

	var (
		msg *tele.Message
		err error
	)
	if markup != nil {
		msg, err = c.Bot().Send(c.Recipient(), text, markup)
	} else {
		msg, err = c.Bot().Send(c.Recipient(), text)
	}
	if err != nil {
		return err
	}
	h.sessions.Update(userID, func(s *session.Session) {
		s.Working = session.MessageRef{ChatID: msg.Chat.ID, MessageID: msg.ID}
	})
	return nil
}

// consumeInbound deletes the user's own message once its text has been
// handled, keeping the edited working message as the conversation's only
// visible surface. Callback taps carry the working message itself, so only
// typed input is consumed.
func (h *Handlers) consumeInbound(c tele.Context) {
	if c.Callback() != nil {
		return
	}
	msg := c.Message()
	if msg == nil {
		return
	}
	if err := c.Bot().Delete(msg); err != nil {
		logger.Debug(tghelpers.BuildContext(c), "tg", "inbound.delete_failed",
			slog.String("err", err.Error()),
		)
	}
}

// clearNotices deletes any lingering success or cancelled notice. Called at
// the start of every interaction so stale confirmations never stay in view.
func (h *Handlers) clearNotices(c tele.Context) {
	userID := c.Sender().ID
	sess := h.sessions.Get(userID)
	if sess.SuccessNotice.Zero() && sess.CancelNotice.Zero() {
		return
	}
	for _, ref := range []session.MessageRef{sess.SuccessNotice, sess.CancelNotice} {
		if ref.Zero() {
			continue
		}
		_ = c.Bot().Delete(storedRef(ref))
	}
	h.sessions.Update(userID, func(s *session.Session) {
		s.SuccessNotice = session.MessageRef{}
		s.CancelNotice = session.MessageRef{}
	})
}

func (h *Handlers) notifySuccess(c tele.Context, text string) {
	h.sendNotice(c, text, true)
}

func (h *Handlers) notifyCancel(c tele.Context, text string) {
	h.sendNotice(c, text, false)
}

func (h *Handlers) sendNotice(c tele.Context, text string, success bool) {
	msg, err := c.Bot().Send(c.Recipient(), text)
	if err != nil {
		logger.Warn(tghelpers.BuildContext(c), "tg", "notice.send_failed",
			slog.String("err", err.Error()),
		)
		return
	}
	ref := session.MessageRef{ChatID: msg.Chat.ID, MessageID: msg.ID}
	h.sessions.Update(c.Sender().ID, func(s *session.Session) {
		if success {
			s.SuccessNotice = ref
		} else {
			s.CancelNotice = ref
		}
	})
}
