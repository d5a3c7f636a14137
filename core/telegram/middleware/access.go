package middleware

import tele "gopkg.in/telebot.v4"

// AdminPolicy decides whether a user may invoke privileged handlers.
type AdminPolicy interface {
	IsAdmin(userID int64) bool
}

// AdminOptions defines how admin-only checks should behave.
type AdminOptions struct {
	Policy   AdminPolicy
	OnReject tele.HandlerFunc
}

// AdminOnlyMiddleware ensures that only allowed users can invoke downstream handlers.
func AdminOnlyMiddleware(opts AdminOptions) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if opts.Policy != nil && !opts.Policy.IsAdmin(c.Sender().ID) {
				if opts.OnReject != nil {
					return opts.OnReject(c)
				}
				return nil
			}
			return next(c)
		}
	}
}
