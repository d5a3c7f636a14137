// Package service coordinates contest operations between the dialog layer and
// the repository: listings with their filters, staged-contest review, and
// per-user tracking. Dates arrive here already normalized to the ISO storage
// form; validation happens at dialog state entry.
package service

import "time"

// Clock supplies the current time so day-scoped listings are testable.
type Clock func() time.Time

func orNow(c Clock) Clock {
	if c != nil {
		return c
	}
	return time.Now
}
