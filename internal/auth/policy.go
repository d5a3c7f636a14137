// Package auth decides which users may perform privileged contest actions.
package auth

// Policy answers admin capability checks for privileged actions: adding a
// contest, finishing one, staging for later, and reviewing pending contests.
type Policy interface {
	IsAdmin(userID int64) bool
}

// AllowList is a static Policy backed by a fixed set of user ids from config.
type AllowList struct {
	ids map[int64]struct{}
}

// NewAllowList builds an AllowList from the given user ids. Zero ids are
// ignored so an unset config value never grants anyone access.
func NewAllowList(ids []int64) *AllowList {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		set[id] = struct{}{}
	}
	return &AllowList{ids: set}
}

// IsAdmin reports whether the user id is on the allow-list.
func (a *AllowList) IsAdmin(userID int64) bool {
	if a == nil {
		return false
	}
	_, ok := a.ids[userID]
	return ok
}
