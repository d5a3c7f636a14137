// Package contest defines the domain model for contest listings: active and
// finished contests, staged (pending) contests awaiting review, and per-user
// tracked contests.
package contest

import "database/sql"

// Status describes the lifecycle stage of a contest listing.
type Status string

const (
	// StatusActive marks a contest that is open for participation.
	StatusActive Status = "active"
	// StatusFinished marks a contest that has ended. A finished contest
	// never becomes active again.
	StatusFinished Status = "finished"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusFinished
}

// Contest is a listed time-boxed submission. Link is the natural key; Date is
// stored in ISO form (YYYY-MM-DD). DopChannels holds an optional
// comma-separated list of supplementary channels.
type Contest struct {
	Link        string         `db:"link"`
	Date        string         `db:"date"`
	DopChannels sql.NullString `db:"dop_channels"`
	Status      Status         `db:"status"`
}

// ContestWithCount annotates a contest with the number of distinct historical
// participation records joined by link.
type ContestWithCount struct {
	Contest
	ParticipantCount int `db:"participant_count"`
}

// PendingContest is a staged contest awaiting an administrative decision to
// promote into the main listing or discard.
type PendingContest struct {
	Link        string         `db:"link"`
	Date        string         `db:"date"`
	DopChannels sql.NullString `db:"dop_channels"`
}

// TrackedContest is a per-user bookmark of a contest with its own date.
// At most one row exists per (UserID, Link).
type TrackedContest struct {
	UserID int64  `db:"user_id"`
	Link   string `db:"link"`
	Date   string `db:"date"`
}

// Channels builds a nullable supplementary-channel column value. An empty
// string maps to NULL so that "not provided" is represented explicitly.
func Channels(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
