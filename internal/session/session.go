// Package session holds per-user conversation state: the dialog position,
// the in-progress draft, and the handles of messages the dialog edits or
// cleans up. Sessions live only for the duration of a conversation and are
// never persisted across restarts.
package session

import "sync"

// State identifies the dialog position of one user's conversation.
type State string

const (
	// StateIdle indicates there is no active conversation step.
	StateIdle State = "idle"
	// StateWaitingDate awaits the date of a new contest being added.
	StateWaitingDate State = "waiting_date"
	// StateAdditionalChannels awaits the yes/no supplementary-channel decision.
	StateAdditionalChannels State = "additional_channels"
	// StateChannelsInput awaits the free-text supplementary channel list.
	StateChannelsInput State = "channels_input"
	// StateConfirmation awaits the final confirm/cancel of a draft.
	StateConfirmation State = "confirmation"
	// StateFinishContest awaits the link of a contest to finish.
	StateFinishContest State = "finish_contest"
	// StateTrackedLink awaits the link of a contest to track.
	StateTrackedLink State = "tracked_link"
	// StateTrackedDate awaits the date of a contest being tracked.
	StateTrackedDate State = "tracked_date"
	// StatePendingDate awaits the date of a contest staged for later review.
	StatePendingDate State = "pending_date"
	// StatePendingChannelsDecision awaits the yes/no supplementary-channel
	// decision for a staged contest.
	StatePendingChannelsDecision State = "pending_channels_decision"
	// StatePendingDopChannels awaits the free-text channel list for a staged contest.
	StatePendingDopChannels State = "pending_dop_channels"
)

// MessageRef addresses an outbound message so it can be edited or deleted later.
type MessageRef struct {
	ChatID    int64
	MessageID int
}

// Zero reports whether the ref does not point at a message.
func (r MessageRef) Zero() bool {
	return r.MessageID == 0
}

// Draft carries the fields of an "add contest" flow before confirmation.
type Draft struct {
	Link        string
	Date        string
	DopChannels string
	// ChannelsDecided marks that the supplementary-channel question has been
	// answered, so confirmation can proceed without re-asking.
	ChannelsDecided bool
}

// PendingDraft carries the fields of a "stage for later" flow. Saved guards
// the write so a retried save (duplicate button tap) is a no-op.
type PendingDraft struct {
	Link        string
	Date        string
	DopChannels string
	Saved       bool
}

// Session is the full ephemeral record for one user. Drafts are namespaced by
// flow so a mid-flow "add" draft cannot be misread as a "track" or "stage for
// later" draft.
type Session struct {
	State State

	IsAdmin     bool
	AdminCached bool

	Draft       Draft
	Pending     PendingDraft
	TrackedLink string

	// Working is the single message the conversation edits in place.
	Working MessageRef
	// SuccessNotice and CancelNotice are transient confirmations deleted at
	// the start of the next interaction.
	SuccessNotice MessageRef
	CancelNotice  MessageRef

	// Listing cursor for the last rendered page.
	Page       int
	ListStatus string
}

// Store keeps sessions keyed by user id behind a RWMutex. Updates for a single
// user arrive serialized from the transport; the lock only coordinates
// different users sharing the map.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

// NewStore constructs an empty in-memory session store.
func NewStore() *Store {
	return &Store{sessions: make(map[int64]*Session)}
}

// Get returns a snapshot of the user's session, or a zero idle session if none
// exists yet.
func (s *Store) Get(userID int64) Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sess, ok := s.sessions[userID]; ok {
		return *sess
	}
	return Session{State: StateIdle}
}

// Update applies fn to the user's session under the lock, creating the session
// on first interaction.
func (s *Store) Update(userID int64, fn func(*Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	if !ok {
		sess = &Session{State: StateIdle}
		s.sessions[userID] = sess
	}
	fn(sess)
}

// State returns the user's current dialog state.
func (s *Store) State(userID int64) State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sess, ok := s.sessions[userID]; ok {
		return sess.State
	}
	return StateIdle
}

// SetState moves the user to st, creating the session if needed.
func (s *Store) SetState(userID int64, st State) {
	s.Update(userID, func(sess *Session) { sess.State = st })
}

// InProgress reports whether the user is mid-dialog (any non-idle state).
func (s *Store) InProgress(userID int64) bool {
	return s.State(userID) != StateIdle
}

// EndFlow returns the user to idle and clears all draft fields while keeping
// message handles and the cached admin flag, so the conversation surface and
// authorization survive into the next flow. The pending saved marker also
// survives: a duplicate tap on the staging answer must be recognized as
// already handled, not staged twice. Starting a new staging flow overwrites
// the whole draft, marker included.
func (s *Store) EndFlow(userID int64) {
	s.Update(userID, func(sess *Session) {
		sess.State = StateIdle
		sess.Draft = Draft{}
		sess.Pending = PendingDraft{Saved: sess.Pending.Saved}
		sess.TrackedLink = ""
	})
}

// Clear removes the session entirely. Used at conversation completion so
// nothing leaks into the next conversation.
func (s *Store) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}
