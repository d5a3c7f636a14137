package bot

import (
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"sync"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	tele "gopkg.in/telebot.v4"

	"contestbot/internal/repository"
	"contestbot/internal/service"
	"contestbot/internal/session"
)

const dialogTestSchema = `
	CREATE TABLE contests (
		link         TEXT NOT NULL,
		date         TEXT NOT NULL,
		dop_channels TEXT,
		status       TEXT NOT NULL
	);
	CREATE TABLE pending_contests (
		link         TEXT NOT NULL,
		date         TEXT NOT NULL,
		dop_channels TEXT
	);
	CREATE TABLE tracked_contests (
		user_id INTEGER NOT NULL,
		link    TEXT NOT NULL,
		date    TEXT NOT NULL,
		UNIQUE (user_id, link)
	);
	CREATE TABLE participation_history (
		id      INTEGER PRIMARY KEY AUTOINCREMENT,
		link    TEXT NOT NULL,
		user_id INTEGER
	);
`

// fakeTransport answers every outbound API call locally so the handlers can
// drive a real bot instance without the network.
type fakeTransport struct {
	mu     sync.Mutex
	nextID int
	calls  []string
}

func (t *fakeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.mu.Lock()
	t.nextID++
	id := t.nextID
	method := path.Base(req.URL.Path)
	t.calls = append(t.calls, method)
	t.mu.Unlock()

	body := fmt.Sprintf(`{"ok":true,"result":{"message_id":%d,"chat":{"id":7,"type":"private"},"date":1}}`, id)
	if method == "deleteMessage" {
		body = `{"ok":true,"result":true}`
	}
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     make(http.Header),
		Body:       io.NopCloser(strings.NewReader(body)),
	}, nil
}

func (t *fakeTransport) called(method string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, m := range t.calls {
		if m == method {
			return true
		}
	}
	return false
}

// dialogContext implements the slice of tele.Context the handlers touch. The
// embedded interface covers methods no test path reaches.
type dialogContext struct {
	tele.Context
	bot   *tele.Bot
	user  *tele.User
	text  string
	msg   *tele.Message
	store map[string]interface{}
}

func (c *dialogContext) Bot() tele.API             { return c.bot }
func (c *dialogContext) Sender() *tele.User        { return c.user }
func (c *dialogContext) Chat() *tele.Chat          { return &tele.Chat{ID: c.user.ID} }
func (c *dialogContext) Recipient() tele.Recipient { return c.user }
func (c *dialogContext) Text() string              { return c.text }
func (c *dialogContext) Message() *tele.Message    { return c.msg }
func (c *dialogContext) Callback() *tele.Callback  { return nil }
func (c *dialogContext) Update() tele.Update       { return tele.Update{} }

func (c *dialogContext) Get(key string) interface{}      { return c.store[key] }
func (c *dialogContext) Set(key string, val interface{}) { c.store[key] = val }

func newDialogHarness(t *testing.T) (*Handlers, *dialogContext, *fakeTransport, *sqlx.DB) {
	t.Helper()

	db, err := sqlx.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	if _, err := db.Exec(dialogTestSchema); err != nil {
		t.Fatalf("create schema: %v", err)
	}

	repo := repository.New(db)
	h := New(Options{
		Contests: service.NewContests(repo, nil),
		Pending:  service.NewPending(repo),
		Tracked:  service.NewTracked(repo),
		Auth:     &fakePolicy{admin: map[int64]bool{7: true}},
	})

	rt := &fakeTransport{}
	b, err := tele.NewBot(tele.Settings{
		Token:   "dialog-test",
		Offline: true,
		Client:  &http.Client{Transport: rt},
	})
	if err != nil {
		t.Fatalf("offline bot: %v", err)
	}

	c := &dialogContext{
		bot:   b,
		user:  &tele.User{ID: 7},
		store: make(map[string]interface{}),
	}
	return h, c, rt, db
}

func countRows(t *testing.T, db *sqlx.DB, table string) int {
	t.Helper()
	var n int
	if err := db.Get(&n, "SELECT COUNT(*) FROM "+table); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

func TestAddFlowSubmitsExactlyOnce(t *testing.T) {
	h, c, _, db := newDialogHarness(t)

	c.text = "https://t.me/c/new"
	if err := h.onIdleText(c); err != nil {
		t.Fatalf("link input: %v", err)
	}
	if err := h.onAddContest(c); err != nil {
		t.Fatalf("add tap: %v", err)
	}
	if got := h.sessions.State(7); got != session.StateWaitingDate {
		t.Fatalf("state after add tap = %q", got)
	}

	c.text = "07.09"
	if err := h.ManagerHandler(c); err != nil {
		t.Fatalf("date input: %v", err)
	}
	if err := h.onNo(c); err != nil {
		t.Fatalf("channels answer: %v", err)
	}
	if got := h.sessions.State(7); got != session.StateConfirmation {
		t.Fatalf("state before confirm = %q", got)
	}

	if err := h.onConfirm(c); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	// A duplicate tap on the same confirm button must not insert again.
	if err := h.onConfirm(c); err != nil {
		t.Fatalf("duplicate confirm: %v", err)
	}

	if n := countRows(t, db, "contests"); n != 1 {
		t.Fatalf("contests rows = %d, want 1", n)
	}
	if got := h.sessions.State(7); got != session.StateIdle {
		t.Fatalf("state after confirm = %q, want idle", got)
	}
}

func TestWaitingDateKeepsStateOnBadInput(t *testing.T) {
	h, c, _, db := newDialogHarness(t)

	c.text = "https://t.me/c/new"
	if err := h.onIdleText(c); err != nil {
		t.Fatalf("link input: %v", err)
	}
	if err := h.onAddContest(c); err != nil {
		t.Fatalf("add tap: %v", err)
	}

	for _, bad := range []string{"tomorrow", "31.02"} {
		c.text = bad
		if err := h.ManagerHandler(c); err != nil {
			t.Fatalf("input %q: %v", bad, err)
		}
		if got := h.sessions.State(7); got != session.StateWaitingDate {
			t.Fatalf("state after %q = %q, want waiting_date", bad, got)
		}
		if d := h.sessions.Get(7).Draft.Date; d != "" {
			t.Fatalf("draft date after %q = %q, want empty", bad, d)
		}
	}
	if n := countRows(t, db, "contests"); n != 0 {
		t.Fatalf("contests rows = %d, want 0", n)
	}
}

func TestStagingDuplicateAnswerStagesOnce(t *testing.T) {
	h, c, _, db := newDialogHarness(t)

	c.text = "https://t.me/c/stage"
	if err := h.onIdleText(c); err != nil {
		t.Fatalf("link input: %v", err)
	}
	if err := h.onAddToPending(c); err != nil {
		t.Fatalf("stage tap: %v", err)
	}
	c.text = "07.09"
	if err := h.ManagerHandler(c); err != nil {
		t.Fatalf("date input: %v", err)
	}
	if err := h.onNo(c); err != nil {
		t.Fatalf("channels answer: %v", err)
	}
	if !h.sessions.Get(7).Pending.Saved {
		t.Fatal("saved marker must survive the flow's end")
	}

	// A duplicate tap on the already-answered question acknowledges quietly
	// instead of resetting the conversation with an error.
	if err := h.onNo(c); err != nil {
		t.Fatalf("duplicate answer: %v", err)
	}
	if n := countRows(t, db, "pending_contests"); n != 1 {
		t.Fatalf("pending rows = %d, want 1", n)
	}
	if got := h.sessions.State(7); got != session.StateIdle {
		t.Fatalf("state after duplicate answer = %q, want idle", got)
	}
}

func TestInboundTextMessageDeleted(t *testing.T) {
	h, c, rt, _ := newDialogHarness(t)

	c.msg = &tele.Message{ID: 99, Chat: &tele.Chat{ID: 7}}
	c.text = "hello"
	if err := h.onIdleText(c); err != nil {
		t.Fatalf("text input: %v", err)
	}
	if !rt.called("deleteMessage") {
		t.Fatal("handled text message should be deleted from the chat")
	}
}
