package bot

import (
	"fmt"
	"strings"

	"contestbot/core/telegram/keyboard"
	"contestbot/internal/contest"
	"contestbot/internal/pagination"

	tele "gopkg.in/telebot.v4"
)

// User-facing texts. Prompts re-issued on malformed input keep the same
// wording so the working message only changes when the dialog moves on.
const (
	msgGreeting = "Hi! Send me a contest link to get started, or browse the listings below."
	msgIdleHint = "Send a contest link (https://…) to work with it, or use the buttons below."

	msgAskDate        = "Send the contest date as DD.MM."
	msgBadDateShape   = "That doesn't look like a date. Send it as DD.MM, for example 07.09."
	msgBadCalendar    = "That date doesn't exist on the calendar. Send a real date as DD.MM."
	msgAskChannels    = "Does the contest require joining additional channels?"
	msgAskChannelList = "Send the additional channels as one message, comma-separated."

	msgFinishPrompt   = "Send the link of the contest to finish, or Cancel."
	msgFinishNotFound = "No active contest matches that link. Check it and send again, or Cancel."

	msgTrackedLinkPrompt = "Send the link of the contest you want to track."
	msgTrackedDatePrompt = "Send the reminder date as DD.MM."

	msgPendingDatePrompt = "Send the contest date as DD.MM. It will be staged for review."

	msgAdminOnly     = "This action is only available to administrators."
	msgNeedLinkFirst = "Send a contest link first, then pick an action."
	msgSaveFailed    = "Couldn't save right now. Your input is kept, please try again."
	msgTryAgain      = "Something went wrong with that button. Please start over."

	noticeSaved         = "Contest added ✅"
	noticeFinished      = "Contest finished ✅"
	noticeTracked       = "Now tracking ✅"
	noticeStaged        = "Staged for review ✅"
	noticePromoted      = "Moved to the main listing ✅"
	noticeTrackedGone   = "Tracking removed ✅"
	noticeCancelled     = "Cancelled ❌"
	noticeAlreadySaved  = "Already saved ✅"
	noticeNothingToDo   = "Nothing to promote here anymore."
	noticeRowDisappears = "That entry is gone already."
)

func actionMenuText(link string) string {
	return fmt.Sprintf("What should happen with this contest?\n%s", link)
}

// actionMenuKeyboard is the per-link action menu shown after a link arrives in
// an idle conversation. Finishing only makes sense for a link the store already
// knows, and finishing and staging are admin actions, so those buttons render
// conditionally.
func actionMenuKeyboard(known, admin bool) *tele.ReplyMarkup {
	var rows [][]keyboard.InlineBtn
	if known && admin {
		rows = append(rows, []keyboard.InlineBtn{{Text: "🏁 Finish", Unique: cbFinishContest}})
	}
	rows = append(rows,
		[]keyboard.InlineBtn{{Text: "➕ Add", Unique: cbAddContest}},
		[]keyboard.InlineBtn{{Text: "🔔 Track", Unique: cbTrackContest}},
	)
	if admin {
		rows = append(rows, []keyboard.InlineBtn{{Text: "🕓 Stage for later", Unique: cbAddToPending}})
	}
	rows = append(rows, []keyboard.InlineBtn{{Text: "❌ Cancel", Unique: cbCancel}})
	return keyboard.InlineButtonsRows(rows...)
}

func yesNoKeyboard() *tele.ReplyMarkup {
	return keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{
			{Text: "✅ Yes", Unique: cbYes},
			{Text: "❌ No", Unique: cbNo},
		},
	)
}

func confirmKeyboard() *tele.ReplyMarkup {
	return keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{
			{Text: "✅ Confirm", Unique: cbConfirm},
			{Text: "❌ Cancel", Unique: cbCancel},
		},
	)
}

func cancelKeyboard() *tele.ReplyMarkup {
	return keyboard.SingleCancelMarkup(cbCancel)
}

func confirmationText(d draftView) string {
	var b strings.Builder
	b.WriteString("Please confirm the new contest:\n")
	fmt.Fprintf(&b, "Link: %s\n", d.Link)
	fmt.Fprintf(&b, "Date: %s\n", contest.FormatDate(d.Date))
	if d.DopChannels != "" {
		fmt.Fprintf(&b, "Additional channels: %s\n", d.DopChannels)
	} else {
		b.WriteString("Additional channels: none\n")
	}
	return b.String()
}

// draftView is the subset of a draft the confirmation summary renders.
type draftView struct {
	Link        string
	Date        string
	DopChannels string
}

func listingTitle(listing string) string {
	switch listing {
	case listCompleted:
		return "🏁 Finished today"
	case listTracked:
		return "🔔 Tracked contests"
	case listPending:
		return "🕓 Pending review"
	default:
		return "🎁 Active contests"
	}
}

// contestListText renders one page of an active or finished listing. Row
// numbers continue across pages so a row keeps its number when paging.
func contestListText(listing string, page pagination.Page[contest.ContestWithCount], pageSize int) string {
	var b strings.Builder
	b.WriteString(listingTitle(listing))
	b.WriteString("\n\n")
	if len(page.Items) == 0 {
		b.WriteString("Nothing here yet.")
		return b.String()
	}
	offset := (page.Number - 1) * pageSize
	for i, c := range page.Items {
		fmt.Fprintf(&b, "%d. %s — %s (participants: %d)\n", offset+i+1, c.Link, contest.FormatDate(c.Date), c.ParticipantCount)
		if c.DopChannels.Valid {
			fmt.Fprintf(&b, "   channels: %s\n", c.DopChannels.String)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// trackedListText renders one page of the user's bookmarks.
func trackedListText(page pagination.Page[contest.TrackedContest], pageSize int) string {
	var b strings.Builder
	b.WriteString(listingTitle(listTracked))
	b.WriteString("\n\n")
	if len(page.Items) == 0 {
		b.WriteString("You are not tracking anything yet.")
		return b.String()
	}
	offset := (page.Number - 1) * pageSize
	for i, tc := range page.Items {
		fmt.Fprintf(&b, "%d. %s — %s\n", offset+i+1, tc.Link, contest.FormatDate(tc.Date))
	}
	return strings.TrimRight(b.String(), "\n")
}

// pendingListText renders the full pending listing; review is short enough to
// skip pagination, matching the per-row promote buttons below it.
func pendingListText(rows []contest.PendingContest) string {
	var b strings.Builder
	b.WriteString(listingTitle(listPending))
	b.WriteString("\n\n")
	if len(rows) == 0 {
		b.WriteString("Nothing is waiting for review.")
		return b.String()
	}
	for i, p := range rows {
		fmt.Fprintf(&b, "%d. %s — %s\n", i+1, p.Link, contest.FormatDate(p.Date))
		if p.DopChannels.Valid {
			fmt.Fprintf(&b, "   channels: %s\n", p.DopChannels.String)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// listingKeyboard builds the navigation surface under a listing: pager,
// refresh, and listing switchers. The tracked listing additionally carries its
// manage buttons; the pending switcher appears for admins only.
func listingKeyboard(listing string, page, total int, admin bool) *tele.ReplyMarkup {
	prev := page - 1
	if prev < 1 {
		prev = 1
	}
	next := page + 1
	if next > total {
		next = total
	}

	rows := [][]keyboard.InlineBtn{
		{
			{Text: "⬅️", Unique: cbPage, Data: pagePayload(listing, prev)},
			{Text: fmt.Sprintf("%d/%d", page, total), Unique: cbCurrentPage},
			{Text: "➡️", Unique: cbPage, Data: pagePayload(listing, next)},
		},
		{
			{Text: "🔄 Refresh", Unique: cbRefresh, Data: listing},
		},
	}

	if listing == listTracked {
		rows = append(rows, []keyboard.InlineBtn{
			{Text: "➕ Track new", Unique: cbAddTracked},
			{Text: "🗑 Remove", Unique: cbDeleteTracked},
		})
	}

	switchers := []keyboard.InlineBtn{
		{Text: "🎁 Active", Unique: cbShowActive},
		{Text: "🏁 Finished", Unique: cbShowCompleted},
		{Text: "🔔 Tracked", Unique: cbShowTracked},
	}
	if admin {
		switchers = append(switchers, keyboard.InlineBtn{Text: "🕓 Pending", Unique: cbShowPending})
	}
	rows = append(rows, switchers[:2], switchers[2:])

	return keyboard.InlineButtonsRows(rows...)
}

// pendingKeyboard puts one promote button per staged row, addressed by its
// position in the date-ordered listing.
func pendingKeyboard(count int) *tele.ReplyMarkup {
	var rows [][]keyboard.InlineBtn
	for i := 0; i < count; i++ {
		rows = append(rows, []keyboard.InlineBtn{
			{Text: fmt.Sprintf("⤴️ Promote %d", i+1), Unique: cbTransferToMain, Data: indexPayload(i)},
		})
	}
	rows = append(rows, []keyboard.InlineBtn{
		{Text: "⬅️ Back to contests", Unique: cbShowAll},
	})
	return keyboard.InlineButtonsRows(rows...)
}

// deleteTrackedKeyboard numbers the user's bookmarks for removal, four
// buttons per row.
func deleteTrackedKeyboard(count int) *tele.ReplyMarkup {
	var rows [][]keyboard.InlineBtn
	var row []keyboard.InlineBtn
	for i := 0; i < count; i++ {
		row = append(row, keyboard.InlineBtn{
			Text:   fmt.Sprintf("%d", i+1),
			Unique: cbDelete,
			Data:   indexPayload(i),
		})
		if len(row) == 4 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, []keyboard.InlineBtn{{Text: "❌ Keep all", Unique: cbCancelDelete}})
	return keyboard.InlineButtonsRows(rows...)
}
