package contest

import (
	"fmt"
	"time"
)

const (
	// ISODate is the storage layout for contest dates.
	ISODate = "2006-01-02"
	// DisplayDate is the layout shown to users.
	DisplayDate = "02.01.2006"
	// InputDate is the short day.month layout users type in.
	InputDate = "02.01"
)

// NormalizeDate qualifies a DD.MM input with the current year and validates it
// as a real calendar date. The shape check happens upstream in the input
// classifier; this is where "31.02" gets rejected. The result is the ISO
// storage form.
func NormalizeDate(input string, now time.Time) (string, error) {
	qualified := fmt.Sprintf("%s.%d", input, now.Year())
	t, err := time.ParseInLocation(DisplayDate, qualified, time.Local)
	if err != nil {
		return "", fmt.Errorf("contest: invalid date %q: %w", input, err)
	}
	return t.Format(ISODate), nil
}

// FormatDate renders a stored ISO date in the user-facing DD.MM.YYYY form.
// Unparseable values are returned unchanged rather than hidden.
func FormatDate(iso string) string {
	t, err := time.Parse(ISODate, iso)
	if err != nil {
		return iso
	}
	return t.Format(DisplayDate)
}

// Today returns the ISO form of the current day, used to restrict finished
// listings to contests that ended today.
func Today(now time.Time) string {
	return now.Format(ISODate)
}
