// Package input classifies raw user text into the three shapes the dialog
// understands: a contest link, a short date, or plain text.
package input

import "regexp"

// Kind is the classification of a piece of user text.
type Kind int

const (
	// Plain is anything that is neither a link nor a date.
	Plain Kind = iota
	// Link is text starting with an http/https URL.
	Link
	// Date is text matching the DD.MM shape. Calendar validity is checked
	// later, at normalization.
	Date
)

var (
	linkRe = regexp.MustCompile(`^http[s]?://(?:[a-zA-Z]|[0-9]|[$-_@.&+]|[!*\(\),]|(?:%[0-9a-fA-F][0-9a-fA-F]))+`)
	dateRe = regexp.MustCompile(`^\d{2}\.\d{2}$`)
)

// Classify returns exactly one Kind for the given text. No side effects.
func Classify(text string) Kind {
	switch {
	case linkRe.MatchString(text):
		return Link
	case dateRe.MatchString(text):
		return Date
	default:
		return Plain
	}
}

// IsLink reports whether text starts with an http/https URL.
func IsLink(text string) bool {
	return linkRe.MatchString(text)
}

// IsDate reports whether text matches the strict DD.MM shape.
func IsDate(text string) bool {
	return dateRe.MatchString(text)
}
