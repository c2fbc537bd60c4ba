// Package locale renders field values the way the Arabic dashboard
// displayed them: Arabic-Indic digits, Gregorian month names, نعم/لا
// tokens.
package locale

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Arabic)

var months = [...]string{
	"يناير", "فبراير", "مارس", "أبريل", "مايو", "يونيو",
	"يوليو", "أغسطس", "سبتمبر", "أكتوبر", "نوفمبر", "ديسمبر",
}

// YesNo renders a facility flag.
func YesNo(v bool) string {
	if v {
		return "نعم"
	}
	return "لا"
}

// FormatDate renders an RFC-3339 timestamp as day, month name, year.
// Timestamps are stored verbatim, so unparseable input is returned
// as-is rather than erroring. Years carry no grouping separator, so
// the digits are converted directly instead of going through the
// locale-aware printer.
func FormatDate(iso string) string {
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return iso
	}
	return Digits(strconv.Itoa(t.Day())) + " " + months[t.Month()-1] + " " + Digits(strconv.Itoa(t.Year()))
}

// FormatCount renders a count with Arabic-Indic digits and locale
// grouping.
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// Digits replaces ASCII digits with their Arabic-Indic equivalents.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 2)
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune('٠' + (r - '0'))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
