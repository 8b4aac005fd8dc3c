package format

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
)

// DefaultLocale is used when callers pass an empty locale.
const DefaultLocale = "en-US"

// Layouts accepted for incoming date strings. Time-of-day, when present,
// is parsed and then ignored for display.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// DateToLocal formats an ISO-8601 date or date-time string for display,
// e.g. DateToLocal("2022-01-01", "en-US") == "Jan 1, 2022".
//
// The locale tag is validated with x/text; month names render in English.
// Unparseable input returns an error instead of panicking so callers can
// show an error state rather than a broken page.
func DateToLocal(dateStr, locale string) (string, error) {
	if locale == "" {
		locale = DefaultLocale
	}
	if _, err := language.Parse(locale); err != nil {
		return "", fmt.Errorf("parse locale %q: %w", locale, err)
	}

	var t time.Time
	var err error
	for _, layout := range dateLayouts {
		t, err = time.Parse(layout, dateStr)
		if err == nil {
			break
		}
	}
	if err != nil {
		return "", fmt.Errorf("parse date %q: %w", dateStr, err)
	}

	return t.Format("Jan 2, 2006"), nil
}
