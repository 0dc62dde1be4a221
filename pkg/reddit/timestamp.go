package reddit

import (
	"strings"
	"time"

	errs "redscraper/pkg/errors"
)

// TimeLayout is the canonical timestamp format for materialized records.
const TimeLayout = "2006-01-02T15:04:05"

// tooltipLayout matches the full-precision timestamp Reddit renders in age
// tooltips, minus the trailing timezone phrase.
const tooltipLayout = "Mon, Jan 2, 2006, 3:04:05 PM"

// maxZoneTokens bounds how many trailing tokens the timezone phrase may
// occupy ("UTC" is one, spelled-out zone names run longer).
const maxZoneTokens = 3

// NormalizeTimestamp parses a tooltip timestamp like
// "Mon, Jan 1, 2024, 5:30:00 PM UTC". The timezone phrase is free-form, so
// the parse is attempted on the whole string first and then with one to
// three trailing tokens dropped; the first successful parse wins.
func NormalizeTimestamp(raw string) (time.Time, error) {
	tokens := strings.Fields(raw)
	if len(tokens) == 0 {
		return time.Time{}, errs.NewParseError("empty timestamp")
	}

	for drop := 0; drop <= maxZoneTokens && drop < len(tokens); drop++ {
		candidate := strings.Join(tokens[:len(tokens)-drop], " ")
		if t, err := time.Parse(tooltipLayout, candidate); err == nil {
			return t, nil
		}
	}

	return time.Time{}, errs.NewParseError("unrecognized timestamp %q", raw)
}
