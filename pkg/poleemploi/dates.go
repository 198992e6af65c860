package poleemploi

import "time"

const iso8601Layout = "2006-01-02T15:04:05Z"

// FormatDate renders t in the ISO-8601 subset the date-range search
// parameters (minCreationDate, maxCreationDate) accept, e.g.
// "2020-01-01T00:00:00Z". The time is converted to UTC first so the trailing
// Z is truthful.
func FormatDate(t time.Time) string {
	return t.UTC().Format(iso8601Layout)
}
