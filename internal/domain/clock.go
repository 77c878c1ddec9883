package domain

import "time"

// TimestampLayout is the civil-time layout used for record dates. Being
// zero-padded, lexicographic order equals chronological order.
const TimestampLayout = "2006-01-02 15:04"

// DateLayout is the calendar-date layout accepted by range queries.
const DateLayout = "2006-01-02"

// JST is the fixed UTC+9 offset records are stamped in. It never observes
// daylight saving, so no tz database is involved.
var JST = time.FixedZone("JST", 9*60*60)

// Clock returns the current instant.
type Clock func() time.Time

// FormatTimestamp renders t as JST civil time.
func FormatTimestamp(t time.Time) string {
	return t.In(JST).Format(TimestampLayout)
}
