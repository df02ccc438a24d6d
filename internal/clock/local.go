package clock

import "time"

// LocalTime is an absolute instant paired with the UTC offset of the place it
// is displayed for. It can only be built through Localize, so every wall-clock
// comparison and format goes through the same offset handling.
type LocalTime struct {
	instant time.Time
	offset  int
}

// Localize applies a UTC offset (seconds east of UTC) to an absolute instant.
func Localize(instant time.Time, utcOffsetSeconds int) LocalTime {
	return LocalTime{instant: instant, offset: utcOffsetSeconds}
}

// LocalizeUnix is Localize for provider epoch seconds.
func LocalizeUnix(sec int64, utcOffsetSeconds int) LocalTime {
	return Localize(time.Unix(sec, 0).UTC(), utcOffsetSeconds)
}

func (l LocalTime) Instant() time.Time { return l.instant }

func (l LocalTime) Offset() int { return l.offset }

func (l LocalTime) IsZero() bool { return l.instant.IsZero() }

// Wall returns the instant in a fixed zone at the offset, so its clock fields
// read as local wall-clock values regardless of the process time zone.
func (l LocalTime) Wall() time.Time {
	return l.instant.In(time.FixedZone("", l.offset))
}

// WallSeconds is the local wall clock expressed as seconds since the epoch.
func (l LocalTime) WallSeconds() int64 {
	return l.instant.Unix() + int64(l.offset)
}

// Date is the local calendar date, YYYY-MM-DD.
func (l LocalTime) Date() string {
	return l.Wall().Format("2006-01-02")
}

func (l LocalTime) Format(layout string) string {
	return l.Wall().Format(layout)
}

func (l LocalTime) Before(o LocalTime) bool {
	return l.WallSeconds() < o.WallSeconds()
}

func (l LocalTime) Add(d time.Duration) LocalTime {
	return LocalTime{instant: l.instant.Add(d), offset: l.offset}
}
