package timezone

import "time"

const DefaultTimezone = "Asia/Dubai"

// dubai is used when the zoneinfo database is missing from the image.
var dubai = time.FixedZone("GST", 4*60*60)

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	if loc, err := time.LoadLocation(DefaultTimezone); err == nil {
		return loc
	}
	return dubai
}

func Now() time.Time {
	return time.Now().In(Location(DefaultTimezone))
}

// FormatDate renders t the way the dashboard shows dates ("02 Jan 2006").
// The zero time renders as "-".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.In(Location(DefaultTimezone)).Format("02 Jan 2006")
}
