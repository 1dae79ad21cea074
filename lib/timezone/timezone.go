package timezone

import "time"

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("Asia/Tokyo")
	if err != nil {
		panic(err)
	}
}

// force timestamps into the portal's timezone so diagnostic artifacts line
// up with portal-side activity regardless of where the scrape runs
func Now() time.Time {
	return time.Now().In(Location)
}

// Stamp formats t as a compact portal-local timestamp for file names.
func Stamp(t time.Time) string {
	return t.In(Location).Format("20060102-150405")
}
