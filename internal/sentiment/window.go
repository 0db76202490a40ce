package sentiment

import "time"

// Window is the collection period for one batch, inclusive of both ends.
type Window struct {
	Start time.Time
	End   time.Time
}

var eastern = mustLoadLocation("America/New_York")

// ResolveWindow spans yesterday 09:31 through today 09:25 US Eastern.
func ResolveWindow(now time.Time) Window {
	local := now.In(eastern)
	yesterday := local.AddDate(0, 0, -1)

	return Window{
		Start: time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), 9, 31, 0, 0, eastern),
		End:   time.Date(local.Year(), local.Month(), local.Day(), 9, 25, 0, 0, eastern),
	}
}

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}
