package timeutil

import (
	"time"
)

// IST is the Indian Standard Time location (UTC+5:30). Accounting dates are
// civil dates in IST; all period boundaries are computed against it.
var IST *time.Location

func init() {
	var err error
	IST, err = time.LoadLocation("Asia/Kolkata")
	if err != nil {
		// Fallback: create fixed zone if Asia/Kolkata not available
		IST = time.FixedZone("IST", 5*60*60+30*60)
	}
}

// Now returns the current time in IST.
func Now() time.Time {
	return time.Now().In(IST)
}

// DateLayout is the wire format of accounting dates.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD accounting date as midnight IST.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, value, IST)
}

// Date truncates a timestamp to its IST civil date.
func Date(t time.Time) time.Time {
	ist := t.In(IST)
	return time.Date(ist.Year(), ist.Month(), ist.Day(), 0, 0, 0, 0, IST)
}

// FormatDate renders a timestamp as its IST civil date.
func FormatDate(t time.Time) string {
	return t.In(IST).Format(DateLayout)
}
