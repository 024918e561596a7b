package human

import (
	"fmt"
	"math"
	"time"
)

type timeUnit struct {
	upTo time.Duration
	size time.Duration
	name string
}

var timeUnits = []timeUnit{
	{upTo: 90 * time.Second, size: time.Second, name: "secs"},
	{upTo: 90 * time.Minute, size: time.Minute, name: "mins"},
	{upTo: 36 * time.Hour, size: time.Hour, name: "hrs"},
	{upTo: 14 * 24 * time.Hour, size: 24 * time.Hour, name: "days"},
}

// Age describes when t happened relative to now, e.g. "5 mins ago". Moments more than two
// weeks away are printed as a date.
func Age(now, t time.Time) string {
	d := now.Sub(t)
	past := d >= 0
	if !past {
		d = -d
	}
	if d < time.Second {
		return "now"
	}
	for _, u := range timeUnits {
		if d > u.upTo {
			continue
		}
		s := fmt.Sprintf("%v %v", math.Round(float64(d)/float64(u.size)), u.name)
		if past {
			return s + " ago"
		}
		return "in " + s
	}
	return t.Local().Format(time.DateOnly)
}

// Duration rounds d to a precision that suits its magnitude.
func Duration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return d.Round(time.Microsecond).String()
	case d < time.Second:
		return d.Round(100 * time.Microsecond).String()
	case d < time.Minute:
		return d.Round(time.Millisecond).String()
	default:
		return d.Round(time.Second).String()
	}
}
