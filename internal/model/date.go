package model

import (
	"fmt"
	"time"
)

const (
	dayLayout   = "2006-01-02"
	monthLayout = "2006-01"
)

// Date is a calendar day, or a whole month when MonthOnly is set.
type Date struct {
	time.Time
	MonthOnly bool
}

// ParseDate accepts "YYYY-MM-DD" or "YYYY-MM".
func ParseDate(s string) (Date, error) {
	if t, err := time.Parse(dayLayout, s); err == nil {
		return Date{Time: t}, nil
	}
	t, err := time.Parse(monthLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parsing date %q: want YYYY-MM-DD or YYYY-MM", s)
	}
	return Date{Time: t, MonthOnly: true}, nil
}

// DayOf returns the calendar day of t.
func DayOf(t time.Time) Date {
	return Date{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// MonthOf returns a month-only date.
func MonthOf(year, month int) Date {
	return Date{Time: time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC), MonthOnly: true}
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	if d.MonthOnly {
		return d.Format(monthLayout)
	}
	return d.Format(dayLayout)
}
