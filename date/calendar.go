package date

import (
	"fmt"
	"time"
)

// Calendar computes business-day arithmetic over a fixed holiday set.
//
// A Calendar is immutable after construction and safe to share across
// concurrent simulation runs.
type Calendar struct {
	holidays map[Date]bool
}

// NewCalendar returns a Calendar observing the given holidays.
// An empty holiday set yields a weekend-only calendar.
func NewCalendar(holidays ...Date) *Calendar {
	c := &Calendar{holidays: make(map[Date]bool, len(holidays))}
	for _, h := range holidays {
		c.holidays[h] = true
	}
	return c
}

// IsHoliday reports whether d is in the calendar's holiday set.
func (c *Calendar) IsHoliday(d Date) bool { return c.holidays[d] }

// IsBusinessDay reports whether d is neither a weekend nor a holiday.
func (c *Calendar) IsBusinessDay(d Date) bool {
	wd := d.Weekday()
	if wd == time.Saturday || wd == time.Sunday {
		return false
	}
	return !c.holidays[d]
}

// AddBusinessDays returns the date n business days after d, skipping
// weekends and holidays. n == 0 returns d unchanged, even when d itself
// is not a business day. Negative n is a usage error and panics.
func (c *Calendar) AddBusinessDays(d Date, n int) Date {
	if n < 0 {
		panic(fmt.Sprintf("date: AddBusinessDays called with negative count %d", n))
	}
	for added := 0; added < n; {
		d = d.Add(1)
		if c.IsBusinessDay(d) {
			added++
		}
	}
	return d
}

// SubtractBusinessDays returns the date n business days before d. It is
// used to compute the latest possible request date for a redemption that
// must settle by d. Negative n is a usage error and panics.
func (c *Calendar) SubtractBusinessDays(d Date, n int) Date {
	if n < 0 {
		panic(fmt.Sprintf("date: SubtractBusinessDays called with negative count %d", n))
	}
	for subtracted := 0; subtracted < n; {
		d = d.Add(-1)
		if c.IsBusinessDay(d) {
			subtracted++
		}
	}
	return d
}

// AddCalendarDays returns the date n calendar days after d. The holiday
// set is irrelevant for calendar-day counting; the method exists so both
// day-count conventions share one call site. Negative n panics.
func (c *Calendar) AddCalendarDays(d Date, n int) Date {
	if n < 0 {
		panic(fmt.Sprintf("date: AddCalendarDays called with negative count %d", n))
	}
	return d.Add(n)
}

// NextBusinessDay returns d when d is a business day, otherwise the first
// business day after d.
func (c *Calendar) NextBusinessDay(d Date) Date {
	for !c.IsBusinessDay(d) {
		d = d.Add(1)
	}
	return d
}
