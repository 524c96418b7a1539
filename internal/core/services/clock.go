package services

import (
	"time"

	"github.com/fithub/ledger-engine/internal/core/domain"
)

// Clock is the single source of "now" for the services. Tests pin it.
type Clock func() time.Time

// Calendar turns clock readings into calendar days of the ledger's location.
type Calendar struct {
	clock Clock
	loc   *time.Location
}

func NewCalendar(clock Clock, loc *time.Location) Calendar {
	if clock == nil {
		clock = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	return Calendar{clock: clock, loc: loc}
}

// Now reads the clock once and expresses it in the ledger's location.
func (c Calendar) Now() time.Time {
	return c.clock().In(c.loc)
}

// Today is midnight of the current calendar day.
func (c Calendar) Today() time.Time {
	return domain.StartOfDay(c.Now())
}

func (c Calendar) Location() *time.Location {
	return c.loc
}
