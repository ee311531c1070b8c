// Package marketclock answers whether the market behind a ticker is
// currently in a trading session.
package marketclock

import (
	"strings"
	"time"

	"github.com/scmhub/calendar"
)

// micFor maps a ticker suffix to an ISO 10383 MIC code. Bare US tickers
// default to NYSE.
func micFor(ticker string) string {
	switch {
	case strings.HasSuffix(ticker, ".L"):
		return "xlon"
	case strings.HasSuffix(ticker, ".T"):
		return "xtks"
	case strings.HasSuffix(ticker, ".HK"):
		return "xhkg"
	case strings.HasSuffix(ticker, ".TO"):
		return "xtse"
	default:
		return "xnys"
	}
}

// IsOpen reports whether the market trading ticker is open at t. When no
// calendar is available for the venue, a Mon-Fri 09:30-16:00 New York
// fallback is used.
func IsOpen(ticker string, t time.Time) bool {
	cal := calendar.GetCalendar(micFor(ticker))
	if cal == nil {
		cal = calendar.GetCalendar("xnys")
	}
	if cal != nil {
		return cal.IsOpen(t.In(cal.Loc))
	}
	return fallbackIsOpen(t)
}

// fallbackIsOpen approximates a US session: Mon-Fri 09:30-16:00 New York.
func fallbackIsOpen(t time.Time) bool {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		loc = time.UTC
	}
	t = t.In(loc)

	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return false
	}
	hour, minute := t.Hour(), t.Minute()
	return (hour > 9 || (hour == 9 && minute >= 30)) && hour < 16
}

// IsTradingDay reports whether t falls on a trading day for the market
// behind ticker.
func IsTradingDay(ticker string, t time.Time) bool {
	cal := calendar.GetCalendar(micFor(ticker))
	if cal == nil {
		cal = calendar.GetCalendar("xnys")
	}
	if cal != nil {
		return cal.IsBusinessDay(t.In(cal.Loc))
	}
	weekday := t.Weekday()
	return weekday != time.Saturday && weekday != time.Sunday
}
