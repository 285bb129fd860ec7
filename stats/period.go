// Package stats is the aggregation core behind every chart and statistic
// view: it turns a flat list of time sessions into period buckets, pie
// slices and an hour-of-week heatmap. All functions are pure; the caller
// loads sessions and recomputes from scratch whenever they change.
package stats

import (
	"strconv"
	"time"

	"github.com/connosssss/trackr/models"
)

// Period selects the aggregation window for the bucketed charts.
type Period string

const (
	PeriodWeek    Period = "week"
	PeriodMonth   Period = "month"
	Period3Months Period = "3months"
	PeriodYear    Period = "year"
	PeriodAllTime Period = "alltime"
)

// Anchor carries the caller's clock and the navigable week/month anchors.
// Zero anchors fall back to the Monday of Now's week and the first of Now's
// month respectively.
type Anchor struct {
	Now        time.Time
	WeekStart  time.Time
	MonthStart time.Time
}

// Range is a resolved period: inclusive date bounds plus the ordered bucket
// labels for that window.
type Range struct {
	Period Period
	Start  time.Time
	End    time.Time
	Labels []string
}

const monthYearLayout = "Jan '06"

// StartOfWeek returns the Monday 00:00 of t's week in t's location.
func StartOfWeek(t time.Time) time.Time {
	offset := int(time.Monday - t.Weekday())
	if t.Weekday() == time.Sunday {
		offset = -6
	}
	d := t.AddDate(0, 0, offset)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, t.Location())
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// ResolveRange computes the date bounds and bucket labels for a period.
// Sessions are only consulted for alltime, whose window spans the months of
// the earliest and latest session; with no sessions it yields empty labels
// and the caller gets empty buckets.
func ResolveRange(p Period, a Anchor, sessions []models.TimeSession) Range {
	now := a.Now
	if now.IsZero() {
		now = time.Now()
	}

	switch p {
	case PeriodWeek:
		start := a.WeekStart
		if start.IsZero() {
			start = StartOfWeek(now)
		} else {
			start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
		}
		labels := make([]string, 0, 7)
		for i := 0; i < 7; i++ {
			labels = append(labels, start.AddDate(0, 0, i).Format("Mon"))
		}
		return Range{
			Period: p,
			Start:  start,
			End:    endOfDay(start.AddDate(0, 0, 6)),
			Labels: labels,
		}

	case PeriodMonth:
		start := a.MonthStart
		if start.IsZero() {
			start = startOfMonth(now)
		} else {
			start = startOfMonth(start)
		}
		lastDay := start.AddDate(0, 1, -1)
		labels := make([]string, 0, lastDay.Day())
		for d := 1; d <= lastDay.Day(); d++ {
			labels = append(labels, strconv.Itoa(d))
		}
		return Range{
			Period: p,
			Start:  start,
			End:    endOfDay(lastDay),
			Labels: labels,
		}

	case Period3Months:
		start := startOfMonth(now).AddDate(0, -2, 0)
		labels := make([]string, 0, 3)
		for i := 2; i >= 0; i-- {
			labels = append(labels, startOfMonth(now).AddDate(0, -i, 0).Format("Jan"))
		}
		return Range{Period: p, Start: start, End: now, Labels: labels}

	case PeriodYear:
		start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		labels := make([]string, 0, 12)
		for m := time.January; m <= time.December; m++ {
			labels = append(labels, time.Date(now.Year(), m, 1, 0, 0, 0, 0, now.Location()).Format("Jan"))
		}
		return Range{Period: p, Start: start, End: now, Labels: labels}

	case PeriodAllTime:
		if len(sessions) == 0 {
			return Range{Period: p}
		}
		first, last := sessions[0].StartTime, sessions[0].StartTime
		for _, s := range sessions[1:] {
			if s.StartTime.Before(first) {
				first = s.StartTime
			}
			if s.StartTime.After(last) {
				last = s.StartTime
			}
		}
		start := startOfMonth(first)
		end := startOfMonth(last)
		var labels []string
		for cur := start; !cur.After(end); cur = cur.AddDate(0, 1, 0) {
			labels = append(labels, cur.Format(monthYearLayout))
		}
		return Range{Period: p, Start: start, End: end, Labels: labels}
	}

	return Range{Period: p}
}

// labelFor computes a session start time's bucket key and tests membership.
//
// week/month use the inclusive [Start, End] window. 3months and alltime only
// enforce the lower bound, while year tests calendar-year equality against
// End (the resolver's "now"). The asymmetry means a future-dated session can
// land in a 3months or alltime bucket but not in a year bucket of another
// year; this mirrors the behavior the charts shipped with and is covered by
// tests.
func (r Range) labelFor(t time.Time) (string, bool) {
	switch r.Period {
	case PeriodWeek:
		if t.Before(r.Start) || t.After(r.End) {
			return "", false
		}
		return t.Format("Mon"), true
	case PeriodMonth:
		if t.Before(r.Start) || t.After(r.End) {
			return "", false
		}
		return strconv.Itoa(t.Day()), true
	case Period3Months:
		if t.Before(r.Start) {
			return "", false
		}
		return t.Format("Jan"), true
	case PeriodYear:
		if t.Year() != r.End.Year() {
			return "", false
		}
		return t.Format("Jan"), true
	case PeriodAllTime:
		if t.Before(r.Start) {
			return "", false
		}
		return t.Format(monthYearLayout), true
	}
	return "", false
}
