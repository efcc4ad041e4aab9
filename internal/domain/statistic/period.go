package statistic

import (
	"fmt"
	"time"

	"github.com/alumnet-lab/backend/pkg/dateutil"
)

const (
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodAll   = "all"
)

// Period is a time range of leaderboard. The all-time period has zero bounds.
type Period struct {
	name  string
	start time.Time
	end   time.Time
}

func (p Period) Name() string {
	return p.name
}

func (p Period) Start() time.Time {
	return p.start
}

func (p Period) End() time.Time {
	return p.end
}

func (p Period) IsAllTime() bool {
	return p.name == PeriodAll
}

// Key identifies the period in redis keys, e.g. week-20231016.
func (p Period) Key() string {
	switch p.name {
	case PeriodWeek:
		return fmt.Sprintf("week-%s", p.start.Format("20060102"))
	case PeriodMonth:
		return fmt.Sprintf("month-%s", p.start.Format("200601"))
	}

	return PeriodAll
}

func ToPeriodWithTime(periodString string, current time.Time) (Period, error) {
	switch periodString {
	case PeriodWeek:
		start := dateutil.CurrentWeek(current)
		return Period{name: PeriodWeek, start: start, end: start.AddDate(0, 0, 7)}, nil
	case PeriodMonth:
		start := dateutil.CurrentMonth(current)
		return Period{name: PeriodMonth, start: start, end: start.AddDate(0, 1, 0)}, nil
	case PeriodAll, "":
		return Period{name: PeriodAll}, nil
	}

	return Period{}, fmt.Errorf("invalid period, expected week, month or all, but got %s", periodString)
}

func ToPeriod(periodString string) (Period, error) {
	return ToPeriodWithTime(periodString, time.Now())
}
