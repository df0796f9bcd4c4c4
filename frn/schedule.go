package frn

import (
	"time"

	"github.com/quantdesk/frnlib/calendar"
	"github.com/quantdesk/frnlib/utils"
)

// CouponPeriod is one accrual period of the note's schedule.
//
// Start and End are business-day adjusted (Modified Following); the
// unadjusted dates are kept for 30/360 accrual per the term sheet. ResetDate
// is the fixing date of the floating rate, two business days before the
// period starts.
type CouponPeriod struct {
	StartUnadjusted time.Time
	EndUnadjusted   time.Time
	Start           time.Time
	End             time.Time
	ResetDate       time.Time
}

// Accrual is the period's 30/360 year fraction.
func (p CouponPeriod) Accrual(dayCount string) float64 {
	return utils.YearFraction(p.Start, p.End, dayCount)
}

// Schedule generates the full coupon schedule from issue to maturity,
// rolling forward by the coupon frequency.
func (n Note) Schedule() []CouponPeriod {
	return n.scheduleFrom(n.IssueDate)
}

// ScheduleFrom generates coupon periods whose start is on or after from,
// keeping the issue-date roll cycle.
func (n Note) ScheduleFrom(from time.Time) []CouponPeriod {
	start := n.IssueDate
	for start.Before(from) {
		start = utils.AddMonth(start, n.FrequencyMonths)
	}
	return n.scheduleFrom(start)
}

func (n Note) scheduleFrom(first time.Time) []CouponPeriod {
	var periods []CouponPeriod
	prev := first
	for {
		next := utils.AddMonth(prev, n.FrequencyMonths)
		if next.After(n.MaturityDate) {
			break
		}
		start := calendar.Adjust(n.Cal, prev)
		end := calendar.Adjust(n.Cal, next)
		periods = append(periods, CouponPeriod{
			StartUnadjusted: prev,
			EndUnadjusted:   next,
			Start:           start,
			End:             end,
			ResetDate:       calendar.AddBusinessDays(n.Cal, start, -n.SettlementLag),
		})
		prev = next
		if next.Equal(n.MaturityDate) {
			break
		}
	}
	return periods
}

// CurrentPeriod returns the period containing asOf, if any.
func (n Note) CurrentPeriod(asOf time.Time) (CouponPeriod, bool) {
	for _, p := range n.Schedule() {
		if p.Start.Before(asOf) && !p.End.Before(asOf) {
			return p, true
		}
	}
	return CouponPeriod{}, false
}
