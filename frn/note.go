// Package frn models a capped/floored floating rate note and its valuation.
package frn

import (
	"fmt"
	"time"

	"github.com/quantdesk/frnlib/calendar"
	"github.com/quantdesk/frnlib/config"
	"github.com/quantdesk/frnlib/utils"
)

// Note is the term sheet of a capped/floored floating rate note.
type Note struct {
	Issuer   string
	Name     string
	ISIN     string
	Currency string

	Notional     float64
	IssueDate    time.Time
	MaturityDate time.Time
	TradeDate    time.Time

	// Floor and Cap bound the reference rate, as decimals.
	Floor float64
	Cap   float64

	FrequencyMonths int
	SettlementLag   int

	Cal            calendar.CalendarID
	CouponDayCount string
}

// FromConfig builds a Note from the config section, filling in the EUR
// conventions the term sheet implies (TARGET calendar, 30/360 coupons).
func FromConfig(nc config.NoteConfig) (Note, error) {
	issue, err := utils.ParseDate(nc.IssueDate)
	if err != nil {
		return Note{}, fmt.Errorf("FromConfig: issue_date: %w", err)
	}
	maturity, err := utils.ParseDate(nc.MaturityDate)
	if err != nil {
		return Note{}, fmt.Errorf("FromConfig: maturity_date: %w", err)
	}
	trade, err := utils.ParseDate(nc.TradeDate)
	if err != nil {
		return Note{}, fmt.Errorf("FromConfig: trade_date: %w", err)
	}
	if !maturity.After(issue) {
		return Note{}, fmt.Errorf("FromConfig: maturity (%s) must be after issue (%s)", nc.MaturityDate, nc.IssueDate)
	}
	if nc.Floor >= nc.Cap {
		return Note{}, fmt.Errorf("FromConfig: floor (%v) must be below cap (%v)", nc.Floor, nc.Cap)
	}

	return Note{
		Issuer:          nc.Issuer,
		Name:            nc.Name,
		ISIN:            nc.ISIN,
		Currency:        nc.Currency,
		Notional:        nc.Notional,
		IssueDate:       issue,
		MaturityDate:    maturity,
		TradeDate:       trade,
		Floor:           nc.Floor,
		Cap:             nc.Cap,
		FrequencyMonths: nc.FrequencyMonth,
		SettlementLag:   nc.SettlementLag,
		Cal:             calendar.TARGET,
		CouponDayCount:  "30/360",
	}, nil
}

// CouponRate applies the collar to a reference rate (all decimals).
func (n Note) CouponRate(ref float64) float64 {
	return utils.Clip(ref, n.Floor, n.Cap)
}

// ValueDate is the trade date plus the settlement lag in business days.
func (n Note) ValueDate() time.Time {
	return calendar.AddBusinessDays(n.Cal, n.TradeDate, n.SettlementLag)
}

// NextPaymentDate returns the first unadjusted coupon date of the issue
// cycle strictly after the given date.
func (n Note) NextPaymentDate(after time.Time) time.Time {
	d := n.IssueDate
	for !d.After(after) {
		d = utils.AddMonth(d, n.FrequencyMonths)
	}
	return d
}
