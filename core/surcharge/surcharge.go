// Package surcharge applies fixed scheduling surcharges.
// Pure functions: no I/O, no failure modes.
package surcharge

import (
	"time"

	"github.com/shopspring/decimal"

	"notary-pricing/core/types"
)

// Schedule holds the fixed surcharge amounts
type Schedule struct {
	AfterHours decimal.Decimal
	Weekend    decimal.Decimal
	Priority   decimal.Decimal
	SameDay    decimal.Decimal
}

// DefaultSchedule returns the standard surcharge amounts.
// Same-day carries no charge but stays configurable.
func DefaultSchedule() Schedule {
	return Schedule{
		AfterHours: decimal.NewFromInt(30),
		Weekend:    decimal.NewFromInt(40),
		Priority:   decimal.NewFromInt(25),
		SameDay:    decimal.Zero,
	}
}

// Compute sums every applicable surcharge. The amounts are independent fixed
// fees, so order does not matter.
//
// After-hours applies only to the standard service outside 9am-5pm local
// time. Weekend applies to every service on Saturday and Sunday.
func Compute(s Schedule, serviceType types.ServiceType, scheduledAt time.Time, opts types.RequestOptions) decimal.Decimal {
	total := decimal.Zero

	hour := scheduledAt.Hour()
	if serviceType == types.StandardNotary && (hour < 9 || hour >= 17) {
		total = total.Add(s.AfterHours)
	}

	switch scheduledAt.Weekday() {
	case time.Saturday, time.Sunday:
		total = total.Add(s.Weekend)
	}

	if opts.Priority {
		total = total.Add(s.Priority)
	}

	if opts.SameDay {
		total = total.Add(s.SameDay)
	}

	return total
}
