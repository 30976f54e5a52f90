package courier

import (
	"fmt"
	"strings"

	"fooddelivery/internal/pkg/errs"
)

// EarningsPeriod selects which rolling bucket of a courier's earnings a
// scheduled reset applies to.
type EarningsPeriod int

const (
	EarningsPeriodUnknown EarningsPeriod = iota
	Daily
	Weekly
	Monthly
)

func getEarningsPeriodStrings() map[EarningsPeriod]string {
	return map[EarningsPeriod]string{
		Daily:   "daily",
		Weekly:  "weekly",
		Monthly: "monthly",
	}
}

// EarningsPeriodFromString parses a period name, case-insensitively.
func EarningsPeriodFromString(value string) (EarningsPeriod, error) {
	for period, name := range getEarningsPeriodStrings() {
		if strings.EqualFold(name, value) {
			return period, nil
		}
	}
	return 0, errs.NewValueIsInvalidErrorWithCause("earnings period",
		fmt.Errorf("%q is not a valid earnings period", value))
}

// Validate checks that the period is one of the defined reset periods.
func (p EarningsPeriod) Validate() error {
	if _, ok := getEarningsPeriodStrings()[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("earnings period",
			fmt.Errorf("%d is not a valid earnings period", p))
	}
	return nil
}

func (p EarningsPeriod) String() string {
	if str, ok := getEarningsPeriodStrings()[p]; ok {
		return str
	}
	return "unknown"
}

// Earnings tracks a courier's pay across rolling windows. Total accumulates
// for the courier's lifetime; Today, ThisWeek and ThisMonth are cleared by
// the scheduled resets; Pending is what has not been paid out yet.
type Earnings struct {
	Total     float64
	Today     float64
	ThisWeek  float64
	ThisMonth float64
	Pending   float64
}

// Add accrues a delivery payout into every bucket.
func (e *Earnings) Add(amount float64) error {
	if amount < 0 {
		return errs.NewValueIsInvalidErrorWithCause("earnings amount",
			fmt.Errorf("%.2f is negative", amount))
	}

	e.Total += amount
	e.Today += amount
	e.ThisWeek += amount
	e.ThisMonth += amount
	e.Pending += amount
	return nil
}

// Reset clears the bucket for the given period. Resetting an already-zero
// bucket is a no-op, which keeps scheduled resets idempotent.
func (e *Earnings) Reset(period EarningsPeriod) error {
	if err := period.Validate(); err != nil {
		return err
	}

	switch period {
	case Daily:
		e.Today = 0
	case Weekly:
		e.ThisWeek = 0
	case Monthly:
		e.ThisMonth = 0
	}
	return nil
}
