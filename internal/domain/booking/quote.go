package booking

import (
	"time"
)

// ServiceFeeRate is the fixed surcharge applied on top of the subtotal.
const ServiceFeeRate = 0.10

const hoursPerDay = 24

type PriceQuote struct {
	DurationHours  int64
	HourlyRate     float64
	Subtotal       float64
	ServiceFeeRate float64
	ServiceFee     float64
	Total          float64
}

// IsZero reports whether the quote is the "not yet computable" sentinel.
func (q PriceQuote) IsZero() bool {
	return q.DurationHours == 0
}

func zeroQuote() PriceQuote {
	return PriceQuote{ServiceFeeRate: ServiceFeeRate}
}

// ComputeQuote prices the interval [start, end) against a daily rate.
// A zero start or end, or an end not after start, yields the zero quote.
// Partial hours are billed as full hours.
func ComputeQuote(dailyRate float64, start, end time.Time) PriceQuote {
	if dailyRate < 0 {
		panic("booking: daily rate cannot be negative")
	}
	if start.IsZero() || end.IsZero() || !end.After(start) {
		return zeroQuote()
	}

	hours := billableHours(end.Sub(start))
	hourly := dailyRate / hoursPerDay
	subtotal := float64(hours) * hourly
	fee := subtotal * ServiceFeeRate

	return PriceQuote{
		DurationHours:  hours,
		HourlyRate:     hourly,
		Subtotal:       subtotal,
		ServiceFeeRate: ServiceFeeRate,
		ServiceFee:     fee,
		Total:          subtotal + fee,
	}
}

func billableHours(d time.Duration) int64 {
	h := int64(d / time.Hour)
	if d%time.Hour != 0 {
		h++
	}
	return h
}
