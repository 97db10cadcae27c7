package booking

import (
	"math"
	"time"

	"github.com/acacia-hms/service-frontdesk/internal/domain"
)

// StayQuote is the derived pricing for a stay. Amounts are in integer
// currency units (KES).
type StayQuote struct {
	Nights   int   `json:"nights"`
	Subtotal int64 `json:"subtotal"`
	Tax      int64 `json:"tax"`
	Total    int64 `json:"total"`
}

// ComputeStay derives the night count and charges for a stay.
//
// Nights is the ceiling of the day span between checkIn and checkOut: a guest
// occupying any part of a day owes for that night. With taxRate zero, Total
// equals Subtotal and Tax is zero; otherwise Tax is Subtotal scaled by
// taxRate, rounded to the nearest unit.
//
// ComputeStay is pure and deterministic. Booking creation and invoice
// rendering both call it, and the two results must agree exactly.
func ComputeStay(nightlyRate int64, checkIn, checkOut time.Time, taxRate float64) (StayQuote, error) {
	if nightlyRate <= 0 {
		return StayQuote{}, domain.NewValidationError("nightly rate must be positive")
	}
	if !checkOut.After(checkIn) {
		return StayQuote{}, domain.NewInvalidDateRangeError("check-out must be after check-in")
	}
	if taxRate < 0 {
		return StayQuote{}, domain.NewValidationError("tax rate cannot be negative")
	}

	nights := StayNights(checkIn, checkOut)
	subtotal := int64(nights) * nightlyRate

	var tax int64
	if taxRate > 0 {
		tax = int64(math.Round(float64(subtotal) * taxRate))
	}

	return StayQuote{
		Nights:   nights,
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal + tax,
	}, nil
}

// StayNights returns the number of billable nights between checkIn and
// checkOut. Partial days round up; the result is at least 1 for any valid
// range.
func StayNights(checkIn, checkOut time.Time) int {
	days := checkOut.Sub(checkIn).Hours() / 24
	return int(math.Ceil(days))
}
