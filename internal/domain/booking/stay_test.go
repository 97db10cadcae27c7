package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acacia-hms/service-frontdesk/internal/domain"
)

func date(y int, m time.Month, d, hour int) time.Time {
	return time.Date(y, m, d, hour, 0, 0, 0, time.UTC)
}

func TestComputeStay_Nights(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		want     int
	}{
		{
			name:     "exact single night",
			checkIn:  date(2025, time.March, 10, 14),
			checkOut: date(2025, time.March, 11, 14),
			want:     1,
		},
		{
			name:     "exact three nights",
			checkIn:  date(2025, time.March, 10, 14),
			checkOut: date(2025, time.March, 13, 14),
			want:     3,
		},
		{
			name:     "partial day owes a full night",
			checkIn:  date(2025, time.March, 10, 14),
			checkOut: date(2025, time.March, 11, 15),
			want:     2,
		},
		{
			name:     "late checkout by one hour on day three",
			checkIn:  date(2025, time.March, 10, 12),
			checkOut: date(2025, time.March, 13, 13),
			want:     4,
		},
		{
			name:     "few hours same day is one night",
			checkIn:  date(2025, time.March, 10, 9),
			checkOut: date(2025, time.March, 10, 18),
			want:     1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote, err := ComputeStay(5000, tt.checkIn, tt.checkOut, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.want, quote.Nights)
			assert.Equal(t, int64(tt.want)*5000, quote.Subtotal)
		})
	}
}

func TestComputeStay_Tax(t *testing.T) {
	checkIn := date(2025, time.June, 1, 14)
	checkOut := date(2025, time.June, 4, 10)

	quote, err := ComputeStay(7500, checkIn, checkOut, 0.16)
	require.NoError(t, err)

	assert.Equal(t, 3, quote.Nights)
	assert.Equal(t, int64(22500), quote.Subtotal)
	assert.Equal(t, int64(3600), quote.Tax)
	assert.Equal(t, quote.Subtotal+quote.Tax, quote.Total)
}

func TestComputeStay_TaxRounding(t *testing.T) {
	// 1 night at 333: tax = round(333 * 0.16) = round(53.28) = 53.
	quote, err := ComputeStay(333, date(2025, time.June, 1, 14), date(2025, time.June, 2, 10), 0.16)
	require.NoError(t, err)
	assert.Equal(t, int64(53), quote.Tax)
	assert.Equal(t, int64(386), quote.Total)
}

func TestComputeStay_ZeroTaxRate(t *testing.T) {
	quote, err := ComputeStay(5000, date(2025, time.June, 1, 14), date(2025, time.June, 2, 10), 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), quote.Tax)
	assert.Equal(t, quote.Subtotal, quote.Total)
}

func TestComputeStay_Deterministic(t *testing.T) {
	checkIn := date(2025, time.June, 1, 14)
	checkOut := date(2025, time.June, 5, 10)

	first, err := ComputeStay(12000, checkIn, checkOut, 0.16)
	require.NoError(t, err)
	second, err := ComputeStay(12000, checkIn, checkOut, 0.16)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestComputeStay_Invalid(t *testing.T) {
	checkIn := date(2025, time.June, 2, 14)

	t.Run("checkout before checkin", func(t *testing.T) {
		_, err := ComputeStay(5000, checkIn, checkIn.Add(-24*time.Hour), 0)
		require.Error(t, err)
		assert.True(t, domain.IsCode(err, "INVALID_DATE_RANGE"))
	})

	t.Run("checkout equals checkin", func(t *testing.T) {
		_, err := ComputeStay(5000, checkIn, checkIn, 0)
		require.Error(t, err)
		assert.True(t, domain.IsCode(err, "INVALID_DATE_RANGE"))
	})

	t.Run("zero rate", func(t *testing.T) {
		_, err := ComputeStay(0, checkIn, checkIn.Add(24*time.Hour), 0)
		require.Error(t, err)
		assert.True(t, domain.IsKind(err, domain.KindValidation))
	})

	t.Run("negative tax rate", func(t *testing.T) {
		_, err := ComputeStay(5000, checkIn, checkIn.Add(24*time.Hour), -0.1)
		require.Error(t, err)
		assert.True(t, domain.IsKind(err, domain.KindValidation))
	})
}
