package payment

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acacia-hms/service-frontdesk/internal/domain"
)

func TestNewPayment(t *testing.T) {
	p, err := NewPayment(uuid.New(), 12000, MethodMpesa, "MPESA-TX-001")
	require.NoError(t, err)

	assert.Equal(t, StatusCompleted, p.Status())
	assert.True(t, p.IsCompleted())
	assert.Equal(t, int64(12000), p.Amount())
	assert.Equal(t, "MPESA-TX-001", p.TransactionID())
}

func TestNewPayment_Validation(t *testing.T) {
	t.Run("missing booking", func(t *testing.T) {
		_, err := NewPayment(uuid.Nil, 100, MethodCash, "")
		assert.True(t, domain.IsKind(err, domain.KindValidation))
	})

	t.Run("non-positive amount", func(t *testing.T) {
		_, err := NewPayment(uuid.New(), 0, MethodCash, "")
		assert.True(t, domain.IsKind(err, domain.KindValidation))
	})

	t.Run("unknown method", func(t *testing.T) {
		_, err := NewPayment(uuid.New(), 100, "cheque", "")
		assert.True(t, domain.IsKind(err, domain.KindValidation))
	})
}

func TestParseMethod(t *testing.T) {
	method, err := ParseMethod("bank_transfer")
	require.NoError(t, err)
	assert.Equal(t, MethodBankTransfer, method)

	_, err = ParseMethod("barter")
	assert.Error(t, err)
}
