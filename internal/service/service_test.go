package service

import (
	"errors"
	"testing"

	"mypayment-ledger/pkg/apperror"

	"github.com/stretchr/testify/assert"
)

func TestFormatEuros(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "0.00 €"},
		{5, "0.05 €"},
		{250, "2.50 €"},
		{100000, "1000.00 €"},
		{-1999, "-19.99 €"},
		{1<<53 + 1, "90071992547409.93 €"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatEuros(tt.cents))
	}
}

func TestInternalErr(t *testing.T) {
	appErr := apperror.ErrInsufficientBalance()
	assert.Same(t, appErr, internalErr("debit", appErr))

	err := internalErr("debit", errors.New("conn reset"))
	assert.True(t, apperror.HasCode(err, apperror.CodeInternal))
	assert.Contains(t, errors.Unwrap(err).Error(), "debit: conn reset")
}
