package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without wrapped error",
			appErr:   New("LEDGER_004", "Insufficient balance", http.StatusBadRequest),
			expected: "[LEDGER_004] Insufficient balance",
		},
		{
			name:     "with wrapped error",
			appErr:   Wrap("SYS_001", "DB error", http.StatusInternalServerError, fmt.Errorf("connection refused")),
			expected: "[SYS_001] DB error: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appErr.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("inner error")
	appErr := Wrap("SYS_001", "wrapped", http.StatusInternalServerError, inner)

	assert.True(t, errors.Is(appErr, inner))
}

func TestAppError_IsNilUnwrap(t *testing.T) {
	appErr := New("LEDGER_001", "test", http.StatusBadRequest)
	assert.Nil(t, appErr.Unwrap())
}

func TestAppError_IsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("scan: %w", ErrExpired("Refund is no longer possible"))

	assert.True(t, errors.Is(err, ErrExpired("")))
	assert.False(t, errors.Is(err, ErrAlreadyUsed()))
	assert.True(t, HasCode(err, CodeExpired))
	assert.False(t, HasCode(fmt.Errorf("plain"), CodeExpired))
}

func TestLedgerErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"NotFound", ErrNotFound("Wallet"), "LEDGER_001", 404},
		{"PermissionDenied", ErrPermissionDenied(""), "LEDGER_002", 403},
		{"Expired", ErrExpired(""), "LEDGER_003", 400},
		{"InsufficientBalance", ErrInsufficientBalance(), "LEDGER_004", 400},
		{"MembershipRequired", ErrMembershipRequired(), "LEDGER_005", 400},
		{"AlreadyConfirmed", ErrAlreadyConfirmed(), "LEDGER_006", 409},
		{"AlreadyReceived", ErrAlreadyReceived(), "LEDGER_007", 400},
		{"AmountMismatch", ErrAmountMismatch(), "LEDGER_008", 400},
		{"InvalidState", ErrInvalidState("bad"), "LEDGER_009", 400},
		{"NothingToInvoice", ErrNothingToInvoice(), "LEDGER_010", 400},
		{"BalanceLimitExceeded", ErrBalanceLimitExceeded(), "LEDGER_011", 403},
		{"AlreadyExists", ErrAlreadyExists("Wallet"), "LEDGER_012", 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestQRErrors(t *testing.T) {
	assert.Equal(t, "QR_001", ErrInvalidSignature().Code)
	assert.Equal(t, http.StatusBadRequest, ErrInvalidSignature().HTTPStatus)
	assert.Equal(t, "QR_002", ErrAlreadyUsed().Code)
	assert.Equal(t, http.StatusConflict, ErrAlreadyUsed().HTTPStatus)
}

func TestErrNotFound_Message(t *testing.T) {
	err := ErrNotFound("Store")
	assert.Equal(t, "Store not found", err.Message)
}

func TestSystemErrors(t *testing.T) {
	inner := fmt.Errorf("pg down")

	dbErr := ErrDatabaseError(inner)
	assert.Equal(t, "SYS_001", dbErr.Code)
	assert.Equal(t, 500, dbErr.HTTPStatus)
	assert.True(t, errors.Is(dbErr, inner))

	inv := ErrInvariantViolation("wallet missing")
	assert.Equal(t, "SYS_004", inv.Code)
	assert.Equal(t, 500, inv.HTTPStatus)

	unavailable := ErrUnavailable("disabled")
	assert.Equal(t, 503, unavailable.HTTPStatus)

	internal := InternalError(inner)
	assert.Equal(t, "SYS_001", internal.Code)
	assert.True(t, errors.Is(internal, inner))
}

func TestValidation(t *testing.T) {
	err := Validation("amount must be positive")
	assert.Equal(t, "PAY_002", err.Code)
	assert.Equal(t, "amount must be positive", err.Message)
	assert.Equal(t, http.StatusBadRequest, err.HTTPStatus)
}

func TestErrorsAs(t *testing.T) {
	original := ErrInsufficientBalance()
	wrapped := fmt.Errorf("scan failed: %w", original)

	var appErr *AppError
	assert.True(t, errors.As(wrapped, &appErr))
	assert.Equal(t, "LEDGER_004", appErr.Code)
}
