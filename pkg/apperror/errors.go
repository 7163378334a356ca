package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches two AppErrors by code, so errors.Is(err, ErrExpired("")) works
// regardless of the message.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// HasCode reports whether err is an AppError carrying code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// Error codes.
const (
	CodeNotFound             = "LEDGER_001"
	CodePermissionDenied     = "LEDGER_002"
	CodeExpired              = "LEDGER_003"
	CodeInsufficientBalance  = "LEDGER_004"
	CodeMembershipRequired   = "LEDGER_005"
	CodeAlreadyConfirmed     = "LEDGER_006"
	CodeAlreadyReceived      = "LEDGER_007"
	CodeAmountMismatch       = "LEDGER_008"
	CodeInvalidState         = "LEDGER_009"
	CodeNothingToInvoice     = "LEDGER_010"
	CodeBalanceLimitExceeded = "LEDGER_011"
	CodeAlreadyExists        = "LEDGER_012"

	CodeInvalidSignature = "QR_001"
	CodeAlreadyUsed      = "QR_002"

	CodeValidation = "PAY_002"

	CodeInvalidToken       = "AUTH_003"
	CodeInvalidCallback    = "AUTH_004"
	CodeInvalidVerifier    = "AUTH_005"
	CodeRateLimitExceeded  = "RATE_001"
	CodeInternal           = "SYS_001"
	CodeInvariantViolation = "SYS_004"
	CodeUnavailable        = "SYS_005"
)

// ---- Ledger business rules (LEDGER) ----

func ErrNotFound(entity string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

func ErrPermissionDenied(message string) *AppError {
	if message == "" {
		message = "Permission denied"
	}
	return New(CodePermissionDenied, message, http.StatusForbidden)
}

func ErrExpired(message string) *AppError {
	if message == "" {
		message = "Operation window has expired"
	}
	return New(CodeExpired, message, http.StatusBadRequest)
}

func ErrInsufficientBalance() *AppError {
	return New(CodeInsufficientBalance, "Insufficient balance in wallet", http.StatusBadRequest)
}

func ErrMembershipRequired() *AppError {
	return New(CodeMembershipRequired, "User is not a member of the required association", http.StatusBadRequest)
}

func ErrAlreadyConfirmed() *AppError {
	return New(CodeAlreadyConfirmed, "Transfer already confirmed", http.StatusConflict)
}

func ErrAlreadyReceived() *AppError {
	return New(CodeAlreadyReceived, "Invoice already received", http.StatusBadRequest)
}

func ErrAmountMismatch() *AppError {
	return New(CodeAmountMismatch, "Paid amount does not match transfer total", http.StatusBadRequest)
}

// ErrInvalidState reports a state transition that is not allowed from the
// entity's current status.
func ErrInvalidState(message string) *AppError {
	return New(CodeInvalidState, message, http.StatusBadRequest)
}

func ErrNothingToInvoice() *AppError {
	return New(CodeNothingToInvoice, "No invoice to create", http.StatusBadRequest)
}

func ErrBalanceLimitExceeded() *AppError {
	return New(CodeBalanceLimitExceeded, "Wallet balance would exceed the maximum allowed balance", http.StatusForbidden)
}

func ErrAlreadyExists(entity string) *AppError {
	return New(CodeAlreadyExists, fmt.Sprintf("%s already exists", entity), http.StatusBadRequest)
}

// ---- QR codes (QR) ----

func ErrInvalidSignature() *AppError {
	return New(CodeInvalidSignature, "Invalid signature", http.StatusBadRequest)
}

func ErrAlreadyUsed() *AppError {
	return New(CodeAlreadyUsed, "QR Code already used", http.StatusConflict)
}

// ---- Authentication (AUTH) ----

func ErrInvalidToken() *AppError {
	return New(CodeInvalidToken, "Invalid or expired token", http.StatusUnauthorized)
}

func ErrInvalidCallbackSignature() *AppError {
	return New(CodeInvalidCallback, "Invalid callback signature", http.StatusUnauthorized)
}

func ErrInvalidVerifierToken() *AppError {
	return New(CodeInvalidVerifier, "Invalid data verifier token", http.StatusForbidden)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New(CodeRateLimitExceeded, "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap(CodeInternal, "Internal database error", http.StatusInternalServerError, err)
}

// ErrInvariantViolation is a server fault: stored data contradicts a ledger invariant.
func ErrInvariantViolation(message string) *AppError {
	return New(CodeInvariantViolation, message, http.StatusInternalServerError)
}

func ErrUnavailable(message string) *AppError {
	return New(CodeUnavailable, message, http.StatusServiceUnavailable)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap(CodeInternal, "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a PAY_002-style validation error.
func Validation(message string) *AppError {
	return New(CodeValidation, message, http.StatusBadRequest)
}
