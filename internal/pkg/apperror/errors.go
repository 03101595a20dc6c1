package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrCodeNotFound           ErrorCode = "NOT_FOUND"
	ErrCodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden          ErrorCode = "FORBIDDEN"
	ErrCodeInsufficientFunds  ErrorCode = "INSUFFICIENT_FUNDS"
	ErrCodeNoOpenContracts    ErrorCode = "NO_OPEN_CONTRACTS"
	ErrCodeDepositCapExceeded ErrorCode = "DEPOSIT_CAP_EXCEEDED"
	ErrCodeInvalidParameter   ErrorCode = "INVALID_PARAMETER"
	ErrCodeSettlementFailed   ErrorCode = "SETTLEMENT_FAILED"
	ErrCodeInternal           ErrorCode = "INTERNAL_ERROR"
)

type AppError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Retryable сообщает, может ли повтор запроса привести к успеху.
// Ошибки бизнес-правил не повторяются, сбои хранилища могут.
func (e *AppError) Retryable() bool {
	return e.Code == ErrCodeSettlementFailed || e.Code == ErrCodeInternal
}

// Withf уточняет сообщение ошибки. Исходная ошибка остаётся причиной, errors.Is её находит.
func (e *AppError) Withf(format string, args ...any) *AppError {
	return &AppError{
		Code:       e.Code,
		Message:    e.Message + " (" + fmt.Sprintf(format, args...) + ")",
		HTTPStatus: e.HTTPStatus,
		Cause:      e,
	}
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

func Newf(code ErrorCode, format string, args ...any) *AppError {
	return New(code, fmt.Sprintf(format, args...))
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Cause:      err,
	}
}

func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeInsufficientFunds, ErrCodeNoOpenContracts, ErrCodeDepositCapExceeded, ErrCodeInvalidParameter:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// From приводит произвольную ошибку к AppError. Неизвестные ошибки становятся внутренними.
func From(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, ErrCodeInternal, "внутренняя ошибка сервера")
}

// CodeOf возвращает код ошибки или пустую строку, если это не AppError.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// Is проверяет код ошибки.
func Is(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

func IsNotFound(err error) bool {
	return Is(err, ErrCodeNotFound)
}

func IsForbidden(err error) bool {
	return Is(err, ErrCodeForbidden)
}

func IsInvalidParameter(err error) bool {
	return Is(err, ErrCodeInvalidParameter)
}

var (
	ErrUnauthorized       = New(ErrCodeUnauthorized, "требуется авторизация")
	ErrJobNotPayable      = New(ErrCodeNotFound, "работа не найдена или уже оплачена")
	ErrContractNotFound   = New(ErrCodeNotFound, "договор не найден")
	ErrInsufficientFunds  = New(ErrCodeInsufficientFunds, "недостаточно средств для оплаты")
	ErrNoOpenContracts    = New(ErrCodeNoOpenContracts, "нет активных договоров с неоплаченными работами")
	ErrDepositCapExceeded = New(ErrCodeDepositCapExceeded, "сумма пополнения превышает 25% от неоплаченных работ")
)
