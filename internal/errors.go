package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidPeriod    ErrorCode = "INVALID_PERIOD"

	ErrCodeAccessDenied       ErrorCode = "ACCESS_DENIED"
	ErrCodeOrderBlocked       ErrorCode = "ORDER_BLOCKED"
	ErrCodeMissingReworkCause ErrorCode = "MISSING_REWORK_CAUSE"
	ErrCodeUnknownReworkCause ErrorCode = "UNKNOWN_REWORK_CAUSE"
	ErrCodeApontamentoLocked  ErrorCode = "APONTAMENTO_LOCKED"

	ErrCodeOrderNotFound       ErrorCode = "ORDER_NOT_FOUND"
	ErrCodeApontamentoNotFound ErrorCode = "APONTAMENTO_NOT_FOUND"
	ErrCodeUserNotFound        ErrorCode = "USER_NOT_FOUND"
	ErrCodeSectorNotFound      ErrorCode = "SECTOR_NOT_FOUND"
	ErrCodeCatalogItemNotFound ErrorCode = "CATALOG_ITEM_NOT_FOUND"
	ErrCodeDuplicateOrder      ErrorCode = "DUPLICATE_ORDER"

	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeUserInactive       ErrorCode = "USER_INACTIVE"
	ErrCodeUserNotApproved    ErrorCode = "USER_NOT_APPROVED"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrCodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewUnauthorizedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewForbiddenError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeForbidden,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

func NewUnprocessableError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnprocessableEntity,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// User-facing messages stay in Portuguese, matching what the shop floor reads.
var (
	ErrAccessDenied       = NewForbiddenError("Usuário sem acesso ao desenvolvimento deste setor", ErrCodeAccessDenied)
	ErrOrderBlocked       = NewUnprocessableError("OS finalizada não aceita novos apontamentos", ErrCodeOrderBlocked)
	ErrMissingReworkCause = NewValidationError("Retrabalho exige uma causa de retrabalho", ErrCodeMissingReworkCause)
	ErrUnknownReworkCause = NewValidationError("Causa de retrabalho não reconhecida", ErrCodeUnknownReworkCause)
	ErrApontamentoLocked  = NewConflictError("Apontamento aprovado não pode ser alterado", ErrCodeApontamentoLocked)

	ErrOrderNotFound       = NewNotFoundError("OS não encontrada", ErrCodeOrderNotFound)
	ErrApontamentoNotFound = NewNotFoundError("Apontamento não encontrado", ErrCodeApontamentoNotFound)
	ErrUserNotFound        = NewNotFoundError("Usuário não encontrado", ErrCodeUserNotFound)
	ErrSectorNotFound      = NewNotFoundError("Setor não encontrado", ErrCodeSectorNotFound)
	ErrCatalogItemNotFound = NewNotFoundError("Item de catálogo não encontrado", ErrCodeCatalogItemNotFound)
	ErrDuplicateOrder      = NewConflictError("OS já cadastrada", ErrCodeDuplicateOrder)

	ErrInvalidCredentials = NewUnauthorizedError("Email ou senha inválidos", ErrCodeInvalidCredentials)
	ErrUserInactive       = NewForbiddenError("Usuário desativado", ErrCodeUserInactive)
	ErrUserNotApproved    = NewForbiddenError("Usuário aguardando aprovação do administrador", ErrCodeUserNotApproved)
	ErrInvalidToken       = NewUnauthorizedError("Token inválido", ErrCodeInvalidToken)
	ErrTokenExpired       = NewUnauthorizedError("Token expirado", ErrCodeTokenExpired)
)

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}

type Response struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	return e.StatusCode, Response{Error: e}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
