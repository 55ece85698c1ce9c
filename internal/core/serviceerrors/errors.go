package serviceerrors

import "errors"

type ErrorKind int

const (
	KindNotFound ErrorKind = iota
	KindValidation
	KindInvalidOperation
	KindInvalidRequest
	KindConflict
	KindRepository
	KindInvalidToken
	KindTokenExpired
	KindRateLimited
)

// FieldViolation is a single validation failure, addressed by field path.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func IsOfKind(err error, kind ErrorKind) bool {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Kind == kind
	}
	return false
}

// ViolationsOf returns the field violations attached to a validation error,
// or nil for any other error.
func ViolationsOf(err error) []FieldViolation {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Violations
	}
	return nil
}

type ServiceError struct {
	Kind       ErrorKind
	Message    string
	Violations []FieldViolation
}

func (e *ServiceError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) *ServiceError {
	return &ServiceError{Kind: KindNotFound, Message: message}
}

func NewValidationError(violations []FieldViolation) *ServiceError {
	return &ServiceError{Kind: KindValidation, Message: "Validation Error", Violations: violations}
}

func NewInvalidOperationError(message string) *ServiceError {
	return &ServiceError{Kind: KindInvalidOperation, Message: message}
}

func NewInvalidRequestError(message string) *ServiceError {
	return &ServiceError{Kind: KindInvalidRequest, Message: message}
}

func NewConflictError(message string) *ServiceError {
	return &ServiceError{Kind: KindConflict, Message: message}
}

func NewRepositoryError(message string) *ServiceError {
	return &ServiceError{Kind: KindRepository, Message: message}
}

func NewInvalidTokenError(message string) *ServiceError {
	return &ServiceError{Kind: KindInvalidToken, Message: message}
}

func NewTokenExpiredError(message string) *ServiceError {
	return &ServiceError{Kind: KindTokenExpired, Message: message}
}

func NewRateLimitedError(message string) *ServiceError {
	return &ServiceError{Kind: KindRateLimited, Message: message}
}
