package domain

import "fmt"

// AppError is the base domain error type.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Cause   error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Cause }

// Standard domain error constructors.

func ErrNotFound(entity, id string) *AppError {
	return &AppError{Code: "NOT_FOUND", Message: fmt.Sprintf("%s %s not found", entity, id), Status: 404}
}

func ErrUnauthorized(msg string) *AppError {
	return &AppError{Code: "UNAUTHORIZED", Message: msg, Status: 401}
}

func ErrForbidden(msg string) *AppError {
	return &AppError{Code: "FORBIDDEN", Message: msg, Status: 403}
}

func ErrValidation(msg string) *AppError {
	return &AppError{Code: "VALIDATION_ERROR", Message: msg, Status: 400}
}

func ErrConflict(msg string) *AppError {
	return &AppError{Code: "CONFLICT", Message: msg, Status: 409}
}

// ErrInsufficientResource signals that a spendable resource (mana, coins,
// gems) is below the required cost.
func ErrInsufficientResource(resource string, have, need int) *AppError {
	return &AppError{
		Code:    "INSUFFICIENT_RESOURCE",
		Message: fmt.Sprintf("not enough %s: have %d, need %d", resource, have, need),
		Status:  400,
	}
}

// ErrUnknownEffect signals an effect kind that is not in the catalog.
func ErrUnknownEffect(kind string) *AppError {
	return &AppError{Code: "UNKNOWN_EFFECT", Message: fmt.Sprintf("no logic registered for effect kind %q", kind), Status: 400}
}

// ErrMissingContext signals an effect invocation without a required
// contextual identifier (zone, habit, gear).
func ErrMissingContext(field string) *AppError {
	return &AppError{Code: "MISSING_CONTEXT", Message: fmt.Sprintf("effect context is missing %s", field), Status: 400}
}

// ErrInvariant signals state the engine should never produce, such as a
// negative counter.
func ErrInvariant(msg string) *AppError {
	return &AppError{Code: "INVARIANT_VIOLATION", Message: msg, Status: 500}
}

func ErrInternal(msg string, cause error) *AppError {
	return &AppError{Code: "INTERNAL_ERROR", Message: msg, Status: 500, Cause: cause}
}
