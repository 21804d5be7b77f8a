package service

import (
	"errors"
	"fmt"
)

const (
	CodeNotFound        = "NOT_FOUND"
	CodeValidation      = "VALIDATION_ERROR"
	CodeAlreadyArchived = "ALREADY_ARCHIVED"
	CodeNotArchived     = "NOT_ARCHIVED"
	CodeProjectArchived = "PROJECT_ARCHIVED"
)

type Resource string

const (
	ResourceProject   Resource = "project"
	ResourceTask      Resource = "task"
	ResourceMilestone Resource = "milestone"
)

type BusinessError struct {
	Code    string
	Message string
	Details map[string]any
	Err     error
}

type Detail struct {
	Key     string
	Payload any
}

func (b *BusinessError) Error() string {
	if b.Err != nil {
		return fmt.Sprintf("[%s] %s: %s", b.Code, b.Message, b.Err.Error())
	}
	return fmt.Sprintf("[%s] %s", b.Code, b.Message)
}

func (b *BusinessError) Unwrap() error {
	return b.Err
}

func ToDetail(key string, payload any) Detail {
	return Detail{Key: key, Payload: payload}
}

func NewBusinessError(code string, message string, details ...Detail) *BusinessError {
	busErr := &BusinessError{
		Code:    code,
		Message: message,
		Details: make(map[string]any),
	}
	for _, detail := range details {
		busErr.Details[detail.Key] = detail.Payload
	}
	return busErr
}

func NewNotFound(resource Resource, id string) *BusinessError {
	return NewBusinessError(CodeNotFound,
		fmt.Sprintf("%s %s not found", resource, id),
		ToDetail("resource", resource),
		ToDetail("id", id),
	)
}

func NewValidationError(field, reason string) *BusinessError {
	return NewValidationErrors([]FieldError{{Field: field, Message: reason}})
}

// FieldError is one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NewValidationErrors reports every rejected field at once. Details carry
// the messages in input order and a field->message map.
func NewValidationErrors(fieldErrors []FieldError) *BusinessError {
	messages := make([]string, len(fieldErrors))
	fields := make(map[string]string, len(fieldErrors))
	for i, fe := range fieldErrors {
		messages[i] = fe.Message
		if _, seen := fields[fe.Field]; !seen {
			fields[fe.Field] = fe.Message
		}
	}

	message := "invalid input"
	if len(messages) == 1 {
		message = messages[0]
	}
	return NewBusinessError(CodeValidation, message,
		ToDetail("errors", messages),
		ToDetail("fields", fields),
	)
}

func newProjectArchived(resource Resource, id string) *BusinessError {
	return NewBusinessError(CodeProjectArchived,
		fmt.Sprintf("%s %s belongs to an archived project", resource, id),
		ToDetail("resource", resource),
		ToDetail("id", id),
	)
}

// IsCode reports whether err is a BusinessError with the given code.
func IsCode(err error, code string) bool {
	var busErr *BusinessError
	return errors.As(err, &busErr) && busErr.Code == code
}
