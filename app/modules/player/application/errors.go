package playerservice

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidInput = errors.New("invalid input")
)

const (
	FieldID        = "id"
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
	FieldNamePair  = "first_name,last_name"
	FieldOffset    = "startIndex"
	FieldPageSize  = "pageSize"
	FieldSort      = "sort"
)

// FieldError is a domain failure, optionally naming the offending field.
// errors.Is matches it against its Kind.
type FieldError struct {
	Kind    error
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s (field %s)", e.Kind, e.Message, e.Field)
}

func (e *FieldError) Unwrap() error { return e.Kind }

func notFound(field, message string) *FieldError {
	return &FieldError{Kind: ErrNotFound, Field: field, Message: message}
}

func conflict(field, message string) *FieldError {
	return &FieldError{Kind: ErrConflict, Field: field, Message: message}
}

func invalidInput(field, message string) *FieldError {
	return &FieldError{Kind: ErrInvalidInput, Field: field, Message: message}
}

func playerNotFound() *FieldError {
	return notFound(FieldID, "Player not found")
}

func duplicateName() *FieldError {
	return conflict(FieldNamePair, "Player with first_name+last_name already exists")
}

func playerReferenced() *FieldError {
	return conflict("", "Player is referenced in games or scores")
}
