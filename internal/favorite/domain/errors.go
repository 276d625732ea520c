package domain

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by the favorite service. Match with errors.Is.
var (
	ErrNotFound        = errors.New("resource not found")
	ErrConflict        = errors.New("resource already exists")
	ErrInvalidArgument = errors.New("invalid argument")
)

// NotFoundError names the missing entity and the key it was looked up by
type NotFoundError struct {
	Resource string
	Field    string
	Value    interface{}
}

// NewNotFoundError creates a not found error for resource looked up by field
func NewNotFoundError(resource, field string, value interface{}) *NotFoundError {
	return &NotFoundError{Resource: resource, Field: field, Value: value}
}

// NewFavoritePairNotFoundError reports a missing favorite for a user/property pair
func NewFavoritePairNotFoundError(userID, propertyID uint) *NotFoundError {
	return &NotFoundError{
		Resource: "Favorite",
		Field:    "userId/propertyId",
		Value:    fmt.Sprintf("%d/%d", userID, propertyID),
	}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with %s: %v", e.Resource, e.Field, e.Value)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ConflictError reports a duplicate favorite for a user/property pair
type ConflictError struct {
	UserID     uint
	PropertyID uint
}

func (e *ConflictError) Error() string {
	return "Property is already in favorites for this user"
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// InvalidArgumentf wraps ErrInvalidArgument with a formatted reason
func InvalidArgumentf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
