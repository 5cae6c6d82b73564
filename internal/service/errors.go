// Package service provides business logic for the application.
package service

import "errors"

// Account errors.
var (
	ErrInvalidEmail       = errors.New("invalid institutional email")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrEmailExists        = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Listing errors.
var (
	ErrInvalidMapLink    = errors.New("invalid map link")
	ErrInvalidHours      = errors.New("invalid hours range")
	ErrInvalidNoiseLevel = errors.New("invalid noise level")
	ErrInvalidSeating    = errors.New("invalid seating")
	ErrInvalidWiFi       = errors.New("invalid wifi option")
	ErrInvalidOutlets    = errors.New("invalid outlets option")
	ErrInvalidReservable = errors.New("invalid reservable option")
	ErrListingNotFound   = errors.New("listing not found")
)

// FieldError ties a validation failure to the form field that caused it.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func fieldError(field string, err error) error {
	return &FieldError{Field: field, Err: err}
}
