package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Repository errors
	ErrValidation          = fmt.Errorf("validation failed")
	ErrDuplicateIdentity   = fmt.Errorf("contact already exists")
	ErrDuplicateCollection = fmt.Errorf("address book already exists")
	ErrNotFound            = fmt.Errorf("not found")
	ErrInvalidSortKey      = fmt.Errorf("invalid sort key")
	ErrInvalidFilterField  = fmt.Errorf("invalid filter field")

	// Persistence errors
	ErrParse        = fmt.Errorf("malformed record")
	ErrIO           = fmt.Errorf("file operation failed")
	ErrFileNotFound = fmt.Errorf("file not found")
	ErrLocked       = fmt.Errorf("address book store is locked by another process")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
	ErrTooManyAttempts = fmt.Errorf("too many invalid attempts")
)
