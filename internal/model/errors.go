package model

import "errors"

var (
	// User related errors
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")

	// Token related errors
	ErrTokenNotFound = errors.New("token not found")
	ErrTokenExpired  = errors.New("token expired")

	// Item related errors
	ErrItemNotFound       = errors.New("item not found")
	ErrItemAlreadyClaimed = errors.New("item already claimed")

	// Claim related errors
	ErrClaimNotFound   = errors.New("claim not found")
	ErrClaimNotPending = errors.New("claim is not pending")
	ErrDuplicateClaim  = errors.New("pending claim already exists")

	// Permission/Access related errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// Workflow errors
	ErrConfirmationRequired = errors.New("confirmation required")
	ErrBulkFailed           = errors.New("bulk operation failed")
	ErrPartialFailure       = errors.New("operation partially applied")

	// Generic errors
	ErrInvalidInput = errors.New("invalid input")
)
