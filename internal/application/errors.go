package application

import "errors"

var (
	// ErrNotAuthenticated is returned when an operation requires an active
	// session and none exists.
	ErrNotAuthenticated = errors.New("application: not authenticated")
	// ErrUnauthorized is returned when the session user lacks administrator
	// access required by an operation.
	ErrUnauthorized = errors.New("application: unauthorized")
	// ErrUserNotFound is returned by login when the directory has no entry
	// for the supplied email.
	ErrUserNotFound = errors.New("application: user not found")
	// ErrDuplicateEmail is returned by signup when the email is already
	// registered.
	ErrDuplicateEmail = errors.New("application: email already registered")
	// ErrSlotTaken is returned when the identity tuple being booked already
	// carries a non-empty owner.
	ErrSlotTaken = errors.New("application: slot already taken")
	// ErrStorageUnavailable is returned when the durable store cannot be
	// reached. It is surfaced identically by every operation.
	ErrStorageUnavailable = errors.New("application: storage unavailable")
)
