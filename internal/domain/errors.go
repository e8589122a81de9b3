package domain

import "errors"

var (
	// ErrEmployeeNotFound is returned when no employee matches the key.
	ErrEmployeeNotFound = errors.New("employee not found")
	// ErrListingNotFound is returned when no listing matches the key.
	ErrListingNotFound = errors.New("listing not found")
	// ErrUnsupportedSortField is returned for sort keys outside the whitelist.
	ErrUnsupportedSortField = errors.New("unsupported sort field")
)
