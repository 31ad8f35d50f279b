package domain

import "errors"

var (
	ErrListingNotFound    = errors.New("listing not found")
	ErrReportNotFound     = errors.New("report not found")
	ErrReportResolved     = errors.New("report already resolved")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrInvalidReason      = errors.New("invalid report reason")
	ErrUnauthorized       = errors.New("operation requires admin authority")
	ErrStorageUnavailable = errors.New("persistent store unavailable")
)
