package domain

import "errors"

var (
	// ErrInvalidAddress is returned when a wallet address is missing or not a 20-byte hex address
	ErrInvalidAddress = errors.New("invalid address")

	// ErrInvalidLimit is returned when an ingest limit is not a positive integer
	ErrInvalidLimit = errors.New("invalid limit")

	// ErrUpstreamUnavailable is returned when an upstream provider cannot serve a request
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrNotFound is returned when an upstream provider does not know the requested resource
	ErrNotFound = errors.New("not found")

	// ErrRateLimited is returned when an upstream provider keeps throttling the caller
	ErrRateLimited = errors.New("rate limited")
)
