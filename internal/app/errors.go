package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNoData       = errors.New("no data could be loaded for any competition")
	ErrNotReady     = errors.New("results are not loaded yet")
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)
