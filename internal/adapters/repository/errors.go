package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNoSnapshot = errors.New("no snapshot loaded")
	ErrNotFound   = errors.New("file not found")
	ErrNilInput   = errors.New("nil snapshot or file")
)
