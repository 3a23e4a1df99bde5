package source

import "errors"

// Sentinel kinds for source errors.
var (
	ErrNotFound          = errors.New("results file not found")
	ErrEmptySheet        = errors.New("sheet is empty")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrInvalidName       = errors.New("invalid file name component")
)
