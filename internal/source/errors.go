package source

import "errors"

// Sentinel errors for source loading.
var (
	ErrUnsupportedFormat = errors.New("unsupported input format")
	ErrInvalidDocument   = errors.New("invalid document file")
	ErrEmptyInput        = errors.New("input has no content")
	ErrSourceRead        = errors.New("failed to read input")
	ErrSheet             = errors.New("failed to read sheet")
)
