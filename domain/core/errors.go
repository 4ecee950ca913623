package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Extraction errors
	ErrExtraction    = errors.New("document extraction failed")
	ErrNoTablesFound = errors.New("no tables found in document")

	// Header/schema errors
	ErrHeaderNotFound  = errors.New("header row not found")
	ErrEmptySchema     = errors.New("schema has no columns")
	ErrDuplicateColumn = errors.New("duplicate column name in schema")

	// Normalization errors
	ErrDuplicateKey = errors.New("duplicate record key")

	// Report errors
	ErrReportWrite = errors.New("report artifact could not be written")
)

// Error constructors with context
func NewExtractionError(path string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrExtraction, path, err)
}

func NewDuplicateKeyError(key string) error {
	return fmt.Errorf("%w: %q", ErrDuplicateKey, key)
}

func NewHeaderNotFoundError(anchor string) error {
	return fmt.Errorf("%w: anchor %q", ErrHeaderNotFound, anchor)
}

func NewDuplicateColumnError(name string) error {
	return fmt.Errorf("%w: %q", ErrDuplicateColumn, name)
}

// Error checking helpers
func IsExtractionError(err error) bool {
	return errors.Is(err, ErrExtraction) || errors.Is(err, ErrNoTablesFound)
}

func IsHeaderError(err error) bool {
	return errors.Is(err, ErrHeaderNotFound) || errors.Is(err, ErrEmptySchema) || errors.Is(err, ErrDuplicateColumn)
}
