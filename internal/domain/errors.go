package domain

import "errors"

var (
	// ErrInsufficientData means a series is too short for the unit-root
	// test's regression after lag selection.
	ErrInsufficientData = errors.New("insufficient data for stationarity test")

	// ErrDuplicateKey flags ambiguous join keys in the destroyed set.
	// The join itself never fails on duplicates (see JoinRecovery);
	// CheckUniqueAddresses reports them for data-quality validation.
	ErrDuplicateKey = errors.New("duplicate address key")

	// ErrMissingField marks a source row that lacks a required field.
	// Loaders skip such rows rather than failing the dataset.
	ErrMissingField = errors.New("missing required field")
)
