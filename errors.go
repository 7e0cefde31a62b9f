package sentsplit

import "errors"

// Sentinel errors for conditions callers may need to handle differently.
var (
	// ErrInvalidConfig indicates an invalid combination of options.
	ErrInvalidConfig = errors.New("sentsplit: invalid configuration")

	// ErrModelNotFound indicates the classifier resource could not be found.
	ErrModelNotFound = errors.New("sentsplit: model not found")

	// ErrInvalidModel indicates the classifier resource exists but could not be loaded.
	ErrInvalidModel = errors.New("sentsplit: invalid model")

	// ErrClassifierFailed indicates the classifier returned an error while segmenting.
	ErrClassifierFailed = errors.New("sentsplit: classifier failed")
)
