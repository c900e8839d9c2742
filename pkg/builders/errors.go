package builders

import "errors"

// Sentinel errors for builder operations, checked with errors.Is
var (
	// ErrUnknownStep indicates a step name that maps to no builder method
	ErrUnknownStep = errors.New("unknown build step")

	// ErrUnknownVariant indicates a variant that is not registered in the factory
	ErrUnknownVariant = errors.New("unknown builder variant")

	// ErrDuplicateVariant indicates a variant name registered twice
	ErrDuplicateVariant = errors.New("builder variant already registered")

	// ErrInvalidLabels indicates a label set with an empty label
	ErrInvalidLabels = errors.New("invalid part labels")
)
