package engine

import "errors"

var (
	// ErrAssemblyFailed wraps the first failure of a batch
	ErrAssemblyFailed = errors.New("assembly failed")

	// ErrUnitPanicked is recorded for a unit whose assembly panicked
	ErrUnitPanicked = errors.New("assembly panicked")
)
