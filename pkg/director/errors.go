package director

import "errors"

// Sentinel errors for director operations, checked with errors.Is
var (
	// ErrNoBuilder indicates an orchestration call before SetBuilder
	ErrNoBuilder = errors.New("director: no builder configured")

	// ErrUnknownRecipe indicates a recipe name missing from the cookbook
	ErrUnknownRecipe = errors.New("unknown recipe")

	// ErrDuplicateRecipe indicates a recipe name added twice
	ErrDuplicateRecipe = errors.New("recipe already exists")

	// ErrInvalidRecipe indicates a malformed recipe
	ErrInvalidRecipe = errors.New("invalid recipe")
)
