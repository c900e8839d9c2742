package director

import (
	"fmt"
	"sort"
	"sync"

	"github.com/stepwise/stepwise/pkg/builders"
)

// Built-in recipe names
const (
	MinimalRecipe = "minimal"
	FullRecipe    = "full"
)

// Recipe is a named sequence of builder steps
type Recipe struct {
	Name        string
	Description string
	Steps       []builders.Step
}

// MinimalViable builds only part A
var MinimalViable = Recipe{
	Name:        MinimalRecipe,
	Description: "Standard basic product",
	Steps:       []builders.Step{builders.StepA},
}

// FullFeatured builds parts A, B and C
var FullFeatured = Recipe{
	Name:        FullRecipe,
	Description: "Standard full featured product",
	Steps:       []builders.Step{builders.StepA, builders.StepB, builders.StepC},
}

// ParseRecipe builds a Recipe from step names
func ParseRecipe(name, description string, steps []string) (Recipe, error) {
	if name == "" {
		return Recipe{}, fmt.Errorf("%w: name is empty", ErrInvalidRecipe)
	}
	parsed, err := builders.ParseSteps(steps)
	if err != nil {
		return Recipe{}, fmt.Errorf("recipe %q: %w", name, err)
	}
	return Recipe{Name: name, Description: description, Steps: parsed}, nil
}

// Cookbook is a registry of recipes, safe for concurrent use
type Cookbook struct {
	mu      sync.RWMutex
	recipes map[string]Recipe
}

// NewCookbook creates a cookbook holding the built-in recipes
func NewCookbook() *Cookbook {
	return &Cookbook{
		recipes: map[string]Recipe{
			MinimalViable.Name: MinimalViable,
			FullFeatured.Name:  FullFeatured,
		},
	}
}

// Add registers a recipe
func (c *Cookbook) Add(r Recipe) error {
	if r.Name == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidRecipe)
	}
	for i, step := range r.Steps {
		if !step.Valid() {
			return fmt.Errorf("%w: recipe %q step %d: %q", ErrInvalidRecipe, r.Name, i, string(step))
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.recipes[r.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateRecipe, r.Name)
	}
	steps := make([]builders.Step, len(r.Steps))
	copy(steps, r.Steps)
	r.Steps = steps
	c.recipes[r.Name] = r
	return nil
}

// Get returns a recipe by name
func (c *Cookbook) Get(name string) (Recipe, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	r, ok := c.recipes[name]
	if !ok {
		return Recipe{}, fmt.Errorf("%w: %s", ErrUnknownRecipe, name)
	}
	return r, nil
}

// Names returns the recipe names, sorted
func (c *Cookbook) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.recipes))
	for name := range c.recipes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
