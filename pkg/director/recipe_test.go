package director_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stepwise/stepwise/pkg/builders"
	"github.com/stepwise/stepwise/pkg/director"
)

func TestCookbook_Builtins(t *testing.T) {
	c := director.NewCookbook()

	if diff := cmp.Diff([]string{"full", "minimal"}, c.Names()); diff != "" {
		t.Errorf("unexpected recipe names (-want +got):\n%s", diff)
	}

	full, err := c.Get(director.FullRecipe)
	if err != nil {
		t.Fatalf("failed to get full recipe: %v", err)
	}
	if len(full.Steps) != 3 {
		t.Errorf("expected 3 steps in full recipe, got %d", len(full.Steps))
	}
}

func TestCookbook_Add(t *testing.T) {
	tests := []struct {
		name    string
		recipe  director.Recipe
		wantErr error
	}{
		{
			name:   "valid",
			recipe: director.Recipe{Name: "custom", Steps: []builders.Step{builders.StepA, builders.StepC}},
		},
		{
			name:    "duplicate builtin",
			recipe:  director.Recipe{Name: "full", Steps: []builders.Step{builders.StepA}},
			wantErr: director.ErrDuplicateRecipe,
		},
		{
			name:    "empty name",
			recipe:  director.Recipe{Steps: []builders.Step{builders.StepA}},
			wantErr: director.ErrInvalidRecipe,
		},
		{
			name:    "unknown step",
			recipe:  director.Recipe{Name: "bad", Steps: []builders.Step{"Q"}},
			wantErr: director.ErrInvalidRecipe,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := director.NewCookbook()
			err := c.Add(tt.recipe)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got, err := c.Get(tt.recipe.Name)
			if err != nil {
				t.Fatalf("recipe not retrievable: %v", err)
			}
			if diff := cmp.Diff(tt.recipe, got); diff != "" {
				t.Errorf("stored recipe differs (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCookbook_AddCopiesSteps(t *testing.T) {
	c := director.NewCookbook()
	steps := []builders.Step{builders.StepA}
	if err := c.Add(director.Recipe{Name: "copy", Steps: steps}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	steps[0] = builders.StepC

	got, _ := c.Get("copy")
	if got.Steps[0] != builders.StepA {
		t.Error("cookbook recipe changed through caller's slice")
	}
}

func TestCookbook_GetUnknown(t *testing.T) {
	c := director.NewCookbook()
	if _, err := c.Get("deluxe"); !errors.Is(err, director.ErrUnknownRecipe) {
		t.Errorf("expected ErrUnknownRecipe, got %v", err)
	}
}

func TestParseRecipe(t *testing.T) {
	r, err := director.ParseRecipe("custom", "Custom product", []string{"a", "partC"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := director.Recipe{
		Name:        "custom",
		Description: "Custom product",
		Steps:       []builders.Step{builders.StepA, builders.StepC},
	}
	if diff := cmp.Diff(want, r); diff != "" {
		t.Errorf("unexpected recipe (-want +got):\n%s", diff)
	}

	if _, err := director.ParseRecipe("", "", nil); !errors.Is(err, director.ErrInvalidRecipe) {
		t.Errorf("expected ErrInvalidRecipe, got %v", err)
	}
	if _, err := director.ParseRecipe("x", "", []string{"nope"}); !errors.Is(err, builders.ErrUnknownStep) {
		t.Errorf("expected ErrUnknownStep, got %v", err)
	}
}
