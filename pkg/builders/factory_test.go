package builders_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stepwise/stepwise/pkg/builders"
	"github.com/stepwise/stepwise/pkg/logger"
)

func TestFactory_BuiltinVariants(t *testing.T) {
	f := builders.NewFactory()

	if diff := cmp.Diff([]string{"pizza", "standard"}, f.Variants()); diff != "" {
		t.Errorf("unexpected variants (-want +got):\n%s", diff)
	}
	if f.Default() != builders.DefaultVariant {
		t.Errorf("expected default variant %s, got %s", builders.DefaultVariant, f.Default())
	}
}

func TestFactory_Create(t *testing.T) {
	tests := []struct {
		name    string
		variant string
		want    string
	}{
		{"default", "", "Product parts: A, B, C"},
		{"standard", "standard", "Product parts: A, B, C"},
		{"pizza", "pizza", "Product parts: Dough, Sauce, Cheese"},
	}

	f := builders.NewFactory()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := f.Create(tt.variant, nil)
			if err != nil {
				t.Fatalf("failed to create builder: %v", err)
			}
			b.BuildPartA()
			b.BuildPartB()
			b.BuildPartC()

			if got := b.GetProduct().Describe(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestFactory_CreateReturnsIndependentBuilders(t *testing.T) {
	f := builders.NewFactory()
	b1, _ := f.Create("standard", nil)
	b2, _ := f.Create("standard", nil)

	b1.BuildPartA()
	if !b2.GetProduct().IsEmpty() {
		t.Error("builders from the same factory must not share products")
	}
}

func TestFactory_CreateUnknown(t *testing.T) {
	f := builders.NewFactory()
	_, err := f.Create("calzone", nil)
	if !errors.Is(err, builders.ErrUnknownVariant) {
		t.Errorf("expected ErrUnknownVariant, got %v", err)
	}
}

func TestFactory_Register(t *testing.T) {
	tests := []struct {
		name    string
		variant string
		labels  builders.Labels
		wantErr error
	}{
		{"valid", "house", builders.Labels{A: "Frame", B: "Walls", C: "Roof"}, nil},
		{"duplicate builtin", "pizza", builders.PizzaLabels, builders.ErrDuplicateVariant},
		{"empty label", "broken", builders.Labels{A: "x", C: "z"}, builders.ErrInvalidLabels},
		{"empty name", "", builders.DefaultLabels, builders.ErrInvalidLabels},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := builders.NewFactory()
			err := f.Register(tt.variant, tt.labels)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				got, err := f.Labels(tt.variant)
				if err != nil || got != tt.labels {
					t.Errorf("registered labels not returned: %+v, %v", got, err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestFactory_SetDefault(t *testing.T) {
	f := builders.NewFactory()
	if err := f.SetDefault("pizza"); err != nil {
		t.Fatalf("failed to set default: %v", err)
	}

	b, err := f.Create("", nil)
	if err != nil {
		t.Fatalf("failed to create builder: %v", err)
	}
	if b.Variant() != "pizza" {
		t.Errorf("expected pizza builder, got %s", b.Variant())
	}

	if err := f.SetDefault("missing"); !errors.Is(err, builders.ErrUnknownVariant) {
		t.Errorf("expected ErrUnknownVariant, got %v", err)
	}
}

func TestFactory_CreateTagsLogger(t *testing.T) {
	var buf bytes.Buffer
	log := logger.CreateLoggerWithOutput("debug", &buf)

	f := builders.NewFactory()
	b, err := f.Create("pizza", log)
	if err != nil {
		t.Fatalf("failed to create builder: %v", err)
	}
	b.BuildPartA()

	if !strings.Contains(buf.String(), "[builder:pizza]") {
		t.Errorf("expected builder component in log output, got %q", buf.String())
	}
}
