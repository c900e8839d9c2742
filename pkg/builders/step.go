package builders

import (
	"fmt"
	"strings"
)

// Step names one builder step
type Step string

const (
	StepA Step = "A"
	StepB Step = "B"
	StepC Step = "C"
)

// AllSteps lists the steps in their canonical order
var AllSteps = []Step{StepA, StepB, StepC}

// ParseStep converts a step name to a Step. It accepts "a", "A",
// "partA" and "BuildPartA" forms, case-insensitively.
func ParseStep(name string) (Step, error) {
	normalized := strings.ToUpper(strings.TrimSpace(name))
	normalized = strings.TrimPrefix(normalized, "BUILD")
	normalized = strings.TrimPrefix(normalized, "PART")

	switch Step(normalized) {
	case StepA, StepB, StepC:
		return Step(normalized), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStep, name)
}

// ParseSteps converts a list of step names, stopping at the first invalid one
func ParseSteps(names []string) ([]Step, error) {
	steps := make([]Step, 0, len(names))
	for i, name := range names {
		step, err := ParseStep(name)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		steps = append(steps, step)
	}
	return steps, nil
}

// Valid reports whether s is one of the known steps
func (s Step) Valid() bool {
	switch s {
	case StepA, StepB, StepC:
		return true
	}
	return false
}

// Apply invokes the builder method that matches step
func Apply(b Builder, step Step) error {
	switch step {
	case StepA:
		b.BuildPartA()
	case StepB:
		b.BuildPartB()
	case StepC:
		b.BuildPartC()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStep, string(step))
	}
	return nil
}
