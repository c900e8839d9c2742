package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRun(t *testing.T) {
	var out, errOut bytes.Buffer

	if err := run(&out, &errOut, []string{"build", "full", "--variant", "pizza", "--root", t.TempDir()}); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if got := out.String(); got != "Product parts: Dough, Sauce, Cheese\n" {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestRun_Version(t *testing.T) {
	var out, errOut bytes.Buffer

	if err := run(&out, &errOut, []string{"version"}); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.Contains(out.String(), "Stepwise vdev") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestRun_Error(t *testing.T) {
	var out, errOut bytes.Buffer

	err := run(&out, &errOut, []string{"build", "deluxe", "--root", t.TempDir()})
	if err == nil {
		t.Fatal("expected an error for an unknown recipe")
	}
	if !strings.Contains(err.Error(), "deluxe") {
		t.Errorf("expected recipe name in error, got %v", err)
	}
}
