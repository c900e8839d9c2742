package context_test

import (
	"context"
	"strings"
	"testing"
	"time"

	scontext "github.com/stepwise/stepwise/pkg/context"
)

func TestAssemblyID(t *testing.T) {
	ctx := context.Background()
	if scontext.HasAssemblyID(ctx) {
		t.Fatal("expected no assembly ID on background context")
	}
	if got := scontext.GetAssemblyID(ctx); got != "unknown-assembly" {
		t.Errorf("expected unknown-assembly, got %s", got)
	}

	ctx = scontext.WithAssemblyID(ctx, "asm_fixed")
	if got := scontext.GetAssemblyID(ctx); got != "asm_fixed" {
		t.Errorf("expected asm_fixed, got %s", got)
	}
}

func TestAssemblyID_Generated(t *testing.T) {
	ctx := scontext.WithAssemblyID(context.Background(), "")
	id := scontext.GetAssemblyID(ctx)
	if !strings.HasPrefix(id, "asm_") {
		t.Errorf("expected generated ID with asm_ prefix, got %s", id)
	}
	if id == scontext.GenerateAssemblyID() {
		t.Error("expected generated IDs to be unique")
	}
}

func TestCorrelationAndOperation(t *testing.T) {
	ctx := scontext.WithCorrelationID(context.Background(), "")
	if !strings.HasPrefix(scontext.GetCorrelationID(ctx), "cor_") {
		t.Errorf("unexpected correlation ID: %s", scontext.GetCorrelationID(ctx))
	}

	if got := scontext.GetOperation(ctx); got != "unknown-operation" {
		t.Errorf("expected unknown-operation, got %s", got)
	}
	ctx = scontext.WithOperation(ctx, "batch")
	if got := scontext.GetOperation(ctx); got != "batch" {
		t.Errorf("expected batch, got %s", got)
	}
}

func TestEnrichContext(t *testing.T) {
	if d := scontext.GetDuration(context.Background()); d != 0 {
		t.Errorf("expected zero duration without start time, got %s", d)
	}

	base := scontext.WithAssemblyID(context.Background(), "asm_keep")
	ctx := scontext.EnrichContext(base)

	if got := scontext.GetAssemblyID(ctx); got != "asm_keep" {
		t.Errorf("EnrichContext replaced existing assembly ID: %s", got)
	}

	time.Sleep(2 * time.Millisecond)
	if scontext.GetDuration(ctx) <= 0 {
		t.Error("expected positive duration after EnrichContext")
	}
}

func TestValuesDoNotOverwriteEachOther(t *testing.T) {
	start := time.Now().Add(-time.Second)

	ctx := scontext.WithAssemblyID(context.Background(), "asm_x")
	ctx = scontext.WithCorrelationID(ctx, "cor_y")
	ctx = scontext.WithStartTime(ctx, start)
	ctx = scontext.WithOperation(ctx, "op")

	if got := scontext.GetAssemblyID(ctx); got != "asm_x" {
		t.Errorf("expected asm_x, got %s", got)
	}
	if got := scontext.GetCorrelationID(ctx); got != "cor_y" {
		t.Errorf("expected cor_y, got %s", got)
	}
	if got := scontext.GetOperation(ctx); got != "op" {
		t.Errorf("expected op, got %s", got)
	}
	if d := scontext.GetDuration(ctx); d < time.Second {
		t.Errorf("expected duration of at least 1s, got %s", d)
	}
}
