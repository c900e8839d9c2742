// Package context carries assembly tracing values through context.Context
package context

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type ctxKey int

// Context keys for assembly tracing
const (
	assemblyIDKey ctxKey = iota
	correlationIDKey
	operationKey
	startTimeKey
)

const (
	unknownAssembly    = "unknown-assembly"
	unknownCorrelation = "unknown-correlation"
	unknownOperation   = "unknown-operation"
)

// WithAssemblyID adds an assembly ID to the context
func WithAssemblyID(parent context.Context, assemblyID string) context.Context {
	if assemblyID == "" {
		assemblyID = GenerateAssemblyID()
	}
	return context.WithValue(parent, assemblyIDKey, assemblyID)
}

// GetAssemblyID retrieves the assembly ID from context
func GetAssemblyID(ctx context.Context) string {
	if id, ok := ctx.Value(assemblyIDKey).(string); ok && id != "" {
		return id
	}
	return unknownAssembly
}

// HasAssemblyID reports whether an assembly ID was set
func HasAssemblyID(ctx context.Context) bool {
	return GetAssemblyID(ctx) != unknownAssembly
}

// WithCorrelationID adds a correlation ID shared by every assembly of one batch
func WithCorrelationID(parent context.Context, correlationID string) context.Context {
	if correlationID == "" {
		correlationID = GenerateCorrelationID()
	}
	return context.WithValue(parent, correlationIDKey, correlationID)
}

// GetCorrelationID retrieves the correlation ID from context
func GetCorrelationID(ctx context.Context) string {
	if id, ok := ctx.Value(correlationIDKey).(string); ok && id != "" {
		return id
	}
	return unknownCorrelation
}

// WithOperation adds an operation name to the context
func WithOperation(parent context.Context, operation string) context.Context {
	return context.WithValue(parent, operationKey, operation)
}

// GetOperation retrieves the operation name from context
func GetOperation(ctx context.Context) string {
	if op, ok := ctx.Value(operationKey).(string); ok && op != "" {
		return op
	}
	return unknownOperation
}

// WithStartTime adds the operation start time to the context
func WithStartTime(parent context.Context, startTime time.Time) context.Context {
	return context.WithValue(parent, startTimeKey, startTime)
}

// GetDuration returns the time elapsed since the start time in context,
// or zero when no start time was recorded.
func GetDuration(ctx context.Context) time.Duration {
	t, ok := ctx.Value(startTimeKey).(time.Time)
	if !ok {
		return 0
	}
	return time.Since(t)
}

// GenerateAssemblyID creates a new unique assembly ID
func GenerateAssemblyID() string {
	return "asm_" + uuid.New().String()
}

// GenerateCorrelationID creates a new unique correlation ID
func GenerateCorrelationID() string {
	return "cor_" + uuid.New().String()
}

// EnrichContext adds an assembly ID and start time when missing
func EnrichContext(parent context.Context) context.Context {
	ctx := parent
	if !HasAssemblyID(ctx) {
		ctx = WithAssemblyID(ctx, "")
	}
	return WithStartTime(ctx, time.Now())
}
