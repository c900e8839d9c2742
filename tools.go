//go:build tools

// Package tools pins the development tools used on stepwise in go.mod.
// Install them with: go install -tags tools ./...
package tools

import (
	// Lint and format: golangci-lint ./..., goimports -w .
	_ "github.com/golangci/golangci-lint/cmd/golangci-lint"
	_ "golang.org/x/tools/cmd/goimports"

	// Mock generation for the pkg/interfaces contracts
	_ "github.com/golang/mock/mockgen"

	// Test runners: gotestsum -- -tags integration ./...
	_ "github.com/onsi/ginkgo/v2/ginkgo"
	_ "gotest.tools/gotestsum"

	// Security scanning
	_ "github.com/securego/gosec/v2/cmd/gosec"

	// Profiling the batch engine
	_ "github.com/google/pprof"

	// API documentation
	_ "github.com/swaggo/swag/cmd/swag"
)
