// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/appenv/internal/core/domain"
)

// CommandRunner runs external programs.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type CommandRunner interface {
	// Run executes the command and blocks until it exits.
	//
	// Output is captured in the result. A non-zero exit status is returned
	// as an error carrying the exit code and the captured output, together
	// with the result.
	Run(ctx context.Context, cmd domain.Command) (domain.CommandResult, error)
}
