package ports

import (
	"context"

	"go.trai.ch/appenv/internal/core/domain"
)

// Launcher starts the target program inside a prepared environment.
//
//go:generate go run go.uber.org/mock/mockgen -source=launcher.go -destination=mocks/mock_launcher.go -package=mocks
type Launcher interface {
	// Exec replaces the current process with the program where the platform
	// allows it. Otherwise it runs the program to completion and returns its
	// failure as an error.
	Exec(ctx context.Context, spec domain.LaunchSpec) error
}
