package ports

import (
	"context"

	"go.trai.ch/appenv/internal/core/domain"
)

// RuntimeProvisioner creates isolated runtime environments.
//
//go:generate go run go.uber.org/mock/mockgen -source=environment.go -destination=mocks/mock_environment.go -package=mocks
type RuntimeProvisioner interface {
	// EnsureRuntime makes dir a usable runtime of rt with a working package installer.
	//
	// It is a no-op when the runtime in dir is already usable. A directory
	// that exists without a usable runtime is replaced.
	EnsureRuntime(ctx context.Context, rt domain.Runtime, dir string) error
}
