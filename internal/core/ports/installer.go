package ports

import "context"

// Installer drives the package installer inside an environment.
//
//go:generate go run go.uber.org/mock/mockgen -source=installer.go -destination=mocks/mock_installer.go -package=mocks
type Installer interface {
	// InstallPinned installs exactly the specs listed in lockPath without
	// resolving transitive dependencies.
	InstallPinned(ctx context.Context, envDir, lockPath string) error
	// InstallUpgrade installs the constraints in reqPath, upgrading what is already installed.
	InstallUpgrade(ctx context.Context, envDir, reqPath string) error
	// InstallResolved installs the constraints in reqPath with full dependency resolution.
	InstallResolved(ctx context.Context, envDir, reqPath string) error
	// Freeze returns the installed set, one pinned spec per line.
	Freeze(ctx context.Context, envDir string) ([]byte, error)
	// Check verifies the installed set has no missing or conflicting dependencies.
	Check(ctx context.Context, envDir string) error
}
