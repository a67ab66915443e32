package ports

import "go.trai.ch/appenv/internal/core/domain"

// ConfigLoader defines the interface for loading the application configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration from the given base directory.
	// A missing configuration file yields the defaults.
	Load(base string) (*domain.Config, error)
}
