// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/appenv/internal/adapters/config"
	_ "go.trai.ch/appenv/internal/adapters/logger"
	_ "go.trai.ch/appenv/internal/adapters/pip"
	_ "go.trai.ch/appenv/internal/adapters/process"
	_ "go.trai.ch/appenv/internal/adapters/shell"
	_ "go.trai.ch/appenv/internal/adapters/telemetry/progrock"
	_ "go.trai.ch/appenv/internal/adapters/venv"
	// Register app nodes.
	_ "go.trai.ch/appenv/internal/app"
)
