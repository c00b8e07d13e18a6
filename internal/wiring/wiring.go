// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/cwaimg/internal/adapters/config"
	_ "go.trai.ch/cwaimg/internal/adapters/fs"
	_ "go.trai.ch/cwaimg/internal/adapters/httpfetch"
	_ "go.trai.ch/cwaimg/internal/adapters/journal"
	_ "go.trai.ch/cwaimg/internal/adapters/listing"
	_ "go.trai.ch/cwaimg/internal/adapters/logger"
	_ "go.trai.ch/cwaimg/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/cwaimg/internal/app"
	_ "go.trai.ch/cwaimg/internal/engine/download"
	_ "go.trai.ch/cwaimg/internal/engine/scheduler"
)
