package ports

// Logger defines the interface for logging.
//
//go:generate mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(err error)

	// SetDebug enables or disables debug output.
	SetDebug(enabled bool)

	// SetJSON switches between human readable and JSON output.
	SetJSON(enabled bool)
}
