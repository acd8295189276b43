package logger

// Log levels used across the application.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

// New builds the application logger. Production uses JSON output so log
// shippers can parse it; everything else gets the console encoder.
func New(level string, production bool) *Logger {
	return newZapLogger(level, production)
}

// NewNop returns a logger that discards everything.
func NewNop() *Logger {
	return nopLogger()
}
