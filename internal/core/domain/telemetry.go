package domain

// LogLevel is the severity of a message written to a progress step.
// Values follow log/slog so the two can be compared directly.
type LogLevel int

// Levels accepted by ports.Vertex.Log.
const (
	LogLevelDebug LogLevel = -4
	LogLevelInfo  LogLevel = 0
	LogLevelWarn  LogLevel = 4
	LogLevelError LogLevel = 8
)

// String returns the upper-case level name. Unknown levels print as INFO.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}
