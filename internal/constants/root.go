package constants

const (
	AppName            = "rhythm"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/rhythm/rhythm.yaml"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// MonthKeyFormat is the calendar-month key format (YYYY-MM)
	MonthKeyFormat = "2006-01"

	// DefaultDurationThresholdSeconds is the minimum practiced time for a day
	// to count as complete (6 minutes)
	DefaultDurationThresholdSeconds = 360
)
