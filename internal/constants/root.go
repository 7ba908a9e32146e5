package constants

// ReminderKind represents the kind of a scheduled reminder job
type ReminderKind string

const (
	AppName           = "fitbot"
	Version           = "v0.2.0"
	DefaultConfigPath = "~/.config/fitbot/fitbot.db"

	// Keyring secret names
	KeyringSecretToken = "bot-token"
	KeyringSecretDSN   = "database-connection"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Range ids within the backing tabular store
	RangePeople  = "People"
	RangeTracker = "Daily Tracker"
	RangeGoals   = "Goals"
	RangeWeekly  = "Weekly Summary"

	// Reserved tracker columns; never exposed as editable fields
	ColumnDate = "Date"
	ColumnName = "Name"

	// ReservedColumns is the number of leading tracker columns that key a row
	ReservedColumns = 2

	// Reminder Kind constants
	ReminderDaily  ReminderKind = "daily_reminder"
	ReminderHourly ReminderKind = "hourly_reminder"

	// Default reminder schedule
	DefaultDailyReminderHour   = 19
	DefaultDailyReminderMinute = 0
	DefaultHourlyStart         = 7
	DefaultHourlyEnd           = 23

	// Batch parsing
	BatchSeparator = ":"

	DefaultTimezone = "Local" // Use system local timezone by default
)
