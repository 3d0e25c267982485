package constants

const (
	AppName            = "engage"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/engage/engage.db"
	Version            = "v0.2.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimestampFormat is used for created_at/updated_at bookkeeping
	TimestampFormat = "2006-01-02T15:04:05Z07:00"

	// Blank plan defaults
	DefaultPlanTitle    = "New Engagement Plan"
	DefaultPlanSpanDays = 14

	// New intermediate step defaults
	DefaultStepProgress    = 50
	DefaultStepProbability = 80

	// Heuristic probability loses this much per remaining planned step
	RemainingStepPenalty = 10

	// Inserted steps start with a probability that decays by this much
	// per pre-existing intermediate step
	InsertProbabilityDecay = 8

	// MaxDisplayedFlags caps how many validation flags the UI shows
	MaxDisplayedFlags = 5

	// Server defaults
	DefaultServerAddr = "127.0.0.1:8787"
)
