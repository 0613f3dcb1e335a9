package constants

import "time"

// ComposeState represents the current state of the composition workflow
type ComposeState int

// SessionState represents the current state of the TUI application
type SessionState int

// Locale selects the language used for date labels
type Locale string

const (
	AppName            = "glimmer"
	Version            = "v0.3.0"
	DefaultConfigDir   = "~/.config/glimmer"
	DefaultKeyringUser = "gemini-api-key"
	DBKeyringUser      = "database-connection"

	// StorageKey is the fixed key the journal is persisted under
	StorageKey = "glimmer_mood_entries_v3"

	// UnknownDay is the canonical day key for timestamps that cannot be parsed
	UnknownDay = "unknown"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// MonthFormat is used by month selectors (YYYY-MM)
	MonthFormat = "2006-01"

	// NoonHour pins an entry's timestamp inside its calendar day
	NoonHour = 12

	// Entry text constants
	TextSeparator     = "\n"
	CaptionMaxGlyphs  = 8
	DefaultCollection = 20

	// Storage constants
	DefaultQuotaBytes  = 5 * 1024 * 1024
	DefaultDBFileName  = "glimmer.db"
	DefaultDiskvDir    = "kv"
	LockfileName       = "glimmer.lock"
	DefaultAITimeout   = 90 * time.Second
	DefaultInstruction = "Default: Poetic, healing, and warm"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "glimmer-"
	BackupFileSuffix = ".db"

	// Gemini models
	DefaultTextModel   = "gemini-3-flash-preview"
	DefaultReportModel = "gemini-3-pro-preview"
	DefaultImageModel  = "gemini-2.5-flash-image"
	ImageAspectRatio   = "3:4"

	// Locales
	LocaleZH Locale = "zh"
	LocaleEN Locale = "en"
)

const (
	// Compose states
	ComposeIdle ComposeState = iota
	ComposeEnriching
	ComposeIllustrating
	ComposeCommitting
	ComposeFailed
)

const (
	// Session States
	StateCalendar SessionState = iota
	StateCollection
	StateArchive
	StateWriting
	StateEditing
	StateReportInstruction
	StateReport
	StateReading
	StateConfirmDelete
	StateCollectionRange
)

// NumMainTabs is the number of browsable tabs, which lead the SessionState values
const NumMainTabs = 3

func (s ComposeState) String() string {
	switch s {
	case ComposeIdle:
		return "idle"
	case ComposeEnriching:
		return "enriching"
	case ComposeIllustrating:
		return "illustrating"
	case ComposeCommitting:
		return "committing"
	case ComposeFailed:
		return "failed"
	default:
		return "unknown"
	}
}
