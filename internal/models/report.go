package models

// KeywordCount is a keyword with the number of times it showed up
type KeywordCount struct {
	Text  string `json:"text"`
	Count int    `json:"count"`
}

// ReportStats are computed locally from the entries in a report's range
type ReportStats struct {
	TotalDays      int `json:"totalDays"`
	RecordedDays   int `json:"recordedDays"`
	HighlightCount int `json:"highLightCount"`
}

// ReportNarrative holds the fields returned by the report synthesis call
type ReportNarrative struct {
	Title              string         `json:"title"`
	Summary            string         `json:"summary"`
	MoodVibe           string         `json:"moodVibe"`
	TopKeywords        []KeywordCount `json:"topKeywords"`
	PersonalNarratives []string       `json:"personalNarratives"`
	VisualTheme        string         `json:"visualTheme"`
}

// PhaseReport is an ephemeral summary over a date range; it is never persisted
type PhaseReport struct {
	ReportNarrative
	Stats ReportStats `json:"stats"`
}
