package domain

// ConsentPreferences are the per-category cookie/telemetry choices.
type ConsentPreferences struct {
	Necessary   bool `json:"necessary"`
	Analytics   bool `json:"analytics"`
	Marketing   bool `json:"marketing"`
	Preferences bool `json:"preferences"`
}

// ConsentRecord is the persisted consent decision, versioned so a
// policy change can invalidate old answers.
type ConsentRecord struct {
	Preferences ConsentPreferences `json:"preferences"`
	Timestamp   int64              `json:"timestamp"`
	Version     string             `json:"version"`
}

// ConsentVersion is the current consent policy version.
const ConsentVersion = "2025-06"
