package models

// ActionRecord is one realized follow or unfollow action. Immutable once
// written to history.
type ActionRecord struct {
	User      string `json:"user"`
	Timestamp string `json:"timestamp"`
}

// HistoryDocument is the persisted log of past sync actions. Each list is
// capped at 1000 records, oldest dropped first.
type HistoryDocument struct {
	Follows   []ActionRecord `json:"follows"`
	Unfollows []ActionRecord `json:"unfollows"`
	LastRun   string         `json:"last_run,omitempty"`
}

// SyncStats holds the follower/following counts shown in the run report.
// Following is adjusted for the actions realized during the run.
type SyncStats struct {
	Followers int `json:"followers"`
	Following int `json:"following"`
}
