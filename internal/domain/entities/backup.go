package entities

// BackupVersion is the version written into new backup files.
const BackupVersion = "1.0"

// Backup is a versioned full snapshot of a journal.
type Backup struct {
	Version   string    `json:"version"`
	Timestamp string    `json:"timestamp"`
	Excerpts  []Excerpt `json:"excerpts"`
}
