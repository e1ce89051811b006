// Package session implements the session lifecycle: a per-(user, application)
// index of named sessions with least-recently-used eviction, plus the state
// document and file attachments stored under each session's directory.
//
// The index document is the exclusive source of truth for which sessions
// exist. Directories are created lazily on access; a missing state document
// or file listing is an empty default, never an error.
package session

// Record is one session's metadata entry in the index document. The JSON
// field names and their order are the on-disk contract.
type Record struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	CreatedAt  int64  `json:"createdAt"`
	LastUsedAt int64  `json:"lastUsedAt"`
}

// CreateParams are the caller-supplied parts of a Create call. Zero values
// select the defaults: ID defaults to the current epoch-millisecond
// timestamp, Name to the ID, and MaxSessions to the manager's configured
// default cap.
type CreateParams struct {
	ID          string
	Name        string
	MaxSessions int
}
