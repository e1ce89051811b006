package api

// CreateSessionRequest is the JSON body for POST /api/{app}/sessions.
// Every field is optional; zero values select the configured defaults.
type CreateSessionRequest struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name,omitempty"`
	MaxSessions int    `json:"maxSessions,omitempty"`
}

// MeResponse is returned from GET /api/me.
type MeResponse struct {
	Email string `json:"email"`
}

// OKResponse acknowledges a mutation.
type OKResponse struct {
	OK bool `json:"ok"`
}

// UploadFileResponse is returned from POST /api/{app}/sessions/{sessionID}/files.
type UploadFileResponse struct {
	OK   bool   `json:"ok"`
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// ErrorResponse is returned for all error cases.
type ErrorResponse struct {
	Error string `json:"error"`
}
