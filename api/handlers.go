package api

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Veemo-wt/Lumina-Backend/session"
)

// Health reports liveness.
func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, OKResponse{OK: true})
}

// Me returns the caller's display identity.
func (a *API) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := identityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, MeResponse{Email: id.Email})
}

// ListSessions returns the caller's sessions for one application, most
// recently used first.
func (a *API) ListSessions(w http.ResponseWriter, r *http.Request) {
	id, ok := identityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	app := chi.URLParam(r, "app")

	records, err := a.sessions.List(r.Context(), id.ID, app)
	if err != nil {
		mapError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// CreateSession creates or updates a session record.
func (a *API) CreateSession(w http.ResponseWriter, r *http.Request) {
	id, ok := identityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	app := chi.URLParam(r, "app")

	req, ok := decodeJSON[CreateSessionRequest](w, r, maxSmallBodySize)
	if !ok {
		return
	}

	rec, err := a.sessions.Create(r.Context(), id.ID, app, session.CreateParams{
		ID:          req.ID,
		Name:        req.Name,
		MaxSessions: req.MaxSessions,
	})
	if err != nil {
		mapError(w, err)
		return
	}

	a.audit.logEvent(AuditSessionCreated, r, id.ID,
		slog.String("app", app),
		slog.String("session_id", rec.ID),
	)
	writeJSON(w, http.StatusOK, rec)
}

// GetState returns the stored state document, or an empty object when the
// session has no state yet.
func (a *API) GetState(w http.ResponseWriter, r *http.Request) {
	id, ok := identityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	app := chi.URLParam(r, "app")
	sessionID := chi.URLParam(r, "sessionID")

	state, err := a.sessions.State(r.Context(), id.ID, app, sessionID)
	if err != nil {
		mapError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(state)
}

// PutState replaces the stored state document.
func (a *API) PutState(w http.ResponseWriter, r *http.Request) {
	id, ok := identityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	app := chi.URLParam(r, "app")
	sessionID := chi.URLParam(r, "sessionID")

	r.Body = http.MaxBytesReader(w, r.Body, maxStateBodySize)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}

	if err := a.sessions.PutState(r.Context(), id.ID, app, sessionID, body); err != nil {
		mapError(w, err)
		return
	}

	a.audit.logEvent(AuditStateWritten, r, id.ID,
		slog.String("app", app),
		slog.String("session_id", sessionID),
		slog.Int("bytes", len(body)),
	)
	writeJSON(w, http.StatusOK, OKResponse{OK: true})
}

// DeleteSession removes a session's record and its stored data.
func (a *API) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id, ok := identityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	app := chi.URLParam(r, "app")
	sessionID := chi.URLParam(r, "sessionID")

	if err := a.sessions.Delete(r.Context(), id.ID, app, sessionID); err != nil {
		mapError(w, err)
		return
	}

	a.audit.logEvent(AuditSessionDeleted, r, id.ID,
		slog.String("app", app),
		slog.String("session_id", sessionID),
	)
	writeJSON(w, http.StatusOK, OKResponse{OK: true})
}

// ListFiles returns the session's uploaded files.
func (a *API) ListFiles(w http.ResponseWriter, r *http.Request) {
	id, ok := identityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	app := chi.URLParam(r, "app")
	sessionID := chi.URLParam(r, "sessionID")

	files, err := a.sessions.Files(r.Context(), id.ID, app, sessionID)
	if err != nil {
		mapError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, files)
}

// UploadFile stores one multipart file under the session, overwriting any
// previous upload with the same name.
func (a *API) UploadFile(w http.ResponseWriter, r *http.Request) {
	id, ok := identityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	app := chi.URLParam(r, "app")
	sessionID := chi.URLParam(r, "sessionID")

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "multipart form must carry a \"file\" part")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "uploaded file too large")
		return
	}

	info, err := a.sessions.PutFile(r.Context(), id.ID, app, sessionID, header.Filename, data)
	if err != nil {
		mapError(w, err)
		return
	}

	a.audit.logEvent(AuditFileUploaded, r, id.ID,
		slog.String("app", app),
		slog.String("session_id", sessionID),
		slog.String("file", info.Name),
		slog.Int64("size", info.Size),
	)
	writeJSON(w, http.StatusOK, UploadFileResponse{OK: true, Name: info.Name, Size: info.Size})
}
