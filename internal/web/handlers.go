package web

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/JonMunkholm/dblibsync/internal/core"
	"github.com/JonMunkholm/dblibsync/internal/logging"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleSync runs a sync and returns its result. The sync outlives the
// request if the client disconnects.
func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	log := logging.FromContext(r.Context())
	log.Info("sync requested", "remote_addr", r.RemoteAddr)

	res, err := s.service.Sync(detachedContext(r))
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// SyncStatus is the body of GET /api/sync/status.
type SyncStatus struct {
	Running   bool         `json:"running"`
	StartedAt *time.Time   `json:"started_at,omitempty"`
	Last      *core.Result `json:"last,omitempty"`
	LastError *ErrorBody   `json:"last_error,omitempty"`
}

func (s *Server) handleSyncStatus(w http.ResponseWriter, r *http.Request) {
	lim := s.service.LimiterStatus()
	last, lastErr := s.service.LastResult()

	status := SyncStatus{
		Running:   lim.Running,
		StartedAt: lim.StartedAt,
		Last:      last,
	}
	if lastErr != nil {
		body := errorBody(lastErr)
		status.LastError = &body
	}
	writeJSON(w, http.StatusOK, status)
}

// ValidateResponse is the body of GET /api/validate.
type ValidateResponse struct {
	Valid      bool                   `json:"valid"`
	Categories []core.CategorySummary `json:"categories"`
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.service.Validate(r.Context())
	if err != nil && summaries == nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	status := http.StatusOK
	if err != nil {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, ValidateResponse{Valid: err == nil, Categories: summaries})
}

// handleDownloadDbLib serves the DbLib file from the last successful sync.
func (s *Server) handleDownloadDbLib(w http.ResponseWriter, r *http.Request) {
	content := s.service.LastDbLib()
	if content == nil {
		writeJSON(w, http.StatusNotFound, ErrorBody{
			Error:   "no dblib generated yet",
			Message: "No DbLib file has been generated yet",
			Action:  "Run a sync first",
			Code:    "SYNC005",
		})
		return
	}

	name := filepath.Base(s.cfg.DbLib.File)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	w.Write(content)
}
