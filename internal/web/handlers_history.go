package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/JonMunkholm/tabconv/internal/history"
	"github.com/JonMunkholm/tabconv/internal/host"
	"github.com/JonMunkholm/tabconv/internal/logging"
	"github.com/JonMunkholm/tabconv/internal/web/templates"
)

// dashboardHistoryRows is how many recent conversions the dashboard lists.
const dashboardHistoryRows = 20

// HealthResponse is the JSON body returned by /health.
type HealthResponse struct {
	Status    string `json:"status"`
	Active    int    `json:"activeConversions"`
	Available int    `json:"availableSlots"`
	Functions int    `json:"functions"`
}

// handleDashboard renders the main dashboard page.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// A history failure still renders the page
	entries, err := s.service.History(ctx, dashboardHistoryRows)
	if err != nil {
		logging.FromContext(ctx).Warn("dashboard history unavailable", "error", err)
	}

	status := s.service.LimiterStatus()
	renderHTML(w, r, http.StatusOK, templates.Dashboard(templates.DashboardParams{
		Functions:     functionInfos(),
		History:       entries,
		Active:        status.Active,
		MaxConcurrent: status.MaxConcurrent,
		MaxInputSize:  s.service.MaxInputSize(),
	}))
}

// handleHealth reports liveness and conversion capacity.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := s.service.LimiterStatus()
	writeJSON(w, r, http.StatusOK, HealthResponse{
		Status:    "ok",
		Active:    status.Active,
		Available: status.Available,
		Functions: host.Count(),
	})
}

// handleListFunctions returns the registered host functions.
func (s *Server) handleListFunctions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, functionInfos())
}

// handleHistory lists recent conversions, newest first. HTMX requests get the
// history table fragment.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := parseIntParam(r, "limit", history.DefaultListLimit)

	entries, err := s.service.History(r.Context(), limit)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	if isHTMX(r) {
		renderHTML(w, r, http.StatusOK, templates.HistoryTable(entries))
		return
	}
	if entries == nil {
		entries = []history.Entry{}
	}
	writeJSON(w, r, http.StatusOK, entries)
}

// handleHistoryEntry returns one conversion by id.
func (s *Server) handleHistoryEntry(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, history.ErrNotFound, http.StatusNotFound)
		return
	}

	entry, err := s.service.HistoryEntry(r.Context(), id)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	writeJSON(w, r, http.StatusOK, entry)
}

func functionInfos() []templates.FunctionInfo {
	fns := host.Describe()
	out := make([]templates.FunctionInfo, len(fns))
	for i, f := range fns {
		out[i] = templates.FunctionInfo{Name: f.Name, Signature: f.Signature, Doc: f.Doc}
	}
	return out
}
