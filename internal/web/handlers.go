package web

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/user/phishguard/internal/heartbeat"
	"github.com/user/phishguard/internal/history"
	"github.com/user/phishguard/internal/model"
	"github.com/user/phishguard/internal/poll"
	"github.com/user/phishguard/internal/util"
	"github.com/user/phishguard/internal/view"
)

// Handlers contains dashboard HTTP handlers.
type Handlers struct {
	store   *history.Store
	monitor *heartbeat.Monitor
	poller  *poll.Poller
	cfg     *util.Config
}

// NewHandlers creates new dashboard handlers.
func NewHandlers(store *history.Store, monitor *heartbeat.Monitor, poller *poll.Poller, cfg *util.Config) *Handlers {
	return &Handlers{
		store:   store,
		monitor: monitor,
		poller:  poller,
		cfg:     cfg,
	}
}

type logEntry struct {
	model.ScanRecord
	ReportURL string `json:"report_url"`
}

type logsPayload struct {
	Logs           []logEntry `json:"logs"`
	Total          int        `json:"total"`
	URLScans       int        `json:"url_scans"`
	FileScans      int        `json:"file_scans"`
	ExtensionScans int        `json:"extension_scans"`
	Threats        int        `json:"threats"`
}

type statusPayload struct {
	Online   bool             `json:"is_online"`
	Banner   string           `json:"banner"`
	LastPing string           `json:"last_ping"`
	Polls    []poll.JobStatus `json:"polls"`
}

// Dashboard serves the main dashboard page.
func (h *Handlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := GetTemplates().ExecuteTemplate(w, "dashboard", map[string]interface{}{
		"HistoryPollMs": h.cfg.HistoryPollInterval.Milliseconds(),
		"StatusPollMs":  h.cfg.StatusPollInterval.Milliseconds(),
	}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// APILogs returns the filtered local snapshot with aggregate counters.
func (h *Handlers) APILogs(w http.ResponseWriter, r *http.Request) {
	filter := model.LogFilter{
		Query: r.URL.Query().Get("search"),
		Type:  parseTypeFilter(r.URL.Query().Get("type")),
	}

	summary := view.Project(h.store.List(model.LogFilter{}), h.monitor.State(), filter)

	entries := make([]logEntry, 0, len(summary.Records))
	for _, rec := range summary.Records {
		entries = append(entries, logEntry{
			ScanRecord: rec,
			ReportURL:  view.ReportURL(h.cfg.ReportURLTemplate, rec.Target),
		})
	}

	writeJSON(w, logsPayload{
		Logs:           entries,
		Total:          summary.Total,
		URLScans:       summary.URLScans,
		FileScans:      summary.FileScans,
		ExtensionScans: summary.ExtensionScans,
		Threats:        summary.Threats,
	})
}

// APIDeleteLog deletes a record optimistically and kicks the history
// poll so the authoritative snapshot follows shortly.
func (h *Handlers) APIDeleteLog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/logs/")
	if id == "" {
		writeError(w, "scan id is required", http.StatusBadRequest)
		return
	}

	err := h.store.Delete(r.Context(), id)
	h.poller.Kick("history")
	if err != nil {
		writeError(w, err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, map[string]string{"message": "Log deleted"})
}

// APIStatus returns heartbeat state and poll health.
func (h *Handlers) APIStatus(w http.ResponseWriter, r *http.Request) {
	hb := h.monitor.State()
	writeJSON(w, statusPayload{
		Online:   hb.Online,
		Banner:   view.Banner(hb),
		LastPing: view.LastPingLabel(hb),
		Polls:    h.poller.Statuses(),
	})
}

func parseTypeFilter(s string) model.TypeFilter {
	switch strings.ToLower(s) {
	case "url":
		return model.FilterURL
	case "file":
		return model.FilterFile
	default:
		return model.FilterAll
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, msg string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
