package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/user/phishguard/internal/client"
	"github.com/user/phishguard/internal/model"
	"github.com/user/phishguard/internal/storage"
	"github.com/user/phishguard/internal/util"
	"github.com/user/phishguard/internal/view"
)

// Inference forwards a submission to the upstream classification service.
type Inference interface {
	SubmitURL(ctx context.Context, url string) (*model.ScanOutcome, error)
	SubmitFile(ctx context.Context, data []byte, filename string) (*model.ScanOutcome, error)
}

// Handlers contains the log service HTTP handlers.
type Handlers struct {
	logs      *storage.LogStorage
	heartbeat *HeartbeatRegistry
	inference Inference
	apiKey    string
	maxBody   int64
}

// NewHandlers creates handlers wired to storage and the upstream
// inference service.
func NewHandlers(db *storage.DB, cfg *util.Config) *Handlers {
	return &Handlers{
		logs:      storage.NewLogStorage(db),
		heartbeat: NewHeartbeatRegistry(cfg.HeartbeatWindow),
		inference: client.NewClient(cfg.InferenceURL, "", cfg.RequestTimeout, cfg.MaxFileSize),
		apiKey:    cfg.APIKey,
		maxBody:   cfg.MaxFileSize,
	}
}

type predictURLRequest struct {
	URL string `json:"url"`
}

type urlVerdictResponse struct {
	Result    string                 `json:"result"`
	RiskScore float64                `json:"risk_score"`
	Features  map[string]interface{} `json:"features,omitempty"`
}

type fileVerdictResponse struct {
	Filename  string  `json:"filename"`
	Size      int64   `json:"size"`
	Hash      string  `json:"hash"`
	Result    string  `json:"result"`
	RiskScore float64 `json:"risk_score"`
	Details   string  `json:"details,omitempty"`
}

// Root reports service liveness.
func (h *Handlers) Root(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, map[string]string{"message": "phishguard log service is running"})
}

// PredictURL forwards a URL scan upstream and appends the verdict to the
// threat log.
func (h *Handlers) PredictURL(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !h.requireKey(w, r) {
		return
	}

	var req predictURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.URL) == "" {
		writeError(w, "url is required", http.StatusBadRequest)
		return
	}

	outcome, err := h.inference.SubmitURL(r.Context(), req.URL)
	if err != nil {
		util.Error("URL inference failed: %v", err)
		writeError(w, err.Error(), http.StatusBadGateway)
		return
	}

	h.appendRecord(model.ScanTypeURL, req.URL, outcome)

	writeJSON(w, urlVerdictResponse{
		Result:    outcome.Result,
		RiskScore: outcome.RiskScore,
		Features:  outcome.Features,
	})
}

// PredictFile forwards a file scan upstream and appends the verdict to
// the threat log.
func (h *Handlers) PredictFile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !h.requireKey(w, r) {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)
	if err := r.ParseMultipartForm(h.maxBody); err != nil {
		writeError(w, "file too large or malformed upload", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, "failed to read upload", http.StatusBadRequest)
		return
	}

	outcome, err := h.inference.SubmitFile(r.Context(), data, header.Filename)
	if err != nil {
		util.Error("File inference failed: %v", err)
		writeError(w, err.Error(), http.StatusBadGateway)
		return
	}

	rec := h.appendRecord(model.ScanTypeFile, header.Filename, outcome)

	writeJSON(w, fileVerdictResponse{
		Filename:  outcome.Filename,
		Size:      outcome.Size,
		Hash:      rec.Hash,
		Result:    outcome.Result,
		RiskScore: outcome.RiskScore,
		Details:   outcome.Details,
	})
}

// Logs returns the threat log.
func (h *Handlers) Logs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	records, err := h.logs.List(100)
	if err != nil {
		writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []model.ScanRecord{}
	}
	writeJSON(w, map[string]interface{}{"logs": records})
}

// DeleteLog handles DELETE /logs/{id}. Deleting an absent id succeeds.
func (h *Handlers) DeleteLog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/logs/")
	if id == "" {
		writeError(w, "scan id is required", http.StatusBadRequest)
		return
	}

	if _, err := h.logs.Delete(id); err != nil {
		writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]string{"message": "Log deleted successfully"})
}

// Ping records an extension heartbeat.
func (h *Handlers) Ping(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !h.requireKey(w, r) {
		return
	}

	h.heartbeat.Touch()
	writeJSON(w, map[string]string{"status": "ok", "message": "Heartbeat received"})
}

// ExtensionStatus reports extension liveness.
func (h *Handlers) ExtensionStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.heartbeat.State())
}

// appendRecord inserts the outcome into the threat log. Insert failures
// are logged, not surfaced: the verdict already exists and the caller
// should still receive it.
func (h *Handlers) appendRecord(t model.ScanType, target string, out *model.ScanOutcome) *model.ScanRecord {
	rec := &model.ScanRecord{
		Timestamp:  time.Now().UTC(),
		Type:       t,
		Target:     target,
		Result:     out.Verdict,
		Confidence: view.ConfidenceLabel(out.Verdict, out.RiskScore),
		Details:    out.Details,
		Hash:       out.Hash,
	}
	if err := h.logs.Insert(rec); err != nil {
		util.Error("Failed to append threat log: %v", err)
	}
	return rec
}

func (h *Handlers) requireKey(w http.ResponseWriter, r *http.Request) bool {
	if h.apiKey == "" {
		return true
	}
	if r.Header.Get("x-api-key") != h.apiKey {
		writeError(w, "Invalid API Key", http.StatusUnauthorized)
		return false
	}
	return true
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
