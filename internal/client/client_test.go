package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/user/phishguard/internal/model"
)

func newTestClient(url string) *Client {
	return NewClient(url, "test-key", 5*time.Second, 1024)
}

func TestSubmitURLSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/predict_url" {
			t.Errorf("path = %s, want /predict_url", r.URL.Path)
		}
		if got := r.Header.Get("x-api-key"); got != "test-key" {
			t.Errorf("x-api-key = %q, want test-key", got)
		}
		w.Write([]byte(`{"result":"Phishing","risk_score":0.92,"features":{"has_ip":1}}`))
	}))
	defer srv.Close()

	out, err := newTestClient(srv.URL).SubmitURL(context.Background(), "http://evil.example")
	if err != nil {
		t.Fatalf("SubmitURL: %v", err)
	}
	if out.Result != "Phishing" {
		t.Errorf("Result = %q", out.Result)
	}
	if out.RiskScore != 0.92 || out.Estimated {
		t.Errorf("RiskScore = %v (estimated=%v), want 0.92 measured", out.RiskScore, out.Estimated)
	}
	if out.Verdict != model.VerdictMalicious {
		t.Errorf("Verdict = %s, want MALICIOUS", out.Verdict)
	}
}

func TestSubmitURLSuspiciousBucket(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":"Phishing","risk_score":0.55}`))
	}))
	defer srv.Close()

	out, err := newTestClient(srv.URL).SubmitURL(context.Background(), "http://odd.example")
	if err != nil {
		t.Fatalf("SubmitURL: %v", err)
	}
	if out.Verdict != model.VerdictSuspicious {
		t.Errorf("Verdict = %s, want SUSPICIOUS", out.Verdict)
	}
}

func TestSubmitURLMissingScoreSentinels(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantRisk float64
		verdict  model.Verdict
	}{
		{"phishing without score", `{"result":"Phishing"}`, 0.99, model.VerdictMalicious},
		{"legitimate without score", `{"result":"Legitimate"}`, 0.01, model.VerdictSafe},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			out, err := newTestClient(srv.URL).SubmitURL(context.Background(), "http://x.example")
			if err != nil {
				t.Fatalf("SubmitURL: %v", err)
			}
			if !out.Estimated {
				t.Error("Estimated = false, want true")
			}
			if out.RiskScore != tt.wantRisk {
				t.Errorf("RiskScore = %v, want %v", out.RiskScore, tt.wantRisk)
			}
			if out.Verdict != tt.verdict {
				t.Errorf("Verdict = %s, want %s", out.Verdict, tt.verdict)
			}
		})
	}
}

func TestSubmitURLValidation(t *testing.T) {
	c := newTestClient("http://unused.invalid")

	_, err := c.SubmitURL(context.Background(), "   ")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestSubmitURLPayloadError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"model not loaded"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).SubmitURL(context.Background(), "http://x.example")
	var serr *ServiceError
	if !errors.As(err, &serr) {
		t.Fatalf("err = %v, want ServiceError", err)
	}
}

func TestSubmitURLServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).SubmitURL(context.Background(), "http://x.example")
	var serr *ServiceError
	if !errors.As(err, &serr) {
		t.Fatalf("err = %v, want ServiceError", err)
	}
	if serr.Status != http.StatusInternalServerError {
		t.Errorf("Status = %d, want 500", serr.Status)
	}
}

func TestSubmitURLTransportError(t *testing.T) {
	// Point at a closed server so Do fails at the transport layer.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := newTestClient(srv.URL).SubmitURL(context.Background(), "http://x.example")
	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("err = %v, want TransportError", err)
	}
}

func TestSubmitFileSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/predict_file" {
			t.Errorf("path = %s, want /predict_file", r.URL.Path)
		}
		if got := r.Header.Get("x-api-key"); got != "test-key" {
			t.Errorf("x-api-key = %q, want test-key", got)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("multipart parse: %v", err)
		}
		if _, _, err := r.FormFile("file"); err != nil {
			t.Errorf("form field file missing: %v", err)
		}
		w.Write([]byte(`{"result":"Clean","risk_score":0.05}`))
	}))
	defer srv.Close()

	out, err := newTestClient(srv.URL).SubmitFile(context.Background(), []byte("hello"), "note.txt")
	if err != nil {
		t.Fatalf("SubmitFile: %v", err)
	}
	if out.Verdict != model.VerdictSafe {
		t.Errorf("Verdict = %s, want SAFE", out.Verdict)
	}
	if out.Filename != "note.txt" {
		t.Errorf("Filename = %q, want note.txt", out.Filename)
	}
	if out.Size != 5 {
		t.Errorf("Size = %d, want 5", out.Size)
	}
	if out.Hash == "" {
		t.Error("Hash not backfilled")
	}
}

func TestSubmitFileValidation(t *testing.T) {
	c := newTestClient("http://unused.invalid")

	var verr *ValidationError
	if _, err := c.SubmitFile(context.Background(), nil, "empty.bin"); !errors.As(err, &verr) {
		t.Errorf("empty file err = %v, want ValidationError", err)
	}

	big := make([]byte, 2048) // client limit is 1024 in these tests
	if _, err := c.SubmitFile(context.Background(), big, "big.bin"); !errors.As(err, &verr) {
		t.Errorf("oversize file err = %v, want ValidationError", err)
	}
}

func TestSubmitURLInFlightRejected(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.Write([]byte(`{"result":"Legitimate","risk_score":0.1}`))
	}))
	defer srv.Close()
	defer close(release)

	c := newTestClient(srv.URL)

	started := make(chan struct{})
	go func() {
		close(started)
		c.SubmitURL(context.Background(), "http://dup.example/")
	}()
	<-started
	time.Sleep(50 * time.Millisecond)

	// Same target modulo normalization: must be rejected while the first
	// submission is still in flight.
	_, err := c.SubmitURL(context.Background(), "HTTP://DUP.EXAMPLE")
	if !errors.Is(err, ErrScanInFlight) {
		t.Errorf("err = %v, want ErrScanInFlight", err)
	}
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"HTTP://Example.COM/", "http://example.com"},
		{"http://example.com:80/path/", "http://example.com/path"},
		{"https://example.com:443", "https://example.com"},
		{"https://example.com:8443/x", "https://example.com:8443/x"},
		{"not a url", "not a url"},
	}

	for _, tt := range tests {
		if got := normalizeURL(tt.in); got != tt.want {
			t.Errorf("normalizeURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDeleteLogUnknownIDIsNoop(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	if err := newTestClient(srv.URL).DeleteLog(context.Background(), "URL-MISSING"); err != nil {
		t.Errorf("DeleteLog on 404 = %v, want nil", err)
	}
}

func TestLogs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/logs" {
			t.Errorf("path = %s, want /logs", r.URL.Path)
		}
		w.Write([]byte(`{"logs":[{"id":"URL-AAAAAA","time":"2026-03-10T12:00:00Z","type":"URL","target":"http://x.example","result":"SAFE","confidence":"90%"}]}`))
	}))
	defer srv.Close()

	records, err := newTestClient(srv.URL).Logs(context.Background())
	if err != nil {
		t.Fatalf("Logs: %v", err)
	}
	if len(records) != 1 || records[0].ID != "URL-AAAAAA" {
		t.Fatalf("records = %+v", records)
	}
}

func TestPingSendsKey(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/ping" || r.Method != http.MethodPost {
			t.Errorf("got %s %s, want POST /api/ping", r.Method, r.URL.Path)
		}
		gotKey = r.Header.Get("x-api-key")
	}))
	defer srv.Close()

	if err := newTestClient(srv.URL).Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if gotKey != "test-key" {
		t.Errorf("x-api-key = %q, want test-key", gotKey)
	}
}
