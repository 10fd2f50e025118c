package view

import (
	"testing"
	"time"

	"github.com/user/phishguard/internal/model"
)

func sampleRecords() []model.ScanRecord {
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	return []model.ScanRecord{
		{ID: "URL-AAAAAA", Timestamp: base.Add(3 * time.Minute), Type: model.ScanTypeURL,
			Target: "http://phishy.example/login", Result: model.VerdictMalicious, Confidence: "97%"},
		{ID: "FILE-BBBBBB", Timestamp: base.Add(2 * time.Minute), Type: model.ScanTypeFile,
			Target: "invoice.pdf", Result: model.VerdictSafe, Confidence: "88%"},
		{ID: "EXT-CCCCCC", Timestamp: base.Add(time.Minute), Type: model.ScanTypeExtension,
			Target: "https://ok.example", Result: model.VerdictSafe, Confidence: "92%"},
		{ID: "URL-DDDDDD", Timestamp: base, Type: model.ScanTypeURL,
			Target: "https://ok.example/home", Result: model.VerdictSuspicious, Confidence: "61%"},
	}
}

func TestProjectCounters(t *testing.T) {
	s := Project(sampleRecords(), model.HeartbeatState{}, model.LogFilter{})

	if s.Total != 4 {
		t.Errorf("Total = %d, want 4", s.Total)
	}
	if s.URLScans != 2 || s.FileScans != 1 || s.ExtensionScans != 1 {
		t.Errorf("type counts = %d/%d/%d, want 2/1/1",
			s.URLScans, s.FileScans, s.ExtensionScans)
	}
	if s.Threats != 2 {
		t.Errorf("Threats = %d, want 2", s.Threats)
	}
}

func TestProjectCountersIgnoreFilter(t *testing.T) {
	// Counters cover the whole snapshot even when the visible list is
	// narrowed by a filter.
	s := Project(sampleRecords(), model.HeartbeatState{}, model.LogFilter{Type: model.FilterFile})

	if len(s.Records) != 1 {
		t.Fatalf("filtered records = %d, want 1", len(s.Records))
	}
	if s.Total != 4 || s.Threats != 2 {
		t.Errorf("counters = %d total / %d threats, want 4/2", s.Total, s.Threats)
	}
}

func TestProjectConjunctiveFilter(t *testing.T) {
	tests := []struct {
		name   string
		filter model.LogFilter
		want   []string
	}{
		{"no filter", model.LogFilter{}, []string{"URL-AAAAAA", "FILE-BBBBBB", "EXT-CCCCCC", "URL-DDDDDD"}},
		{"type url", model.LogFilter{Type: model.FilterURL}, []string{"URL-AAAAAA", "URL-DDDDDD"}},
		{"search target", model.LogFilter{Query: "ok.example"}, []string{"EXT-CCCCCC", "URL-DDDDDD"}},
		{"search case insensitive", model.LogFilter{Query: "PHISHY"}, []string{"URL-AAAAAA"}},
		{"search result", model.LogFilter{Query: "malicious"}, []string{"URL-AAAAAA"}},
		{"search and type", model.LogFilter{Query: "ok.example", Type: model.FilterURL}, []string{"URL-DDDDDD"}},
		{"no match", model.LogFilter{Query: "ok.example", Type: model.FilterFile}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Project(sampleRecords(), model.HeartbeatState{}, tt.filter)
			if len(s.Records) != len(tt.want) {
				t.Fatalf("got %d records, want %d", len(s.Records), len(tt.want))
			}
			for i, id := range tt.want {
				if s.Records[i].ID != id {
					t.Errorf("record %d = %s, want %s", i, s.Records[i].ID, id)
				}
			}
		})
	}
}

func TestBanner(t *testing.T) {
	if got := Banner(model.HeartbeatState{Online: true}); got != "ACTIVE & SYNCED" {
		t.Errorf("online banner = %q", got)
	}
	if got := Banner(model.HeartbeatState{Online: false}); got != "OFFLINE" {
		t.Errorf("offline banner = %q", got)
	}
}

func TestLastPingLabel(t *testing.T) {
	if got := LastPingLabel(model.HeartbeatState{}); got != "Never" {
		t.Errorf("label without ping = %q, want Never", got)
	}

	ts := time.Date(2026, 3, 10, 12, 30, 45, 0, time.Local)
	got := LastPingLabel(model.HeartbeatState{Online: true, LastPing: &ts})
	if got != "12:30:45" {
		t.Errorf("label = %q, want 12:30:45", got)
	}
}

func TestReportURL(t *testing.T) {
	const tmpl = "https://safebrowsing.google.com/safebrowsing/report_phish/?url=%s"

	got := ReportURL(tmpl, "http://evil.example/a b?x=1&y=2")
	want := "https://safebrowsing.google.com/safebrowsing/report_phish/?url=http%3A%2F%2Fevil.example%2Fa+b%3Fx%3D1%26y%3D2"
	if got != want {
		t.Errorf("ReportURL = %q, want %q", got, want)
	}
}

func TestRiskLabel(t *testing.T) {
	tests := []struct {
		name string
		out  model.ScanOutcome
		want string
	}{
		{"measured", model.ScanOutcome{RiskScore: 0.873, Verdict: model.VerdictMalicious}, "87.3%"},
		{"estimated bad", model.ScanOutcome{RiskScore: 0.99, Estimated: true, Verdict: model.VerdictMalicious}, "99%"},
		{"estimated safe", model.ScanOutcome{RiskScore: 0.01, Estimated: true, Verdict: model.VerdictSafe}, "1%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RiskLabel(&tt.out); got != tt.want {
				t.Errorf("RiskLabel = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConfidenceLabel(t *testing.T) {
	if got := ConfidenceLabel(model.VerdictMalicious, 0.97); got != "97%" {
		t.Errorf("malicious confidence = %q, want 97%%", got)
	}
	if got := ConfidenceLabel(model.VerdictSafe, 0.1); got != "90%" {
		t.Errorf("safe confidence = %q, want 90%%", got)
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{2048, "2.00 KB"},
		{512, "0.50 KB"},
		{1536, "1.50 KB"},
		{3 * 1024 * 1024, "3.00 MB"},
		{5*1024*1024 + 512*1024, "5.50 MB"},
	}

	for _, tt := range tests {
		if got := FormatSize(tt.n); got != tt.want {
			t.Errorf("FormatSize(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
