package model

import "testing"

func TestBucketVerdict(t *testing.T) {
	tests := []struct {
		name      string
		malicious bool
		risk      float64
		want      Verdict
	}{
		{"negative classification", false, 0.9, VerdictSafe},
		{"low risk positive", true, 0.2, VerdictMalicious},
		{"mid band is suspicious", true, 0.55, VerdictSuspicious},
		{"lower bound excluded", true, 0.4, VerdictMalicious},
		{"upper bound excluded", true, 0.8, VerdictMalicious},
		{"high risk", true, 0.99, VerdictMalicious},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BucketVerdict(tt.malicious, tt.risk); got != tt.want {
				t.Errorf("BucketVerdict(%v, %v) = %s, want %s", tt.malicious, tt.risk, got, tt.want)
			}
		})
	}
}

func TestLogFilterMatches(t *testing.T) {
	rec := ScanRecord{
		ID:     "URL-3FA2B1",
		Type:   ScanTypeURL,
		Target: "http://Login.Example/verify",
		Result: VerdictMalicious,
	}

	tests := []struct {
		name   string
		filter LogFilter
		want   bool
	}{
		{"empty filter", LogFilter{}, true},
		{"matching type", LogFilter{Type: FilterURL}, true},
		{"wrong type", LogFilter{Type: FilterFile}, false},
		{"id substring", LogFilter{Query: "3fa2"}, true},
		{"target substring", LogFilter{Query: "login.example"}, true},
		{"result substring", LogFilter{Query: "MALIC"}, true},
		{"no substring", LogFilter{Query: "zzz"}, false},
		{"query hits but type misses", LogFilter{Query: "login", Type: FilterFile}, false},
		{"type hits but query misses", LogFilter{Query: "zzz", Type: FilterURL}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(rec); got != tt.want {
				t.Errorf("Matches = %v, want %v", got, tt.want)
			}
		})
	}
}
