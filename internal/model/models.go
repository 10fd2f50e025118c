// Package model defines core data structures for phishguard.
package model

import (
	"strings"
	"time"
)

// ScanType identifies where a scan originated and what was scanned.
type ScanType string

const (
	ScanTypeURL       ScanType = "URL"
	ScanTypeFile      ScanType = "FILE"
	ScanTypeExtension ScanType = "EXTENSION"
)

// Verdict is the classification bucket assigned to a completed scan.
type Verdict string

const (
	VerdictSafe       Verdict = "SAFE"
	VerdictSuspicious Verdict = "SUSPICIOUS"
	VerdictMalicious  Verdict = "MALICIOUS"
)

// ScanRecord represents one completed scan in the shared threat log.
// Records are immutable after insertion; the only mutation is deletion.
type ScanRecord struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"time"`
	Type       ScanType  `json:"type"`
	Target     string    `json:"target"`
	Result     Verdict   `json:"result"`
	Confidence string    `json:"confidence"`
	Details    string    `json:"details,omitempty"`
	Hash       string    `json:"hash,omitempty"`
}

// ScanOutcome is the normalized result of a single scan submission.
type ScanOutcome struct {
	Result    string  `json:"result"`
	Verdict   Verdict `json:"-"`
	RiskScore float64 `json:"risk_score"`
	// Estimated is true when the backend omitted a numeric score and the
	// 0.99/0.01 sentinel was substituted.
	Estimated bool                   `json:"-"`
	Features  map[string]interface{} `json:"features,omitempty"`
	Details   string                 `json:"details,omitempty"`
	Filename  string                 `json:"filename,omitempty"`
	Size      int64                  `json:"size,omitempty"`
	Hash      string                 `json:"hash,omitempty"`
}

// HeartbeatState is the liveness of the browser extension. It has no
// identity beyond "current": each poll overwrites it wholesale.
type HeartbeatState struct {
	Online   bool       `json:"is_online"`
	LastPing *time.Time `json:"last_ping"`
}

// TypeFilter constrains a log query to one scan type.
type TypeFilter string

const (
	FilterAll  TypeFilter = "all"
	FilterURL  TypeFilter = "url"
	FilterFile TypeFilter = "file"
)

// LogFilter selects records by substring search and type constraint.
// Both predicates are conjunctive.
type LogFilter struct {
	Query string
	Type  TypeFilter
}

// Matches reports whether a record passes both filter predicates.
// The search matches case-insensitively against id, target and result.
func (f LogFilter) Matches(r ScanRecord) bool {
	switch f.Type {
	case FilterURL:
		if r.Type != ScanTypeURL {
			return false
		}
	case FilterFile:
		if r.Type != ScanTypeFile {
			return false
		}
	}

	if f.Query == "" {
		return true
	}
	q := strings.ToLower(f.Query)
	return strings.Contains(strings.ToLower(r.ID), q) ||
		strings.Contains(strings.ToLower(r.Target), q) ||
		strings.Contains(strings.ToLower(string(r.Result)), q)
}

// BucketVerdict maps a positive/negative classification and risk score
// into a verdict bucket using the service's thresholds.
func BucketVerdict(malicious bool, riskScore float64) Verdict {
	if !malicious {
		return VerdictSafe
	}
	if riskScore > 0.4 && riskScore < 0.8 {
		return VerdictSuspicious
	}
	return VerdictMalicious
}
