// Package view derives renderable summaries from log snapshots and
// heartbeat state. Everything here is pure: no network, no mutable
// state, so front-ends and tests can project hand-built snapshots.
package view

import (
	"fmt"
	"net/url"

	"github.com/user/phishguard/internal/model"
)

// Summary is what a front-end renders for one snapshot.
type Summary struct {
	Records []model.ScanRecord

	Total          int
	URLScans       int
	FileScans      int
	ExtensionScans int
	Threats        int

	ExtensionOnline bool
	Banner          string
	LastPing        string
}

// Project filters a snapshot and computes aggregate counters. The
// counters cover the whole snapshot, not just the filtered records.
func Project(records []model.ScanRecord, hb model.HeartbeatState, filter model.LogFilter) Summary {
	s := Summary{
		ExtensionOnline: hb.Online,
		Banner:          Banner(hb),
		LastPing:        LastPingLabel(hb),
	}

	for _, r := range records {
		s.Total++
		switch r.Type {
		case model.ScanTypeURL:
			s.URLScans++
		case model.ScanTypeFile:
			s.FileScans++
		case model.ScanTypeExtension:
			s.ExtensionScans++
		}
		if r.Result != model.VerdictSafe {
			s.Threats++
		}
		if filter.Matches(r) {
			s.Records = append(s.Records, r)
		}
	}
	return s
}

// Banner returns the connection-state banner text.
func Banner(hb model.HeartbeatState) string {
	if hb.Online {
		return "ACTIVE & SYNCED"
	}
	return "OFFLINE"
}

// LastPingLabel renders the last extension contact for display.
func LastPingLabel(hb model.HeartbeatState) string {
	if hb.LastPing == nil {
		return "Never"
	}
	return hb.LastPing.Local().Format("15:04:05")
}

// ReportURL builds the external phishing-report link for a target by
// percent-encoding it into the template's %s slot.
func ReportURL(template, target string) string {
	return fmt.Sprintf(template, url.QueryEscape(target))
}

// RiskLabel renders an outcome's risk score as a percentage. Scores the
// backend actually produced keep one decimal; substituted sentinels
// render as the flat 99% / 1% the fallback defines.
func RiskLabel(out *model.ScanOutcome) string {
	if out.Estimated {
		if out.Verdict == model.VerdictSafe {
			return "1%"
		}
		return "99%"
	}
	return fmt.Sprintf("%.1f%%", out.RiskScore*100)
}

// ConfidenceLabel renders the confidence column the way the log service
// does: the risk for a positive verdict, its complement for a safe one.
func ConfidenceLabel(verdict model.Verdict, riskScore float64) string {
	if verdict == model.VerdictSafe {
		return fmt.Sprintf("%d%%", int((1-riskScore)*100))
	}
	return fmt.Sprintf("%d%%", int(riskScore*100))
}

// FormatSize renders a byte count as "2.00 KB" / "3.50 MB".
func FormatSize(n int64) string {
	const (
		kb = 1 << 10
		mb = 1 << 20
	)
	if n >= mb {
		return fmt.Sprintf("%.2f MB", float64(n)/mb)
	}
	return fmt.Sprintf("%.2f KB", float64(n)/kb)
}
