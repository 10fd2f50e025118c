package tui

import (
	"fmt"
	"strings"

	"github.com/user/phishguard/internal/model"
	"github.com/user/phishguard/internal/view"
)

const maxEntries = 10

// renderSummary renders the popup body from one projected snapshot.
func renderSummary(s view.Summary, width int) string {
	sectionWidth := width - 4
	if sectionWidth < 44 {
		sectionWidth = 44
	}

	var sb strings.Builder

	header := HeaderStyle.Width(width).Render("PhishGuard")
	sb.WriteString(header)
	sb.WriteString("\n\n")

	sb.WriteString(renderStatusSection(s, sectionWidth))
	sb.WriteString("\n")
	sb.WriteString(renderHistorySection(s, sectionWidth))
	sb.WriteString("\n")

	return sb.String()
}

func renderStatusSection(s view.Summary, width int) string {
	banner := OfflineStyle.Render(s.Banner)
	if s.ExtensionOnline {
		banner = OnlineStyle.Render(s.Banner)
	}

	content := fmt.Sprintf(
		"%s %s\n%s %s\n%s %s\n%s %s",
		LabelStyle.Render("Extension:"),
		banner,
		LabelStyle.Render("Last ping:"),
		ValueStyle.Render(s.LastPing),
		LabelStyle.Render("Scans:"),
		ValueStyle.Render(fmt.Sprintf("%d total (%d URL / %d file / %d ext)",
			s.Total, s.URLScans, s.FileScans, s.ExtensionScans)),
		LabelStyle.Render("Threats:"),
		ValueStyle.Render(fmt.Sprintf("%d", s.Threats)),
	)

	return SectionStyle.Width(width).Render(
		SectionTitleStyle.Render("Status") + "\n" + content)
}

func renderHistorySection(s view.Summary, width int) string {
	if len(s.Records) == 0 {
		return SectionStyle.Width(width).Render(
			SectionTitleStyle.Render("Recent Scans") + "\n" +
				DimStyle.Render("No scans recorded yet"))
	}

	entries := s.Records
	if len(entries) > maxEntries {
		entries = entries[:maxEntries]
	}

	var sb strings.Builder
	for i, r := range entries {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(renderEntry(r, width-6))
	}

	return SectionStyle.Width(width).Render(
		SectionTitleStyle.Render("Recent Scans") + "\n" + sb.String())
}

func renderEntry(r model.ScanRecord, width int) string {
	icon := "✓"
	if r.Result != model.VerdictSafe {
		icon = "✗"
	}

	target := r.Target
	if width > 10 && len(target) > width-10 {
		target = target[:width-13] + "..."
	}

	return fmt.Sprintf("%s %s  %s\n  %s",
		VerdictStyle(r.Result).Render(icon+" "+string(r.Result)),
		DimStyle.Render(r.Confidence),
		target,
		DimStyle.Render(fmt.Sprintf("%s • scanned at %s",
			r.Type, r.Timestamp.Local().Format("15:04:05"))))
}
