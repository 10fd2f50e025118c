// Package report generates threat summary reports.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/user/phishguard/internal/model"
	"github.com/user/phishguard/internal/util"
	"github.com/user/phishguard/internal/view"
)

// Generator creates markdown threat reports from log snapshots.
type Generator struct {
	config *util.Config
}

// NewGenerator creates a new report generator.
func NewGenerator(cfg *util.Config) *Generator {
	return &Generator{config: cfg}
}

// Render produces the markdown report body for one projected snapshot.
func (g *Generator) Render(summary view.Summary) string {
	var sb strings.Builder

	sb.WriteString("# PhishGuard Threat Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", time.Now().Format("2006-01-02 15:04:05")))

	sb.WriteString("## Extension\n\n")
	sb.WriteString(fmt.Sprintf("- Status: %s\n", summary.Banner))
	sb.WriteString(fmt.Sprintf("- Last ping: %s\n\n", summary.LastPing))

	sb.WriteString("## Scan Summary\n\n")
	sb.WriteString(fmt.Sprintf("- Total scans: %d\n", summary.Total))
	sb.WriteString(fmt.Sprintf("- URL scans: %d\n", summary.URLScans))
	sb.WriteString(fmt.Sprintf("- File scans: %d\n", summary.FileScans))
	sb.WriteString(fmt.Sprintf("- Extension scans: %d\n", summary.ExtensionScans))
	sb.WriteString(fmt.Sprintf("- Threats detected: %d\n\n", summary.Threats))

	sb.WriteString("## Threat Log\n\n")
	if len(summary.Records) == 0 {
		sb.WriteString("No scans recorded.\n")
		return sb.String()
	}

	sb.WriteString("| Scan ID | Time | Type | Target | Prediction | Confidence |\n")
	sb.WriteString("|---------|------|------|--------|------------|------------|\n")
	for _, r := range summary.Records {
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s |\n",
			r.ID,
			r.Timestamp.Local().Format("2006-01-02 15:04:05"),
			r.Type,
			escapeCell(r.Target),
			r.Result,
			r.Confidence))
	}

	threats := threatRecords(summary.Records)
	if len(threats) > 0 {
		sb.WriteString("\n## Report Links\n\n")
		for _, r := range threats {
			sb.WriteString(fmt.Sprintf("- [%s](%s)\n",
				escapeCell(r.Target),
				view.ReportURL(g.config.ReportURLTemplate, r.Target)))
		}
	}

	return sb.String()
}

// Write renders the report and writes it under the configured output
// directory, returning the file path.
func (g *Generator) Write(summary view.Summary, outputPath string) (string, error) {
	if outputPath == "" {
		if err := util.EnsureDir(g.config.ReportOutputDir); err != nil {
			return "", fmt.Errorf("failed to create report dir: %w", err)
		}
		outputPath = filepath.Join(g.config.ReportOutputDir,
			fmt.Sprintf("threat-report-%s.md", time.Now().Format("20060102-150405")))
	}

	if err := os.WriteFile(outputPath, []byte(g.Render(summary)), 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return outputPath, nil
}

func threatRecords(records []model.ScanRecord) []model.ScanRecord {
	var out []model.ScanRecord
	for _, r := range records {
		if r.Result != model.VerdictSafe {
			out = append(out, r)
		}
	}
	return out
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
