package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/tame/pkg/catalog"
	"github.com/matzehuels/tame/pkg/errors"
	"github.com/matzehuels/tame/pkg/fix"
	"github.com/matzehuels/tame/pkg/scan"
	"github.com/matzehuels/tame/pkg/workspace"
)

// Format selects a renderer.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Formats lists the supported report formats.
var Formats = []Format{FormatText, FormatJSON}

// ParseFormat validates a format name. The empty string selects [FormatText].
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON:
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidConfig, "unknown format %q (want text or json)", s)
}

// CheckSummary is the headline of a check report.
type CheckSummary struct {
	CatalogEntries int `json:"catalog_entries"`
	Packages       int `json:"packages"`
	Findings       int `json:"findings"`
	Warnings       int `json:"warnings"`
}

// SummarizeCheck counts the interesting parts of a scan.
func SummarizeCheck(res *scan.Result) CheckSummary {
	return CheckSummary{
		CatalogEntries: len(res.Catalog),
		Packages:       len(res.Packages),
		Findings:       len(res.Findings()),
		Warnings:       len(res.Warnings),
	}
}

type checkDocument struct {
	*scan.Result
	Findings []catalog.Finding `json:"findings"`
	Summary  CheckSummary      `json:"summary"`
}

type fixDocument struct {
	*fix.Result
	Summary FixSummary `json:"summary"`
}

// FixSummary is the headline of a fix report.
type FixSummary struct {
	Packages int `json:"packages"`
	Rewrites int `json:"rewrites"`
	Modified int `json:"modified"`
	Warnings int `json:"warnings"`
}

// SummarizeFix counts the interesting parts of a fix run.
func SummarizeFix(res *fix.Result) FixSummary {
	return FixSummary{
		Packages: len(res.Changes),
		Rewrites: res.Rewrites(),
		Modified: res.Modified(),
		Warnings: len(res.Warnings),
	}
}

// Check writes a scan result in the given format.
func Check(w io.Writer, res *scan.Result, format Format) error {
	if format == FormatJSON {
		findings := res.Findings()
		if findings == nil {
			findings = []catalog.Finding{}
		}
		return writeJSON(w, checkDocument{Result: res, Findings: findings, Summary: SummarizeCheck(res)})
	}
	return writeText(w, checkText(res))
}

// Fix writes a fix result in the given format.
func Fix(w io.Writer, res *fix.Result, format Format) error {
	if format == FormatJSON {
		return writeJSON(w, fixDocument{Result: res, Summary: SummarizeFix(res)})
	}
	return writeText(w, fixText(res))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(errors.ErrCodeWrite, err, "failed to write report")
	}
	return nil
}

func writeText(w io.Writer, s string) error {
	if _, err := io.WriteString(w, s); err != nil {
		return errors.Wrap(errors.ErrCodeWrite, err, "failed to write report")
	}
	return nil
}

// =============================================================================
// Text Rendering
// =============================================================================

func checkText(res *scan.Result) string {
	var sb strings.Builder

	if !res.HasCatalog() {
		line(&sb, iconInfo, styleDim, "No catalog entries found in %s", workspace.FileName)
		writeWarnings(&sb, res.Warnings)
		return sb.String()
	}

	line(&sb, iconInfo, styleDim, "Found %s in %s",
		styleNumber.Render(plural(len(res.Catalog), "catalog entry", "catalog entries")), workspace.FileName)

	findings := res.Findings()
	if len(findings) > 0 {
		sb.WriteString(findingsTable(findings))
		sb.WriteString("\n")
	}
	writeWarnings(&sb, res.Warnings)

	if len(findings) == 0 {
		line(&sb, iconSuccess, styleSuccess, "All catalog dependencies use workspace references (%s checked)",
			plural(len(res.Packages), "package", "packages"))
		return sb.String()
	}
	line(&sb, iconError, styleFinding, "%s in %s",
		plural(len(findings), "non-workspace dependency", "non-workspace dependencies"),
		plural(len(res.Pending()), "package", "packages"))
	return sb.String()
}

func findingsTable(findings []catalog.Finding) string {
	rows := make([][]string, 0, len(findings))
	for _, f := range findings {
		rows = append(rows, []string{f.Package, f.Name, f.Version, f.Field})
	}
	return newTable([]string{"Package", "Dependency", "Version", "Field"}, rows, 2).Render()
}

func fixText(res *fix.Result) string {
	var sb strings.Builder

	verb := "Fixed"
	if res.DryRun {
		verb = "Would fix"
	}
	for _, c := range res.Changes {
		icon, style := iconSuccess, styleSuccess
		if !c.Modified {
			icon, style = iconInfo, styleDim
		}
		line(&sb, icon, style, "%s %s %s", verb, styleValue.Render(c.Dir),
			styleDim.Render("("+plural(c.Rewrites, "dependency", "dependencies")+")"))
		for _, e := range c.Edits {
			sb.WriteString("  " + styleDim.Render(fmt.Sprintf("%s %s %s %s", e.Name, e.From, iconArrow, e.To)) + "\n")
		}
		if c.Diff != "" {
			sb.WriteString(colorDiff(c.Diff))
		}
	}
	writeWarnings(&sb, res.Warnings)

	switch {
	case len(res.Changes) == 0:
		line(&sb, iconSuccess, styleSuccess, "Nothing to fix")
	case res.DryRun:
		line(&sb, iconInfo, styleDim, "Would rewrite %s in %s (dry run, no files written)",
			plural(res.Rewrites(), "dependency", "dependencies"), plural(len(res.Changes), "package", "packages"))
	default:
		line(&sb, iconSuccess, styleSuccess, "Rewrote %s in %s",
			plural(res.Rewrites(), "dependency", "dependencies"), plural(res.Modified(), "package", "packages"))
	}
	return sb.String()
}

func writeWarnings(sb *strings.Builder, warnings []scan.Warning) {
	for _, w := range warnings {
		line(sb, iconWarning, styleWarning, "%s", w.String())
	}
}

func colorDiff(diff string) string {
	var sb strings.Builder
	for _, l := range strings.SplitAfter(diff, "\n") {
		if l == "" {
			continue
		}
		switch {
		case strings.HasPrefix(l, "+++"), strings.HasPrefix(l, "---"):
			sb.WriteString(styleTitle.Render(strings.TrimSuffix(l, "\n")) + "\n")
		case strings.HasPrefix(l, "@@"):
			sb.WriteString(styleDiffHunk.Render(strings.TrimSuffix(l, "\n")) + "\n")
		case strings.HasPrefix(l, "+"):
			sb.WriteString(styleDiffAdd.Render(strings.TrimSuffix(l, "\n")) + "\n")
		case strings.HasPrefix(l, "-"):
			sb.WriteString(styleDiffDel.Render(strings.TrimSuffix(l, "\n")) + "\n")
		default:
			sb.WriteString(l)
		}
	}
	return sb.String()
}

// line writes "icon message" with the icon in style.
func line(sb *strings.Builder, icon string, style lipgloss.Style, format string, args ...any) {
	sb.WriteString(style.Render(icon) + " " + fmt.Sprintf(format, args...) + "\n")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
