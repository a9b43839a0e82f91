package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/blackcoderx/postman2md/pkg/convert"
	"github.com/blackcoderx/postman2md/pkg/storage"
)

// Minimal color palette
var (
	DimColor    = lipgloss.Color("#6c6c6c")
	TextColor   = lipgloss.Color("#e0e0e0")
	AccentColor = lipgloss.Color("#7aa2f7")
	WarnColor   = lipgloss.Color("#e0af68")
	ErrorColor  = lipgloss.Color("#f7768e")
	OKColor     = lipgloss.Color("#9ece6a")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(AccentColor).
			Bold(true)

	PageStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimColor)

	WarnStyle = lipgloss.NewStyle().
			Foreground(WarnColor)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	OKStyle = lipgloss.NewStyle().
		Foreground(OKColor)
)

// Line prefixes
const (
	PagePrefix  = "  + "
	StalePrefix = "  - "
	DriftPrefix = "  ~ "
)

// Summary describes a finished conversion run.
func Summary(res *convert.Result, dir string) string {
	var sb strings.Builder

	sb.WriteString(TitleStyle.Render(fmt.Sprintf("Generated %d page(s) in %s", len(res.Artifacts), dir)))
	sb.WriteString("\n")
	for _, a := range res.Artifacts {
		sb.WriteString(PageStyle.Render(PagePrefix + a.Name))
		sb.WriteString("\n")
	}

	if res.Warnings > 0 {
		sb.WriteString(WarnStyle.Render(fmt.Sprintf("%d warning(s), see log output", res.Warnings)))
		sb.WriteString("\n")
	}
	return sb.String()
}

// DriftReport describes the result of comparing generated pages with the ones on disk.
func DriftReport(drifts []storage.Drift, dir string) string {
	if len(drifts) == 0 {
		return OKStyle.Render("Pages in "+dir+" are up to date") + "\n"
	}

	var sb strings.Builder
	sb.WriteString(ErrorStyle.Render(fmt.Sprintf("%d page(s) in %s are out of date", len(drifts), dir)))
	sb.WriteString("\n")
	for _, d := range drifts {
		prefix := DriftPrefix
		if d.Stale {
			prefix = StalePrefix
		}
		sb.WriteString(PageStyle.Render(prefix + d.Name))
		sb.WriteString("\n")
	}
	for _, d := range drifts {
		sb.WriteString("\n")
		sb.WriteString(DimStyle.Render(d.Diff))
	}
	return sb.String()
}
