package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds the lipgloss styles used by the terminal report.
type Styles struct {
	Title    lipgloss.Style
	Section  lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Good     lipgloss.Style
	Bad      lipgloss.Style
	Warn     lipgloss.Style
	Muted    lipgloss.Style
	Critical lipgloss.Style
}

// DefaultStyles returns the styles used by the CLI.
func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Section:  lipgloss.NewStyle().Bold(true).Underline(true),
		Label:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Value:    lipgloss.NewStyle(),
		Good:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Bad:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Warn:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Muted:    lipgloss.NewStyle().Faint(true),
		Critical: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
	}
}

// Render formats the report for a human reading a terminal.
func Render(r *Report, styles Styles) string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Offline dependency analysis"))
	b.WriteString("\n\n")

	writeLine := func(label, value string) {
		fmt.Fprintf(&b, "  %s %s\n", styles.Label.Render(label+":"), value)
	}
	writeLine("project", r.ProjectDir)
	writeLine("source repository", r.SourceRepo)
	writeLine("target repository", r.TargetRepo)
	if r.SettingsPath != "" {
		writeLine("offline settings", r.SettingsPath)
	}
	b.WriteString("\n")

	b.WriteString(styles.Section.Render("Summary"))
	b.WriteString("\n")
	writeLine("coordinates", fmt.Sprintf("%d", r.Stats.TotalCoordinates))
	writeLine("eligible for copy", fmt.Sprintf("%d", r.Stats.Eligible))
	writeLine("copied", styles.Good.Render(fmt.Sprintf("%d (%d files)",
		r.Stats.Copied, r.Stats.FilesCopied)))
	if r.Stats.Failed > 0 {
		writeLine("failed", styles.Bad.Render(fmt.Sprintf("%d", r.Stats.Failed)))
	} else {
		writeLine("failed", "0")
	}
	writeLine("omitted occurrences", fmt.Sprintf("%d", r.Stats.Omitted))
	if r.Stats.ParseWarnings > 0 {
		writeLine("parse warnings", styles.Warn.Render(fmt.Sprintf("%d", r.Stats.ParseWarnings)))
	}
	b.WriteString("\n")

	renderScopes(&b, r, styles)
	renderClassifications(&b, r, styles)
	renderVerification(&b, r, styles)

	return b.String()
}

func renderScopes(b *strings.Builder, r *Report, styles Styles) {
	if len(r.Scopes) == 0 {
		return
	}
	b.WriteString(styles.Section.Render("Scope distribution"))
	b.WriteString("\n")

	scopes := make([]string, 0, len(r.Scopes))
	for scope := range r.Scopes {
		scopes = append(scopes, scope)
	}
	sort.Strings(scopes)
	for _, scope := range scopes {
		fmt.Fprintf(b, "  %s %d\n", styles.Label.Render(scope+":"), r.Scopes[scope])
	}
	b.WriteString("\n")
}

func renderClassifications(b *strings.Builder, r *Report, styles Styles) {
	if len(r.Classifications) == 0 {
		return
	}
	b.WriteString(styles.Section.Render("Missing artifacts"))
	b.WriteString("\n")

	for _, c := range r.Classifications {
		category := styles.Muted.Render(c.Category.String())
		if c.Category.Critical() {
			category = styles.Critical.Render(c.Category.String())
		}
		fmt.Fprintf(b, "  %s %s\n", category, c.Coordinate.Key())
		fmt.Fprintf(b, "    %s\n", styles.Value.Render(c.Rationale))
		if c.SuggestedAction != "" {
			fmt.Fprintf(b, "    %s %s\n", styles.Label.Render("action:"), c.SuggestedAction)
		}
		if len(c.Chain) > 0 {
			fmt.Fprintf(b, "    %s %s\n",
				styles.Label.Render("via:"), strings.Join(c.Chain, " -> "))
		}
		if len(c.SimilarVersions) > 0 {
			fmt.Fprintf(b, "    %s %s\n",
				styles.Label.Render("locally available:"), strings.Join(c.SimilarVersions, ", "))
		}
	}
	b.WriteString("\n")
}

func renderVerification(b *strings.Builder, r *Report, styles Styles) {
	if r.Verification == nil || !r.Verification.Ran {
		return
	}
	b.WriteString(styles.Section.Render("Offline build verification"))
	b.WriteString("\n")

	status := func(passed bool) string {
		if passed {
			return styles.Good.Render("passed")
		}
		return styles.Bad.Render("failed")
	}
	fmt.Fprintf(b, "  %s %s\n", styles.Label.Render("compile:"), status(r.Verification.CompilePassed))
	fmt.Fprintf(b, "  %s %s\n", styles.Label.Render("package:"), status(r.Verification.PackagePassed))
	for _, artifact := range r.Verification.MissingMentioned {
		fmt.Fprintf(b, "    %s %s\n", styles.Warn.Render("missing:"), artifact)
	}
	b.WriteString("\n")
}
