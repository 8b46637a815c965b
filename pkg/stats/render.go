package stats

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("211"))
	countStyle   = lipgloss.NewStyle().Bold(true)
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	suggestStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

var titleCaser = cases.Title(language.English)

// Render writes a human-readable view of the snapshot.
func Render(w io.Writer, s *Snapshot) {
	fmt.Fprintln(w, titleStyle.Render("Project statistics"))
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Total issues:"), countStyle.Render(fmt.Sprint(s.Total)))
	fmt.Fprintf(w, "%s %s\n\n",
		labelStyle.Render("Completion:"),
		countStyle.Render(fmt.Sprintf("%.0f%%", s.CompletionRate()*100)),
	)

	renderCounts(w, "By status", s.ByStatus)
	renderCounts(w, "By priority", s.ByPriority)
	renderCounts(w, "By type", s.ByType)

	if len(s.Recent) > 0 {
		fmt.Fprintln(w, titleStyle.Render("Recently updated"))

		for _, issue := range s.Recent {
			fmt.Fprintf(w, "  %s %s %s\n",
				countStyle.Render(issue.ID),
				issue.Title,
				subtleStyle.Render(fmt.Sprintf("(%s, %s)", issue.Status, issue.UpdatedAt.Format("2006-01-02"))),
			)
		}

		fmt.Fprintln(w)
	}

	if suggestion := s.Suggestion(); suggestion != "" {
		fmt.Fprintln(w, suggestStyle.Render("Next: "+suggestion))
	}
}

func renderCounts(w io.Writer, title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}

	fmt.Fprintln(w, titleStyle.Render(title))

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	for _, k := range keys {
		label := titleCaser.String(strings.ReplaceAll(k, "_", " "))
		fmt.Fprintf(w, "  %s %s\n", labelStyle.Render(label+":"), countStyle.Render(fmt.Sprint(counts[k])))
	}

	fmt.Fprintln(w)
}
