package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/kaitj/nmind-proceedings/checklist"
	"github.com/kaitj/nmind-proceedings/contract"
	"github.com/kaitj/nmind-proceedings/search"
)

var (
	headingStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	labelStyle    = lipgloss.NewStyle().Faint(true)
	completeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	partialStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderListings(w io.Writer, listings []search.Listing) {
	if len(listings) == 0 {
		fmt.Fprintln(w, "No libraries match.")
		return
	}
	for _, l := range listings {
		fmt.Fprintln(w, headingStyle.Render(l.Name))
		if len(l.Tags) > 0 {
			fmt.Fprintf(w, "  %s %s\n", labelStyle.Render("tags:"), strings.Join(l.Tags, ", "))
		}
		if l.LastEvaluated != "" {
			fmt.Fprintf(w, "  %s %s\n", labelStyle.Render("last evaluated:"), l.LastEvaluated)
		}
		if len(l.CompletedTiers) > 0 {
			fmt.Fprintf(w, "  %s %s\n", labelStyle.Render("completed:"), completeStyle.Render(strings.Join(l.CompletedTiers, ", ")))
		}
	}
	fmt.Fprintf(w, "\n%d libraries\n", len(listings))
}

// renderMarkdown renders s for the terminal, falling back to the raw text.
func renderMarkdown(s string) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return s
	}
	out, err := r.Render(s)
	if err != nil {
		return s
	}
	return out
}

func renderSummary(w io.Writer, sum *checklist.Summary) {
	fmt.Fprintln(w, headingStyle.Render(sum.Name))
	if sum.Description != "" {
		fmt.Fprint(w, renderMarkdown(sum.Description))
	}
	if len(sum.Tags) > 0 {
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Tags:"), strings.Join(sum.Tags, ", "))
	}
	if len(sum.URLs) > 0 {
		fmt.Fprintln(w, labelStyle.Render("Links:"))
		for _, u := range sum.URLs {
			fmt.Fprintf(w, "  %-14s %s\n", u.Text, u.URL)
		}
	}

	if sum.Date == "" {
		fmt.Fprintf(w, "\n%s\n", "Not yet evaluated.")
		return
	}
	fmt.Fprintf(w, "\nEvaluations: %d (most recent %s, schema v%d)\n", sum.EvaluationCount, sum.Date, sum.SchemaVersion)
	if len(sum.History) > 1 {
		dates := make([]string, 0, len(sum.History))
		for _, h := range sum.History {
			dates = append(dates, fmt.Sprintf("%s (v%d)", h.Date, h.SchemaVersion))
		}
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("History:"), strings.Join(dates, ", "))
	}

	for _, st := range sum.SectionTiers {
		score := partialStyle.Render(fmt.Sprintf("%s  %3d%%", st.Score, st.Score.Percent()))
		if st.Score.Complete() {
			score = completeStyle.Render(fmt.Sprintf("%s  %3d%%  complete", st.Score, st.Score.Percent()))
		}
		fmt.Fprintf(w, "\n%-24s %s\n", st.Token(), score)
		for _, item := range st.Items {
			mark := "[ ]"
			if item.Value {
				mark = "[x]"
			}
			fmt.Fprintf(w, "  %s %s\n", mark, item.Prompt)
		}
	}
}

func renderSchema(w io.Writer, schema *contract.EvaluationSchema) {
	fmt.Fprintln(w, headingStyle.Render(fmt.Sprintf("Schema version %d", schema.Version())))
	for _, item := range schema.Items {
		fmt.Fprintf(w, "  %-8s %s\n", item.ID, item.Prompt)
	}
}
