package tui

import (
	"fmt"
	"strings"

	btable "github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/joseph-ayodele/docsheet/constants"
	"github.com/joseph-ayodele/docsheet/internal/common"
	"github.com/joseph-ayodele/docsheet/internal/pipeline"
)

type resultView struct {
	cached  bool
	saved   *pipeline.Saved
	err     error
	preview string
}

func renderInput(st Styles, input string, err error) string {
	var b strings.Builder
	b.WriteString(st.Title.Render("docsheet: PDF to structured Excel"))
	b.WriteString("\n\n")
	b.WriteString(input)
	b.WriteString("\n\n")
	if err != nil {
		b.WriteString(st.Error.Render(common.UserMessage(err)))
		b.WriteString("\n\n")
	}
	b.WriteString(st.Muted.Render("enter: run  esc: quit"))
	b.WriteString("\n")
	return b.String()
}

func renderResult(st Styles, res *pipeline.RunResult, v resultView) string {
	if res == nil {
		return ""
	}
	var b strings.Builder
	score := res.Score

	banner := st.Score.Background(gradeColor(score.Grade)).
		Render(fmt.Sprintf("%d/%d  Grade %s", score.Total, score.Max, score.Grade))
	b.WriteString(st.Title.Render(res.SourcePath))
	if v.cached {
		b.WriteString(st.Muted.Render("  (cached)"))
	}
	b.WriteString("\n\n")
	b.WriteString(banner)
	b.WriteString("  ")
	b.WriteString(score.Feedback)
	b.WriteString("\n\n")

	var checks strings.Builder
	checks.WriteString(st.Header.Render("Breakdown"))
	checks.WriteString("\n")
	for _, c := range score.Checks() {
		checks.WriteString(st.Label.Render(c.Name))
		checks.WriteString(fmt.Sprintf("%2d/%d\n", c.Score, c.Max))
	}
	checks.WriteString(st.Label.Render("Weighted overall"))
	checks.WriteString(fmt.Sprintf("%.1f%% (%s)\n", res.Weighted.Overall, res.Weighted.Grade))

	var stats strings.Builder
	stats.WriteString(st.Header.Render("Stats"))
	stats.WriteString("\n")
	stats.WriteString(st.Label.Render("Total fields"))
	stats.WriteString(fmt.Sprintf("%d\n", res.Stats.Records))
	stats.WriteString(st.Label.Render("Unique keys"))
	stats.WriteString(fmt.Sprintf("%d\n", res.Stats.UniqueKeys))
	stats.WriteString(st.Label.Render("With comments"))
	stats.WriteString(fmt.Sprintf("%d\n", res.Stats.WithComments))
	stats.WriteString(st.Label.Render("Number coverage"))
	stats.WriteString(fmt.Sprintf("%.1f%%\n", score.NumberCoverage.Percent))
	stats.WriteString(st.Label.Render("Entity coverage"))
	stats.WriteString(fmt.Sprintf("%.1f%%\n", score.WordCoverage.Percent))

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		st.Box.Render(strings.TrimRight(checks.String(), "\n")),
		" ",
		st.Box.Render(strings.TrimRight(stats.String(), "\n")),
	))
	b.WriteString("\n\n")

	if len(score.Recommendations) > 0 {
		b.WriteString(st.Header.Render("Recommendations"))
		b.WriteString("\n")
		for _, r := range score.Recommendations {
			b.WriteString("  - " + r + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(v.preview)
	b.WriteString("\n\n")

	switch {
	case v.err != nil:
		b.WriteString(st.Error.Render(common.UserMessage(v.err)))
		b.WriteString("\n")
	case v.saved != nil:
		b.WriteString(st.Success.Render("Saved " + v.saved.XLSX))
		if v.saved.Report != "" {
			b.WriteString(st.Success.Render(" and " + v.saved.Report))
		}
		b.WriteString("\n")
	}
	b.WriteString(st.Muted.Render("s: save  n: new document  q: quit"))
	b.WriteString("\n")
	return b.String()
}

// newPreview shows the first rows of the run's table.
func newPreview(res *pipeline.RunResult, height int) btable.Model {
	cols := []btable.Column{
		{Title: constants.ColumnNumber, Width: 4},
		{Title: constants.ColumnKey, Width: 28},
		{Title: constants.ColumnValue, Width: 28},
		{Title: constants.ColumnComment, Width: 32},
	}
	var rows []btable.Row
	if res != nil && res.Table != nil {
		for _, r := range res.Table.Rows {
			rows = append(rows, btable.Row{fmt.Sprint(r.Number), r.Key, r.Value, r.Comment})
		}
	}
	if height > len(rows) {
		height = len(rows)
	}
	return btable.New(
		btable.WithColumns(cols),
		btable.WithRows(rows),
		btable.WithHeight(height+1), // header row
		btable.WithWidth(100),
		btable.WithFocused(true),
	)
}
