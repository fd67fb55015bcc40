package batch

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Summary renders the outcome of a run: a totals table plus, when anything
// failed, a table naming each failure.
func Summary(results []Result) string {
	succeeded := 0
	for _, r := range results {
		if r.Success {
			succeeded++
		}
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Total", "Succeeded", "Failed"})
	tw.AppendRow(table.Row{len(results), succeeded, len(results) - succeeded})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})

	out := tw.Render()

	if succeeded < len(results) {
		fw := table.NewWriter()
		fw.SetStyle(table.StyleRounded)
		fw.AppendHeader(table.Row{"File", "Error"})
		for _, r := range results {
			if !r.Success {
				fw.AppendRow(table.Row{r.Path, r.Error})
			}
		}
		out += "\n" + fw.Render()
	}

	return out
}
