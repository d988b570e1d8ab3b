package app

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/goccy/go-json"

	"github.com/specialistvlad/unitgridgo/internal/diagram"
)

func (a *App) render(report diagram.Report) error {
	if a.config.Output == OutputJSON {
		enc := json.NewEncoder(a.outW)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	return a.renderText(report)
}

// renderText writes one aligned row per node, followed by the cycle groups.
func (a *App) renderText(report diagram.Report) error {
	tw := tabwriter.NewWriter(a.outW, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tLABEL\tVALUE\tUNIT\tSTATUS")
	for _, r := range report.Rows {
		status := r.Error
		if status == "" {
			status = r.Message
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.ID, r.Label, r.Value, r.Unit, status)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	for _, grp := range report.Cycles {
		if _, err := fmt.Fprintf(a.outW, "cycle: %s\n", strings.Join(grp, " -> ")); err != nil {
			return err
		}
	}
	return nil
}
