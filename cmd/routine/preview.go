package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/JonMunkholm/routine/internal/core"
)

// printPreview writes drafts as an aligned table followed by report counts,
// or as JSON.
func printPreview(w io.Writer, p core.Preview, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TITLE\tCATEGORY\tSTART\tEND\tDESCRIPTION")
	for _, d := range p.Drafts {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", d.Title, d.Category, d.StartTime, d.EndTime, d.Description)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\n%d accepted, %d rejected, %d lines skipped (%d rows read)\n",
		p.Report.Accepted, p.Report.Rejected, p.Report.SkippedLines, p.Report.TotalRows)
	return err
}
