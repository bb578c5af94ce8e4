package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sells-group/osint-cli/internal/report"
)

var showCmd = &cobra.Command{
	Use:   "show <report.xlsx>",
	Short: "Print the summary and sheet sizes of a saved report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sheets, err := report.Read(args[0])
		if err != nil {
			return err
		}
		fields, err := report.Summary(sheets)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, f := range fields {
			fmt.Fprintf(out, "%-14s %s\n", f[0]+":", f[1])
		}
		for _, s := range sheets {
			if s.Name == report.SheetSummary {
				continue
			}
			fmt.Fprintf(out, "%s: %d rows\n", s.Name, s.DataRows())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
