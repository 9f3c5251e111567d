package main

import (
	"github.com/spf13/cobra"

	"gpark.dev/acs-admin/internal/admin/plate"
)

type plateReport struct {
	Input  string        `json:"input"`
	Value  string        `json:"value,omitempty"`
	Layout *plate.Layout `json:"layout,omitempty"`
	Error  string        `json:"error,omitempty"`
}

var plateCmd = &cobra.Command{
	Use:   "plate <plate>...",
	Short: "Parse license plates and show their widget layout",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reports := make([]plateReport, 0, len(args))
		for _, raw := range args {
			reports = append(reports, describePlate(raw))
		}
		if jsonOutput {
			printPlatesJSON(cmd.OutOrStdout(), reports)
		} else {
			printPlatesTable(cmd.OutOrStdout(), reports)
		}
		return nil
	},
}

func describePlate(raw string) plateReport {
	report := plateReport{Input: raw}
	t, parts, err := plate.Parse(raw)
	if err != nil {
		report.Error = err.Error()
		return report
	}
	layout, err := plate.ComputeLayout(t, parts)
	if err != nil {
		report.Error = err.Error()
		return report
	}
	report.Value = plate.FormatValue(t, parts)
	report.Layout = &layout
	return report
}
