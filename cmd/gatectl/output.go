package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"gpark.dev/acs-admin/internal/admin/gate"
)

type resultJSON struct {
	DispatchID string `json:"dispatchId"`
	GateID     string `json:"gateId"`
	Status     int    `json:"status"`
	OK         bool   `json:"ok"`
	Body       string `json:"body,omitempty"`
	Error      string `json:"error,omitempty"`
}

func printJSON(w io.Writer, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
		return
	}
	fmt.Fprintln(w, string(data))
}

func printResultsJSON(w io.Writer, results []gate.Result) {
	out := make([]resultJSON, 0, len(results))
	for _, r := range results {
		item := resultJSON{
			DispatchID: r.DispatchID,
			GateID:     r.GateID,
			Status:     r.Status,
			OK:         r.OK(),
			Body:       r.Body,
		}
		if r.Err != nil {
			item.Error = r.Err.Text
		}
		out = append(out, item)
	}
	printJSON(w, out)
}

func printResultsTable(w io.Writer, results []gate.Result) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "GATE\tSTATUS\tRESULT")
	for _, r := range results {
		outcome := "ok"
		if r.Err != nil {
			outcome = gate.AlertMessage(r.Err)
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\n", r.GateID, r.Status, outcome)
	}
	tw.Flush()
}

func printPlatesJSON(w io.Writer, reports []plateReport) {
	printJSON(w, reports)
}

func printPlatesTable(w io.Writer, reports []plateReport) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "INPUT\tTYPE\tSLOT1\tSLOT2\tSLOT3\tREGION\tTHREE-DIGIT")
	for _, r := range reports {
		if r.Layout == nil {
			fmt.Fprintf(tw, "%s\t-\t\t\t\t\t%s\n", r.Input, r.Error)
			continue
		}
		l := r.Layout
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%t\n", r.Input, l.Type, l.Slot1, l.Slot2, l.Slot3, l.Region, l.ThreeDigit)
	}
	tw.Flush()
}
