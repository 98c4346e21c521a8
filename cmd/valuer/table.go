package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/gregtusar/exotics/pkg/models"
)

const tableWidth = 65

// printReport renders the payoff / P&L table. Failed rows show their error
// in place of the amounts.
func printReport(w io.Writer, report *models.Report) error {
	rule := strings.Repeat("=", tableWidth)

	var b strings.Builder
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "PATH   : %v\n", report.Path)
	fmt.Fprintf(&b, "REPORT : %s\n", report.ID)
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "%-28s | %10s | %10s\n", "CONTRACT", "PAYOFF", "NET P&L")
	fmt.Fprintln(&b, strings.Repeat("-", tableWidth))

	for _, v := range report.Valuations {
		if v.Failed() {
			fmt.Fprintf(&b, "%-28s | ERROR: %s\n", v.Name, v.Error)
			continue
		}
		fmt.Fprintf(&b, "%-28s | %10s | %10s\n", v.Name, v.Payoff.StringFixed(2), v.NetResult.StringFixed(2))
	}

	fmt.Fprintln(&b, strings.Repeat("-", tableWidth))
	fmt.Fprintf(&b, "%-28s | %10s | %10s\n", fmt.Sprintf("TOTAL (%d failed)", report.Failed), "", report.TotalNet().StringFixed(2))
	fmt.Fprintln(&b, rule)

	_, err := io.WriteString(w, b.String())
	return err
}
