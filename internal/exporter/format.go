package exporter

import "fmt"

// formatScore renders a possibly-missing score for a CSV cell: two
// decimal places when present, blank when missing. A blank cell
// round-trips through ingest as missing again.
func formatScore(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *v)
}
