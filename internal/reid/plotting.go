package reid

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// PlotQueryAPTerminal draws a horizontal bar per valid query, ascending by AP.
func PlotQueryAPTerminal(w io.Writer, ap APVector, valid ValidityMask, title string) {
	type QueryScore struct {
		QueryID int
		AP      float64
	}

	queryScores := make([]QueryScore, 0, len(ap))
	for i := range ap {
		if i < len(valid) && valid[i] {
			queryScores = append(queryScores, QueryScore{QueryID: i, AP: ap[i]})
		}
	}

	fmt.Fprintf(w, "\n%s (Terminal Plot - Ascending Order):\n", title)
	if len(queryScores) == 0 {
		fmt.Fprintln(w, "no valid queries")
		return
	}

	sort.SliceStable(queryScores, func(i, j int) bool {
		return queryScores[i].AP < queryScores[j].AP
	})

	fmt.Fprintln(w, "Query ID | AP       | Bar Chart")
	fmt.Fprintln(w, "---------|----------|"+strings.Repeat("-", 50))

	// AP already lives in [0,1], so bars share one absolute scale
	maxBarWidth := 50
	for _, qs := range queryScores {
		barWidth := int(qs.AP * float64(maxBarWidth))

		bar := strings.Repeat("█", barWidth)
		if barWidth == 0 {
			bar = "▏"
		}

		fmt.Fprintf(w, "%8d | %.6f | %s\n", qs.QueryID, qs.AP, bar)
	}

	fmt.Fprintf(w, "\nValid queries: %d of %d\n", len(queryScores), len(ap))
	fmt.Fprintf(w, "Bar width represents AP (0 to %d chars)\n", maxBarWidth)
}
