package main

import (
	"cmp"
	"fmt"
	"io"
	"math"
	"slices"
	"strings"

	"github.com/arloliu/polycode/format"
)

// topWinners is how many configurations the winner histogram lists.
const topWinners = 10

// PrintConfig prints the run parameters.
func PrintConfig(w io.Writer, cfg Config) {
	fmt.Fprintln(w, "Configuration:")
	fmt.Fprintf(w, "  Shapes:       %d\n", cfg.Shapes)
	fmt.Fprintf(w, "  Cells:        %d-%d\n", cfg.MinCells, cfg.MaxCells)
	fmt.Fprintf(w, "  Seed:         %d\n", cfg.Seed)
	fmt.Fprintf(w, "  Concurrency:  %d\n", cfg.Concurrency)
	fmt.Fprintf(w, "  Compression:  %s\n", cfg.Compression)
	fmt.Fprintln(w)
}

// PrintReport prints every section of a report.
func PrintReport(w io.Writer, r *Report) {
	printBuckets(w, r)
	printWinners(w, r)
	printModel(w, r)
	printStorage(w, r)
}

func printBuckets(w io.Writer, r *Report) {
	fmt.Fprintln(w, "=== Encoded Size by Cell Count ===")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-6s | %-6s | %-9s | %-5s | %-5s | %-10s\n", "Cells", "Shapes", "Avg Bytes", "Min", "Max", "Bits/Cell")
	fmt.Fprintln(w, strings.Repeat("-", 58))
	for _, b := range r.Buckets {
		fmt.Fprintf(w, "%-6d | %-6d | %-9.2f | %-5d | %-5d | %-10.3f\n",
			b.Cells, b.Count, b.AvgBytes(), b.MinBytes, b.MaxBytes, b.AvgBytes()*8/float64(b.Cells))
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  Total cells:      %s\n", formatNumber(r.TotalCells))
	fmt.Fprintf(w, "  Total bytes:      %s (%.3f bits/cell)\n", formatNumber(r.TotalBytes), bitsPerCell(r.TotalBytes, r.TotalCells))
	fmt.Fprintf(w, "  Without pruning:  %s (%.3f bits/cell)\n", formatNumber(r.NaiveBytes), bitsPerCell(r.NaiveBytes, r.TotalCells))
	fmt.Fprintf(w, "  Pruning savings:  %.1f%%\n", r.PruningSavings()*100)
	fmt.Fprintf(w, "  Fingerprint:      %016x\n", r.Fingerprint)
	fmt.Fprintln(w)
}

type winner struct {
	index uint8
	count int
}

// sortedWinners orders configurations by win count, then by index.
func sortedWinners(r *Report) []winner {
	out := make([]winner, 0, len(r.Winners))
	for idx, n := range r.Winners {
		out = append(out, winner{idx, n})
	}
	slices.SortFunc(out, func(a, b winner) int {
		if c := cmp.Compare(b.count, a.count); c != 0 {
			return c
		}

		return cmp.Compare(a.index, b.index)
	})

	return out
}

func printWinners(w io.Writer, r *Report) {
	winners := sortedWinners(r)

	fmt.Fprintf(w, "=== Winning Configurations (%d distinct) ===\n", len(winners))
	fmt.Fprintln(w)
	for _, wn := range winners[:min(topWinners, len(winners))] {
		fmt.Fprintf(w, "  %3d  %-40s %5d (%.1f%%)\n",
			wn.index, format.ConfigFromIndex(wn.index), wn.count, 100*float64(wn.count)/float64(r.Shapes))
	}
	fmt.Fprintln(w)
}

func printModel(w io.Writer, r *Report) {
	fmt.Fprintln(w, "=== Size Model ===")
	fmt.Fprintln(w)

	if r.Model == nil {
		fmt.Fprintln(w, "  Not enough distinct cell counts to fit a model.")
		fmt.Fprintln(w)

		return
	}

	best := r.Model.BestFit
	fmt.Fprintf(w, "  Best fit: %s\n", best.Type)
	fmt.Fprintf(w, "  Formula:  %s\n", best.Formula)
	fmt.Fprintf(w, "  R²:       %.4f (%s)\n", best.RSquared, classifyRSquared(best.RSquared))
	fmt.Fprintf(w, "  RMSE:     %.4f bytes/cell\n", best.RMSE)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "  Prediction accuracy:")
	counts := r.Model.CellCounts
	for _, i := range []int{0, len(counts) / 3, len(counts) * 2 / 3, len(counts) - 1} {
		n := float64(counts[i])
		actual := r.Model.BytesPerCell[i]
		predicted := best.Estimator.Estimate(n)
		fmt.Fprintf(w, "    %4d cells:  predicted %.3f, actual %.3f (%.1f%% error)\n",
			counts[i], predicted, actual, math.Abs(predicted-actual)/actual*100)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "  All fits:")
	for _, m := range r.Model.AllModels {
		fmt.Fprintf(w, "    %-12s  R²=%.4f  RMSE=%.4f\n", m.Type.String()+":", m.RSquared, m.RMSE)
	}
	fmt.Fprintln(w)
}

func printStorage(w io.Writer, r *Report) {
	fmt.Fprintln(w, "=== Storage ===")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s payload: %s -> %s bytes (ratio %.3f, %.1f%% saved)\n",
		r.Payload.Algorithm, formatNumber(int(r.Payload.OriginalSize)), formatNumber(int(r.Payload.CompressedSize)),
		r.Payload.Ratio(), r.Payload.SpaceSavings())
	if r.SetPath != "" {
		fmt.Fprintf(w, "  Shape set:  %s (%s bytes)\n", r.SetPath, formatNumber(r.SetSize))
	}
	fmt.Fprintln(w)
}

func bitsPerCell(bytes, cells int) float64 {
	if cells == 0 {
		return 0
	}

	return float64(bytes) * 8 / float64(cells)
}

func formatNumber(n int) string {
	s := fmt.Sprintf("%d", n)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	var sb strings.Builder
	for i, digit := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(digit)
	}

	if neg {
		return "-" + sb.String()
	}

	return sb.String()
}

func classifyRSquared(r2 float64) string {
	switch {
	case r2 >= 0.98:
		return "excellent fit"
	case r2 >= 0.95:
		return "very good fit"
	case r2 >= 0.90:
		return "good fit"
	case r2 >= 0.80:
		return "moderate fit"
	default:
		return "poor fit"
	}
}
