// =======================
// cube/benchmarks.go
// =======================

package cube

import (
	"fmt"
	"io"
	"time"

	"github.com/guptarohit/asciigraph"
)

// BenchmarkInfo holds performance metrics for one grid size
type BenchmarkInfo struct {
	Width      int             `json:"width"`
	Height     int             `json:"height"`
	Ticks      int             `json:"ticks"`
	TickTime   time.Duration   `json:"tick_time"`
	Samples    int             `json:"samples_per_tick"`
	Written    int             `json:"written_per_tick"`
	Throughput float64         `json:"samples_per_second"`
	Durations  []time.Duration `json:"-"`
}

// BenchmarkGrids are the grid sizes measured by Benchmark.
var BenchmarkGrids = [][2]int{{40, 20}, {60, 60}, {80, 40}, {160, 44}}

// Benchmark runs ticks frames on each grid of BenchmarkGrids, starting from
// base and overriding only the grid dimensions.
func Benchmark(base Geometry, ticks int) ([]BenchmarkInfo, error) {
	if ticks <= 0 {
		return nil, fmt.Errorf("benchmark needs at least one tick, got %d", ticks)
	}

	results := make([]BenchmarkInfo, 0, len(BenchmarkGrids))
	for _, grid := range BenchmarkGrids {
		g := base
		g.Width, g.Height = grid[0], grid[1]
		r := NewRenderer(g)

		var rot Rotation
		durations := make([]time.Duration, 0, ticks)
		start := time.Now()
		for i := 0; i < ticks; i++ {
			t0 := time.Now()
			rot, _ = r.Tick(rot)
			durations = append(durations, time.Since(t0))
		}
		total := time.Since(start)

		st := r.Stats()
		results = append(results, BenchmarkInfo{
			Width:      g.Width,
			Height:     g.Height,
			Ticks:      ticks,
			TickTime:   total / time.Duration(ticks),
			Samples:    st.Samples,
			Written:    st.Written,
			Throughput: throughput(st.Samples*ticks, total),
			Durations:  durations,
		})
	}

	return results, nil
}

// throughput is samples per second, or 0 when the clock saw no time pass.
func throughput(samples int, total time.Duration) float64 {
	if total <= 0 {
		return 0
	}
	return float64(samples) / total.Seconds()
}

// PrintBenchmarkResults displays benchmark results in a formatted table
func PrintBenchmarkResults(w io.Writer, results []BenchmarkInfo) {
	fmt.Fprintln(w, "Cube Renderer Benchmark Results")
	fmt.Fprintln(w, "===============================")
	fmt.Fprintf(w, "%-9s | %-12s | %-8s | %-8s | %-15s\n",
		"Grid", "Time/Tick", "Samples", "Written", "Samples/s")
	fmt.Fprintln(w, "----------|--------------|----------|----------|----------------")

	for _, result := range results {
		fmt.Fprintf(w, "%-9s | %-12s | %-8d | %-8d | %-15.0f\n",
			fmt.Sprintf("%dx%d", result.Width, result.Height),
			result.TickTime.String(),
			result.Samples,
			result.Written,
			result.Throughput)
	}
}

// PlotTickTimes renders the per-tick durations of one result in
// microseconds as an ASCII line chart.
func PlotTickTimes(result BenchmarkInfo, height int) string {
	if len(result.Durations) == 0 {
		return ""
	}
	data := make([]float64, len(result.Durations))
	for i, d := range result.Durations {
		data[i] = float64(d.Microseconds())
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Caption(fmt.Sprintf("tick time (µs), %dx%d", result.Width, result.Height)),
	)
}
