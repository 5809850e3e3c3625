package cube

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"
)

func TestBenchmark(t *testing.T) {
	results, err := Benchmark(DefaultGeometry(), 3)
	if err != nil {
		t.Fatalf("Benchmark: %v", err)
	}
	if len(results) != len(BenchmarkGrids) {
		t.Fatalf("got %d results, want %d", len(results), len(BenchmarkGrids))
	}
	for i, res := range results {
		if res.Width != BenchmarkGrids[i][0] || res.Height != BenchmarkGrids[i][1] {
			t.Errorf("result %d is %dx%d", i, res.Width, res.Height)
		}
		if len(res.Durations) != 3 {
			t.Errorf("result %d has %d durations", i, len(res.Durations))
		}
		if math.IsNaN(res.Throughput) || math.IsInf(res.Throughput, 0) {
			t.Errorf("result %d throughput = %v", i, res.Throughput)
		}
		if res.Samples == 0 {
			t.Errorf("result %d took no samples", i)
		}
	}

	var buf bytes.Buffer
	PrintBenchmarkResults(&buf, results)
	if !strings.Contains(buf.String(), "160x44") {
		t.Errorf("table missing grid row:\n%s", buf.String())
	}

	if plot := PlotTickTimes(results[0], 5); !strings.Contains(plot, "tick time") {
		t.Errorf("plot missing caption:\n%s", plot)
	}
}

func TestBenchmarkRejectsZeroTicks(t *testing.T) {
	if _, err := Benchmark(DefaultGeometry(), 0); err == nil {
		t.Error("expected error for zero ticks")
	}
}

func TestThroughput(t *testing.T) {
	tests := []struct {
		name    string
		samples int
		total   time.Duration
		want    float64
	}{
		{"one second", 500, time.Second, 500},
		{"half second", 500, 500 * time.Millisecond, 1000},
		{"no elapsed time", 500, 0, 0},
		{"clock went backwards", 500, -time.Millisecond, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := throughput(tt.samples, tt.total); got != tt.want {
				t.Errorf("throughput(%d, %v) = %v, want %v", tt.samples, tt.total, got, tt.want)
			}
		})
	}
}
