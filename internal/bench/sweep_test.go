package bench

import (
	"context"
	"testing"

	sbd "github.com/jamesainslie/go-sbd"
)

func TestSweepThresholds(t *testing.T) {
	thresholds := SweepThresholds(0.01, 0.1, 0.02)

	want := []float64{0.01, 0.03, 0.05, 0.07, 0.09}
	if len(thresholds) != len(want) {
		t.Errorf("got %d thresholds, want %d", len(thresholds), len(want))
		t.Logf("got: %v", thresholds)
		return
	}

	for i := range want {
		diff := thresholds[i] - want[i]
		if diff < -0.001 || diff > 0.001 {
			t.Errorf("threshold[%d] = %v, want %v", i, thresholds[i], want[i])
		}
	}
}

func TestSweepThresholds_InvalidStep(t *testing.T) {
	if got := SweepThresholds(0, 1, 0); got != nil {
		t.Errorf("SweepThresholds(step=0) = %v, want nil", got)
	}
}

func TestSweep(t *testing.T) {
	docs := []*Document{goldDocument("a", "A b.\nC d.\n")}

	results, err := Sweep(context.Background(), docs, loadPeriodModel(t), []sbd.Option{quiet()}, DefaultConfig(), []float64{2, 0})
	if err != nil {
		t.Fatalf("Sweep() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}

	best, worst := results[0], results[1]
	if best.Threshold != 0 {
		t.Errorf("best threshold = %v, want 0", best.Threshold)
	}
	if best.Metrics.WeightedScore != 1 {
		t.Errorf("best weighted score = %v, want 1", best.Metrics.WeightedScore)
	}
	// Above the model's score only the end of the text is a boundary.
	if worst.Metrics.TruePositives != 1 || worst.Metrics.FalseNegatives != 1 {
		t.Errorf("threshold 2: TP=%d FN=%d, want 1/1", worst.Metrics.TruePositives, worst.Metrics.FalseNegatives)
	}
}
