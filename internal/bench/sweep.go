package bench

import (
	"cmp"
	"context"
	"slices"

	sbd "github.com/jamesainslie/go-sbd"
	"github.com/jamesainslie/go-sbd/model"
)

// SweepResult holds metrics for one threshold value.
type SweepResult struct {
	Threshold float64
	Metrics   Metrics
}

// SweepThresholds generates threshold values from min up to, but not
// including, max with given step.
func SweepThresholds(min, max, step float64) []float64 {
	var thresholds []float64
	if step <= 0 {
		return nil
	}
	for i := 0; ; i++ {
		t := min + float64(i)*step
		if t >= max {
			break
		}
		thresholds = append(thresholds, t)
	}
	return thresholds
}

// Sweep evaluates multiple thresholds and returns results sorted by
// weighted score, best first. opts are applied to every segmenter before
// the threshold.
func Sweep(ctx context.Context, docs []*Document, m *model.Model, opts []sbd.Option, cfg Config, thresholds []float64) ([]SweepResult, error) {
	var results []SweepResult

	for _, threshold := range thresholds {
		seg, err := sbd.NewFromModel(m, append(slices.Clip(opts), sbd.WithThreshold(threshold))...)
		if err != nil {
			return nil, err
		}

		cfg.Threshold = threshold
		agg, err := EvaluateCorpus(ctx, seg, docs, cfg)
		_ = seg.Close()
		if err != nil {
			return nil, err
		}

		results = append(results, SweepResult{
			Threshold: threshold,
			Metrics:   agg,
		})
	}

	slices.SortStableFunc(results, func(a, b SweepResult) int {
		return cmp.Compare(b.Metrics.WeightedScore, a.Metrics.WeightedScore)
	})

	return results, nil
}
