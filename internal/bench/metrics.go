package bench

import (
	"context"
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/sync/errgroup"

	sbd "github.com/jamesainslie/go-sbd"
)

// Config holds evaluation parameters.
type Config struct {
	Threshold       float64
	Tolerance       int // byte offset match tolerance; 0 compares token positions exactly
	PrecisionWeight float64
	RecallWeight    float64
	Parallelism     int // documents evaluated at once
}

// DefaultConfig returns default evaluation configuration.
func DefaultConfig() Config {
	return Config{
		PrecisionWeight: 1.0,
		RecallWeight:    1.0,
		Parallelism:     4,
	}
}

// Metrics holds evaluation results.
type Metrics struct {
	TruePositives  int
	FalsePositives int
	FalseNegatives int
	Precision      float64
	Recall         float64
	F1             float64
	Accuracy       float64 // tp / (tp + fp + fn)
	WeightedScore  float64
}

// NewMetrics derives the rates from raw counts.
func NewMetrics(tp, fp, fn int, cfg Config) Metrics {
	m := Metrics{
		TruePositives:  tp,
		FalsePositives: fp,
		FalseNegatives: fn,
	}

	if tp+fp > 0 {
		m.Precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		m.Recall = float64(tp) / float64(tp+fn)
	}
	if m.Precision+m.Recall > 0 {
		m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}
	if tp+fp+fn > 0 {
		m.Accuracy = float64(tp) / float64(tp+fp+fn)
	}

	wp := cfg.PrecisionWeight
	wr := cfg.RecallWeight
	if wp+wr > 0 {
		m.WeightedScore = (wp*m.Precision + wr*m.Recall) / (wp + wr)
	}

	return m
}

// Aggregate sums the counts of ms and recomputes the rates.
func Aggregate(ms []Metrics, cfg Config) Metrics {
	var tp, fp, fn int
	for _, m := range ms {
		tp += m.TruePositives
		fp += m.FalsePositives
		fn += m.FalseNegatives
	}
	return NewMetrics(tp, fp, fn, cfg)
}

// Evaluate compares predicted boundaries against ground truth.
// Uses greedy left-to-right matching within tolerance.
func Evaluate(predicted, truth []int, cfg Config) Metrics {
	matched := make([]bool, len(truth))
	tp := 0

	for _, p := range predicted {
		for i, t := range truth {
			if matched[i] {
				continue
			}
			diff := p - t
			if diff < 0 {
				diff = -diff
			}
			if diff <= cfg.Tolerance {
				matched[i] = true
				tp++
				break
			}
		}
	}

	return NewMetrics(tp, len(predicted)-tp, len(truth)-tp, cfg)
}

// Result is an exact evaluation with the positions that went wrong.
type Result struct {
	Metrics
	FalsePositiveList []int
	FalseNegativeList []int
}

// EvaluateExact compares boundary positions for equality.
func EvaluateExact(predicted, gold []int, cfg Config) Result {
	p, g := bitmapOf(predicted), bitmapOf(gold)
	tp := roaring.And(p, g).GetCardinality()
	fp := roaring.AndNot(p, g)
	fn := roaring.AndNot(g, p)

	return Result{
		Metrics:           NewMetrics(int(tp), int(fp.GetCardinality()), int(fn.GetCardinality()), cfg),
		FalsePositiveList: intsOf(fp),
		FalseNegativeList: intsOf(fn),
	}
}

func bitmapOf(positions []int) *roaring.Bitmap {
	b := roaring.New()
	for _, p := range positions {
		b.Add(uint32(p))
	}
	return b
}

func intsOf(b *roaring.Bitmap) []int {
	out := make([]int, 0, b.GetCardinality())
	it := b.Iterator()
	for it.HasNext() {
		out = append(out, int(it.Next()))
	}
	return out
}

// CompareTexts evaluates test against gold, two line-per-sentence renderings
// of the same text.
func CompareTexts(gold, test string, cfg Config) (Result, error) {
	if err := CheckTokens(gold, test); err != nil {
		return Result{}, err
	}
	return EvaluateExact(TokenBoundaries(test), TokenBoundaries(gold), cfg), nil
}

// EvaluateDocument segments doc with seg and scores the result.
func EvaluateDocument(ctx context.Context, seg *sbd.Segmenter, doc *Document, cfg Config) (Result, error) {
	_, ends, err := seg.SegmentWithBoundaries(ctx, doc.Text)
	if err != nil {
		return Result{}, fmt.Errorf("segmenting %s: %w", doc.ID, err)
	}

	if cfg.Tolerance > 0 {
		return Result{Metrics: Evaluate(ends, doc.Ends(), cfg)}, nil
	}
	predicted := SpanBoundaries(doc.Text, ends)
	gold := SpanBoundaries(doc.Text, doc.Ends())
	return EvaluateExact(predicted, gold, cfg), nil
}

// EvaluateCorpus evaluates every document, cfg.Parallelism at a time, and
// returns the aggregate metrics.
func EvaluateCorpus(ctx context.Context, seg *sbd.Segmenter, docs []*Document, cfg Config) (Metrics, error) {
	results := make([]Metrics, len(docs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.Parallelism, 1))
	for i, doc := range docs {
		g.Go(func() error {
			r, err := EvaluateDocument(ctx, seg, doc, cfg)
			if err != nil {
				return err
			}
			results[i] = r.Metrics
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Metrics{}, err
	}

	return Aggregate(results, cfg), nil
}
