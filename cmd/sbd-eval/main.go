package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mattn/go-runewidth"

	sbd "github.com/jamesainslie/go-sbd"
	"github.com/jamesainslie/go-sbd/internal/bench"
	"github.com/jamesainslie/go-sbd/model"
	"github.com/jamesainslie/go-sbd/segment"
)

const contextWidth = 24

func main() {
	var (
		modelPath  = flag.String("model", "", "Path to model file")
		corpusDir  = flag.String("corpus", "testdata/gold", "Directory containing gold documents")
		quoteSpec  = flag.String("quotes", "", "Quote pairs, e.g. '«»:20,():50'")
		eol        = flag.String("eol", "ignore", "Line break handling: ignore, single or multiple")
		threshold  = flag.Float64("threshold", 0, "Boundary score threshold")
		tolerance  = flag.Int("tolerance", 0, "Byte tolerance for boundary matching (0 compares tokens exactly)")
		wp         = flag.Float64("wp", 1.0, "Precision weight")
		wr         = flag.Float64("wr", 1.0, "Recall weight")
		jobs       = flag.Int("j", 4, "Documents evaluated in parallel")
		sweep      = flag.Bool("sweep", false, "Run threshold sweep")
		sweepMin   = flag.Float64("sweep-min", -1.0, "Sweep minimum threshold")
		sweepMax   = flag.Float64("sweep-max", 1.0, "Sweep maximum threshold")
		sweepStep  = flag.Float64("sweep-step", 0.1, "Sweep step size")
		models     = flag.String("models", "", "Comma-separated model paths for comparison")
		printFP    = flag.Bool("print-fp", false, "Print false positives when comparing files")
		printFN    = flag.Bool("print-fn", false, "Print false negatives when comparing files")
		printTotal = flag.Bool("print-total", true, "Print totals when comparing files")
	)
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: sbd-eval [OPTIONS] GOLD_FILE TEST_FILE")
		fmt.Fprintln(os.Stderr, "       sbd-eval -model MODEL [-corpus DIR] [OPTIONS]")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg := bench.Config{
		Threshold:       *threshold,
		Tolerance:       *tolerance,
		PrecisionWeight: *wp,
		RecallWeight:    *wr,
		Parallelism:     *jobs,
	}

	if flag.NArg() == 2 {
		compareFiles(flag.Arg(0), flag.Arg(1), cfg, *printFP, *printFN, *printTotal)
		return
	}

	if *modelPath == "" && *models == "" {
		fmt.Fprintln(os.Stderr, "error: GOLD_FILE TEST_FILE, -model or -models required")
		flag.Usage()
		os.Exit(1)
	}

	eolMode, err := segment.ParseEOLMode(*eol)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	opts := []sbd.Option{sbd.WithEOLMode(eolMode), sbd.WithQuotes(*quoteSpec)}

	// Load corpus
	docs, err := bench.LoadCorpus(*corpusDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading corpus: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %d documents from %s\n\n", len(docs), *corpusDir)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	thresholds := bench.SweepThresholds(*sweepMin, *sweepMax, *sweepStep)

	switch {
	case *models != "":
		runModelComparison(ctx, strings.Split(*models, ","), docs, opts, cfg, *sweep, thresholds)
	case *sweep:
		runSweep(ctx, *modelPath, docs, opts, cfg, thresholds)
	default:
		runSingle(ctx, *modelPath, docs, opts, cfg)
	}
}

func compareFiles(goldPath, testPath string, cfg bench.Config, printFP, printFN, printTotal bool) {
	gold, err := os.ReadFile(goldPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading gold file: %v\n", err)
		os.Exit(1)
	}
	test, err := os.ReadFile(testPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading test file: %v\n", err)
		os.Exit(1)
	}

	r, err := bench.CompareTexts(string(gold), string(test), cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if printFP {
		fmt.Println("False positives:")
		printContexts(string(test), r.FalsePositiveList)
	}
	if printFN {
		fmt.Println("False negatives:")
		printContexts(string(gold), r.FalseNegativeList)
	}
	if printTotal {
		printMetrics(r.Metrics)
	}
}

func printContexts(text string, positions []int) {
	for _, c := range bench.Contexts(text, positions) {
		prev := runewidth.Truncate(c.Prev, contextWidth, "…")
		cur := runewidth.Truncate(c.Cur, contextWidth, "…")
		fmt.Printf("  %s %s | %s\n",
			runewidth.FillLeft(prev, contextWidth),
			runewidth.FillLeft(cur, contextWidth),
			c.Next,
		)
	}
}

func runSingle(ctx context.Context, modelPath string, docs []*bench.Document, opts []sbd.Option, cfg bench.Config) {
	seg, err := sbd.New(modelPath, append(opts, sbd.WithThreshold(cfg.Threshold))...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error creating segmenter: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = seg.Close() }()

	m, err := bench.EvaluateCorpus(ctx, seg, docs, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error evaluating: %v\n", err)
		os.Exit(1)
	}

	printMetrics(m)
}

func runSweep(ctx context.Context, modelPath string, docs []*bench.Document, opts []sbd.Option, cfg bench.Config, thresholds []float64) {
	m, err := sbd.LoadModel(modelPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading model: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Threshold Sweep Results (wp=%.1f, wr=%.1f)\n", cfg.PrecisionWeight, cfg.RecallWeight)
	fmt.Println(strings.Repeat("-", 50))
	fmt.Printf("%-8s %-8s %-8s %-8s %-8s\n", "Thresh", "Prec", "Rec", "F1", "Weighted")

	results, err := bench.Sweep(ctx, docs, m, opts, cfg, thresholds)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error during sweep: %v\n", err)
		os.Exit(1)
	}

	// Print sorted by threshold for readability
	for _, t := range thresholds {
		for _, r := range results {
			if r.Threshold == t {
				fmt.Printf("%-8.3f %-8.2f %-8.2f %-8.2f %-8.2f\n",
					r.Threshold, r.Metrics.Precision, r.Metrics.Recall, r.Metrics.F1, r.Metrics.WeightedScore)
				break
			}
		}
	}

	fmt.Println(strings.Repeat("-", 50))
	if len(results) > 0 {
		best := results[0]
		fmt.Printf("Optimal: %.3f (Weighted: %.2f)\n", best.Threshold, best.Metrics.WeightedScore)
	}
}

func runModelComparison(ctx context.Context, modelPaths []string, docs []*bench.Document, opts []sbd.Option, cfg bench.Config, sweep bool, thresholds []float64) {
	fmt.Printf("Model Comparison (wp=%.1f, wr=%.1f)\n", cfg.PrecisionWeight, cfg.RecallWeight)
	fmt.Println(strings.Repeat("-", 60))
	fmt.Printf("%-30s %-8s %-8s %-8s\n", "Model", "Thresh", "F1", "Weighted")

	for _, modelPath := range modelPaths {
		m, err := sbd.LoadModel(modelPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error with %s: %v\n", modelPath, err)
			continue
		}

		bestThreshold := cfg.Threshold
		var bestMetrics bench.Metrics

		if sweep {
			results, err := bench.Sweep(ctx, docs, m, opts, cfg, thresholds)
			if err != nil {
				fmt.Fprintf(os.Stderr, "error with %s: %v\n", modelPath, err)
				continue
			}
			if len(results) > 0 {
				bestThreshold = results[0].Threshold
				bestMetrics = results[0].Metrics
			}
		} else {
			bestMetrics, err = evaluateModel(ctx, m, docs, opts, cfg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "error with %s: %v\n", modelPath, err)
				continue
			}
		}

		name := runewidth.Truncate(modelPath, 30, "…")
		fmt.Printf("%s %-8.3f %-8.2f %-8.2f\n", runewidth.FillRight(name, 30), bestThreshold, bestMetrics.F1, bestMetrics.WeightedScore)
	}
}

func evaluateModel(ctx context.Context, m *model.Model, docs []*bench.Document, opts []sbd.Option, cfg bench.Config) (bench.Metrics, error) {
	seg, err := sbd.NewFromModel(m, append(opts, sbd.WithThreshold(cfg.Threshold))...)
	if err != nil {
		return bench.Metrics{}, err
	}
	defer func() { _ = seg.Close() }()
	return bench.EvaluateCorpus(ctx, seg, docs, cfg)
}

func printMetrics(m bench.Metrics) {
	fmt.Printf("Precision: %.4f  Recall: %.4f  F1: %.4f  Accuracy: %.4f  Weighted: %.4f\n",
		m.Precision, m.Recall, m.F1, m.Accuracy, m.WeightedScore)
	fmt.Printf("(TP: %d, FP: %d, FN: %d)\n", m.TruePositives, m.FalsePositives, m.FalseNegatives)
}
