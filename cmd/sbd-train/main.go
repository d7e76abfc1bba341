package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	sbd "github.com/jamesainslie/go-sbd"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	var (
		epochs    = flag.Int("epochs", 0, "Training epochs (0 uses the default)")
		seed      = flag.Uint64("seed", 0, "Shuffle seed (0 uses the default)")
		noShuffle = flag.Bool("no-shuffle", false, "Visit examples in corpus order")
		minFreq   = flag.Int("min-freq", 0, "Drop token features seen fewer times (0 uses the default)")
		lambda    = flag.Float64("lambda", 0, "Regularization strength (0 uses the default)")
		normalize = flag.Bool("nfc", false, "Normalize the corpus to NFC before training")
		verbose   = flag.Bool("v", false, "Log training progress")
		showVer   = flag.Bool("version", false, "Print version and exit")
	)
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: sbd-train [OPTIONS] TRAINING_FILE MODEL_FILE [WORD_CLASSES]")
		fmt.Fprintln(os.Stderr, "\nThe training file holds one sentence per line. The model file")
		fmt.Fprintln(os.Stderr, "extension picks the format: .pb for binary, .zst or .lz4 to compress.")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVer {
		fmt.Printf("sbd-train %s (%s, %s)\n", version, commit, date)
		return
	}

	args := flag.Args()
	if len(args) < 2 || len(args) > 3 {
		flag.Usage()
		os.Exit(1)
	}
	trainingPath, modelPath := args[0], args[1]
	var classesPath string
	if len(args) == 3 {
		classesPath = args[2]
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	opts := []sbd.TrainOption{
		sbd.WithTrainLogger(logger),
		sbd.WithEpochs(*epochs),
		sbd.WithShuffle(!*noShuffle),
		sbd.WithMinFeatureFrequency(*minFreq),
		sbd.WithLambda(*lambda),
		sbd.WithNormalization(*normalize),
	}
	if *seed != 0 {
		opts = append(opts, sbd.WithSeed(*seed))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m, err := sbd.TrainModel(ctx, trainingPath, classesPath, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error training model: %v\n", err)
		os.Exit(1)
	}

	if err := sbd.SaveModel(m, modelPath); err != nil {
		fmt.Fprintf(os.Stderr, "error saving model: %v\n", err)
		os.Exit(1)
	}

	logger.Info("model saved",
		"path", modelPath,
		"eos", string(m.EOSChars()),
		"tokens", m.NumTokens(),
		"classes", m.NumClasses(),
	)
}
