package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/joho/godotenv"

	sbd "github.com/jamesainslie/go-sbd"
	"github.com/jamesainslie/go-sbd/segment"
)

func main() {
	_ = godotenv.Load(".env")

	var (
		modelPath   = flag.String("model", os.Getenv("SBD_MODEL"), "Path to model file (env SBD_MODEL)")
		quoteSpec   = flag.String("quotes", os.Getenv("SBD_QUOTES"), "Quote pairs, e.g. '«»:20,():50' (env SBD_QUOTES)")
		eol         = flag.String("eol", envOr("SBD_EOL", "multiple"), "Line break handling: ignore, single or multiple (env SBD_EOL)")
		threshold   = flag.Float64("threshold", 0, "Boundary score threshold")
		mode        = flag.String("mode", "split", "Mode: split or complete")
		interactive = flag.Bool("i", false, "Read lines interactively")
	)
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: sbd-split -model MODEL [OPTIONS] [FILE]")
		fmt.Fprintln(os.Stderr, "\nReads FILE, or standard input when FILE is absent or \"-\",")
		fmt.Fprintln(os.Stderr, "and writes one sentence per line.")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *modelPath == "" {
		fmt.Fprintln(os.Stderr, "error: -model required")
		flag.Usage()
		os.Exit(1)
	}

	eolMode, err := segment.ParseEOLMode(*eol)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	seg, err := sbd.New(*modelPath,
		sbd.WithThreshold(*threshold),
		sbd.WithEOLMode(eolMode),
		sbd.WithQuotes(*quoteSpec),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error creating segmenter: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = seg.Close() }() // Cleanup error ignored in CLI

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	run := split
	switch *mode {
	case "split":
	case "complete":
		run = complete
	default:
		fmt.Fprintf(os.Stderr, "Unknown mode: %s\n", *mode)
		os.Exit(1)
	}

	if *interactive {
		if err := repl(ctx, seg, run); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	text, err := readInput(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading input: %v\n", err)
		os.Exit(1)
	}

	out := bufio.NewWriter(os.Stdout)
	err = run(ctx, seg, text, out)
	if ferr := out.Flush(); err == nil {
		err = ferr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type runFunc func(ctx context.Context, seg *sbd.Segmenter, text string, w io.Writer) error

func split(ctx context.Context, seg *sbd.Segmenter, text string, w io.Writer) error {
	sentences, err := seg.Segment(ctx, text)
	if err != nil {
		return err
	}
	for _, s := range sentences {
		fmt.Fprintln(w, strings.Join(strings.Fields(s), " "))
	}
	fmt.Fprintf(os.Stderr, "%d sentences\n", len(sentences))
	return nil
}

func complete(ctx context.Context, seg *sbd.Segmenter, text string, w io.Writer) error {
	ok, confidence, err := seg.IsComplete(ctx, text)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Complete: %v\n", ok)
	fmt.Fprintf(w, "Confidence: %.4f\n", confidence)
	return nil
}

func readInput(path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}

func repl(ctx context.Context, seg *sbd.Segmenter, run runFunc) error {
	cfg := &readline.Config{
		Prompt:          "sbd> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	}
	if dir, err := os.UserCacheDir(); err == nil {
		if err := os.MkdirAll(filepath.Join(dir, "sbd"), 0o755); err == nil {
			cfg.HistoryFile = filepath.Join(dir, "sbd", "history")
		}
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = rl.Close() }()

	for ctx.Err() == nil {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if line == "" {
				return nil
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}
		if err := run(ctx, seg, line, rl.Stdout()); err != nil {
			fmt.Fprintf(rl.Stderr(), "error: %v\n", err)
		}
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
