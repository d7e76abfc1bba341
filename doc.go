// Package sbd provides sentence boundary detection with a small linear
// classifier over token context.
//
// # Quick Start
//
//	seg, err := sbd.New("model.txt", sbd.WithQuotes("«»:200,\"\":20"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer seg.Close()
//
//	sentences, err := seg.Segment(ctx, "Dr. Smith went home. He left early.")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Training
//
// Models are trained from text with one sentence per line, optionally with
// a word class file of "name: token token ..." lines:
//
//	m, err := sbd.TrainModel(ctx, "train.txt", "classes.txt")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = sbd.SaveModel(m, "model.txt.zst")
//
// # Model Files
//
// A ".pb" extension selects the binary encoding, anything else the text
// format. A trailing ".zst" or ".lz4" compresses the file; compression is
// detected from the contents on load.
//
// # Thread Safety
//
// A loaded model is immutable. Segmenter is safe for concurrent use and
// runs at most WithPoolSize segmentations at once.
package sbd
