//go:build ignore

// Process UD English Web Treebank CoNLL-U files into training and gold data.
// The train split becomes testdata/train.txt, one sentence per line. Every
// document of the dev and test splits becomes a gold file under
// testdata/gold with a "# Source:" header.
// Usage: go run ./scripts/process-ud-ewt.go
package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const source = "https://github.com/UniversalDependencies/UD_English-EWT"

// document is one "# newdoc" section of a CoNLL-U file.
type document struct {
	ID        string
	Sentences []string
}

func main() {
	inDir := "testdata/ud-ewt"
	goldDir := "testdata/gold"

	fmt.Println("Processing train...")
	docs, err := processCoNLLU(filepath.Join(inDir, "en_ewt-ud-train.conllu"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error processing train: %v\n", err)
		os.Exit(1)
	}
	n, err := writeTraining("testdata/train.txt", docs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing training file: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("  -> testdata/train.txt (%d sentences)\n", n)

	if err := os.MkdirAll(goldDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", goldDir, err)
		os.Exit(1)
	}

	for _, split := range []string{"dev", "test"} {
		inFile := filepath.Join(inDir, fmt.Sprintf("en_ewt-ud-%s.conllu", split))

		fmt.Printf("Processing %s...\n", split)
		docs, err := processCoNLLU(inFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", inFile, err)
			continue
		}

		for _, doc := range docs {
			outFile := filepath.Join(goldDir, fmt.Sprintf("%s-%s.txt", split, sanitize(doc.ID)))
			if err := writeGold(outFile, split, doc); err != nil {
				fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", outFile, err)
			}
		}
		fmt.Printf("  -> %s (%d documents)\n", goldDir, len(docs))
	}

	fmt.Println("\nDone!")
}

func processCoNLLU(path string) ([]document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	var (
		docs       []document
		currentTxt string
	)

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()

		if id, ok := strings.CutPrefix(line, "# newdoc id = "); ok {
			docs = append(docs, document{ID: id})
			continue
		}

		// Metadata line with sentence text
		if txt, ok := strings.CutPrefix(line, "# text = "); ok {
			currentTxt = txt
			continue
		}

		// Blank line = end of sentence
		if line == "" && currentTxt != "" {
			docs = addSentence(docs, currentTxt)
			currentTxt = ""
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning file: %w", err)
	}

	// Don't forget last sentence if no trailing blank
	if currentTxt != "" {
		docs = addSentence(docs, currentTxt)
	}

	return docs, nil
}

func addSentence(docs []document, sentence string) []document {
	if len(docs) == 0 {
		docs = append(docs, document{ID: "untitled"})
	}
	last := &docs[len(docs)-1]
	last.Sentences = append(last.Sentences, sentence)
	return docs
}

func writeTraining(path string, docs []document) (int, error) {
	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	n := 0
	for _, doc := range docs {
		for _, s := range doc.Sentences {
			fmt.Fprintln(w, s)
			n++
		}
	}
	return n, w.Flush()
}

func writeGold(path, split string, doc document) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	fmt.Fprintf(w, "# Source: %s\n", source)
	fmt.Fprintf(w, "# Title: %s %s\n\n", split, doc.ID)
	for _, s := range doc.Sentences {
		fmt.Fprintln(w, s)
	}
	return w.Flush()
}

func sanitize(id string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ' ', ':':
			return '_'
		}
		return r
	}, id)
}
