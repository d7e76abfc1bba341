// Package bench evaluates sentence boundary detection against gold
// corpora: documents with one sentence per line.
package bench

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Header contains metadata parsed from a gold document header.
type Header struct {
	Source string
	Title  string
}

// ParseHeader extracts metadata from "# Key: value" header comments.
// Returns the header, remaining text after header, and any error.
func ParseHeader(text string) (Header, string, error) {
	var h Header
	scanner := bufio.NewScanner(strings.NewReader(text))
	bodyStart := len(text)
	var lineEnd int

	for scanner.Scan() {
		line := scanner.Text()
		lineEnd += len(line) + 1 // +1 for newline

		if !strings.HasPrefix(line, "#") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			bodyStart = lineEnd - len(line) - 1
			break
		}

		line = strings.TrimPrefix(line, "# ")
		if value, ok := strings.CutPrefix(line, "Source:"); ok {
			h.Source = strings.TrimSpace(value)
		} else if value, ok := strings.CutPrefix(line, "Title:"); ok {
			h.Title = strings.TrimSpace(value)
		}
	}

	if err := scanner.Err(); err != nil {
		return Header{}, "", fmt.Errorf("scan header: %w", err)
	}

	if h.Source == "" {
		return Header{}, "", errors.New("missing Source in header")
	}

	return h, text[min(bodyStart, len(text)):], nil
}

// Sentence represents a gold sentence with byte offsets into the running
// text of its document.
type Sentence struct {
	Text  string
	Start int
	End   int
}

// ParseGold joins the non-blank lines of body into running text, one space
// between sentences, and returns the text with the sentence offsets.
func ParseGold(body string) (string, []Sentence) {
	var (
		b         strings.Builder
		sentences []Sentence
	)
	for line := range strings.Lines(body) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		start := b.Len()
		b.WriteString(line)
		sentences = append(sentences, Sentence{Text: line, Start: start, End: b.Len()})
	}
	return b.String(), sentences
}

// Document represents a loaded gold document.
type Document struct {
	ID        string // filename without extension
	Source    string
	Title     string
	Text      string // sentences joined into running text
	Sentences []Sentence
}

// Ends returns the byte offset where each gold sentence ends.
func (d *Document) Ends() []int {
	ends := make([]int, len(d.Sentences))
	for i, s := range d.Sentences {
		ends[i] = s.End
	}
	return ends
}

// LoadDocument loads and parses a gold document file.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	header, body, err := ParseHeader(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse header: %w", err)
	}

	base := filepath.Base(path)
	id := strings.TrimSuffix(base, filepath.Ext(base))
	text, sentences := ParseGold(body)

	return &Document{
		ID:        id,
		Source:    header.Source,
		Title:     header.Title,
		Text:      text,
		Sentences: sentences,
	}, nil
}

// LoadCorpus loads all .txt gold documents from a directory.
func LoadCorpus(dir string) ([]*Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	var docs []*Document
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if filepath.Ext(entry.Name()) != ".txt" {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		doc, err := LoadDocument(path)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", entry.Name(), err)
		}
		docs = append(docs, doc)
	}

	return docs, nil
}
