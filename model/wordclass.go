package model

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// WordClass is a named set of tokens that share a learned weight.
type WordClass struct {
	Name   string
	Tokens []string
}

// ParseWordClasses reads lines of the form
//
//	title: Mr Mrs Dr Prof
//
// Lines with fewer than two fields are ignored. Class bits are assigned in
// file order.
func ParseWordClasses(r io.Reader) ([]WordClass, error) {
	var classes []WordClass
	seen := make(map[string]bool)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		cols := fields(sc.Text())
		if len(cols) < 2 {
			continue
		}
		name := cols[0]
		if len(name) < 2 || !strings.HasSuffix(name, ":") {
			return nil, fmt.Errorf("%w: line %d: expected \"class: word1 word2 ...\"", ErrInvalidWordClasses, lineNo)
		}
		if seen[name] {
			return nil, fmt.Errorf("%w: line %d: %s", ErrDuplicateWordClass, lineNo, strings.TrimSuffix(name, ":"))
		}
		if len(classes) == MaxWordClasses {
			return nil, fmt.Errorf("%w: more than %d", ErrTooManyWordClasses, MaxWordClasses)
		}
		seen[name] = true
		classes = append(classes, WordClass{
			Name:   strings.TrimSuffix(name, ":"),
			Tokens: cols[1:],
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading word classes: %w", err)
	}
	return classes, nil
}
