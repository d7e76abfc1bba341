package bench

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestParseHeader(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     Header
		wantBody string
		wantErr  bool
	}{
		{
			name: "valid header",
			input: `# Source: en_ewt-ud-test
# Title: Weblog

Hello world.`,
			want: Header{
				Source: "en_ewt-ud-test",
				Title:  "Weblog",
			},
			wantBody: "Hello world.",
		},
		{
			name:     "unknown keys ignored",
			input:    "# Source: s\n# Genre: news\nBody.\n",
			want:     Header{Source: "s"},
			wantBody: "Body.\n",
		},
		{
			name:  "header only",
			input: "# Source: s\n",
			want:  Header{Source: "s"},
		},
		{
			name: "missing source",
			input: `# Title: Weblog

Hello.`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, body, err := ParseHeader(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseHeader() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}
			if got != tt.want {
				t.Errorf("ParseHeader() header = %+v, want %+v", got, tt.want)
			}
			if body != tt.wantBody {
				t.Errorf("ParseHeader() body = %q, want %q", body, tt.wantBody)
			}
		})
	}
}

func TestParseGold(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantText string
		want     []Sentence
	}{
		{
			name:     "one sentence per line",
			input:    "Hello world.\nHow are you?\n",
			wantText: "Hello world. How are you?",
			want: []Sentence{
				{Text: "Hello world.", Start: 0, End: 12},
				{Text: "How are you?", Start: 13, End: 25},
			},
		},
		{
			name:     "blank lines and padding dropped",
			input:    "\n  First.  \n\n\tSecond.\r\n",
			wantText: "First. Second.",
			want: []Sentence{
				{Text: "First.", Start: 0, End: 6},
				{Text: "Second.", Start: 7, End: 14},
			},
		},
		{
			name:     "no trailing newline",
			input:    "Only one",
			wantText: "Only one",
			want:     []Sentence{{Text: "Only one", Start: 0, End: 8}},
		},
		{
			name:  "empty",
			input: "\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, got := ParseGold(tt.input)
			if text != tt.wantText {
				t.Errorf("ParseGold() text = %q, want %q", text, tt.wantText)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseGold() sentences = %+v, want %+v", got, tt.want)
			}
			for _, s := range got {
				if text[s.Start:s.End] != s.Text {
					t.Errorf("offsets [%d,%d) give %q, want %q", s.Start, s.End, text[s.Start:s.End], s.Text)
				}
			}
		})
	}
}

func TestLoadDocument(t *testing.T) {
	dir := t.TempDir()
	content := "# Source: ud-ewt\n# Title: Answers\n\nIs it open?\nYes.\n"
	path := filepath.Join(dir, "answers-01.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := LoadDocument(path)
	if err != nil {
		t.Fatalf("LoadDocument() error = %v", err)
	}

	if doc.ID != "answers-01" {
		t.Errorf("ID = %q, want %q", doc.ID, "answers-01")
	}
	if doc.Title != "Answers" {
		t.Errorf("Title = %q, want %q", doc.Title, "Answers")
	}
	if doc.Text != "Is it open? Yes." {
		t.Errorf("Text = %q", doc.Text)
	}
	if got, want := doc.Ends(), []int{11, 16}; !reflect.DeepEqual(got, want) {
		t.Errorf("Ends() = %v, want %v", got, want)
	}
}

func TestLoadDocument_Errors(t *testing.T) {
	if _, err := LoadDocument(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.txt")
	if err := os.WriteFile(path, []byte("No header here.\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadDocument(path); err == nil {
		t.Error("expected error for missing Source header")
	}
}

func TestLoadCorpus(t *testing.T) {
	dir := t.TempDir()

	files := map[string]string{
		"doc1.txt":  "# Source: a\n\nOne.\n",
		"doc2.txt":  "# Source: b\n\nTwo.\nThree.\n",
		"notes.md":  "not a document",
		"README":    "also not",
		"draft.txt": "# Source: c\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.txt"), 0o755); err != nil {
		t.Fatal(err)
	}

	docs, err := LoadCorpus(dir)
	if err != nil {
		t.Fatalf("LoadCorpus() error = %v", err)
	}

	if len(docs) != 3 {
		t.Fatalf("got %d documents, want 3", len(docs))
	}
	total := 0
	for _, d := range docs {
		total += len(d.Sentences)
	}
	if total != 3 {
		t.Errorf("got %d sentences, want 3", total)
	}
}

func TestLoadCorpus_MissingDir(t *testing.T) {
	if _, err := LoadCorpus(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing directory")
	}
}
