package bench

import (
	"errors"
	"reflect"
	"testing"
)

func TestTokenBoundaries(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []int
	}{
		{"two lines", "A b.\nC d.\n", []int{3, 6}},
		{"blank lines skipped", "A b.\n\n   \nC d.", []int{3, 6}},
		{"punctuation only line", "Wait\n...\n", []int{1, 2}},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TokenBoundaries(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("TokenBoundaries() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpanBoundaries(t *testing.T) {
	text := "A b. C d."

	tests := []struct {
		name string
		ends []int
		want []int
	}{
		{"after each sentence", []int{4, 9}, []int{3, 6}},
		{"end inside a gap", []int{5}, []int{3}},
		{"past the last token", []int{20}, []int{6}},
		{"none", nil, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SpanBoundaries(text, tt.ends); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SpanBoundaries() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCheckTokens(t *testing.T) {
	tests := []struct {
		name    string
		gold    string
		test    string
		wantErr bool
	}{
		{"same tokens different lines", "A b.\nC d.\n", "A b. C\nd.\n", false},
		{"whitespace differs", "A  b.", "A\tb.", false},
		{"different token", "A b.", "A c.", true},
		{"test shorter", "A b. C", "A b.", true},
		{"test longer", "A b.", "A b. C", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckTokens(tt.gold, tt.test)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CheckTokens() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrTokenMismatch) {
				t.Errorf("error %v does not wrap ErrTokenMismatch", err)
			}
		})
	}
}

func TestContexts(t *testing.T) {
	got := Contexts("A b. C d.", []int{3, 6})
	want := []Context{
		{Prev: "b", Cur: ".", Next: "C"},
		{Prev: "d", Cur: ".", Next: ""},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Contexts() = %+v, want %+v", got, want)
	}
}
