package pipeline

import (
	"slices"
	"testing"
)

func TestSplit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "empty text yields one empty line",
			input: "",
			want:  []string{""},
		},
		{
			name:  "no trailing terminator",
			input: "a",
			want:  []string{"a", ""},
		},
		{
			name:  "trailing LF does not add a second empty line",
			input: "a\n",
			want:  []string{"a", ""},
		},
		{
			name:  "CRLF terminators",
			input: "a\r\nb\r\n",
			want:  []string{"a", "b", ""},
		},
		{
			name:  "bare CR terminators",
			input: "a\rb",
			want:  []string{"a", "b", ""},
		},
		{
			name:  "mixed terminators",
			input: "a\r\nb\rc\nd",
			want:  []string{"a", "b", "c", "d", ""},
		},
		{
			name:  "single newline",
			input: "\n",
			want:  []string{"", ""},
		},
		{
			name:  "blank line before trailing newline is kept",
			input: "a\n\n",
			want:  []string{"a", "", ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Split(tt.input)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Split(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestJoin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input []string
		want  string
	}{
		{
			name:  "single empty line",
			input: []string{""},
			want:  "",
		},
		{
			name:  "no terminator after last line",
			input: []string{"a"},
			want:  "a",
		},
		{
			name:  "synthetic trailing line renders as final CRLF",
			input: []string{"a", "b", ""},
			want:  "a\r\nb\r\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Join(tt.input); got != tt.want {
				t.Errorf("Join(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSplitJoin_RoundTrip(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"a\r\n",
		"a\r\nb\r\n",
		"# h\r\n\r\ntext\r\n",
		"\r\n",
	}

	for _, in := range inputs {
		if got := Join(Split(in)); got != in {
			t.Errorf("Join(Split(%q)) = %q, want input unchanged", in, got)
		}
	}
}

func TestCursor_PeekAtEnd(t *testing.T) {
	t.Parallel()

	c := newCursor([]string{"only"})

	if _, ok := c.peek(); !ok {
		t.Fatal("peek() before first next() should see the first line")
	}
	line, ok := c.next()
	if !ok || line != "only" {
		t.Fatalf("next() = %q, %v, want %q, true", line, ok, "only")
	}
	if _, ok := c.peek(); ok {
		t.Error("peek() past the last line should report false")
	}
	if _, ok := c.next(); ok {
		t.Error("next() past the last line should report false")
	}
}
