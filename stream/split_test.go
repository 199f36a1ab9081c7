package stream

import (
	"bufio"
	"strings"
	"testing"
	"testing/iotest"
)

func TestFindFirstCompleteTag(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		tagName   string
		wantStart int
		wantEnd   int
	}{
		{
			name:      "single element",
			input:     `<article>content</article>`,
			tagName:   "article",
			wantStart: 0,
			wantEnd:   26,
		},
		{
			name:      "multiple elements, finds first",
			input:     `<a>first</a><a>second</a>`,
			tagName:   "a",
			wantStart: 0,
			wantEnd:   12,
		},
		{
			name:      "nested elements, finds outermost",
			input:     `<a>outer<a>inner</a></a>`,
			tagName:   "a",
			wantStart: 0,
			wantEnd:   24,
		},
		{
			name:      "with attributes",
			input:     `<article article-type="research-article">x</article>`,
			tagName:   "article",
			wantStart: 0,
			wantEnd:   52,
		},
		{
			name:      "self-closing",
			input:     `<article/>`,
			tagName:   "article",
			wantStart: 0,
			wantEnd:   10,
		},
		{
			name:      "prefix must not match longer tag name",
			input:     `<articleish>x</articleish><article>y</article>`,
			tagName:   "article",
			wantStart: 26,
			wantEnd:   46,
		},
		{
			name:      "no match",
			input:     `<other>x</other>`,
			tagName:   "article",
			wantStart: -1,
			wantEnd:   -1,
		},
		{
			name:      "incomplete element",
			input:     `<article>unfinished`,
			tagName:   "article",
			wantStart: 0,
			wantEnd:   -1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := findFirstCompleteTag(tt.input, tt.tagName)
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("want (%d, %d), got (%d, %d)", tt.wantStart, tt.wantEnd, start, end)
			}
		})
	}
}

func TestTagSplitterScan(t *testing.T) {
	input := `<feed><article><front>one</front></article><junk/><article>two</article></feed>`
	scanner := bufio.NewScanner(strings.NewReader(input))
	scanner.Split(TagSplitter("article", 1024, 4096))
	var tokens []string
	for scanner.Scan() {
		tokens = append(tokens, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		t.Fatal(err)
	}
	want := []string{
		`<article><front>one</front></article>`,
		`<article>two</article>`,
	}
	if len(tokens) != len(want) {
		t.Fatalf("want %d tokens, got %d: %v", len(want), len(tokens), tokens)
	}
	for i := range want {
		if tokens[i] != want[i] {
			t.Errorf("token %d: want %q, got %q", i, want[i], tokens[i])
		}
	}
}

func TestTagSplitterDataWithEOF(t *testing.T) {
	// A reader may return the final data together with io.EOF; gzip readers
	// do. Every complete element in that last chunk must still come out.
	input := `<article><p>one</p></article><article><p>two</p></article>`
	scanner := bufio.NewScanner(iotest.DataErrReader(strings.NewReader(input)))
	scanner.Split(TagSplitter("article", 4096, 8192))
	var tokens []string
	for scanner.Scan() {
		tokens = append(tokens, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		t.Fatal(err)
	}
	want := []string{
		`<article><p>one</p></article>`,
		`<article><p>two</p></article>`,
	}
	if len(tokens) != len(want) {
		t.Fatalf("want %d tokens, got %d: %v", len(want), len(tokens), tokens)
	}
	for i := range want {
		if tokens[i] != want[i] {
			t.Errorf("token %d: want %q, got %q", i, want[i], tokens[i])
		}
	}
}

func TestTagSplitterElementSpansFinalRead(t *testing.T) {
	// First read ends mid-element, second read delivers the rest plus EOF.
	input := strings.NewReader(`<article>one</article><article>two</article>`)
	scanner := bufio.NewScanner(iotest.DataErrReader(iotest.HalfReader(input)))
	scanner.Split(TagSplitter("article", 4096, 8192))
	var count int
	for scanner.Scan() {
		count++
	}
	if err := scanner.Err(); err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("want 2 tokens, got %d", count)
	}
}

func TestTagSplitterInvalidConfig(t *testing.T) {
	scanner := bufio.NewScanner(strings.NewReader("<a>x</a>"))
	scanner.Split(TagSplitter("", 1024, 4096))
	for scanner.Scan() {
	}
	if scanner.Err() != ErrInvalidSplitter {
		t.Errorf("want ErrInvalidSplitter, got %v", scanner.Err())
	}
}
