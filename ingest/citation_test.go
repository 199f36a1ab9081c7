package ingest

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/miku/nlmkit/schema/article"
)

func intp(n int) *int { return &n }

func TestParseYear(t *testing.T) {
	tests := []struct {
		displayYear string
		want        *int
	}{
		{"2000", intp(2000)},
		{"2000b", intp(2000)},
		{"[1987]", intp(1987)},
		{"2000-2001", nil},
		{"n.d.", nil},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.displayYear, func(t *testing.T) {
			got := parseYear(tt.displayYear)
			switch {
			case tt.want == nil && got != nil:
				t.Errorf("want nil, got %d", *got)
			case tt.want != nil && got == nil:
				t.Errorf("want %d, got nil", *tt.want)
			case tt.want != nil && *got != *tt.want:
				t.Errorf("want %d, got %d", *tt.want, *got)
			}
		})
	}
}

func TestParseVolumeNumber(t *testing.T) {
	tests := []struct {
		volume string
		want   *int
	}{
		{"405", intp(405)},
		{"vol. 12", intp(12)},
		{"12 (suppl 3)", intp(12)},
		{"IV", nil},
		{"", nil},
	}
	for _, tt := range tests {
		got := parseVolumeNumber(tt.volume)
		switch {
		case tt.want == nil && got != nil:
			t.Errorf("%q: want nil, got %d", tt.volume, *got)
		case tt.want != nil && got == nil:
			t.Errorf("%q: want %d, got nil", tt.volume, *tt.want)
		case tt.want != nil && *got != *tt.want:
			t.Errorf("%q: want %d, got %d", tt.volume, *tt.want, *got)
		}
	}
}

func TestCitations(t *testing.T) {
	doc := mustDoc(t, `<article><back><ref-list>
		<ref id="r1">
			<citation citation-type="journal">
				<person-group person-group-type="author">
					<name name-style="western"><surname>Doe</surname><given-names>John</given-names></name>
				</person-group>
				<article-title>Alpha</article-title>
				<source>Nature</source>
				<year>1999</year>
				<volume>17</volume>
				<fpage>10</fpage>
				<lpage>20</lpage>
			</citation>
		</ref>
		<ref id="r2">
			<citation citation-type="book">
				<source>The Handbook</source>
				<year>2000b</year>
				<publisher-name>Springer</publisher-name>
				<publisher-loc>Berlin</publisher-loc>
			</citation>
		</ref>
		<ref id="r3">
			<mixed-citation publication-type="confproc">
				<source>Proc Intl Conf</source>
				<year>2000-2001</year>
				<page-range>33-40</page-range>
			</mixed-citation>
		</ref>
		<ref id="r4">
			<article-title>Fields directly on ref</article-title>
			<fpage>7</fpage>
		</ref>
	</ref-list></back></article>`)
	got, err := doc.Citations()
	if err != nil {
		t.Fatal(err)
	}
	want := []article.Citation{
		{
			Key:          "1",
			CitationType: "journal",
			Title:        "Alpha",
			Journal:      "Nature",
			Volume:       "17",
			VolumeNumber: intp(17),
			DisplayYear:  "1999",
			Year:         intp(1999),
			Pages:        "10-20",
			ELocationID:  "10",
			Authors: []article.NlmPerson{
				{FullName: "John Doe", GivenNames: "John", Surname: "Doe"},
			},
		},
		{
			Key:               "2",
			CitationType:      "book",
			Title:             "The Handbook",
			PublisherName:     "Springer",
			PublisherLocation: "Berlin",
			DisplayYear:       "2000b",
			Year:              intp(2000),
		},
		{
			Key:          "3",
			CitationType: "confproc",
			Title:        "Proc Intl Conf",
			Journal:      "Proc Intl Conf",
			DisplayYear:  "2000-2001",
			Pages:        "33-40",
		},
		{
			Key:         "4",
			Title:       "Fields directly on ref",
			Pages:       "7",
			ELocationID: "7",
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("citations mismatch (-want +got):\n%s", diff)
	}
}

func TestCitationPages(t *testing.T) {
	tests := []struct {
		name string
		xml  string
		want string
	}{
		{
			name: "page-range wins",
			xml:  `<citation><page-range>100-2, 105</page-range><fpage>100</fpage><lpage>105</lpage></citation>`,
			want: "100-2, 105",
		},
		{
			name: "first and last",
			xml:  `<citation><fpage>100</fpage><lpage>110</lpage></citation>`,
			want: "100-110",
		},
		{
			name: "first only",
			xml:  `<citation><fpage>100</fpage></citation>`,
			want: "100",
		},
		{
			name: "none",
			xml:  `<citation><lpage>110</lpage></citation>`,
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustDoc(t, "<article>"+tt.xml+"</article>")
			node := doc.r.Node("//citation")
			if got := doc.citationPages(node); got != tt.want {
				t.Errorf("want %q, got %q", tt.want, got)
			}
		})
	}
}
