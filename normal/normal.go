// Package normal provides small composable string normalizers used when
// reading text out of manuscript XML.
package normal

import (
	"strings"
	"unicode"
)

type Pipeline struct {
	Normalizer []Normalizer
}

func (p *Pipeline) Normalize(s string) string {
	for _, n := range p.Normalizer {
		s = n.Normalize(s)
	}
	return s
}

type Normalizer interface {
	Normalize(string) string
}

type SimpleNormalizer struct{}

func (s *SimpleNormalizer) Normalize(v string) string {
	return strings.ToLower(v)
}

// CollapseSpaceNormalizer trims a string and collapses internal runs of
// whitespace to a single space. Manuscript XML is indentation-heavy, so any
// text content read from a node goes through this.
type CollapseSpaceNormalizer struct{}

func (s *CollapseSpaceNormalizer) Normalize(v string) string {
	return CollapseSpace(v)
}

// CollapseSpace trims v and replaces each run of whitespace with one space.
func CollapseSpace(v string) string {
	var (
		b       strings.Builder
		inSpace bool
	)
	for _, c := range strings.TrimSpace(v) {
		if unicode.IsSpace(c) {
			inSpace = true
			continue
		}
		if inSpace {
			b.WriteRune(' ')
			inSpace = false
		}
		b.WriteRune(c)
	}
	return b.String()
}

// ReplaceNewlineAndTab maps newlines and tabs to spaces, leaving other
// characters alone. Useful for one-line log output of XML fragments.
func ReplaceNewlineAndTab(s string) string {
	var sb strings.Builder
	for _, c := range s {
		if c == '\n' || c == '\t' {
			sb.WriteString(" ")
		} else {
			sb.WriteRune(c)
		}
	}
	return sb.String()
}
