package ingest

import (
	"regexp"
	"strconv"

	"github.com/antchfx/xmlquery"
	log "github.com/sirupsen/logrus"

	"github.com/miku/nlmkit/schema/article"
)

// Citation types whose <source> element names a journal. For other types
// (books and the like) the source element means something else and must not
// be misfiled as a journal name.
var journalLikeTypes = map[string]bool{
	"journal":  true,
	"confproc": true,
}

const citationNodeQuery = `citation | element-citation | nlm-citation | mixed-citation`

// Citations extracts the article's bibliography from back/ref-list. Each
// <ref> contributes one citation, keyed 1..n in document order.
func (d *Document) Citations() ([]article.Citation, error) {
	refs := d.r.Nodes(`/article/back/ref-list/ref`)
	citations := make([]article.Citation, 0, len(refs))
	for i, ref := range refs {
		node := d.r.NodeAt(citationNodeQuery, ref)
		if node == nil {
			// Some DTD versions put the citation fields directly on <ref>.
			node = ref
		}
		citation, err := d.parseCitation(node)
		if err != nil {
			return nil, err
		}
		citation.Key = strconv.Itoa(i + 1)
		citations = append(citations, citation)
	}
	return citations, nil
}

// parseCitation extracts one bibliographic reference's structured fields
// from a citation node.
func (d *Document) parseCitation(node *xmlquery.Node) (article.Citation, error) {
	var c article.Citation

	c.CitationType = d.citationType(node)
	c.Title = d.citationTitle(node)
	c.Volume = d.r.StringAt("volume", node)
	c.VolumeNumber = parseVolumeNumber(c.Volume)
	c.Issue = d.r.StringAt("issue", node)
	c.PublisherLocation = d.r.StringAt("publisher-loc", node)
	c.PublisherName = d.r.StringAt("publisher-name", node)
	c.Note = d.r.StringAt("comment", node)

	if journalLikeTypes[c.CitationType] {
		c.Journal = d.r.StringAt("source[1]", node)
	}

	c.DisplayYear = d.r.StringAt("year", node)
	c.Year = parseYear(c.DisplayYear)
	c.Month = d.r.StringAt("month", node)
	c.Day = d.r.StringAt("day", node)

	c.Pages = d.citationPages(node)
	c.ELocationID = joinNonEmpty(d.r.TextsAt("elocation-id | fpage", node))

	var err error
	c.Authors, err = readPersons(d.r, d.r.NodesAt(`person-group[@person-group-type="author"]/name`, node))
	if err != nil {
		return c, err
	}
	c.Editors, err = readPersons(d.r, d.r.NodesAt(`person-group[@person-group-type="editor"]/name`, node))
	if err != nil {
		return c, err
	}
	return c, nil
}

func (d *Document) citationType(node *xmlquery.Node) string {
	if t := d.r.StringAt("@citation-type", node); t != "" {
		return t
	}
	return d.r.StringAt("@publication-type", node)
}

func (d *Document) citationTitle(node *xmlquery.Node) string {
	titleNode := d.r.NodeAt("article-title", node)
	if titleNode == nil {
		titleNode = d.r.NodeAt("source", node)
	}
	if titleNode == nil {
		return ""
	}
	return TextWithMarkup(titleNode)
}

// citationPages builds a page range: the page-range element verbatim if
// present, else "first-last", else "first" alone, else empty.
func (d *Document) citationPages(node *xmlquery.Node) string {
	if r := d.r.StringAt("page-range", node); r != "" {
		return r
	}
	fpage := d.r.StringAt("fpage", node)
	if fpage == "" {
		return ""
	}
	lpage := d.r.StringAt("lpage", node)
	if lpage == "" {
		return fpage
	}
	return fpage + "-" + lpage
}

var digitRun = regexp.MustCompile(`\d+`)

// parseYear turns a display year into a number. Non-numeric display years
// like "2000b" are recovered when they contain exactly one maximal run of
// digits; an ambiguous value like "2000-2001" yields nil rather than a
// guess.
func parseYear(displayYear string) *int {
	if displayYear == "" {
		return nil
	}
	if year, err := strconv.Atoi(displayYear); err == nil {
		return &year
	}
	runs := digitRun.FindAllString(displayYear, 2)
	if len(runs) != 1 {
		log.WithField("year", displayYear).Warn("display year has no unambiguous digit run")
		return nil
	}
	year, err := strconv.Atoi(runs[0])
	if err != nil {
		return nil
	}
	return &year
}

// parseVolumeNumber extracts the first digit run from a volume string.
func parseVolumeNumber(volume string) *int {
	match := digitRun.FindString(volume)
	if match == "" {
		return nil
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return nil
	}
	return &n
}
