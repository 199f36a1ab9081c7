package ingest

import (
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/miku/nlmkit/doi"
	"github.com/miku/nlmkit/schema/article"
)

// Article assembles the complete metadata record from the manuscript. The
// first unrecoverable field stops the whole ingestion; a half-populated
// article record is worse than no record. Which fields are fatal and which
// degrade gracefully encodes editorial judgment about tolerable manuscript
// defects, so the per-field behavior here is deliberate, not a blanket
// policy.
func (d *Document) Article() (*article.Metadata, error) {
	articleDoi, err := d.ReadDoi()
	if err != nil {
		return nil, err
	}

	m := &article.Metadata{
		Doi:               articleDoi.Name(),
		Title:             d.buildTitle(),
		JournalName:       d.buildJournalName(),
		Description:       d.buildDescription(),
		ELocationID:       d.r.String(`/article/front/article-meta/elocation-id`),
		Volume:            d.r.String(`/article/front/article-meta/volume`),
		Issue:             d.r.String(`/article/front/article-meta/issue`),
		PublisherName:     d.r.String(`/article/front/journal-meta/publisher/publisher-name`),
		PublisherLocation: d.r.String(`/article/front/journal-meta/publisher/publisher-loc`),
		Language:          d.parseLanguage(),
		NlmArticleType:    d.r.String(`/article/@article-type`),
		URL:               articleDoi.URI(doi.HTTPSResolver),
		CollabAuthors:     d.r.Texts(`/article/front/article-meta/contrib-group/contrib[@contrib-type="author"]/collab`),
	}

	if m.Eissn, err = d.buildEissn(); err != nil {
		return nil, err
	}
	if m.Rights, err = d.buildRights(); err != nil {
		return nil, err
	}
	if m.PageCount, err = d.buildPageCount(); err != nil {
		return nil, err
	}
	if m.PublicationDate, err = d.buildPublicationDate(); err != nil {
		return nil, err
	}
	if m.ArticleHeading, err = d.buildHeading(); err != nil {
		return nil, err
	}
	if m.Authors, err = readPersons(d.r, d.r.Nodes(`/article/front/article-meta/contrib-group/contrib[@contrib-type="author"]/name`)); err != nil {
		return nil, err
	}
	if m.Editors, err = readPersons(d.r, d.r.Nodes(`/article/front/article-meta/contrib-group/contrib[@contrib-type="editor"]/name`)); err != nil {
		return nil, err
	}
	if m.RelatedArticles, err = d.buildRelatedArticles(); err != nil {
		return nil, err
	}
	if m.Assets, err = d.buildAssets(); err != nil {
		return nil, err
	}
	if m.Citations, err = d.Citations(); err != nil {
		return nil, err
	}
	return m, nil
}

func (d *Document) buildTitle() string {
	node := d.r.Node(`/article/front/article-meta/title-group/article-title`)
	if node == nil {
		return ""
	}
	return TextWithMarkup(node)
}

// buildEissn requires the issn element itself to be present even though its
// value may be blank; a manuscript with no issn element at all is broken.
// The epub-qualified variant is preferred, the bare issn value is the
// fallback when the qualified one is blank.
func (d *Document) buildEissn() (string, error) {
	const (
		epubIssn = `/article/front/journal-meta/issn[@pub-type="epub"]`
		anyIssn  = `/article/front/journal-meta/issn`
		bareIssn = `/article/front/journal-meta/issn[not(@pub-type)]`
	)
	if !d.r.Exists(anyIssn) {
		return "", contentErr("eIssn not found (issn element missing)")
	}
	if eissn := d.r.String(epubIssn); eissn != "" {
		return eissn, nil
	}
	return d.r.String(bareIssn), nil
}

// buildDescription takes the first abstract matched in priority order: the
// toc variant, then summary, then any plain abstract.
func (d *Document) buildDescription() string {
	queries := []string{
		`/article/front/article-meta/abstract[@abstract-type="toc"]`,
		`/article/front/article-meta/abstract[@abstract-type="summary"]`,
		`/article/front/article-meta/abstract`,
	}
	for _, q := range queries {
		if node := d.r.Node(q); node != nil {
			return TextWithMarkup(node)
		}
	}
	return ""
}

// buildRights prefers an explicit copyright-statement and otherwise
// composes one from the copyright holder and the license paragraph. A
// rights statement cannot be synthesized without at least a license.
func (d *Document) buildRights() (string, error) {
	if statement := d.r.String(`/article/front/article-meta/permissions/copyright-statement`); statement != "" {
		return statement, nil
	}
	license := d.r.String(`/article/front/article-meta/permissions/license/license-p`)
	if license == "" {
		return "", contentErr("rights not found (no copyright-statement and no license-p)")
	}
	holder := d.r.String(`/article/front/article-meta/permissions/copyright-holder`)
	if holder == "" {
		return license, nil
	}
	return holder + ". " + license, nil
}

func (d *Document) buildPageCount() (*int, error) {
	s := d.r.String(`/article/front/article-meta/counts/page-count/@count`)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, contentErrf("expected a number for page count, got %q", s)
	}
	return &n, nil
}

// buildPublicationDate reads the electronic publication date. NLM 2.3 marks
// it with pub-type, NLM 3.0 with publication-format.
func (d *Document) buildPublicationDate() (article.Date, error) {
	dateNode := d.r.Node(`/article/front/article-meta/pub-date[@pub-type="epub"]`)
	if dateNode == nil {
		dateNode = d.r.Node(`/article/front/article-meta/pub-date[@publication-format="electronic"]`)
	}
	if dateNode == nil {
		return article.Date{}, contentErr("electronic publication date not found")
	}
	var (
		date article.Date
		err  error
	)
	if date.Year, err = strconv.Atoi(d.r.StringAt("year", dateNode)); err != nil {
		return article.Date{}, contentWrap(err, "expected a number for publication year")
	}
	if date.Month, err = strconv.Atoi(d.r.StringAt("month", dateNode)); err != nil {
		return article.Date{}, contentWrap(err, "expected a number for publication month")
	}
	if date.Day, err = strconv.Atoi(d.r.StringAt("day", dateNode)); err != nil {
		return article.Date{}, contentWrap(err, "expected a number for publication day")
	}
	return date, nil
}

func (d *Document) parseLanguage() string {
	language := d.r.String(`/article/@xml:lang`)
	if language == "" {
		// Formerly hard-coded for all articles, so English is the most
		// sensible default.
		log.Warn("language not specified in article XML, defaulting to English")
		return "en"
	}
	return strings.ToLower(language)
}

// buildHeading reads the derived article heading. At most one heading
// subject is permitted.
func (d *Document) buildHeading() (string, error) {
	nodes := d.r.Nodes(`/article/front/article-meta/article-categories/subj-group[@subj-group-type="heading"]/subject`)
	switch len(nodes) {
	case 0:
		return "", nil
	case 1:
		return d.r.StringAt(".", nodes[0]), nil
	default:
		return "", contentErrf("expected at most one article heading, got %d", len(nodes))
	}
}

func (d *Document) buildJournalName() string {
	if id := d.r.String(`/article/front/journal-meta/journal-id[@journal-id-type="nlm-ta"]`); id != "" {
		return id
	}
	if title := d.r.String(`/article/front/journal-meta/journal-title-group/journal-title`); title != "" {
		return title
	}
	// NLM 2.3 has the journal-title directly under journal-meta.
	return d.r.String(`/article/front/journal-meta/journal-title`)
}

// buildRelatedArticles requires every related-article node to carry a
// resolvable DOI. Unlike asset nodes, where a missing DOI merely drops the
// node, a dangling related-article link is a fatal error.
func (d *Document) buildRelatedArticles() ([]article.RelatedArticleLink, error) {
	nodes := d.r.Nodes(`//related-article`)
	links := make([]article.RelatedArticleLink, 0, len(nodes))
	for _, node := range nodes {
		target := doi.New(node.SelectAttr("xlink:href"))
		if target.IsZero() {
			return nil, contentErrf("related-article of type %q has no DOI",
				node.SelectAttr("related-article-type"))
		}
		links = append(links, article.RelatedArticleLink{
			Type: node.SelectAttr("related-article-type"),
			Doi:  target.Name(),
		})
	}
	return links, nil
}

func (d *Document) buildAssets() ([]article.AssetMetadata, error) {
	groups, err := d.FindAllAssetNodes()
	if err != nil {
		return nil, err
	}
	assets := make([]article.AssetMetadata, 0, len(groups.Dois()))
	for _, assetDoi := range groups.Dois() {
		candidates := make([]article.AssetMetadata, 0, 1)
		for _, node := range groups.Nodes(assetDoi) {
			candidates = append(candidates, d.BuildAssetMetadata(node, assetDoi))
		}
		chosen, err := disambiguateAssetNodes(candidates)
		if err != nil {
			return nil, err
		}
		assets = append(assets, chosen)
	}
	return assets, nil
}
