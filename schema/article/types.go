// Package article contains the output records of manuscript ingestion.
package article

// Metadata is the root record built from one manuscript document. It is
// constructed once per ingestion and not modified afterwards.
type Metadata struct {
	Doi               string               `json:"doi"`
	Title             string               `json:"title,omitempty"`
	Eissn             string               `json:"eissn"`
	JournalName       string               `json:"journal_name,omitempty"`
	Description       string               `json:"description,omitempty"`
	Rights            string               `json:"rights,omitempty"`
	PageCount         *int                 `json:"page_count,omitempty"`
	ELocationID       string               `json:"elocation_id,omitempty"`
	Volume            string               `json:"volume,omitempty"`
	Issue             string               `json:"issue,omitempty"`
	PublisherName     string               `json:"publisher_name,omitempty"`
	PublisherLocation string               `json:"publisher_location,omitempty"`
	Language          string               `json:"language,omitempty"`
	PublicationDate   Date                 `json:"publication_date"`
	NlmArticleType    string               `json:"nlm_article_type,omitempty"`
	ArticleHeading    string               `json:"article_heading,omitempty"`
	Authors           []NlmPerson          `json:"authors,omitempty"`
	CollabAuthors     []string             `json:"collab_authors,omitempty"`
	Editors           []NlmPerson          `json:"editors,omitempty"`
	URL               string               `json:"url,omitempty"`
	RelatedArticles   []RelatedArticleLink `json:"related_articles,omitempty"`
	Assets            []AssetMetadata      `json:"assets,omitempty"`
	Citations         []Citation           `json:"citations,omitempty"`
}

// AssetMetadata describes one embedded object: a figure, table,
// supplementary file or formula. Two records are equal if all three fields
// are equal; the comparison is used to de-duplicate candidate nodes that
// resolve to the same DOI.
type AssetMetadata struct {
	Doi         string `json:"doi"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// NlmPerson is a structured person name. Omitted optional parts are empty
// strings, never absent fields.
type NlmPerson struct {
	FullName   string `json:"full_name"`
	GivenNames string `json:"given_names"`
	Surname    string `json:"surname"`
	Suffix     string `json:"suffix"`
}

// RelatedArticleLink is a typed edge to another article.
type RelatedArticleLink struct {
	Type string `json:"type"`
	Doi  string `json:"doi"`
}

// Citation is one entry of the article's bibliography.
type Citation struct {
	Key               string      `json:"key"`
	CitationType      string      `json:"citation_type,omitempty"`
	Title             string      `json:"title,omitempty"`
	Journal           string      `json:"journal,omitempty"`
	Volume            string      `json:"volume,omitempty"`
	VolumeNumber      *int        `json:"volume_number,omitempty"`
	Issue             string      `json:"issue,omitempty"`
	PublisherLocation string      `json:"publisher_location,omitempty"`
	PublisherName     string      `json:"publisher_name,omitempty"`
	Note              string      `json:"note,omitempty"`
	DisplayYear       string      `json:"display_year,omitempty"`
	Year              *int        `json:"year,omitempty"`
	Month             string      `json:"month,omitempty"`
	Day               string      `json:"day,omitempty"`
	Pages             string      `json:"pages,omitempty"`
	ELocationID       string      `json:"elocation_id,omitempty"`
	Authors           []NlmPerson `json:"authors,omitempty"`
	Editors           []NlmPerson `json:"editors,omitempty"`
}

// CustomMetadata holds publisher-defined values read from custom-meta tags
// whose names are deployment configuration.
type CustomMetadata struct {
	RevisionDate     *Date  `json:"revision_date,omitempty"`
	PublicationStage string `json:"publication_stage,omitempty"`
}
