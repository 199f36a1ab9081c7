// Package nlmkit turns NLM/JATS article XML into structured metadata
// records: articles, assets, citations, custom metadata.
package nlmkit

const (
	AppName = "nlmkit"
	Version = "0.1.0"
)
