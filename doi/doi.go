// Package doi implements a normalized digital object identifier value type.
//
// A Doi holds a bare DOI name with any recognized URI scheme prefix
// stripped. The type does not validate that the name has a registered
// prefix; a publisher without one is free to use any string in place of
// resolvable DOIs. DOIs are case-insensitive by specification, so equality
// and the map-key form ignore case.
package doi

import (
	"net/url"
	"strings"
)

// Style selects how a DOI name is rendered back into a URI.
type Style int

const (
	// InfoDoi is the legacy "info:doi/" form, required by some old code.
	InfoDoi Style = iota
	// DoiScheme is the plain "doi:" scheme.
	DoiScheme
	// HTTPSResolver is the current Crossref standard style.
	HTTPSResolver
	HTTPResolver
	HTTPSDxResolver
	HTTPDxResolver
)

var stylePrefixes = map[Style]string{
	InfoDoi:         "info:doi/",
	DoiScheme:       "doi:",
	HTTPSResolver:   "https://doi.org/",
	HTTPResolver:    "http://doi.org/",
	HTTPSDxResolver: "https://dx.doi.org/",
	HTTPDxResolver:  "http://dx.doi.org/",
}

// Prefix returns the URI prefix for the style.
func (s Style) Prefix() string { return stylePrefixes[s] }

// Doi is a digital object identifier, stored without a scheme prefix.
type Doi struct {
	name string
}

// New creates a Doi from a raw string, stripping any recognized URI prefix.
func New(raw string) Doi {
	raw = strings.TrimSpace(raw)
	for _, prefix := range stylePrefixes {
		if strings.HasPrefix(raw, prefix) {
			return Doi{name: raw[len(prefix):]}
		}
	}
	return Doi{name: raw}
}

// Name returns the bare DOI name.
func (d Doi) Name() string { return d.name }

// IsZero reports whether the DOI is empty.
func (d Doi) IsZero() bool { return d.name == "" }

// Key returns the canonical map-key form of the DOI name. Names that differ
// only in case must yield the same key.
func (d Doi) Key() string { return strings.ToLower(d.name) }

// Equal reports whether two DOIs have case-insensitively equal names.
func (d Doi) Equal(other Doi) bool {
	return strings.EqualFold(d.name, other.name)
}

func (d Doi) String() string { return d.name }

// URI renders the DOI in the given style. Path segments are escaped for the
// resolver styles; the name's internal slash separating prefix and suffix is
// preserved.
func (d Doi) URI(style Style) string {
	switch style {
	case InfoDoi, DoiScheme:
		return style.Prefix() + d.name
	default:
		segments := strings.Split(d.name, "/")
		for i, s := range segments {
			segments[i] = url.PathEscape(s)
		}
		return style.Prefix() + strings.Join(segments, "/")
	}
}
