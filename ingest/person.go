package ingest

import (
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/miku/nlmkit/schema/article"
	"github.com/miku/nlmkit/xmlq"
)

// Legal values for the name-style attribute of a <name> node.
const (
	westernNameStyle = "western"
	easternNameStyle = "eastern"
)

// parsePersonName parses a <name> element. The surname child and the
// name-style attribute are required; given-names and suffix are optional
// and come back as empty strings when omitted. The full display name is
// assembled according to name-style: given-name surname suffix for
// western, surname given-name suffix for eastern.
func parsePersonName(r *xmlq.Reader, nameNode *xmlquery.Node) (article.NlmPerson, error) {
	nameStyle := r.StringAt("@name-style", nameNode)
	surname := r.StringAt("surname", nameNode)
	givenNames := r.StringAt("given-names", nameNode)
	suffix := r.StringAt("suffix", nameNode)

	if surname == "" {
		return article.NlmPerson{}, contentErr("required surname is omitted")
	}

	var fullNameParts []string
	switch nameStyle {
	case westernNameStyle:
		fullNameParts = []string{givenNames, surname, suffix}
	case easternNameStyle:
		fullNameParts = []string{surname, givenNames, suffix}
	default:
		return article.NlmPerson{}, contentErrf("invalid name-style: %q", nameStyle)
	}

	return article.NlmPerson{
		FullName:   joinNonEmpty(fullNameParts),
		GivenNames: givenNames,
		Surname:    surname,
		Suffix:     suffix,
	}, nil
}

func joinNonEmpty(parts []string) string {
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

// readPersons parses each node in the list as a person name.
func readPersons(r *xmlq.Reader, nodes []*xmlquery.Node) ([]article.NlmPerson, error) {
	persons := make([]article.NlmPerson, 0, len(nodes))
	for _, node := range nodes {
		p, err := parsePersonName(r, node)
		if err != nil {
			return nil, err
		}
		persons = append(persons, p)
	}
	return persons, nil
}
