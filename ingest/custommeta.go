package ingest

import (
	log "github.com/sirupsen/logrus"

	"github.com/miku/nlmkit/config"
	"github.com/miku/nlmkit/schema/article"
)

// CustomMetadata reads publisher-defined <custom-meta> name/value pairs.
// The tag names that carry the revision date and publication stage are
// deployment configuration, not constants. An unconfigured tag name means
// that key is permanently absent for this deployment; that is an
// operational gap, not a manuscript defect.
func (d *Document) CustomMetadata(cfg config.Config) (article.CustomMetadata, error) {
	customMeta := d.parseCustomMeta()
	var out article.CustomMetadata

	revisionDate, err := singleValue(customMeta, cfg.RevisionDateMetaTag, "revision date")
	if err != nil {
		return out, err
	}
	if revisionDate != "" {
		parsed, err := article.ParseDate(revisionDate)
		if err != nil {
			return out, contentWrap(err, "%q custom-meta value must be an ISO-8601 date, got %q",
				cfg.RevisionDateMetaTag, revisionDate)
		}
		out.RevisionDate = &parsed
	}

	stage, err := singleValue(customMeta, cfg.PublicationStageMetaTag, "publication stage")
	if err != nil {
		return out, err
	}
	out.PublicationStage = stage
	return out, nil
}

// customMetaValues preserves multiplicity: a manuscript may legally repeat
// the same meta-name, though that can be invalid depending on the name.
type customMetaValues struct {
	values map[string][]string
}

func (d *Document) parseCustomMeta() customMetaValues {
	cm := customMetaValues{values: make(map[string][]string)}
	for _, node := range d.r.Nodes(`//custom-meta-group/custom-meta`) {
		name := d.r.StringAt("meta-name", node)
		value := d.r.StringAt("meta-value", node)
		cm.values[name] = append(cm.values[name], value)
	}
	return cm
}

// singleValue looks up a configured meta-name, expecting at most one value.
// Zero matches or a missing configuration yield the empty string.
func singleValue(cm customMetaValues, metaName, semantic string) (string, error) {
	if metaName == "" {
		log.WithField("key", semantic).Debug("no custom-meta tag name configured, treating as absent")
		return "", nil
	}
	values := cm.values[metaName]
	switch len(values) {
	case 0:
		return "", nil
	case 1:
		return values[0], nil
	default:
		return "", contentErrf("must not have more than one custom-meta node with <meta-name>%s</meta-name>, got values: %v",
			metaName, values)
	}
}
