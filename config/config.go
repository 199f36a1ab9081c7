// Package config carries per-deployment settings for manuscript ingestion.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/segmentio/encoding/json"

	"github.com/miku/nlmkit"
)

// Config for ingestion. The custom-meta tag names are deployment specific:
// different publisher pipelines name their <custom-meta> tags differently,
// so the mapping from semantic meaning to literal tag name lives here and
// not in code.
type Config struct {
	// RevisionDateMetaTag is the <meta-name> whose <meta-value> holds the
	// article's revision date. Empty means the deployment does not use one.
	RevisionDateMetaTag string `json:"revision_date_meta_tag"`
	// PublicationStageMetaTag is the <meta-name> for the publication stage.
	PublicationStageMetaTag string `json:"publication_stage_meta_tag"`
}

// Default returns the tag names used by the original Ambra deployments.
func Default() Config {
	return Config{
		RevisionDateMetaTag:     "Publication Update",
		PublicationStageMetaTag: "Publication Stage",
	}
}

// DefaultPath returns the config file location under the xdg config home.
func DefaultPath() (string, error) {
	return xdg.ConfigFile(filepath.Join(nlmkit.AppName, "config.json"))
}

// Load reads a config file. A missing file yields the defaults.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, err
	}
	var c Config
	if err := json.Unmarshal(b, &c); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}
