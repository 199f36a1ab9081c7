// nk-ingest parses NLM/JATS manuscript XML into structured metadata 📄
//
// $ nk-ingest < manuscript.xml > metadata.json
// $ zcat feed.xml.gz | nk-ingest -stream > metadata.jsonl
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/pgzip"
	"github.com/segmentio/encoding/json"
	log "github.com/sirupsen/logrus"

	"github.com/miku/nlmkit"
	"github.com/miku/nlmkit/config"
	"github.com/miku/nlmkit/ingest"
	"github.com/miku/nlmkit/schema/article"
	"github.com/miku/nlmkit/stream"
)

var (
	inputFile      = flag.String("f", "-", "input file, - for stdin")
	gzipped        = flag.Bool("z", false, "gzip compressed input")
	streamMode     = flag.Bool("stream", false, "input is a stream of concatenated article documents")
	streamTag      = flag.String("tag", "article", "element name to split the stream on")
	numWorkers     = flag.Int("w", 0, "number of workers in stream mode, 0 for NumCPU")
	maxBytesApprox = flag.Uint("x", 1048576, "max bytes per document in stream mode")
	configPath     = flag.String("config", "", "config file path, empty for the xdg default")
	revisionTag    = flag.String("revision-tag", "", "override the revision date custom-meta tag name")
	stageTag       = flag.String("stage-tag", "", "override the publication stage custom-meta tag name")
	showVersion    = flag.Bool("version", false, "show version")
)

// Envelope wraps one ingested manuscript for downstream consumers.
type Envelope struct {
	ID         string                  `json:"id"`
	IngestedAt time.Time               `json:"ingested_at"`
	Article    *article.Metadata       `json:"article"`
	CustomMeta *article.CustomMetadata `json:"custom_meta,omitempty"`
}

var help = `nk-ingest parses NLM/JATS manuscript XML into structured metadata 📄

One manuscript per invocation by default; with -stream, a concatenation of
<article> documents is split and ingested in parallel, one JSON line per
manuscript. Manuscripts that fail content validation are reported and
skipped in stream mode; a defect in the ingestion rules aborts the run.

Examples:

    $ nk-ingest < manuscript.xml
    $ zstdcat feed.xml.zst | nk-ingest -stream > out.jsonl

Usage:

`

func main() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, help)
		flag.PrintDefaults()
	}
	flag.Parse()
	if *showVersion {
		fmt.Println(nlmkit.Version)
		os.Exit(0)
	}
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal(err)
	}
	r, cleanup, err := openInput()
	if err != nil {
		log.Fatal(err)
	}
	defer cleanup()
	if *streamMode {
		if err := runStream(r, cfg); err != nil {
			log.Fatal(err)
		}
		return
	}
	b, err := ingestOne(r, cfg)
	if err != nil {
		log.Fatal(err)
	}
	if _, err := os.Stdout.Write(b); err != nil {
		log.Fatal(err)
	}
}

func loadConfig() (config.Config, error) {
	path := *configPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return config.Config{}, err
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if *revisionTag != "" {
		cfg.RevisionDateMetaTag = *revisionTag
	}
	if *stageTag != "" {
		cfg.PublicationStageMetaTag = *stageTag
	}
	return cfg, nil
}

func openInput() (io.Reader, func(), error) {
	var (
		r       io.Reader = os.Stdin
		cleanup           = func() {}
	)
	if *inputFile != "-" {
		f, err := os.Open(*inputFile)
		if err != nil {
			return nil, nil, err
		}
		r, cleanup = f, func() { f.Close() }
	}
	if *gzipped {
		zr, err := pgzip.NewReader(r)
		if err != nil {
			return nil, nil, err
		}
		r = zr
	}
	return r, cleanup, nil
}

func ingestOne(r io.Reader, cfg config.Config) ([]byte, error) {
	doc, err := ingest.Parse(r)
	if err != nil {
		return nil, err
	}
	meta, err := doc.Article()
	if err != nil {
		return nil, err
	}
	customMeta, err := doc.CustomMetadata(cfg)
	if err != nil {
		return nil, err
	}
	envelope := Envelope{
		ID:         uuid.New().String(),
		IngestedAt: time.Now().UTC(),
		Article:    meta,
		CustomMeta: &customMeta,
	}
	b, err := json.Marshal(envelope)
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

func runStream(r io.Reader, cfg config.Config) error {
	proc := stream.NewProcessor(func(p []byte) ([]byte, error) {
		b, err := ingestOne(bytes.NewReader(p), cfg)
		var contentErr *ingest.ContentError
		if errors.As(err, &contentErr) {
			log.WithError(contentErr).Warn("skipping manuscript that failed content validation")
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return b, nil
	},
		stream.WithSplitFunc(stream.TagSplitter(*streamTag, int(*maxBytesApprox), 4*int(*maxBytesApprox))),
		stream.WithWorkers(*numWorkers),
	)
	return proc.Process(context.Background(), r, os.Stdout)
}
