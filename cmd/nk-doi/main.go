// nk-doi normalizes DOIs, one per line.
//
// $ echo info:doi/10.1371/journal.pone.0000001 | nk-doi
// 10.1371/journal.pone.0000001
//
// $ echo 10.1371/journal.pone.0000001 | nk-doi -s https
// https://doi.org/10.1371/journal.pone.0000001
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/miku/nlmkit"
	"github.com/miku/nlmkit/doi"
)

var (
	style       = flag.String("s", "", "render as URI: info, doi, https, http, https-dx, http-dx")
	lower       = flag.Bool("l", false, "lowercase names (the canonical key form)")
	showVersion = flag.Bool("version", false, "show version")
)

var styles = map[string]doi.Style{
	"info":     doi.InfoDoi,
	"doi":      doi.DoiScheme,
	"https":    doi.HTTPSResolver,
	"http":     doi.HTTPResolver,
	"https-dx": doi.HTTPSDxResolver,
	"http-dx":  doi.HTTPDxResolver,
}

func main() {
	flag.Parse()
	if *showVersion {
		fmt.Println(nlmkit.Version)
		os.Exit(0)
	}
	var (
		br = bufio.NewScanner(os.Stdin)
		bw = bufio.NewWriter(os.Stdout)
	)
	defer bw.Flush()
	for br.Scan() {
		line := br.Text()
		if line == "" {
			continue
		}
		d := doi.New(line)
		var out string
		switch {
		case *style != "":
			s, ok := styles[*style]
			if !ok {
				log.Fatalf("unknown style: %s", *style)
			}
			out = d.URI(s)
		case *lower:
			out = d.Key()
		default:
			out = d.Name()
		}
		fmt.Fprintln(bw, out)
	}
	if err := br.Err(); err != nil {
		log.Fatal(err)
	}
}
