package ingest

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/miku/nlmkit/doi"
)

func TestFindAllAssetNodes(t *testing.T) {
	doc := mustDoc(t, `<article xmlns:xlink="http://www.w3.org/1999/xlink"><body>
		<fig id="g1"><object-id pub-id-type="doi">10.1/t.g001</object-id><label>Figure 1</label><graphic xlink:href="info:doi/10.1/t.g001"/></fig>
		<table-wrap id="t1"><label>Table 1</label><graphic xlink:href="doi:10.1/t.t001"/></table-wrap>
		<supplementary-material xlink:href="10.1/t.s001"><label>S1</label></supplementary-material>
		<inline-formula><inline-graphic xlink:href="10.1/t.e001"/></inline-formula>
		<disp-formula><object-id pub-id-type="doi">10.1/t.e002</object-id></disp-formula>
		<fig id="g2"><object-id pub-id-type="doi">10.1/t.g002</object-id><alternatives><graphic xlink:href="10.1/t.g002"/></alternatives></fig>
		<fig id="orphan"><label>No identifier</label></fig>
		<graphic xlink:href="10.1/t.x001"/>
	</body></article>`)
	groups, err := doc.FindAllAssetNodes()
	if err != nil {
		t.Fatal(err)
	}

	var names []string
	for _, d := range groups.Dois() {
		names = append(names, d.Name())
	}
	wantOrder := []string{
		"10.1/t.g001",
		"10.1/t.t001",
		"10.1/t.s001",
		"10.1/t.e001",
		"10.1/t.e002",
		"10.1/t.g002",
		"10.1/t.x001",
	}
	if diff := cmp.Diff(wantOrder, names); diff != "" {
		t.Fatalf("DOI order mismatch (-want +got):\n%s", diff)
	}

	wantNodes := map[string][]string{
		// The fig itself plus its graphic, which is swapped for the fig.
		"10.1/t.g001": {"fig", "fig"},
		// The table-wrap has no object-id, so the DOI comes from the
		// embedded graphic and is attributed to the outer table-wrap. The
		// graphic is also matched on its own and swapped for its parent.
		"10.1/t.t001": {"table-wrap", "table-wrap"},
		"10.1/t.s001": {"supplementary-material"},
		"10.1/t.e001": {"inline-formula"},
		"10.1/t.e002": {"disp-formula"},
		// The graphic sits inside an alternatives wrapper, which is skipped
		// when walking up to the owning container.
		"10.1/t.g002": {"fig", "fig"},
		// A free-standing graphic has no owning container and stays as is.
		"10.1/t.x001": {"graphic"},
	}
	for name, want := range wantNodes {
		var got []string
		for _, node := range groups.Nodes(doi.New(name)) {
			got = append(got, node.Data)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("nodes for %s mismatch (-want +got):\n%s", name, diff)
		}
	}
	if got, want := groups.Len(), 10; got != want {
		t.Errorf("want %d nodes total, got %d", want, got)
	}
}

func TestFindAllAssetNodesDoiLookupIsCaseInsensitive(t *testing.T) {
	doc := mustDoc(t, `<article xmlns:xlink="http://www.w3.org/1999/xlink"><body>
		<fig><object-id pub-id-type="doi">10.1371/Test.G001</object-id></fig>
	</body></article>`)
	groups, err := doc.FindAllAssetNodes()
	if err != nil {
		t.Fatal(err)
	}
	if nodes := groups.Nodes(doi.New("10.1371/test.g001")); len(nodes) != 1 {
		t.Errorf("want 1 node via lowercased DOI, got %d", len(nodes))
	}
	// The original spelling is preserved for output.
	if got := groups.Dois()[0].Name(); got != "10.1371/Test.G001" {
		t.Errorf("want original DOI spelling, got %q", got)
	}
}

func TestHrefDoiRecursion(t *testing.T) {
	doc := mustDoc(t, `<article xmlns:xlink="http://www.w3.org/1999/xlink">
		<inline-formula><wrapper><inline-graphic xlink:href="info:doi/10.1/t.e005"/></wrapper></inline-formula>
	</article>`)
	node := doc.r.Node("//inline-formula")
	if got := hrefDoi(node).Name(); got != "10.1/t.e005" {
		t.Errorf("want DOI from nested descendant, got %q", got)
	}
}

func TestReplaceGraphicWithParentKeepsDirectHrefParent(t *testing.T) {
	// A graphic nested in a supplementary-material must not be replaced;
	// the supplementary-material already owns its DOI directly.
	doc := mustDoc(t, `<article xmlns:xlink="http://www.w3.org/1999/xlink">
		<supplementary-material xlink:href="10.1/t.s001"><graphic xlink:href="10.1/t.s001"/></supplementary-material>
	</article>`)
	node := doc.r.Node("//graphic")
	if got := replaceGraphicWithParent(node); got.Data != "graphic" {
		t.Errorf("want graphic kept, got %q", got.Data)
	}
}
