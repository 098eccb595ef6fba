package merge

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/mechiko/pdfmerge/pagetree"
	"github.com/mechiko/pdfmerge/serialize"
	"github.com/mechiko/pdfmerge/types"
)

type fakeCatalog map[int]*types.PageTreeNode

func (c fakeCatalog) GetPageNode(idx int) (*types.PageTreeNode, error) {
	n, ok := c[idx]
	if !ok {
		return nil, errors.Errorf("merge test: no such page %d", idx)
	}
	return n, nil
}

type fakeScanner map[types.IndirectRef]types.Token

func (f fakeScanner) Resolve(ref types.IndirectRef) (types.Token, error) {
	tok, ok := f[ref]
	if !ok {
		return nil, errors.Errorf("merge test: unresolved reference %s", ref)
	}
	return tok, nil
}

func onePageDocument(version serialize.Version, mediaBox types.Array) pagetree.Document {
	page := types.NewDict()
	page.Insert("Type", types.Name("Page"))
	page.Insert("MediaBox", mediaBox)

	return pagetree.Document{
		Catalog:     fakeCatalog{1: {Dict: page, IsPage: true}},
		Scanner:     fakeScanner{},
		Version:     version,
		PageIndices: []int{1},
	}
}

func TestDocumentsMergesTwoSinglePageSources(t *testing.T) {
	letter := types.Array{types.Integer(0), types.Integer(0), types.Integer(612), types.Integer(792)}
	a4 := types.Array{types.Integer(0), types.Integer(0), types.Integer(595), types.Integer(842)}

	docs := []pagetree.Document{
		onePageDocument(serialize.Version{Major: 1, Minor: 4}, letter),
		onePageDocument(serialize.Version{Major: 1, Minor: 6}, a4),
	}

	var buf bytes.Buffer
	if err := Documents(&buf, false, docs); err != nil {
		t.Fatalf("Documents: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "%PDF-1.6\n") {
		t.Errorf("expected output version to be the max of its sources, got header %q", out[:9])
	}
	if !strings.Contains(out, "/Type /Catalog") {
		t.Errorf("missing catalog in output:\n%s", out)
	}
	if !strings.Contains(out, "/Type /Pages") {
		t.Errorf("missing page tree node in output:\n%s", out)
	}
	if !strings.Contains(out, "/Type /Page ") {
		t.Errorf("missing page object in output:\n%s", out)
	}
	if !strings.Contains(out, "xref\n") || !strings.HasSuffix(out, "%%EOF") {
		t.Errorf("missing xref/trailer footer:\n%s", out)
	}
}

func TestDocumentsRejectsEmptyInput(t *testing.T) {
	var buf bytes.Buffer
	err := Documents(&buf, false, nil)
	if !errors.Is(err, types.ErrEmptyDocument) {
		t.Fatalf("expected ErrEmptyDocument, got %v", err)
	}
}

func TestDocumentsRejectsEncryptedSource(t *testing.T) {
	doc := onePageDocument(serialize.DefaultVersionFloor, types.Array{types.Integer(0), types.Integer(0), types.Integer(612), types.Integer(792)})
	trailer := types.NewDict()
	trailer.Insert("Encrypt", types.IndirectRef{ObjectNumber: 9})
	doc.Trailer = &trailer

	var buf bytes.Buffer
	err := Documents(&buf, false, []pagetree.Document{doc})
	if !errors.Is(err, types.ErrEncryptedSourceRejected) {
		t.Fatalf("expected ErrEncryptedSourceRejected, got %v", err)
	}
}
