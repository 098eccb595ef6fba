package pagetree

import (
	"bytes"
	"errors"
	"testing"

	pkgerrors "github.com/pkg/errors"

	"github.com/mechiko/pdfmerge/types"
	"github.com/mechiko/pdfmerge/writer"
)

type fakeCatalog map[int]*types.PageTreeNode

func (c fakeCatalog) GetPageNode(idx int) (*types.PageTreeNode, error) {
	n, ok := c[idx]
	if !ok {
		return nil, pkgerrors.Errorf("pagetree test: no such page %d", idx)
	}
	return n, nil
}

type fakeScanner map[types.IndirectRef]types.Token

func (f fakeScanner) Resolve(ref types.IndirectRef) (types.Token, error) {
	tok, ok := f[ref]
	if !ok {
		return nil, pkgerrors.Errorf("pagetree test: unresolved reference %s", ref)
	}
	return tok, nil
}

func plainPageCatalog(n int) fakeCatalog {
	cat := make(fakeCatalog, n)
	for i := 1; i <= n; i++ {
		d := types.NewDict()
		d.Insert("Type", types.Name("Page"))
		cat[i] = &types.PageTreeNode{Dict: d, IsPage: true}
	}
	return cat
}

func indices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestAssemblerFanOutCap(t *testing.T) {
	const n = 250
	var buf bytes.Buffer
	w := writer.New(&buf, false)
	a := New(w)

	doc := Document{
		Catalog:     plainPageCatalog(n),
		Scanner:     fakeScanner{},
		PageIndices: indices(n),
	}
	if err := a.AddDocument(doc); err != nil {
		t.Fatalf("AddDocument: %v", err)
	}

	if _, _, err := a.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	if a.PageCount() != n {
		t.Fatalf("expected %d pages, got %d", n, a.PageCount())
	}
	// 250 pages at a 100-page fan-out cap must produce 3 intermediate
	// /Pages nodes (100, 100, 50), never one flat node.
	if got := len(a.groupRefs); got != 3 {
		t.Fatalf("expected 3 intermediate page-tree groups, got %d", got)
	}
}

func TestAssemblerResourceCollisionOpensNewGroup(t *testing.T) {
	parentRef1 := types.IndirectRef{ObjectNumber: 100}
	parentRef2 := types.IndirectRef{ObjectNumber: 101}

	resources1 := types.NewDict()
	resources1.Insert("Font", types.Name("F1"))
	parentDict1 := types.NewDict()
	parentDict1.Insert("Resources", resources1)

	resources2 := types.NewDict()
	resources2.Insert("Font", types.Name("F2"))
	parentDict2 := types.NewDict()
	parentDict2.Insert("Resources", resources2)

	page1 := types.NewDict()
	page1.Insert("Type", types.Name("Page"))
	page2 := types.NewDict()
	page2.Insert("Type", types.Name("Page"))

	cat := fakeCatalog{
		1: {Dict: page1, Parent: &parentRef1, IsPage: true},
		2: {Dict: page2, Parent: &parentRef2, IsPage: true},
	}
	scanner := fakeScanner{
		parentRef1: parentDict1,
		parentRef2: parentDict2,
	}

	var buf bytes.Buffer
	w := writer.New(&buf, false)
	a := New(w)

	doc := Document{Catalog: cat, Scanner: scanner, PageIndices: []int{1, 2}}
	if err := a.AddDocument(doc); err != nil {
		t.Fatalf("AddDocument: %v", err)
	}
	if _, _, err := a.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	// Both pages carry a distinct "Font" resource under the same key name:
	// the second page's Resources collides with the first's, so it must
	// open a second group rather than merging the two Font entries.
	if got := len(a.groupRefs); got != 2 {
		t.Fatalf("expected 2 groups from a resource-name collision, got %d", got)
	}
	if a.PageCount() != 2 {
		t.Fatalf("expected 2 pages total, got %d", a.PageCount())
	}
}

func TestAssemblerEmptyDocumentRejected(t *testing.T) {
	var buf bytes.Buffer
	w := writer.New(&buf, false)
	a := New(w)

	if _, _, err := a.Finish(); !errors.Is(err, types.ErrEmptyDocument) {
		t.Fatalf("expected ErrEmptyDocument, got %v", err)
	}
}

func TestAssemblerRejectsEncryptedSource(t *testing.T) {
	var buf bytes.Buffer
	w := writer.New(&buf, false)
	a := New(w)

	trailer := types.NewDict()
	trailer.Insert("Encrypt", types.IndirectRef{ObjectNumber: 1})

	doc := Document{
		Catalog:     plainPageCatalog(1),
		Scanner:     fakeScanner{},
		PageIndices: []int{1},
		Trailer:     &trailer,
	}
	if err := a.AddDocument(doc); !errors.Is(err, types.ErrEncryptedSourceRejected) {
		t.Fatalf("expected ErrEncryptedSourceRejected, got %v", err)
	}
}

func TestAssemblerPageCountAcrossDocuments(t *testing.T) {
	var buf bytes.Buffer
	w := writer.New(&buf, false)
	a := New(w)

	doc1 := Document{Catalog: plainPageCatalog(3), Scanner: fakeScanner{}, PageIndices: indices(3)}
	doc2 := Document{Catalog: plainPageCatalog(2), Scanner: fakeScanner{}, PageIndices: indices(2)}

	if err := a.AddDocument(doc1); err != nil {
		t.Fatalf("AddDocument doc1: %v", err)
	}
	if err := a.AddDocument(doc2); err != nil {
		t.Fatalf("AddDocument doc2: %v", err)
	}
	if _, _, err := a.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if a.PageCount() != 5 {
		t.Fatalf("expected 5 pages total, got %d", a.PageCount())
	}
}
