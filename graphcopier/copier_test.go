package graphcopier

import (
	"bytes"
	"testing"

	"github.com/mechiko/pdfmerge/types"
	"github.com/mechiko/pdfmerge/writer"
)

type fakeScanner map[types.IndirectRef]types.Token

func (f fakeScanner) Resolve(ref types.IndirectRef) (types.Token, error) {
	tok, ok := f[ref]
	if !ok {
		return nil, errNotFound{ref}
	}
	return tok, nil
}

type errNotFound struct{ ref types.IndirectRef }

func (e errNotFound) Error() string { return "not found: " + e.ref.String() }

func TestCopyHandlesCycles(t *testing.T) {
	ref10 := types.IndirectRef{ObjectNumber: 10}
	ref11 := types.IndirectRef{ObjectNumber: 11}

	d10 := types.NewDict()
	d10.Insert("Next", ref11)
	d11 := types.NewDict()
	d11.Insert("Prev", ref10)

	scanner := fakeScanner{ref10: d10, ref11: d11}

	var buf bytes.Buffer
	w := writer.New(&buf, false)
	c := New(scanner, w)

	out, err := c.Copy(ref10)
	if err != nil {
		t.Fatalf("Copy: %v", err)
	}
	outRef10, ok := out.(types.IndirectRef)
	if !ok {
		t.Fatalf("expected IndirectRef result, got %T", out)
	}

	// Exactly two output objects: the copied node and its cyclic peer.
	if got := w.BodyCount(); got != 2 {
		t.Fatalf("expected 2 output objects, got %d", got)
	}

	// Re-copying the same root reference (simulating a second path to
	// object 10) must reuse the already-finalized translation.
	out2, err := c.Copy(ref10)
	if err != nil {
		t.Fatalf("second Copy: %v", err)
	}
	if out2 != out {
		t.Errorf("expected cached translation, got %v vs %v", out2, out)
	}
	_ = outRef10
}

func TestCopyDedupesSharedSubobject(t *testing.T) {
	mediaBoxRef := types.IndirectRef{ObjectNumber: 5}
	mediaBox := types.Array{types.Integer(0), types.Integer(0), types.Integer(612), types.Integer(792)}

	page1Ref := types.IndirectRef{ObjectNumber: 1}
	page2Ref := types.IndirectRef{ObjectNumber: 2}

	p1 := types.NewDict()
	p1.Insert("Type", types.Name("Page"))
	p1.Insert("MediaBox", mediaBoxRef)
	p1.Insert("Contents", types.IndirectRef{ObjectNumber: 30})

	p2 := types.NewDict()
	p2.Insert("Type", types.Name("Page"))
	p2.Insert("MediaBox", mediaBoxRef)
	p2.Insert("Contents", types.IndirectRef{ObjectNumber: 31})

	scanner := fakeScanner{
		mediaBoxRef:                        mediaBox,
		page1Ref:                           p1,
		page2Ref:                           p2,
		types.IndirectRef{ObjectNumber: 30}: types.Stream{Dict: types.NewDict(), Data: []byte("p1")},
		types.IndirectRef{ObjectNumber: 31}: types.Stream{Dict: types.NewDict(), Data: []byte("p2")},
	}

	var buf bytes.Buffer
	w := writer.New(&buf, false)
	c := New(scanner, w)

	if _, err := c.Copy(page1Ref); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Copy(page2Ref); err != nil {
		t.Fatal(err)
	}

	// page1, page2, their distinct Contents streams, and exactly one
	// shared MediaBox array: 5 objects, not 6 - the array must not be
	// duplicated even though it is reachable from two separate Copy calls.
	if got := w.BodyCount(); got != 5 {
		t.Fatalf("expected 5 output objects (2 pages + 2 content streams + 1 shared array), got %d", got)
	}
}

func TestCopyRejectsObjectWrapper(t *testing.T) {
	scanner := fakeScanner{}
	var buf bytes.Buffer
	w := writer.New(&buf, false)
	c := New(scanner, w)

	_, err := c.Copy(types.Object{ObjectNumber: 1})
	if err == nil {
		t.Fatal("expected error for Object token")
	}
}

func TestCopyRejectsChainedReference(t *testing.T) {
	refA := types.IndirectRef{ObjectNumber: 1}
	refB := types.IndirectRef{ObjectNumber: 2}
	scanner := fakeScanner{refA: refB}

	var buf bytes.Buffer
	w := writer.New(&buf, false)
	c := New(scanner, w)

	_, err := c.Copy(refA)
	if err == nil {
		t.Fatal("expected ErrChainedReference")
	}
}
