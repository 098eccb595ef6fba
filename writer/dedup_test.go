package writer

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/mechiko/pdfmerge/serialize"
	"github.com/mechiko/pdfmerge/types"
)

func fontDict() types.Dict {
	d := types.NewDict()
	d.Insert("Type", types.Name("Font"))
	d.Insert("Subtype", types.Name("Type1"))
	d.Insert("BaseFont", types.Name("Helvetica"))
	return d
}

func TestWriteTokenDedupIdempotence(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf, false)

	ref1, err := w.WriteToken(fontDict())
	if err != nil {
		t.Fatal(err)
	}
	ref2, err := w.WriteToken(fontDict())
	if err != nil {
		t.Fatal(err)
	}
	if ref1 != ref2 {
		t.Errorf("expected same reference, got %v and %v", ref1, ref2)
	}
	if len(w.bodies) != 1 {
		t.Errorf("expected exactly one stored body, got %d", len(w.bodies))
	}
}

func TestReservationIdentityPreserved(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf, false)

	ref := w.ReserveReference()
	bound, err := w.WriteReservedToken(ref.ObjectNumber, fontDict())
	if err != nil {
		t.Fatal(err)
	}
	if bound != ref {
		t.Errorf("expected bound reference to equal reservation, got %v want %v", bound, ref)
	}
}

func TestWriteReservedTokenDoesNotDedupeOnFirstUse(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf, false)

	direct, err := w.WriteToken(fontDict())
	if err != nil {
		t.Fatal(err)
	}

	reserved := w.ReserveReference()
	bound, err := w.WriteReservedToken(reserved.ObjectNumber, fontDict())
	if err != nil {
		t.Fatal(err)
	}
	if bound == direct {
		t.Errorf("reserved write must occupy its own number, not alias %v", direct)
	}

	// A later plain write with identical content should now be able to
	// reuse either already-stored reference via the updated dedup index.
	again, err := w.WriteToken(fontDict())
	if err != nil {
		t.Fatal(err)
	}
	if again != direct && again != bound {
		t.Errorf("expected dedup to reuse a prior reference, got %v", again)
	}
}

func TestWriteReservedTokenRejectsUnreservedNumber(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf, false)
	_, err := w.WriteReservedToken(42, fontDict())
	if !errors.Is(err, types.ErrNotReserved) {
		t.Errorf("expected ErrNotReserved, got %v", err)
	}
}

func TestFlushFailsOnOutstandingReservation(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf, false)
	w.ReserveReference()
	catalogRef, err := w.WriteToken(types.NewDict())
	if err != nil {
		t.Fatal(err)
	}
	err = w.Flush(serialize.DefaultVersionFloor, catalogRef)
	if !errors.Is(err, types.ErrReservedNotBound) {
		t.Errorf("expected ErrReservedNotBound, got %v", err)
	}
}

func TestFlushFailsWithoutCatalog(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf, false)
	if _, err := w.WriteToken(fontDict()); err != nil {
		t.Fatal(err)
	}
	err := w.Flush(serialize.DefaultVersionFloor, types.IndirectRef{ObjectNumber: 99})
	if !errors.Is(err, types.ErrCatalogMissing) {
		t.Errorf("expected ErrCatalogMissing, got %v", err)
	}
}

func TestFlushWritesContiguousXref(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf, false)
	ref1, err := w.WriteToken(fontDict())
	if err != nil {
		t.Fatal(err)
	}
	catalog := types.NewDict()
	catalog.Insert("Type", types.Name("Catalog"))
	catalogRef, err := w.WriteToken(catalog)
	if err != nil {
		t.Fatal(err)
	}

	if err := w.Flush(serialize.DefaultVersionFloor, catalogRef); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "%PDF-1.2\n") {
		t.Errorf("unexpected header: %q", out[:20])
	}
	if ref1.ObjectNumber != 1 || catalogRef.ObjectNumber != 2 {
		t.Fatalf("unexpected object numbering: %v %v", ref1, catalogRef)
	}
	if !strings.Contains(out, "1 0 obj\n") || !strings.Contains(out, "2 0 obj\n") {
		t.Errorf("missing object records in output:\n%s", out)
	}
	if !strings.Contains(out, "xref\n0 3\n") {
		t.Errorf("expected xref subsection covering 3 entries, got:\n%s", out)
	}
}
