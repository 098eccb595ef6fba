package writer

import (
	"github.com/pkg/errors"

	"github.com/mechiko/pdfmerge/log"
	"github.com/mechiko/pdfmerge/serialize"
	"github.com/mechiko/pdfmerge/types"
)

// lenner is implemented by *bytes.Buffer; when the caller's sink is one,
// Flush reads back its length to confirm nothing was silently dropped
// on write (spec.md §6/§7: ErrSourceShortRead).
type lenner interface {
	Len() int
}

// Flush writes the header, every stored object body in insertion order,
// and finally the cross-reference table/trailer, then releases the
// sink per Close's ownership rule. version is the output file version;
// catalogRef must already have been bound via WriteToken/WriteReservedToken.
func (w *DedupWriter) Flush(version serialize.Version, catalogRef types.IndirectRef) (err error) {
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if len(w.reserved) > 0 {
		return errors.Wrapf(types.ErrReservedNotBound, "writer: %d reservation(s) outstanding", len(w.reserved))
	}

	ow := serialize.NewOffsetWriter(w.sink)

	if err := serialize.WriteFileHeader(ow, version); err != nil {
		return errors.Wrap(err, "writer: writing file header")
	}

	offsets := make(map[int]int64, len(w.bodies))
	var catalogFound bool

	for _, e := range w.bodies {
		off, err := serialize.WriteObjectRecord(ow, e.ref, e.data)
		if err != nil {
			return errors.Wrapf(err, "writer: writing object %d", e.ref.ObjectNumber)
		}
		offsets[e.ref.ObjectNumber] = off
		if e.ref == catalogRef {
			catalogFound = true
		}
	}

	if !catalogFound {
		return errors.Wrap(types.ErrCatalogMissing, "writer: flush")
	}

	if err := serialize.WriteXref(ow, offsets, catalogRef, nil); err != nil {
		return err
	}

	if err := ow.Flush(); err != nil {
		return errors.Wrap(err, "writer: flushing sink")
	}

	if lr, ok := w.sink.(lenner); ok && lr.Len() < int(ow.Offset) {
		return errors.Wrapf(types.ErrSourceShortRead, "writer: wrote %d bytes but sink holds %d", ow.Offset, lr.Len())
	}

	log.Stats.Printf("writer: flushed %d objects, %d bytes\n", len(w.bodies), ow.Offset)

	return nil
}
