package serialize

import (
	"crypto/rand"
	"fmt"

	"github.com/pkg/errors"

	"github.com/mechiko/pdfmerge/types"
)

// binaryMarker is the four high-bit-set bytes a PDF header comment line
// must carry to signal binary content to readers (spec.md §4.1).
var binaryMarker = []byte{0xA9, 0xCD, 0xC4, 0xD2}

// WriteFileHeader writes "%PDF-V.V\n" followed by the binary-marker
// comment line.
func WriteFileHeader(w *OffsetWriter, v Version) error {
	if _, err := w.WriteString("%PDF-" + v.String() + "\n"); err != nil {
		return err
	}
	if _, err := w.WriteString("%"); err != nil {
		return err
	}
	if _, err := w.Write(binaryMarker); err != nil {
		return err
	}
	_, err := w.WriteString("\n")
	return err
}

// WriteObjectRecord writes "N G obj\n<body>\nendobj\n" and returns the
// byte offset of the record's first byte.
func WriteObjectRecord(w *OffsetWriter, ref types.IndirectRef, body []byte) (int64, error) {
	offset := w.Offset
	if _, err := w.WriteString(fmt.Sprintf("%d %d obj\n", ref.ObjectNumber, ref.Generation)); err != nil {
		return 0, err
	}
	if _, err := w.Write(body); err != nil {
		return 0, err
	}
	if _, err := w.WriteString("\nendobj\n"); err != nil {
		return 0, err
	}
	return offset, nil
}

// WriteXref emits the cross-reference table and trailer (spec.md §4.1).
// entries maps object number to its absolute byte offset; object
// numbers must form a contiguous [1, max] range or ErrFragmentedObjectRange
// is returned.
func WriteXref(w *OffsetWriter, entries map[int]int64, catalogRef types.IndirectRef, infoRef *types.IndirectRef) error {
	if len(entries) == 0 {
		return errors.Wrap(types.ErrFragmentedObjectRange, "serialize: no objects written")
	}

	max := 0
	for n := range entries {
		if n <= 0 {
			return errors.Wrap(types.ErrFragmentedObjectRange, "serialize: non-positive object number")
		}
		if n > max {
			max = n
		}
	}
	if max != len(entries) {
		return errors.Wrap(types.ErrFragmentedObjectRange, "serialize: object numbers are not a contiguous [1,N] range")
	}

	if _, err := w.WriteString("\n"); err != nil {
		return err
	}
	p := w.Offset

	if _, err := w.WriteString("xref\n"); err != nil {
		return err
	}
	if _, err := w.WriteString(fmt.Sprintf("0 %d\n", max+1)); err != nil {
		return err
	}
	if _, err := w.WriteString("0000000000 65535 f \n"); err != nil {
		return err
	}
	for i := 1; i <= max; i++ {
		off, ok := entries[i]
		if !ok {
			return errors.Wrapf(types.ErrFragmentedObjectRange, "serialize: missing offset for object %d", i)
		}
		if _, err := w.WriteString(fmt.Sprintf("%010d %05d n \n", off, 0)); err != nil {
			return err
		}
	}

	if err := writeTrailer(w, max+1, catalogRef, infoRef); err != nil {
		return err
	}

	if _, err := w.WriteString("startxref\n"); err != nil {
		return err
	}
	if _, err := w.WriteString(fmt.Sprintf("%d\n", p)); err != nil {
		return err
	}
	_, err := w.WriteString("%%EOF")
	return err
}

func writeTrailer(w *OffsetWriter, size int, catalogRef types.IndirectRef, infoRef *types.IndirectRef) error {
	if _, err := w.WriteString("trailer\n"); err != nil {
		return err
	}

	id1, err := randomID()
	if err != nil {
		return errors.Wrap(err, "serialize: generating trailer Id")
	}
	id2, err := randomID()
	if err != nil {
		return errors.Wrap(err, "serialize: generating trailer Id")
	}

	dict := types.NewDict()
	dict.Insert("Size", types.Integer(size))
	dict.Insert("Root", catalogRef)
	dict.Insert("Id", types.Array{types.Hex{Data: id1}, types.Hex{Data: id2}})
	if infoRef != nil {
		dict.Insert("Info", *infoRef)
	}

	s := New()
	b, err := s.Serialize(dict)
	if err != nil {
		return err
	}
	if _, err := w.Write(b); err != nil {
		return err
	}
	_, err = w.WriteString("\n")
	return err
}

// randomID returns 16 fresh random bytes for a trailer Id entry.
func randomID() ([]byte, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}
