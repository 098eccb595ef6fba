package types

import "github.com/pkg/errors"

// Sentinel errors for the merge core's fatal error kinds (spec.md §7).
// Built with errors.New so errors.Is matches through any errors.Wrap
// wrapping applied at package boundaries.
var (
	// ErrEncryptedSourceRejected fires when a source trailer carries an
	// encryption dictionary.
	ErrEncryptedSourceRejected = errors.New("pdfmerge: encrypted source rejected")

	// ErrEmptyDocument fires when a merge produced no pages.
	ErrEmptyDocument = errors.New("pdfmerge: empty document, no pages produced")

	// ErrCatalogMissing fires when the catalog reference is not among
	// the written object bodies at flush.
	ErrCatalogMissing = errors.New("pdfmerge: catalog reference missing at flush")

	// ErrFragmentedObjectRange fires when the xref table sees
	// non-contiguous object numbers.
	ErrFragmentedObjectRange = errors.New("pdfmerge: fragmented object number range")

	// ErrNotReserved fires when writeToken(number, ...) is called with a
	// number not currently reserved.
	ErrNotReserved = errors.New("pdfmerge: object number not reserved")

	// ErrReservedNotBound fires when reservations remain outstanding at
	// flush time.
	ErrReservedNotBound = errors.New("pdfmerge: reserved object number never bound")

	// ErrUnexpectedObjectWrapper fires when GraphCopier is handed a
	// top-level Object token.
	ErrUnexpectedObjectWrapper = errors.New("pdfmerge: unexpected top-level object wrapper")

	// ErrChainedReference fires when a scanner resolves a reference to
	// another reference instead of a concrete token.
	ErrChainedReference = errors.New("pdfmerge: chained indirect reference")

	// ErrSourceShortRead fires when reading back the output buffer
	// returns fewer bytes than were written.
	ErrSourceShortRead = errors.New("pdfmerge: short read reading back output buffer")
)
