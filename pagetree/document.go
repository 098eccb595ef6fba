package pagetree

import (
	"github.com/mechiko/pdfmerge/serialize"
	"github.com/mechiko/pdfmerge/types"
)

// Document is one source to merge: its catalog (for page lookup), a
// scanner able to resolve its indirect references, the file version it
// was parsed at, the 1-based page indices selected from it, and an
// optional trailer dictionary used only to reject encrypted sources.
type Document struct {
	Catalog     types.Catalog
	Scanner     types.SourceScanner
	Version     serialize.Version
	PageIndices []int
	// Trailer is the source's trailer dictionary, if the caller has it.
	// A non-nil Trailer carrying an "Encrypt" entry fails the merge with
	// ErrEncryptedSourceRejected (spec.md §7).
	Trailer *types.Dict
}
