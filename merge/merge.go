// Package merge is the thin entry point tying DedupWriter, GraphCopier,
// and PageTreeAssembler together into the single-pass pipeline spec.md
// §2 describes: PageTreeAssembler requests page copies, GraphCopier
// lowers them through DedupWriter, and DedupWriter flushes the final
// file once every document has been added.
//
// Named after pdfcpu's own merge package (_teacher_copy/merge/merge.go),
// whose XRefTables function is the closest analogue to Documents here -
// though pdfcpu merges by splicing pre-existing page trees together,
// this module always builds fresh synthetic intermediate nodes per
// spec.md §4.4.
package merge

import (
	"io"

	"github.com/mechiko/pdfmerge/pagetree"
	"github.com/mechiko/pdfmerge/writer"
)

// Documents merges docs, in order, into a single PDF written to sink.
// ownsSink controls whether the sink is closed once the merge completes
// or fails (spec.md §5).
func Documents(sink io.Writer, ownsSink bool, docs []pagetree.Document) error {
	w := writer.New(sink, ownsSink)

	asm := pagetree.New(w)
	for _, doc := range docs {
		if err := asm.AddDocument(doc); err != nil {
			_ = w.Close()
			return err
		}
	}

	catalogRef, version, err := asm.Finish()
	if err != nil {
		_ = w.Close()
		return err
	}

	return w.Flush(version, catalogRef)
}
