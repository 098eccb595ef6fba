// Package pagetree implements PageTreeAssembler: it walks selected
// pages of each source catalog, copies each page via GraphCopier, groups
// pages under synthetic intermediate page-tree nodes respecting a
// fan-out cap and a resource-collision rule, then builds the root pages
// node and catalog (spec.md §4.4).
//
// Grounded on pdfcpu's merge.appendSourcePageTreeToDestPageTree (Kids
// append + Count update, _teacher_copy/merge/merge.go) and write/pages.go
// for the /Pages /Type /Kids /Count dictionary shape, generalized from
// "append one whole page tree" to "group N pages per synthetic node"
// since this merge core never reuses a source's own page-tree nodes.
package pagetree

import (
	"github.com/pkg/errors"

	"github.com/mechiko/pdfmerge/graphcopier"
	"github.com/mechiko/pdfmerge/log"
	"github.com/mechiko/pdfmerge/serialize"
	"github.com/mechiko/pdfmerge/types"
	"github.com/mechiko/pdfmerge/writer"
)

// FanOutCap is the maximum number of pages grouped under one synthetic
// intermediate page-tree node (spec.md §4.4).
const FanOutCap = 100

// Assembler accumulates pages from one or more source documents into a
// single output page tree and catalog.
type Assembler struct {
	w *writer.DedupWriter

	rootRef types.IndirectRef
	version serialize.Version

	currentGroup     []types.IndirectRef
	currentResources types.Dict
	currentParentRef types.IndirectRef

	groupRefs []types.IndirectRef
	pageCount int
}

// New reserves the root pages reference and returns a ready Assembler.
func New(w *writer.DedupWriter) *Assembler {
	a := &Assembler{
		w:       w,
		rootRef: w.ReserveReference(),
		version: serialize.DefaultVersionFloor,
	}
	a.openGroup()
	return a
}

func (a *Assembler) openGroup() {
	a.currentParentRef = a.w.ReserveReference()
	a.currentGroup = nil
	a.currentResources = types.NewDict()
}

// AddDocument copies doc's selected pages into the working page tree,
// in order, opening new groups as the fan-out cap or a resource-name
// collision requires.
func (a *Assembler) AddDocument(doc Document) error {
	if doc.Trailer != nil {
		if _, ok := doc.Trailer.Get("Encrypt"); ok {
			return errors.Wrap(types.ErrEncryptedSourceRejected, "pagetree: AddDocument")
		}
	}

	a.version = a.version.Max(doc.Version)

	copier := graphcopier.New(doc.Scanner, a.w)

	for _, idx := range doc.PageIndices {
		node, err := doc.Catalog.GetPageNode(idx)
		if err != nil {
			return errors.Wrapf(err, "pagetree: page %d", idx)
		}

		inherited, err := a.inheritedResources(doc.Scanner, node)
		if err != nil {
			return errors.Wrapf(err, "pagetree: resources for page %d", idx)
		}

		if len(a.currentGroup) >= FanOutCap || a.collides(inherited) {
			if err := a.closeGroup(); err != nil {
				return err
			}
			a.openGroup()
		}

		copiedResources, err := copier.Copy(inherited)
		if err != nil {
			return errors.Wrapf(err, "pagetree: copying resources for page %d", idx)
		}
		for _, k := range inherited.Keys() {
			v, _ := copiedResources.(types.Dict).Get(k)
			a.currentResources.Insert(k, v)
		}

		// The source page dict's own Parent entry points into the source
		// document's page tree, not this merge's output tree. Drop it
		// before copying so GraphCopier never tries to drag in (or
		// resolve, as a source reference) the whole source page tree;
		// the real Parent - an output reference - is set afterward,
		// directly on the already-copied dict, since it must never be
		// handed to the copier as if it were a source reference.
		pageDict := node.Dict.Clone()
		pageDict.Delete("Parent")

		copiedTok, err := copier.Copy(pageDict)
		if err != nil {
			return errors.Wrapf(err, "pagetree: copying page %d", idx)
		}
		copiedPage, ok := copiedTok.(types.Dict)
		if !ok {
			return errors.Errorf("pagetree: copied page %d did not remain a dictionary", idx)
		}
		copiedPage.Insert("Parent", a.currentParentRef)

		// Bind through a reservation rather than WriteToken: two distinct
		// source pages can carry byte-identical bodies (same Parent,
		// same otherwise-empty content), and WriteToken's dedup would
		// collapse them into one object shared across two Kids slots.
		// Each page leaf must remain its own object.
		pageRef := a.w.ReserveReference()
		ref, err := a.w.WriteReservedToken(pageRef.ObjectNumber, copiedPage)
		if err != nil {
			return errors.Wrapf(err, "pagetree: writing page %d", idx)
		}
		a.currentGroup = append(a.currentGroup, ref)
	}

	log.Stats.Printf("pagetree: added %d page(s), %d group(s) so far\n", len(doc.PageIndices), len(a.groupRefs))

	return nil
}

// collides reports whether any top-level key of inherited already
// appears in the working group's accumulated resources.
func (a *Assembler) collides(inherited types.Dict) bool {
	for _, k := range inherited.Keys() {
		if _, found := a.currentResources.Get(k); found {
			return true
		}
	}
	return false
}

// closeGroup writes the current group as an intermediate /Pages node,
// if it holds any pages.
func (a *Assembler) closeGroup() error {
	if len(a.currentGroup) == 0 {
		return nil
	}

	dict := types.NewDict()
	dict.Insert("Type", types.Name("Pages"))
	kids := make(types.Array, len(a.currentGroup))
	for i, r := range a.currentGroup {
		kids[i] = r
	}
	dict.Insert("Kids", kids)
	dict.Insert("Count", types.Integer(len(a.currentGroup)))
	dict.Insert("Parent", a.rootRef)
	if a.currentResources.Len() > 0 {
		dict.Insert("Resources", a.currentResources)
	}

	ref, err := a.w.WriteReservedToken(a.currentParentRef.ObjectNumber, dict)
	if err != nil {
		return errors.Wrap(err, "pagetree: closing group")
	}

	a.groupRefs = append(a.groupRefs, ref)
	a.pageCount += len(a.currentGroup)
	return nil
}

// Finish closes any open group, builds and writes the root /Pages node
// and /Catalog, and returns the catalog reference and output version
// ready for DedupWriter.Flush.
func (a *Assembler) Finish() (types.IndirectRef, serialize.Version, error) {
	if err := a.closeGroup(); err != nil {
		return types.IndirectRef{}, serialize.Version{}, err
	}

	if len(a.groupRefs) == 0 {
		return types.IndirectRef{}, serialize.Version{}, errors.Wrap(types.ErrEmptyDocument, "pagetree: Finish")
	}

	rootDict := types.NewDict()
	rootDict.Insert("Type", types.Name("Pages"))
	kids := make(types.Array, len(a.groupRefs))
	for i, r := range a.groupRefs {
		kids[i] = r
	}
	rootDict.Insert("Kids", kids)
	rootDict.Insert("Count", types.Integer(a.pageCount))

	if _, err := a.w.WriteReservedToken(a.rootRef.ObjectNumber, rootDict); err != nil {
		return types.IndirectRef{}, serialize.Version{}, errors.Wrap(err, "pagetree: binding root pages node")
	}

	catalogDict := types.NewDict()
	catalogDict.Insert("Type", types.Name("Catalog"))
	catalogDict.Insert("Pages", a.rootRef)

	catalogRef, err := a.w.WriteToken(catalogDict)
	if err != nil {
		return types.IndirectRef{}, serialize.Version{}, errors.Wrap(err, "pagetree: writing catalog")
	}

	log.Stats.Printf("pagetree: finished with %d page(s) across %d group(s), version %s\n",
		a.pageCount, len(a.groupRefs), a.version)

	return catalogRef, a.version, nil
}

// PageCount returns the number of pages added so far.
func (a *Assembler) PageCount() int {
	return a.pageCount
}

// inheritedResources walks node's parent chain (closest ancestor
// first) for the first dictionary carrying a Resources entry. Rotate,
// CropBox, and MediaBox inheritance is deliberately not resolved
// (spec.md §9(a), an open design question carried forward unchanged).
func (a *Assembler) inheritedResources(scanner types.SourceScanner, node *types.PageTreeNode) (types.Dict, error) {
	cur := node.Parent
	for cur != nil {
		tok, err := scanner.Resolve(*cur)
		if err != nil {
			return types.Dict{}, err
		}
		dict, ok := tok.(types.Dict)
		if !ok {
			return types.Dict{}, errors.Errorf("pagetree: parent %s did not resolve to a dictionary", *cur)
		}

		if r, found := dict.Get("Resources"); found {
			rd, err := resolveDict(scanner, r)
			if err != nil {
				return types.Dict{}, err
			}
			return rd, nil
		}

		next, found := dict.Get("Parent")
		if !found {
			break
		}
		ref, ok := next.(types.IndirectRef)
		if !ok {
			break
		}
		cur = &ref
	}
	return types.NewDict(), nil
}

// resolveDict resolves tok to a Dict, following one indirect reference
// if necessary (a Resources entry is commonly itself indirect).
func resolveDict(scanner types.SourceScanner, tok types.Token) (types.Dict, error) {
	if ref, ok := tok.(types.IndirectRef); ok {
		resolved, err := scanner.Resolve(ref)
		if err != nil {
			return types.Dict{}, err
		}
		tok = resolved
	}
	dict, ok := tok.(types.Dict)
	if !ok {
		return types.Dict{}, errors.Errorf("pagetree: Resources did not resolve to a dictionary")
	}
	return dict, nil
}
