// Package graphcopier implements GraphCopier: a cycle-safe deep copy of
// a token graph from one source document into a DedupWriter, rewriting
// every source indirect reference into an output reference exactly once
// (spec.md §4.3).
//
// Grounded on pdfcpu's merge.patchObject/patchDict/patchArray (recursive
// structural walk rewriting indirect references, _teacher_copy/merge/merge.go),
// generalized from pdfcpu's pre-computed object-number lookup table to
// the lazy, reservation-based scheme spec.md §4.3 requires for cyclic
// graphs discovered during the walk itself.
package graphcopier

import (
	"github.com/pkg/errors"

	"github.com/mechiko/pdfmerge/log"
	"github.com/mechiko/pdfmerge/types"
	"github.com/mechiko/pdfmerge/writer"
)

// Copier copies tokens from one source document into a shared
// DedupWriter. It is scoped per source document: construct one per
// document so globalMap does not leak translations across documents
// that may reuse the same (objectNumber, generation) pairs.
type Copier struct {
	scanner types.SourceScanner
	writer  *writer.DedupWriter
	global  map[types.IndirectRef]types.IndirectRef
}

// New returns a Copier reading from scanner and writing through w.
func New(scanner types.SourceScanner, w *writer.DedupWriter) *Copier {
	return &Copier{
		scanner: scanner,
		writer:  w,
		global:  map[types.IndirectRef]types.IndirectRef{},
	}
}

// Copy deep-copies tok, recursively lowering any reachable indirect
// references through the Copier's DedupWriter. Each top-level call gets
// its own cycle-detection scope (pending); translations already
// finalized by a previous Copy call are reused via global.
func (c *Copier) Copy(tok types.Token) (types.Token, error) {
	pending := map[types.IndirectRef]*types.IndirectRef{}
	return c.copyToken(tok, pending)
}

func (c *Copier) copyToken(tok types.Token, pending map[types.IndirectRef]*types.IndirectRef) (types.Token, error) {
	switch t := tok.(type) {

	case types.Null, types.Boolean, types.Integer, types.Real, types.Name, types.StringLiteral, types.Hex, types.Comment:
		return tok, nil

	case types.Array:
		out := make(types.Array, len(t))
		for i, e := range t {
			cv, err := c.copyToken(e, pending)
			if err != nil {
				return nil, err
			}
			out[i] = cv
		}
		return out, nil

	case types.Dict:
		out := types.NewDict()
		for _, k := range t.Keys() {
			v, _ := t.Get(k)
			cv, err := c.copyToken(v, pending)
			if err != nil {
				return nil, err
			}
			out.Insert(k, cv)
		}
		return out, nil

	case types.Stream:
		d, err := c.copyToken(t.Dict, pending)
		if err != nil {
			return nil, err
		}
		return types.Stream{Dict: d.(types.Dict), Data: t.Data}, nil

	case types.Object:
		return nil, errors.Wrap(types.ErrUnexpectedObjectWrapper, "graphcopier")

	case types.IndirectRef:
		return c.resolveRef(t, pending)

	default:
		return nil, errors.Errorf("graphcopier: unknown token type %T", tok)
	}
}

// resolveRef implements the three-case cycle-detection rule from
// spec.md §4.3: already-finalized, re-entrant-unset (closes a cycle by
// reserving on the second visit), and first-visit (recurse then bind).
func (c *Copier) resolveRef(r types.IndirectRef, pending map[types.IndirectRef]*types.IndirectRef) (types.Token, error) {
	if out, ok := c.global[r]; ok {
		return out, nil
	}

	if p, ok := pending[r]; ok {
		if p != nil {
			return *p, nil
		}
		ref := c.writer.ReserveReference()
		pending[r] = &ref
		c.global[r] = ref
		log.Debug.Printf("graphcopier: cycle closed at %s -> %s\n", r, ref)
		return ref, nil
	}

	pending[r] = nil
	src, err := c.scanner.Resolve(r)
	if err != nil {
		return nil, errors.Wrapf(err, "graphcopier: resolving %s", r)
	}
	if _, chained := src.(types.IndirectRef); chained {
		return nil, errors.Wrapf(types.ErrChainedReference, "graphcopier: %s resolved to another reference", r)
	}

	copied, err := c.copyToken(src, pending)
	if err != nil {
		return nil, err
	}

	if reserved := pending[r]; reserved != nil {
		if _, err := c.writer.WriteReservedToken(reserved.ObjectNumber, copied); err != nil {
			return nil, err
		}
		return *reserved, nil
	}

	out, err := c.writer.WriteToken(copied)
	if err != nil {
		return nil, err
	}
	c.global[r] = out
	return out, nil
}
