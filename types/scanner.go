package types

// SourceScanner resolves an indirect reference in one source document to
// its concrete (non-reference) token. A compliant scanner resolves
// reference chains itself; GraphCopier treats a returned IndirectRef as
// a programmer error (ErrChainedReference).
type SourceScanner interface {
	Resolve(ref IndirectRef) (Token, error)
}

// PageTreeNode is one node of a source document's page tree, as handed
// back by Catalog.GetPageNode.
type PageTreeNode struct {
	// Dict is the node's own dictionary (a Page or Pages dictionary).
	Dict Dict
	// Parent is the reference to this node's parent in the source
	// document, or nil at the page-tree root.
	Parent *IndirectRef
	// IsPage is true when Dict is a leaf /Type /Page node.
	IsPage bool
}

// Catalog resolves 1-based page indices to page-tree nodes within one
// source document.
type Catalog interface {
	GetPageNode(oneBasedIndex int) (*PageTreeNode, error)
}
