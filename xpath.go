package sift

import (
	"fmt"

	"github.com/antchfx/htmlquery"
)

// XPath selects every descendant matching an XPath expression. Invalid
// expressions yield a null Collection carrying the compile error.
func (n *Node) XPath(expr string) *Collection {
	if n.null {
		return NullCollection()
	}
	nodes, err := htmlquery.QueryAll(n.node(), expr)
	if err != nil {
		return nullCollectionErr(fmt.Errorf("xpath %q: %w", expr, err))
	}
	items := make([]Wrapper, 0, len(nodes))
	for _, nd := range nodes {
		items = append(items, &Node{sel: singleSel(nd)})
	}
	return NewCollection(items)
}

// XPathOne selects the first match of an XPath expression, or NullNode.
func (n *Node) XPathOne(expr string) *Node {
	if n.null {
		return NullNode()
	}
	nd, err := htmlquery.Query(n.node(), expr)
	if err != nil {
		return nullNodeErr(fmt.Errorf("xpath %q: %w", expr, err))
	}
	if nd == nil {
		return NullNode()
	}
	return &Node{sel: singleSel(nd)}
}
