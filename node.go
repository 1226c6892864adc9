package sift

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Node wraps a single element or text fragment of a parsed document. Every
// search returns a fixed wrapper kind: single-match queries return a Node
// (NullNode on no match), multi-match queries return a Collection, value
// extractions return a Scalar. Text fragments are first-class Nodes with an
// empty name, no attributes and no children.
type Node struct {
	sel  *goquery.Selection // exactly one underlying node when populated
	null bool
	err  error
}

// NullNode returns the null Node, produced when a single-match query finds
// nothing.
func NullNode() *Node { return &Node{null: true} }

func nullNodeErr(err error) *Node { return &Node{null: true, err: err} }

// FromDocument wraps a parsed goquery document's root.
func FromDocument(doc *goquery.Document) *Node {
	if doc == nil {
		return NullNode()
	}
	return &Node{sel: doc.Selection}
}

// FromSelection wraps a goquery selection by shape: no nodes yields a
// NullNode, one node a Node, several a Collection of Nodes.
func FromSelection(sel *goquery.Selection) Wrapper {
	switch {
	case sel == nil || sel.Length() == 0:
		return NullNode()
	case sel.Length() == 1:
		return &Node{sel: sel}
	}
	return manyNodes(sel)
}

func (n *Node) node() *html.Node { return n.sel.Nodes[0] }

// one wraps the first node of a selection, or NullNode when empty.
func one(sel *goquery.Selection) *Node {
	if sel.Length() == 0 {
		return NullNode()
	}
	return &Node{sel: sel.First()}
}

// manyNodes wraps every node of a selection into a Collection.
func manyNodes(sel *goquery.Selection) *Collection {
	items := make([]Wrapper, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		items = append(items, &Node{sel: s})
	})
	return NewCollection(items)
}

// IsNull reports whether the node holds no element.
func (n *Node) IsNull() bool { return n.null }

// IsText reports whether the node wraps a text fragment rather than an
// element.
func (n *Node) IsText() bool {
	return !n.null && n.node().Type == html.TextNode
}

// Val returns the underlying single-element selection, or a NullValueError.
func (n *Node) Val() (any, error) {
	if n.null {
		return nil, &NullValueError{Cause: n.err}
	}
	return n.sel, nil
}

// Selection returns the underlying goquery selection for interop.
func (n *Node) Selection() (*goquery.Selection, error) {
	if n.null {
		return nil, &NullValueError{Cause: n.err}
	}
	return n.sel, nil
}

// OrElse substitutes a replacement value when null.
func (n *Node) OrElse(v any) Wrapper {
	if n.null {
		return Wrap(v)
	}
	return n
}

// NonNull asserts the node matched; useful for being strict about portions
// of a query that must succeed while later steps may fall back.
func (n *Node) NonNull() (*Node, error) {
	if n.null {
		return nil, &NullValueError{Msg: "node is null", Cause: n.err}
	}
	return n, nil
}

// Require asserts pred holds for this node. A null node always fails.
func (n *Node) Require(pred any, msg string) (*Node, error) {
	if err := requireOn(n, pred, msg); err != nil {
		return nil, err
	}
	return n, nil
}

// Map applies fn to the underlying selection and rewraps the result by
// shape.
func (n *Node) Map(fn any) Wrapper {
	if n.null {
		return n
	}
	return mapValue(n.sel, fn)
}

// Apply applies fn to the node itself.
func (n *Node) Apply(fn any) Wrapper {
	if n.null {
		return n
	}
	return mapValue(n, fn)
}

// Item treats string keys as attribute lookups, so node.Item("href") reads
// like indexing an attribute map.
func (n *Node) Item(key any) Wrapper {
	name, ok := key.(string)
	if !ok {
		return nullScalarErr(fmt.Errorf("node keys are attribute names, got %T", key))
	}
	return n.Attr(name)
}

// Find returns the first descendant matching the CSS selector, or NullNode.
func (n *Node) Find(selector string) *Node {
	if n.null {
		return NullNode()
	}
	return one(n.sel.Find(selector))
}

// FindAll returns every descendant matching the CSS selector. No matches
// yield an empty (not null) Collection.
func (n *Node) FindAll(selector string) *Collection {
	if n.null {
		return NullCollection()
	}
	return manyNodes(n.sel.Find(selector))
}

// Parent returns the parent element, or NullNode at the root.
func (n *Node) Parent() *Node {
	if n.null {
		return NullNode()
	}
	return one(n.sel.Parent())
}

// Parents returns the ancestor elements, nearest first.
func (n *Node) Parents() *Collection {
	if n.null {
		return NullCollection()
	}
	return manyNodes(n.sel.Parents())
}

// FindParent returns the nearest ancestor matching the selector.
func (n *Node) FindParent(selector string) *Node {
	if n.null {
		return NullNode()
	}
	return one(n.sel.Closest(selector))
}

// Children returns the element children.
func (n *Node) Children() *Collection {
	if n.null {
		return NullCollection()
	}
	return manyNodes(n.sel.Children())
}

// Contents returns all child nodes including text fragments.
func (n *Node) Contents() *Collection {
	if n.null {
		return NullCollection()
	}
	return manyNodes(n.sel.Contents())
}

// Descendants returns every element nested inside this node.
func (n *Node) Descendants() *Collection {
	if n.null {
		return NullCollection()
	}
	return manyNodes(n.sel.Find("*"))
}

// NextSibling returns the element sibling after this node.
func (n *Node) NextSibling() *Node {
	if n.null {
		return NullNode()
	}
	return one(n.sel.Next())
}

// PrevSibling returns the element sibling before this node.
func (n *Node) PrevSibling() *Node {
	if n.null {
		return NullNode()
	}
	return one(n.sel.Prev())
}

// NextSiblings returns all element siblings after this node, nearest first.
func (n *Node) NextSiblings() *Collection {
	if n.null {
		return NullCollection()
	}
	return NewCollection(n.siblings(true, ""))
}

// PrevSiblings returns all element siblings before this node, nearest
// first.
func (n *Node) PrevSiblings() *Collection {
	if n.null {
		return NullCollection()
	}
	return NewCollection(n.siblings(false, ""))
}

// FindNextSibling returns the nearest following sibling matching the
// selector.
func (n *Node) FindNextSibling(selector string) *Node {
	if n.null {
		return NullNode()
	}
	return firstOrNull(n.siblings(true, selector))
}

// FindPrevSibling returns the nearest preceding sibling matching the
// selector.
func (n *Node) FindPrevSibling(selector string) *Node {
	if n.null {
		return NullNode()
	}
	return firstOrNull(n.siblings(false, selector))
}

// FindNextSiblings returns all following siblings matching the selector,
// nearest first.
func (n *Node) FindNextSiblings(selector string) *Collection {
	if n.null {
		return NullCollection()
	}
	return NewCollection(n.siblings(true, selector))
}

// FindPrevSiblings returns all preceding siblings matching the selector,
// nearest first.
func (n *Node) FindPrevSiblings(selector string) *Collection {
	if n.null {
		return NullCollection()
	}
	return NewCollection(n.siblings(false, selector))
}

// siblings walks element siblings in one direction, nearest first,
// optionally filtered by selector.
func (n *Node) siblings(forward bool, selector string) []Wrapper {
	var out []Wrapper
	step := func(nd *html.Node) *html.Node { return nd.PrevSibling }
	if forward {
		step = func(nd *html.Node) *html.Node { return nd.NextSibling }
	}
	for c := step(n.node()); c != nil; c = step(c) {
		if c.Type != html.ElementNode {
			continue
		}
		sel := singleSel(c)
		if selector != "" && !sel.Is(selector) {
			continue
		}
		out = append(out, &Node{sel: sel})
	}
	return out
}

func firstOrNull(items []Wrapper) *Node {
	if len(items) == 0 {
		return NullNode()
	}
	return items[0].(*Node)
}

// Text returns the concatenated text of this node and its descendants.
func (n *Node) Text() *Scalar {
	if n.null {
		return NullScalar()
	}
	return NewScalar(n.sel.Text())
}

// Name returns the tag name, or an empty string for text fragments.
func (n *Node) Name() *Scalar {
	if n.null {
		return NullScalar()
	}
	if n.node().Type != html.ElementNode {
		return NewScalar("")
	}
	return NewScalar(n.node().Data)
}

// Attrs returns the attribute map; empty for text fragments.
func (n *Node) Attrs() *Scalar {
	if n.null {
		return NullScalar()
	}
	attrs := make(map[string]string, len(n.node().Attr))
	for _, a := range n.node().Attr {
		attrs[a.Key] = a.Val
	}
	return NewScalar(attrs)
}

// Attr returns one attribute value, or NullScalar when absent.
func (n *Node) Attr(name string) *Scalar {
	if n.null {
		return NullScalar()
	}
	v, ok := n.sel.Attr(name)
	if !ok {
		return NullScalar()
	}
	return NewScalar(v)
}

// HTML renders the node back to markup, outer tag included.
func (n *Node) HTML() *Scalar {
	if n.null {
		return NullScalar()
	}
	out, err := goquery.OuterHtml(n.sel)
	if err != nil {
		return nullScalarErr(err)
	}
	return NewScalar(out)
}

// Dump evaluates named functions against this node into a Scalar record.
func (n *Node) Dump(fields map[string]any) *Scalar {
	return dumpWrapper(n, fields)
}

// String renders the node for debugging.
func (n *Node) String() string {
	if n.null {
		return "NullNode()"
	}
	if n.IsText() {
		return fmt.Sprintf("Node(text %q)", n.node().Data)
	}
	return fmt.Sprintf("Node(<%s>)", n.node().Data)
}
