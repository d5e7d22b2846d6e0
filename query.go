package stockroom

import (
	"slices"

	"github.com/TheBitDrifter/mask"
)

type Operation int

const (
	OpAnd Operation = iota
	OpOr
	OpNot
)

type compositeNode struct {
	op         Operation
	children   []QueryNode
	components []Component
}

type query struct {
	root QueryNode
}

func newQuery() Query {
	return &query{}
}

func newCompositeNode(op Operation, components []Component) *compositeNode {
	return &compositeNode{
		op:         op,
		children:   make([]QueryNode, 0),
		components: components,
	}
}

func (n *compositeNode) Evaluate(sig mask.Mask, w *World) bool {
	nodeMask := maskFor(w, n.components)

	switch n.op {
	case OpAnd:
		if !sig.ContainsAll(nodeMask) {
			return false
		}
		for _, child := range n.children {
			if !child.Evaluate(sig, w) {
				return false
			}
		}
		return true

	case OpOr:
		if sig.ContainsAny(nodeMask) {
			return true
		}
		for _, child := range n.children {
			if child.Evaluate(sig, w) {
				return true
			}
		}
		return false

	case OpNot:
		for _, child := range n.children {
			if child.Evaluate(sig, w) {
				return false
			}
		}
		// ContainsNone is false for an empty mask
		if nodeMask.IsEmpty() {
			return true
		}
		return sig.ContainsNone(nodeMask)
	}
	return false
}

func (n *compositeNode) collect(dst []Component) []Component {
	dst = append(dst, n.components...)
	for _, child := range n.children {
		dst = child.collect(dst)
	}
	return dst
}

func (q *query) And(items ...any) QueryNode {
	return q.node(OpAnd, items)
}

func (q *query) Or(items ...any) QueryNode {
	return q.node(OpOr, items)
}

func (q *query) Not(items ...any) QueryNode {
	return q.node(OpNot, items)
}

// node builds a composite node and makes it the root. Nested calls run
// before the call they are passed to, so the outermost node ends up as root.
func (q *query) node(op Operation, items []any) QueryNode {
	components, children := q.processItems(items...)
	node := newCompositeNode(op, components)
	node.children = children
	q.root = node
	return node
}

func (q *query) processItems(items ...any) ([]Component, []QueryNode) {
	components := make([]Component, 0)
	children := make([]QueryNode, 0)

	for _, item := range items {
		switch v := item.(type) {
		case Component:
			components = append(components, v)
		case []Component:
			components = append(components, v...)
		case QueryNode:
			children = append(children, v)
		}
	}

	return components, children
}

func (q *query) Evaluate(sig mask.Mask, w *World) bool {
	if q.root == nil {
		return false
	}
	return q.root.Evaluate(sig, w)
}

func (q *query) collect(dst []Component) []Component {
	if q.root == nil {
		return dst
	}
	return q.root.collect(dst)
}

// Entities returns the live entities of w matching the query in ascending
// id order. An empty query matches nothing.
func (q *query) Entities(w *World) ([]Entity, error) {
	if q.root == nil {
		return nil, nil
	}
	decls, err := w.resolve(q.collect(nil))
	if err != nil {
		return nil, err
	}
	result := make([]Entity, 0)
	for _, e := range q.candidates(w) {
		if q.root.Evaluate(signature(e, decls), w) {
			result = append(result, e)
		}
	}
	slices.SortFunc(result, byID)
	return result, nil
}

// candidates narrows the scan to the smallest store when the root requires
// components, and falls back to every live entity otherwise.
func (q *query) candidates(w *World) []Entity {
	root, ok := q.root.(*compositeNode)
	if !ok || root.op != OpAnd || len(root.components) == 0 {
		if inner, nested := q.root.(*query); nested {
			return inner.candidates(w)
		}
		return w.entities.Alive()
	}
	var smallest store
	for _, c := range root.components {
		d, err := w.declarationFor(c)
		if err != nil {
			continue
		}
		if smallest == nil || d.store.Len() < smallest.Len() {
			smallest = d.store
		}
	}
	candidates := make([]Entity, 0, smallest.Len())
	for _, e := range smallest.Owners() {
		if w.entities.IsAlive(e) {
			candidates = append(candidates, e)
		}
	}
	return candidates
}
