package stockroom

import "github.com/TheBitDrifter/table"

type factory struct{}

var Factory factory

// NewWorld builds a world managing exactly the given component types.
func (f factory) NewWorld(components ...Component) (*World, error) {
	return newWorld(components)
}

func (f factory) NewQuery() Query {
	return newQuery()
}

func (f factory) NewCursor(query QueryNode, w *World) *Cursor {
	return newCursor(query, w)
}

func FactoryNewComponent[T any]() AccessibleComponent[T] {
	return AccessibleComponent[T]{
		ElementType: table.FactoryNewElementType[T](),
	}
}

func FactoryNewCache[T any](cap int) Cache[T] {
	return &SimpleCache[T]{
		items:       make([]T, 0, cap),
		itemIndices: make(map[string]int),
		maxCapacity: cap,
	}
}
