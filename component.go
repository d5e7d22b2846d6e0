package stockroom

import (
	"reflect"

	"github.com/TheBitDrifter/table"
)

// Component represents a data attribute/state type that can be attached to entities
// Components are declared once when a World is built and are used to create queries
type Component interface {
	table.ElementType
	componentType() reflect.Type
	newStore(capacity int) store
}

// AccessibleComponent is the declaration of component type T
// It provides methods to reach T's values through a World or a Cursor
type AccessibleComponent[T any] struct {
	table.ElementType
}

func (c AccessibleComponent[T]) componentType() reflect.Type {
	return reflect.TypeFor[T]()
}

func (c AccessibleComponent[T]) newStore(capacity int) store {
	return NewSparseSet[T](capacity)
}
