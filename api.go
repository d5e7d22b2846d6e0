package stockroom

import (
	"iter"

	"github.com/TheBitDrifter/mask"
)

type Query interface {
	QueryNode
	And(items ...any) QueryNode
	Or(items ...any) QueryNode
	Not(items ...any) QueryNode
	Entities(w *World) ([]Entity, error)
}

type QueryNode interface {
	Evaluate(signature mask.Mask, w *World) bool
	collect(dst []Component) []Component
}

type iCursor interface {
	Entities() iter.Seq[Entity]
	Next() bool
}

type Cache[T any] interface {
	GetIndex(string) (int, bool)
	GetItem(int) *T
	GetItem32(uint32) *T
	Register(string, T) (int, error)
	Len() int
	Clear()
}
