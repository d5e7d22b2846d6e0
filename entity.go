package stockroom

import "fmt"

// Entity is an opaque handle to an object in a World.
// The low 32 bits hold the slot id and the high 32 bits its generation.
type Entity uint64

const idMask = 0xFFFFFFFF

// NewEntity packs an id and a generation into a handle.
func NewEntity(id, generation uint32) Entity {
	return Entity(uint64(generation)<<32 | uint64(id))
}

// ID returns the slot id of the handle.
func (e Entity) ID() uint32 { return uint32(e & idMask) }

// Generation returns the generation of the handle.
func (e Entity) Generation() uint32 { return uint32(e >> 32) }

func (e Entity) String() string {
	return fmt.Sprintf("Entity(%d@%d)", e.ID(), e.Generation())
}

func byID(a, b Entity) int {
	switch {
	case a.ID() < b.ID():
		return -1
	case a.ID() > b.ID():
		return 1
	}
	return 0
}
