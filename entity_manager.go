package stockroom

import (
	"math"
	"slices"

	"go.uber.org/zap"
)

type slot struct {
	generation uint32
	alive      bool
	aliveAt    int // position in EntityManager.alive, -1 while dead
}

// EntityManager owns the id and generation life cycle of entities.
//
// Retired handles are reused oldest first. The generation of a reused id is
// bumped when it leaves the free list, not when it enters it. An id whose
// generation is exhausted is retired for good instead of wrapping.
type EntityManager struct {
	slots   []slot
	free    handleQueue
	alive   []uint32
	retired int
}

// NewEntityManager returns a manager with room for capacity slots before it
// has to grow.
func NewEntityManager(capacity int) *EntityManager {
	return &EntityManager{
		slots: make([]slot, 0, capacity),
		alive: make([]uint32, 0, capacity),
	}
}

// Create returns a new live handle in O(1).
func (m *EntityManager) Create() Entity {
	if m.free.len() == 0 {
		id := uint32(len(m.slots))
		m.slots = append(m.slots, slot{alive: true, aliveAt: len(m.alive)})
		m.alive = append(m.alive, id)
		return NewEntity(id, 0)
	}
	old := m.free.pop()
	id := old.ID()
	s := &m.slots[id]
	s.generation = old.Generation() + 1
	s.alive = true
	s.aliveAt = len(m.alive)
	m.alive = append(m.alive, id)
	return NewEntity(id, s.generation)
}

// Destroy retires e. It reports false and does nothing when e is not alive.
func (m *EntityManager) Destroy(e Entity) bool {
	if !m.IsAlive(e) {
		return false
	}
	id := e.ID()
	s := &m.slots[id]
	s.alive = false

	last := len(m.alive) - 1
	moved := m.alive[last]
	m.alive[s.aliveAt] = moved
	m.slots[moved].aliveAt = s.aliveAt
	m.alive = m.alive[:last]
	s.aliveAt = -1

	if e.Generation() == math.MaxUint32 {
		m.retired++
		logger().Warn("entity id retired, generations exhausted", zap.Uint32("id", id))
		return true
	}
	m.free.push(e)
	return true
}

// IsAlive reports whether e is the current live handle of its slot.
func (m *EntityManager) IsAlive(e Entity) bool {
	id := e.ID()
	if int(id) >= len(m.slots) {
		return false
	}
	s := m.slots[id]
	return s.alive && s.generation == e.Generation()
}

// Alive returns every live handle in ascending id order.
func (m *EntityManager) Alive() []Entity {
	ids := slices.Clone(m.alive)
	slices.Sort(ids)
	entities := make([]Entity, len(ids))
	for i, id := range ids {
		entities[i] = NewEntity(id, m.slots[id].generation)
	}
	return entities
}

// Len returns the number of live entities.
func (m *EntityManager) Len() int { return len(m.alive) }

// Cap returns the number of slots ever allocated.
func (m *EntityManager) Cap() int { return len(m.slots) }

// Retired returns the number of ids withdrawn from circulation.
func (m *EntityManager) Retired() int { return m.retired }

// handleQueue is a growable ring buffer of retired handles.
type handleQueue struct {
	buf  []Entity
	head int
	size int
}

func (q *handleQueue) len() int { return q.size }

func (q *handleQueue) push(e Entity) {
	if q.size == len(q.buf) {
		q.grow()
	}
	q.buf[(q.head+q.size)%len(q.buf)] = e
	q.size++
}

func (q *handleQueue) pop() Entity {
	e := q.buf[q.head]
	q.head = (q.head + 1) % len(q.buf)
	q.size--
	return e
}

func (q *handleQueue) grow() {
	buf := make([]Entity, max(2*len(q.buf), 16))
	for i := 0; i < q.size; i++ {
		buf[i] = q.buf[(q.head+i)%len(q.buf)]
	}
	q.buf = buf
	q.head = 0
}
