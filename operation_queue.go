package stockroom

import (
	"go.uber.org/zap"
)

type operation struct {
	typ    operationType
	entity Entity
	apply  func(*World) error
}

type operationType int

const (
	opCancelled operationType = iota - 1
	opAddComponent
	opRemoveComponent
)

func (t operationType) String() string {
	switch t {
	case opAddComponent:
		return "add"
	case opRemoveComponent:
		return "remove"
	}
	return "cancelled"
}

type opQueue struct {
	componentOps   []operation
	destroyOps     []Entity
	pendingDestroy map[Entity]struct{}
	pendingMods    map[Entity][]int
}

func newOpQueue() opQueue {
	return opQueue{
		pendingDestroy: make(map[Entity]struct{}),
		pendingMods:    make(map[Entity][]int),
	}
}

func (q *opQueue) empty() bool {
	return len(q.componentOps) == 0 && len(q.destroyOps) == 0
}

func (q *opQueue) enqueueComponentOp(typ operationType, entity Entity, apply func(*World) error) {
	// Component operations on an entity pending destroy are pointless
	if _, isDestroyed := q.pendingDestroy[entity]; isDestroyed {
		return
	}
	q.pendingMods[entity] = append(q.pendingMods[entity], len(q.componentOps))
	q.componentOps = append(q.componentOps, operation{
		typ:    typ,
		entity: entity,
		apply:  apply,
	})
}

func (q *opQueue) enqueueDestroy(entities []Entity) {
	for _, entity := range entities {
		if _, exists := q.pendingDestroy[entity]; exists {
			continue
		}
		q.pendingDestroy[entity] = struct{}{}
		q.destroyOps = append(q.destroyOps, entity)

		// Drop any pending component operations for this entity
		for _, idx := range q.pendingMods[entity] {
			q.componentOps[idx].typ = opCancelled
		}
		delete(q.pendingMods, entity)
	}
}

func (q *opQueue) reset() {
	clear(q.componentOps)
	q.componentOps = q.componentOps[:0]
	q.destroyOps = q.destroyOps[:0]
	clear(q.pendingDestroy)
	clear(q.pendingMods)
}

// processOperationQueue applies component operations in the order they were
// queued, then destroys. Operations that no longer apply are logged and dropped.
func (w *World) processOperationQueue() {
	q := &w.opQueue
	if q.empty() {
		return
	}
	for _, op := range q.componentOps {
		if op.typ == opCancelled {
			continue
		}
		if err := op.apply(w); err != nil {
			logger().Debug("dropped queued component operation",
				zap.Stringer("op", op.typ),
				zap.Stringer("entity", op.entity),
				zap.Error(err),
			)
		}
	}
	for _, entity := range q.destroyOps {
		w.entities.Destroy(entity)
	}
	q.reset()
}
