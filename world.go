package stockroom

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/TheBitDrifter/mask"
	"go.uber.org/zap"
)

// MaxComponentTypes is the largest number of component types one World can declare.
const MaxComponentTypes = 64

// World owns an EntityManager and one SparseSet per component type declared
// when it was built. The set of types is closed: using any other type is an
// error, never an implicit new store.
//
// Destroying an entity does not remove its components. Its entries become
// unreachable and stay in their stores until removed or swept.
type World struct {
	entities     *EntityManager
	declarations []*declaration
	byType       map[reflect.Type]*declaration
	locks        mask.Mask
	cursors      int
	opQueue      opQueue
}

type declaration struct {
	component Component
	store     store
	bit       uint32
}

func newWorld(components []Component) (*World, error) {
	if len(components) > MaxComponentTypes {
		return nil, TooManyComponentsError{Count: len(components)}
	}
	capacity := Config.initialCapacity
	w := &World{
		entities:     NewEntityManager(capacity),
		declarations: make([]*declaration, 0, len(components)),
		byType:       make(map[reflect.Type]*declaration, len(components)),
		opQueue:      newOpQueue(),
	}
	for i, c := range components {
		if c == nil {
			return nil, fmt.Errorf("component declaration %d is nil", i)
		}
		typ := c.componentType()
		if _, found := w.byType[typ]; found {
			return nil, DuplicateComponentError{Type: typ}
		}
		d := &declaration{
			component: c,
			store:     c.newStore(capacity),
			bit:       uint32(len(w.declarations)),
		}
		w.declarations = append(w.declarations, d)
		w.byType[typ] = d
	}
	return w, nil
}

// CreateEntity returns a new live entity. It is allowed while the world is locked.
func (w *World) CreateEntity() Entity {
	return w.entities.Create()
}

// DestroyEntity retires e. Destroying a handle that is not alive does nothing.
func (w *World) DestroyEntity(e Entity) error {
	if w.Locked() {
		return LockedWorldError{}
	}
	w.entities.Destroy(e)
	return nil
}

// DestroyEntities retires every given entity.
func (w *World) DestroyEntities(entities ...Entity) error {
	if w.Locked() {
		return LockedWorldError{}
	}
	for _, e := range entities {
		w.entities.Destroy(e)
	}
	return nil
}

// EnqueueDestroyEntities destroys directly when unlocked and defers otherwise.
func (w *World) EnqueueDestroyEntities(entities ...Entity) {
	if !w.Locked() {
		for _, e := range entities {
			w.entities.Destroy(e)
		}
		return
	}
	w.opQueue.enqueueDestroy(entities)
}

// IsAlive reports whether e is a live handle of this world.
func (w *World) IsAlive(e Entity) bool {
	return w.entities.IsAlive(e)
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return w.entities.Len()
}

// Entities returns every live entity in ascending id order.
func (w *World) Entities() []Entity {
	return w.entities.Alive()
}

// Components returns the declared components in declaration order.
func (w *World) Components() []Component {
	components := make([]Component, len(w.declarations))
	for i, d := range w.declarations {
		components[i] = d.component
	}
	return components
}

// Declared reports whether c's type is one of the world's component types.
func (w *World) Declared(c Component) bool {
	_, err := w.declarationFor(c)
	return err == nil
}

// RowIndexFor returns the signature bit of a declared component. Bits are
// dense and follow declaration order.
func (w *World) RowIndexFor(c Component) (uint32, error) {
	d, err := w.declarationFor(c)
	if err != nil {
		return 0, err
	}
	return d.bit, nil
}

// QueryEntities returns every live entity holding all of components, in
// ascending id order. With no components it returns every live entity.
func (w *World) QueryEntities(components ...Component) ([]Entity, error) {
	if len(components) == 0 {
		return w.entities.Alive(), nil
	}
	decls, err := w.resolve(components)
	if err != nil {
		return nil, err
	}
	smallest := decls[0]
	for _, d := range decls[1:] {
		if d.store.Len() < smallest.store.Len() {
			smallest = d
		}
	}
	result := make([]Entity, 0, smallest.store.Len())
	for _, e := range smallest.store.Owners() {
		if !w.entities.IsAlive(e) {
			continue
		}
		if holdsAll(e, decls) {
			result = append(result, e)
		}
	}
	slices.SortFunc(result, byID)
	return result, nil
}

// Sweep removes the entries of dead entities from every store and returns
// how many were removed.
func (w *World) Sweep() (int, error) {
	if w.Locked() {
		return 0, LockedWorldError{}
	}
	removed := 0
	for _, d := range w.declarations {
		removed += d.store.Sweep(w.entities.IsAlive)
	}
	if removed > 0 {
		logger().Debug("swept stale components", zap.Int("removed", removed))
	}
	return removed, nil
}

// AddLock sets a lock bit. The world stays locked while any bit is set.
func (w *World) AddLock(bit uint32) {
	w.locks.Mark(bit)
}

// RemoveLock clears a lock bit. Releasing the last bit applies every
// queued operation.
func (w *World) RemoveLock(bit uint32) {
	w.locks.Unmark(bit)
	if !w.Locked() {
		w.processOperationQueue()
	}
}

// Locked reports whether any lock bit is set.
func (w *World) Locked() bool {
	var none mask.Mask
	return w.locks != none
}

func (w *World) lockCursor() {
	if w.cursors == 0 {
		w.AddLock(CursorLockBit)
	}
	w.cursors++
}

func (w *World) unlockCursor() {
	w.cursors--
	if w.cursors == 0 {
		w.RemoveLock(CursorLockBit)
	}
}

func (w *World) declarationFor(c Component) (*declaration, error) {
	if c == nil {
		return nil, UnregisteredComponentError{}
	}
	typ := c.componentType()
	d, ok := w.byType[typ]
	if !ok {
		return nil, UnregisteredComponentError{Type: typ}
	}
	return d, nil
}

// resolve maps components to their declarations, dropping repeats.
func (w *World) resolve(components []Component) ([]*declaration, error) {
	decls := make([]*declaration, 0, len(components))
	for _, c := range components {
		d, err := w.declarationFor(c)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(decls, d) {
			decls = append(decls, d)
		}
	}
	return decls, nil
}

func holdsAll(e Entity, decls []*declaration) bool {
	for _, d := range decls {
		if !d.store.Has(e) {
			return false
		}
	}
	return true
}

// StoreFor resolves the world's store for T. It fails with
// UnregisteredComponentError when T was not declared.
func StoreFor[T any](w *World) (*SparseSet[T], error) {
	typ := reflect.TypeFor[T]()
	d, ok := w.byType[typ]
	if !ok {
		return nil, UnregisteredComponentError{Type: typ}
	}
	return d.store.(*SparseSet[T]), nil
}

// AddComponent attaches value to the live entity e. It fails if T is not
// declared, e is not alive, e already holds a T, or the world is locked.
func AddComponent[T any](w *World, e Entity, value T) error {
	if w.Locked() {
		return LockedWorldError{}
	}
	s, err := StoreFor[T](w)
	if err != nil {
		return err
	}
	if !w.entities.IsAlive(e) {
		return EntityNotAliveError{Entity: e}
	}
	return s.Add(e, value)
}

// SetComponent attaches value to the live entity e, overwriting any T it
// already holds.
func SetComponent[T any](w *World, e Entity, value T) error {
	if w.Locked() {
		return LockedWorldError{}
	}
	s, err := StoreFor[T](w)
	if err != nil {
		return err
	}
	if !w.entities.IsAlive(e) {
		return EntityNotAliveError{Entity: e}
	}
	s.Set(e, value)
	return nil
}

// RemoveComponent detaches T from e. Removing an absent component does nothing.
func RemoveComponent[T any](w *World, e Entity) error {
	if w.Locked() {
		return LockedWorldError{}
	}
	s, err := StoreFor[T](w)
	if err != nil {
		return err
	}
	s.Remove(e)
	return nil
}

// GetComponent returns e's T. The pointer is valid until the next structural
// change to T's store, including changes made for other entities. It reports
// false when e is not alive, holds no T, or T is not declared.
func GetComponent[T any](w *World, e Entity) (*T, bool) {
	s, err := StoreFor[T](w)
	if err != nil {
		logger().Debug("read of undeclared component", zap.Error(err))
		return nil, false
	}
	if !w.entities.IsAlive(e) {
		return nil, false
	}
	return s.Get(e)
}

// HasComponent reports whether the live entity e holds a T.
func HasComponent[T any](w *World, e Entity) bool {
	s, err := StoreFor[T](w)
	if err != nil {
		logger().Debug("read of undeclared component", zap.Error(err))
		return false
	}
	return w.entities.IsAlive(e) && s.Has(e)
}

// EnqueueAddComponent adds directly when the world is unlocked and defers
// the add until the last lock is released otherwise.
func EnqueueAddComponent[T any](w *World, e Entity, value T) error {
	if !w.Locked() {
		return AddComponent(w, e, value)
	}
	if _, err := StoreFor[T](w); err != nil {
		return err
	}
	w.opQueue.enqueueComponentOp(opAddComponent, e, func(w *World) error {
		return AddComponent(w, e, value)
	})
	return nil
}

// EnqueueRemoveComponent removes directly when the world is unlocked and
// defers the removal otherwise.
func EnqueueRemoveComponent[T any](w *World, e Entity) error {
	if !w.Locked() {
		return RemoveComponent[T](w, e)
	}
	if _, err := StoreFor[T](w); err != nil {
		return err
	}
	w.opQueue.enqueueComponentOp(opRemoveComponent, e, func(w *World) error {
		return RemoveComponent[T](w, e)
	})
	return nil
}
