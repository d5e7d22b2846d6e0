package stockroom

// Add attaches value to entity, see AddComponent
func (c AccessibleComponent[T]) Add(w *World, entity Entity, value T) error {
	return AddComponent(w, entity, value)
}

// Set attaches or overwrites value on entity, see SetComponent
func (c AccessibleComponent[T]) Set(w *World, entity Entity, value T) error {
	return SetComponent(w, entity, value)
}

// Remove detaches the component from entity, see RemoveComponent
func (c AccessibleComponent[T]) Remove(w *World, entity Entity) error {
	return RemoveComponent[T](w, entity)
}

// EnqueueAdd adds directly when the world is unlocked and defers otherwise
func (c AccessibleComponent[T]) EnqueueAdd(w *World, entity Entity, value T) error {
	return EnqueueAddComponent(w, entity, value)
}

// EnqueueRemove removes directly when the world is unlocked and defers otherwise
func (c AccessibleComponent[T]) EnqueueRemove(w *World, entity Entity) error {
	return EnqueueRemoveComponent[T](w, entity)
}

// GetFromEntity retrieves the component value for the specified entity
func (c AccessibleComponent[T]) GetFromEntity(w *World, entity Entity) (*T, bool) {
	return GetComponent[T](w, entity)
}

// GetFromCursor retrieves the component value for the entity at the cursor position
// It returns nil when that entity does not hold the component or the cursor
// is not on an entity
func (c AccessibleComponent[T]) GetFromCursor(cursor *Cursor) *T {
	_, v := c.GetFromCursorSafe(cursor)
	return v
}

// GetFromCursorSafe retrieves the component value at the cursor position and
// reports whether it exists
func (c AccessibleComponent[T]) GetFromCursorSafe(cursor *Cursor) (bool, *T) {
	if !cursor.positioned {
		return false, nil
	}
	v, ok := GetComponent[T](cursor.world, cursor.current)
	return ok, v
}

// Has reports whether entity holds the component
func (c AccessibleComponent[T]) Has(w *World, entity Entity) bool {
	return HasComponent[T](w, entity)
}

// Store resolves the world's packed store for T
func (c AccessibleComponent[T]) Store(w *World) (*SparseSet[T], error) {
	return StoreFor[T](w)
}
