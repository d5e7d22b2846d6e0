package stockroom

import (
	"fmt"
	"reflect"
)

type LockedWorldError struct{}

func (e LockedWorldError) Error() string {
	return "world is currently locked"
}

type ComponentExistsError struct {
	Type   reflect.Type
	Entity Entity
}

func (e ComponentExistsError) Error() string {
	return fmt.Sprintf("component already exists on entity %v: %v", e.Entity, e.Type)
}

type UnregisteredComponentError struct {
	Type reflect.Type
}

func (e UnregisteredComponentError) Error() string {
	return fmt.Sprintf("component type not declared in world: %v", e.Type)
}

type DuplicateComponentError struct {
	Type reflect.Type
}

func (e DuplicateComponentError) Error() string {
	return fmt.Sprintf("component type declared more than once: %v", e.Type)
}

type TooManyComponentsError struct {
	Count int
}

func (e TooManyComponentsError) Error() string {
	return fmt.Sprintf("%d component types declared, maximum is %d", e.Count, MaxComponentTypes)
}

type EntityNotAliveError struct {
	Entity Entity
}

func (e EntityNotAliveError) Error() string {
	return fmt.Sprintf("entity is not alive: %v", e.Entity)
}
