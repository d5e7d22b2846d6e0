/*
Package stockroom provides sparse-set Entity-Component storage for games and simulations.

Stockroom keeps every component type in its own packed store indexed by entity id,
so adding, removing and looking up a component are all O(1) and each store can be
walked as one contiguous slice.

Core Concepts:

  - Entity: A 64-bit handle made of a slot id and a generation. A destroyed handle
    never becomes valid again, even after its id is reused.
  - Component: A data type declared once, when the World is built.
  - SparseSet: The packed store of one component type.
  - World: The closed set of stores plus the entity life cycle.
  - Query: A way to find entities with specific component combinations.

Basic Usage:

	// Declare components and build the world
	position := stockroom.FactoryNewComponent[Position]()
	velocity := stockroom.FactoryNewComponent[Velocity]()
	world, err := stockroom.Factory.NewWorld(position, velocity)
	if err != nil {
		return err
	}

	// Create entities
	e := world.CreateEntity()
	position.Add(world, e, Position{})
	velocity.Add(world, e, Velocity{X: 1})

	// Query entities and process them
	moving, _ := world.QueryEntities(position, velocity)
	for _, e := range moving {
		pos, _ := position.GetFromEntity(world, e)
		vel, _ := velocity.GetFromEntity(world, e)
		pos.X += vel.X
		pos.Y += vel.Y
	}

Pointers returned by Get stay valid only until the next structural change of the
same store: removal moves the last entry into the freed slot. Re-fetch by handle
instead of keeping them. Destroying an entity leaves its components in place but
unreachable; World.Sweep reclaims them.

A World is not safe for concurrent use.
*/
package stockroom
