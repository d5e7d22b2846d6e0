package stockroom

import (
	"iter"

	iter_util "github.com/TheBitDrifter/util/iter"
)

// CursorLockBit is the lock bit held by cursors while they iterate.
const CursorLockBit uint32 = 0

var _ iCursor = &Cursor{}

// Cursor walks the entities matching a query. The world is locked from the
// first call to Next until the cursor is exhausted or Reset, so structural
// changes requested meanwhile have to go through the Enqueue methods.
type Cursor struct {
	query *query
	world *World

	matched     []Entity
	index       int
	current     Entity
	positioned  bool
	initialized bool
	err         error
}

func newCursor(node QueryNode, w *World) *Cursor {
	return &Cursor{
		query: &query{root: node},
		world: w,
	}
}

// Next advances to the following matching entity.
func (c *Cursor) Next() bool {
	if !c.initialized {
		c.initialize()
	}
	if c.index < len(c.matched) {
		c.current = c.matched[c.index]
		c.positioned = true
		c.index++
		return true
	}
	c.Reset()
	return false
}

// Entities yields every matching entity. Breaking out early resets the cursor.
func (c *Cursor) Entities() iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		for c.Next() {
			if !yield(c.current) {
				c.Reset()
				return
			}
		}
	}
}

// Collect drains the cursor into a slice.
func (c *Cursor) Collect() []Entity {
	return iter_util.Collect(c.Entities())
}

func (c *Cursor) initialize() {
	if c.initialized {
		return
	}
	c.matched, c.err = c.query.Entities(c.world)
	c.index = 0
	c.world.lockCursor()
	c.initialized = true
}

// Reset rewinds the cursor and releases its lock on the world.
func (c *Cursor) Reset() {
	if c.initialized {
		c.world.unlockCursor()
	}
	c.index = 0
	c.matched = nil
	c.positioned = false
	c.initialized = false
}

// CurrentEntity returns the entity the cursor points at.
func (c *Cursor) CurrentEntity() Entity {
	return c.current
}

// Positioned reports whether the last call to Next moved onto an entity.
func (c *Cursor) Positioned() bool {
	return c.positioned
}

// Remaining returns how many matches are left in the current pass.
func (c *Cursor) Remaining() int {
	return len(c.matched) - c.index
}

// TotalMatched returns the number of matches without starting a pass.
func (c *Cursor) TotalMatched() int {
	if c.initialized {
		return len(c.matched)
	}
	matched, err := c.query.Entities(c.world)
	if err != nil {
		return 0
	}
	return len(matched)
}

// Err returns the error hit while matching, typically an undeclared component.
func (c *Cursor) Err() error {
	return c.err
}
