// Package ecs issues identities for the messages falling through a session.
// The simulation stamps each spawned entity with an ID from the World; the
// loop's cleanup phase hands IDs back once an entity is shot, collides or
// leaves the playfield, and a replay releases whatever the last session left.
package ecs

// EntityID packs a 32-bit slot index in the low bits and a 32-bit generation
// in the high bits. Releasing a slot bumps its generation, so an ID handed
// out once is never handed out again while the pool lives.
type EntityID uint64

func NewEntityID(index uint32, generation uint32) EntityID {
	return EntityID(uint64(generation)<<32 | uint64(index))
}

func (id EntityID) Index() uint32      { return uint32(id) }
func (id EntityID) Generation() uint32 { return uint32(id >> 32) }
func (id EntityID) IsZero() bool       { return id == 0 }

// EntityPool allocates IDs with generational indices and a free list.
// Slot 0 generation 0 is never issued so the zero EntityID means "none".
type EntityPool struct {
	generations []uint32
	freeList    []uint32
	nextIndex   uint32
}

func NewEntityPool() *EntityPool {
	return &EntityPool{
		generations: make([]uint32, 1, 64),
		freeList:    make([]uint32, 0, 32),
		nextIndex:   1,
	}
}

// Create issues an ID, reusing released slots first so a long session keeps
// the generations slice as small as the busiest moment on screen.
func (p *EntityPool) Create() EntityID {
	if n := len(p.freeList); n > 0 {
		idx := p.freeList[n-1]
		p.freeList = p.freeList[:n-1]
		return NewEntityID(idx, p.generations[idx])
	}
	idx := p.nextIndex
	p.nextIndex++
	if int(idx) >= len(p.generations) {
		p.generations = append(p.generations, 0)
	}
	return NewEntityID(idx, p.generations[idx])
}

func (p *EntityPool) Alive(id EntityID) bool {
	idx := id.Index()
	if idx == 0 || idx >= p.nextIndex {
		return false
	}
	return p.generations[idx] == id.Generation()
}

// Destroy releases id. IDs already released, or issued by another pool,
// are ignored, so a despawn reported twice frees the slot once.
func (p *EntityPool) Destroy(id EntityID) {
	if !p.Alive(id) {
		return // stale or foreign ID
	}
	idx := id.Index()
	p.generations[idx]++
	p.freeList = append(p.freeList, idx)
}

// Live reports how many IDs are currently issued and not yet destroyed: the
// entities still on screen, plus any a finished session has not released.
func (p *EntityPool) Live() int {
	return int(p.nextIndex) - 1 - len(p.freeList)
}
