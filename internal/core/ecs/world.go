package ecs

// World is the simulation's ID source (it satisfies game.IDSource). It lives
// as long as the driver, across replays. Despawns recorded by a step are
// queued here and released together at the end of the frame, after the
// renderer has drawn the state that still references them.
type World struct {
	pool         *EntityPool
	destroyQueue []EntityID
}

func NewWorld() *World {
	return &World{
		pool:         NewEntityPool(),
		destroyQueue: make([]EntityID, 0, 16),
	}
}

func (w *World) Pool() *EntityPool { return w.pool }

func (w *World) CreateEntity() EntityID {
	return w.pool.Create()
}

func (w *World) Alive(id EntityID) bool {
	return w.pool.Alive(id)
}

// MarkForDestruction queues IDs for end-of-frame release; the cleanup phase
// passes a step's whole Despawned list at once.
func (w *World) MarkForDestruction(ids ...EntityID) {
	w.destroyQueue = append(w.destroyQueue, ids...)
}

// Pending returns the number of IDs waiting for FlushDestroyQueue.
func (w *World) Pending() int {
	return len(w.destroyQueue)
}

// FlushDestroyQueue releases every queued ID back to the pool.
func (w *World) FlushDestroyQueue() {
	for _, id := range w.destroyQueue {
		w.pool.Destroy(id)
	}
	w.destroyQueue = w.destroyQueue[:0]
}
