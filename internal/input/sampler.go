package input

import "sync"

// Source identifies where a press came from. An action stays held while any
// source holds it, so releasing a touch button does not cancel a held key.
type Source uint8

const (
	SourceKeyboard Source = iota
	SourceTouch

	numSources
)

// Sampler tracks held actions. Event callbacks write, the loop reads one
// Snapshot per frame; the mutex makes that safe when the two run on
// different goroutines.
type Sampler struct {
	mu       sync.Mutex
	held     [numSources][numActions]bool
	bindings Bindings
}

func NewSampler(bindings Bindings) *Sampler {
	if bindings == nil {
		bindings = DefaultBindings()
	}
	return &Sampler{bindings: bindings}
}

// Bindings returns the key map used by KeyDown and KeyUp.
func (s *Sampler) Bindings() Bindings { return s.bindings }

// Press marks the action held for src. It reports whether anything changed;
// repeated presses of a held action are no-ops.
func (s *Sampler) Press(src Source, a Action) bool {
	return s.set(src, a, true)
}

// Release clears the action for src and reports whether anything changed.
func (s *Sampler) Release(src Source, a Action) bool {
	return s.set(src, a, false)
}

func (s *Sampler) set(src Source, a Action, held bool) bool {
	if src >= numSources || a >= numActions {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.held[src][a] == held {
		return false
	}
	s.held[src][a] = held
	return true
}

// KeyDown presses the action bound to key. Unbound keys are ignored.
func (s *Sampler) KeyDown(key string) bool {
	a, ok := s.bindings.Lookup(key)
	if !ok {
		return false
	}
	return s.Press(SourceKeyboard, a)
}

// KeyUp releases the action bound to key. Unbound keys are ignored.
func (s *Sampler) KeyUp(key string) bool {
	a, ok := s.bindings.Lookup(key)
	if !ok {
		return false
	}
	return s.Release(SourceKeyboard, a)
}

// Sync replaces everything src holds with want. Hosts that poll rather than
// receive events (touch points, key state) call this once per frame.
func (s *Sampler) Sync(src Source, want Snapshot) {
	if src >= numSources {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.held[src] = want.held
}

// Snapshot returns the actions held by any source.
func (s *Sampler) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out Snapshot
	for src := range s.held {
		for a, h := range s.held[src] {
			if h {
				out.held[a] = true
			}
		}
	}
	return out
}

// Reset releases everything. Called on teardown so a key held while the
// session closes does not leak into the next one.
func (s *Sampler) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.held = [numSources][numActions]bool{}
}
