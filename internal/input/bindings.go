package input

import (
	"fmt"
	"strings"
)

// Bindings maps normalised key names to actions. Names follow the browser
// KeyboardEvent/Ebitengine spelling ("ArrowLeft", "Space", "A") and are
// compared case-insensitively.
type Bindings map[string]Action

func DefaultBindings() Bindings {
	return Bindings{
		"arrowleft":  ActionLeft,
		"a":          ActionLeft,
		"arrowright": ActionRight,
		"d":          ActionRight,
		"arrowup":    ActionUp,
		"w":          ActionUp,
		"arrowdown":  ActionDown,
		"s":          ActionDown,
		"space":      ActionFire,
		"shift":      ActionThink,
		"t":          ActionThink,
	}
}

func (b Bindings) Lookup(key string) (Action, bool) {
	a, ok := b[normalizeKey(key)]
	return a, ok
}

// Apply binds each key in overrides to the named action. Unknown action
// names are an error and leave b unchanged.
func (b Bindings) Apply(overrides map[string]string) error {
	parsed := make(map[string]Action, len(overrides))
	for key, name := range overrides {
		a, ok := ParseAction(name)
		if !ok {
			return fmt.Errorf("binding %q: unknown action %q", key, name)
		}
		parsed[key] = a
	}
	for key, a := range parsed {
		b.Bind(key, a)
	}
	return nil
}

// Bind adds or replaces a binding.
func (b Bindings) Bind(key string, a Action) {
	b[normalizeKey(key)] = a
}

// Keys returns every key bound to a, in no particular order.
func (b Bindings) Keys(a Action) []string {
	var out []string
	for k, v := range b {
		if v == a {
			out = append(out, k)
		}
	}
	return out
}

func normalizeKey(key string) string {
	if key == " " {
		return "space"
	}
	key = strings.ToLower(strings.TrimSpace(key))
	switch key {
	case "left":
		return "arrowleft"
	case "right":
		return "arrowright"
	case "up":
		return "arrowup"
	case "down":
		return "arrowdown"
	case "shiftleft", "shiftright":
		return "shift"
	}
	return key
}
