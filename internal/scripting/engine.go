package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM holding the variant rule scripts.
// Single-goroutine access only; it is consulted while building a session,
// never from the frame loop.
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads every script under
// scriptsDir/rules. A missing directory leaves the engine empty, in which
// case every query falls back to the Go defaults.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	// Set API version global
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}
	if err := e.loadDir(filepath.Join(scriptsDir, "rules")); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load rule scripts: %w", err)
	}
	return e, nil
}

// loadDir loads all .lua files in a directory in name order.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// TuningOverrides calls Lua get_tuning(variant) and returns its numeric
// fields. Missing function, script errors and non-table results yield nil.
func (e *Engine) TuningOverrides(variant string) map[string]float64 {
	fn := e.vm.GetGlobal("get_tuning")
	if fn == lua.LNil {
		e.log.Warn("lua function get_tuning not found, using default tuning")
		return nil
	}

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lua.LString(variant)); err != nil {
		e.log.Error("lua get_tuning error", zap.String("variant", variant), zap.Error(err))
		return nil
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		e.log.Error("lua get_tuning returned non-table", zap.String("variant", variant))
		return nil
	}

	out := make(map[string]float64)
	var skipped []string
	rt.ForEach(func(k, v lua.LValue) {
		key, ok := k.(lua.LString)
		if !ok {
			return
		}
		n, ok := v.(lua.LNumber)
		if !ok {
			skipped = append(skipped, string(key))
			return
		}
		out[string(key)] = float64(n)
	})
	if len(skipped) > 0 {
		sort.Strings(skipped)
		e.log.Warn("lua get_tuning returned non-numeric fields",
			zap.String("variant", variant), zap.Strings("fields", skipped))
	}
	return out
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
