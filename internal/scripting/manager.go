package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/game/dice"
)

// AbilityInfo is a snapshot of one ability passed to Lua callbacks.
type AbilityInfo struct {
	Name     string
	Kind     string
	Power    int
	ManaCost int
	Cooldown int
	Usable   bool
}

// CombatantInfo is a snapshot of a combatant's state passed to Lua callbacks.
type CombatantInfo struct {
	Name      string
	Level     int
	HP        int
	MaxHP     int
	Mana      int
	MaxMana   int
	Attack    int
	Defense   int
	Effects   []string
	Abilities []AbilityInfo
}

// vm is one named Lua state. Each state is single-threaded; mu serializes
// every call into it.
type vm struct {
	mu     sync.Mutex
	L      *lua.LState
	limit  int
	closed bool
}

func (v *vm) close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.closed {
		v.L.Close()
		v.closed = true
	}
}

// Manager owns one sandboxed LState per script set and exposes hook dispatch.
//
// Manager is safe for concurrent CallHook. Calls into the same script set are
// serialized; different sets run concurrently.
type Manager struct {
	mu     sync.RWMutex
	vms    map[string]*vm
	roller *dice.Roller
	logger *zap.Logger
}

// NewManager creates a Manager.
//
// Precondition: roller and logger must be non-nil.
// Postcondition: Returns a non-nil Manager with no script sets loaded.
func NewManager(roller *dice.Roller, logger *zap.Logger) *Manager {
	if roller == nil {
		panic("scripting.NewManager: roller must not be nil")
	}
	if logger == nil {
		panic("scripting.NewManager: logger must not be nil")
	}
	return &Manager{
		vms:    make(map[string]*vm),
		roller: roller,
		logger: logger,
	}
}

// Load creates a sandboxed VM registered under name, registers the rpg
// module, then executes every *.lua file in scriptDir in lexicographic order.
// Loading a name twice replaces the previous VM.
//
// Precondition: name must be non-empty; scriptDir must be a readable directory.
// Postcondition: The VM is registered; returns error on read or Lua load failure.
func (m *Manager) Load(name, scriptDir string, instLimit int) error {
	if name == "" {
		return fmt.Errorf("scripting: script set name must not be empty")
	}
	entries, err := os.ReadDir(scriptDir)
	if err != nil {
		return fmt.Errorf("scripting: reading script dir %q for %q: %w", scriptDir, name, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, filepath.Join(scriptDir, e.Name()))
		}
	}
	sort.Strings(luaFiles)

	L := NewSandboxedState(instLimit)
	m.RegisterModules(L)
	for _, path := range luaFiles {
		if err := L.DoFile(path); err != nil {
			L.Close()
			return fmt.Errorf("scripting: loading %q for %q: %w", path, name, err)
		}
	}

	m.mu.Lock()
	if old, ok := m.vms[name]; ok {
		old.close()
	}
	m.vms[name] = &vm{L: L, limit: instLimit}
	m.mu.Unlock()
	m.logger.Debug("scripting: script set loaded",
		zap.String("name", name),
		zap.Int("files", len(luaFiles)),
	)
	return nil
}

// Loaded reports whether a script set is registered under name.
func (m *Manager) Loaded(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.vms[name]
	return ok
}

// CallHook calls the named Lua global function in the name VM. Returns
// (LNil, nil) if the hook is not defined or no VM exists. Lua runtime errors,
// including an exhausted instruction budget, are logged at Warn level and
// never propagated.
//
// Precondition: args must be valid lua.LValue instances.
// Postcondition: Returns the first return value of the hook, or LNil.
func (m *Manager) CallHook(name, hook string, args ...lua.LValue) (lua.LValue, error) {
	return m.call(name, hook, func(*lua.LState) []lua.LValue { return args })
}

// CallCombatHook calls hook in the name VM with self and target converted to
// Lua tables (see CombatantTable).
//
// Precondition: self and target must be non-nil.
// Postcondition: Same as CallHook.
func (m *Manager) CallCombatHook(name, hook string, self, target *CombatantInfo) (lua.LValue, error) {
	return m.call(name, hook, func(L *lua.LState) []lua.LValue {
		return []lua.LValue{CombatantTable(L, self), CombatantTable(L, target)}
	})
}

func (m *Manager) call(name, hook string, build func(*lua.LState) []lua.LValue) (lua.LValue, error) {
	m.mu.RLock()
	v := m.vms[name]
	m.mu.RUnlock()

	if v == nil {
		m.logger.Info("scripting: no VM for script set",
			zap.String("name", name),
			zap.String("hook", hook),
		)
		return lua.LNil, nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return lua.LNil, nil
	}
	L := v.L
	fn := L.GetGlobal(hook)
	if fn == lua.LNil {
		return lua.LNil, nil
	}

	ResetBudget(L, v.limit)
	if err := L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, build(L)...); err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("name", name),
			zap.String("hook", hook),
			zap.Error(err),
		)
		return lua.LNil, nil
	}

	ret := L.Get(-1)
	L.Pop(1)
	return ret, nil
}

// Close releases every VM. Subsequent calls behave as if nothing was loaded.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for name, v := range m.vms {
		v.close()
		delete(m.vms, name)
	}
}
