package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RegisterModules registers the rpg.* Lua tables into L:
//
//	rpg.roll(expr)   -> {total, dice = {...}, modifier} or nil, errmsg
//	rpg.chance(p)    -> boolean
//	rpg.log.debug/info/warn/error(msg)
//
// Precondition: L must be from NewSandboxedState.
// Postcondition: rpg global is defined in L.
func (m *Manager) RegisterModules(L *lua.LState) {
	rpg := L.NewTable()
	L.SetFuncs(rpg, map[string]lua.LGFunction{
		"roll":   m.luaRoll,
		"chance": m.luaChance,
	})

	logTbl := L.NewTable()
	L.SetFuncs(logTbl, map[string]lua.LGFunction{
		"debug": m.luaLog(zap.DebugLevel),
		"info":  m.luaLog(zap.InfoLevel),
		"warn":  m.luaLog(zap.WarnLevel),
		"error": m.luaLog(zap.ErrorLevel),
	})
	L.SetField(rpg, "log", logTbl)

	L.SetGlobal("rpg", rpg)
}

func (m *Manager) luaRoll(L *lua.LState) int {
	result, err := m.roller.RollExpr(L.CheckString(1))
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	dice := L.NewTable()
	for _, d := range result.Dice {
		dice.Append(lua.LNumber(d))
	}
	tbl := L.NewTable()
	L.SetField(tbl, "total", lua.LNumber(result.Total()))
	L.SetField(tbl, "dice", dice)
	L.SetField(tbl, "modifier", lua.LNumber(result.Modifier))
	L.Push(tbl)
	return 1
}

func (m *Manager) luaChance(L *lua.LState) int {
	L.Push(lua.LBool(m.roller.Chance(float64(L.CheckNumber(1)))))
	return 1
}

func (m *Manager) luaLog(level zapcore.Level) lua.LGFunction {
	return func(L *lua.LState) int {
		if ce := m.logger.Check(level, L.CheckString(1)); ce != nil {
			ce.Write(zap.String("source", "lua"))
		}
		return 0
	}
}

// CombatantTable converts info into a Lua table with snake_case fields:
// name, level, hp, max_hp, mana, max_mana, attack, defense, effects (array of
// type names) and abilities (array of {name, kind, power, mana_cost,
// cooldown, usable}).
//
// Precondition: L and info must be non-nil.
func CombatantTable(L *lua.LState, info *CombatantInfo) *lua.LTable {
	tbl := L.NewTable()
	L.SetField(tbl, "name", lua.LString(info.Name))
	L.SetField(tbl, "level", lua.LNumber(info.Level))
	L.SetField(tbl, "hp", lua.LNumber(info.HP))
	L.SetField(tbl, "max_hp", lua.LNumber(info.MaxHP))
	L.SetField(tbl, "mana", lua.LNumber(info.Mana))
	L.SetField(tbl, "max_mana", lua.LNumber(info.MaxMana))
	L.SetField(tbl, "attack", lua.LNumber(info.Attack))
	L.SetField(tbl, "defense", lua.LNumber(info.Defense))

	effects := L.NewTable()
	for _, e := range info.Effects {
		effects.Append(lua.LString(e))
	}
	L.SetField(tbl, "effects", effects)

	abilities := L.NewTable()
	for _, a := range info.Abilities {
		at := L.NewTable()
		L.SetField(at, "name", lua.LString(a.Name))
		L.SetField(at, "kind", lua.LString(a.Kind))
		L.SetField(at, "power", lua.LNumber(a.Power))
		L.SetField(at, "mana_cost", lua.LNumber(a.ManaCost))
		L.SetField(at, "cooldown", lua.LNumber(a.Cooldown))
		L.SetField(at, "usable", lua.LBool(a.Usable))
		abilities.Append(at)
	}
	L.SetField(tbl, "abilities", abilities)
	return tbl
}
