package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers the declaration constructors as Lua globals. The
// top-level constructors are curried: `Variable "id" { ... }` parses as
// Variable("id")({...}).
func registerAPI(L *lua.LState, coll *collector) {
	registerConstructors(L, coll)
	registerNodeHelpers(L)
	registerValueHelpers(L)
}

func registerConstructors(L *lua.LState, coll *collector) {
	// Variable "id" { name = "...", type = "boolean", initial = true, category = "..." }
	L.SetGlobal("Variable", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.variables = append(coll.variables, rawVariable{id: id, table: tbl})
			return 0
		}))
		return 1
	}))

	// Graph "id" { name = "...", nodes = { ... }, edges = { {"a", "next", "b"} } }
	L.SetGlobal("Graph", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.graphs = append(coll.graphs, rawGraph{id: id, table: tbl})
			return 0
		}))
		return 1
	}))

	// DialogueGraph "id" { ... } is the same shape, second collection.
	L.SetGlobal("DialogueGraph", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.graphs = append(coll.graphs, rawGraph{id: id, dialogue: true, table: tbl})
			return 0
		}))
		return 1
	}))

	// Interaction "id" { scene = "*", verb = "use", priority = 10,
	//   conditions = { VarIs("door_open", "EQ", false) },
	//   graph = "g1", entry = "n1", fallback_dialogue = "dlg_locked" }
	L.SetGlobal("Interaction", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.interactions = append(coll.interactions, rawInteraction{id: id, table: tbl})
			return 0
		}))
		return 1
	}))
}

func registerNodeHelpers(L *lua.LState) {
	// Node constructors are curried too and evaluate to a tagged table that
	// the surrounding Graph's nodes list collects.
	node := func(kind string) *lua.LFunction {
		return L.NewFunction(func(L *lua.LState) int {
			id := L.CheckString(1)
			L.Push(L.NewFunction(func(L *lua.LState) int {
				tbl := L.CheckTable(1)
				tbl.RawSetString("__node_id", lua.LString(id))
				tbl.RawSetString("__node_type", lua.LString(kind))
				L.Push(tbl)
				return 1
			}))
			return 1
		})
	}
	L.SetGlobal("Action", node("Action"))
	L.SetGlobal("Condition", node("Condition"))
	L.SetGlobal("Dialogue", node("Dialogue"))

	// VarIs("var", "EQ", value) builds one rule predicate.
	L.SetGlobal("VarIs", L.NewFunction(func(L *lua.LState) int {
		variable := L.CheckString(1)
		op := L.CheckString(2)
		value := L.Get(3)
		tbl := L.NewTable()
		tbl.RawSetString("variable", lua.LString(variable))
		tbl.RawSetString("op", lua.LString(op))
		tbl.RawSetString("value", value)
		L.Push(tbl)
		return 1
	}))
}

func registerValueHelpers(L *lua.LState) {
	// Enum("MEMBER") wraps an enum payload, distinct from a plain string.
	L.SetGlobal("Enum", L.NewFunction(func(L *lua.LState) int {
		member := L.CheckString(1)
		tbl := L.NewTable()
		tbl.RawSetString("__enum", lua.LString(member))
		L.Push(tbl)
		return 1
	}))

	// Float(1) forces a float payload even for a whole number.
	L.SetGlobal("Float", L.NewFunction(func(L *lua.LState) int {
		n := L.CheckNumber(1)
		tbl := L.NewTable()
		tbl.RawSetString("__float", n)
		L.Push(tbl)
		return 1
	}))
}
