// Package loader imports Lua authoring scripts into a project. The VM is
// discarded after loading; no Lua survives into runtime use.
package loader

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/advcore/graph"
	"github.com/nathoo/advcore/project"
	"github.com/nathoo/advcore/types"
)

// rawVariable holds a variable table before compilation.
type rawVariable struct {
	id    string
	table *lua.LTable
}

// rawGraph holds a graph table before compilation.
type rawGraph struct {
	id       string
	dialogue bool
	table    *lua.LTable
}

// rawInteraction holds an interaction table before compilation.
type rawInteraction struct {
	id    string
	table *lua.LTable
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	v := tbl.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getBool returns a bool field from a Lua table, or the default if missing.
func getBool(tbl *lua.LTable, key string, def bool) bool {
	v := tbl.RawGetString(key)
	if b, ok := v.(lua.LBool); ok {
		return bool(b)
	}
	return def
}

// getInt returns an int field from a Lua table, or def if missing.
func getInt(tbl *lua.LTable, key string, def int) int {
	v := tbl.RawGetString(key)
	if n, ok := v.(lua.LNumber); ok {
		return int(n)
	}
	return def
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	v := tbl.RawGetString(key)
	if t, ok := v.(*lua.LTable); ok {
		return t
	}
	return nil
}

// toValue converts a Lua scalar to a typed value. Whole numbers compile as
// integers; the Float and Enum wrappers force the other payloads.
func toValue(v lua.LValue) (types.Value, error) {
	switch val := v.(type) {
	case lua.LBool:
		return types.BoolValue(bool(val)), nil
	case lua.LNumber:
		f := float64(val)
		if f == float64(int64(f)) {
			return types.IntValue(int64(f)), nil
		}
		return types.FloatValue(f), nil
	case lua.LString:
		return types.StringValue(string(val)), nil
	case *lua.LTable:
		if m := val.RawGetString("__enum"); m != lua.LNil {
			if s, ok := m.(lua.LString); ok {
				return types.EnumValue(string(s)), nil
			}
		}
		if m := val.RawGetString("__float"); m != lua.LNil {
			if n, ok := m.(lua.LNumber); ok {
				return types.FloatValue(float64(n)), nil
			}
		}
	}
	return types.Value{}, fmt.Errorf("unsupported value %s", v.Type())
}

// compile turns the collected declarations into a project. Structural
// problems (duplicate ids, bad edge labels, type mismatches) abort the
// import; semantic validation is the caller's concern.
func compile(coll *collector) (*project.Project, error) {
	p := project.New()

	for _, rv := range coll.variables {
		v, err := compileVariable(rv)
		if err != nil {
			return nil, fmt.Errorf("variable %q: %w", rv.id, err)
		}
		if err := p.AddVariable(v); err != nil {
			return nil, err
		}
	}

	for _, rg := range coll.graphs {
		g, err := compileGraph(rg)
		if err != nil {
			return nil, fmt.Errorf("graph %q: %w", rg.id, err)
		}
		if rg.dialogue {
			err = p.AddDialogueGraph(g)
		} else {
			err = p.AddGraph(g)
		}
		if err != nil {
			return nil, err
		}
	}

	for _, ri := range coll.interactions {
		r, err := compileInteraction(ri)
		if err != nil {
			return nil, fmt.Errorf("interaction %q: %w", ri.id, err)
		}
		if err := p.AddRule(r); err != nil {
			return nil, err
		}
	}

	return p, nil
}

func compileVariable(rv rawVariable) (types.GlobalVariable, error) {
	vt := types.ValueType(getString(rv.table, "type"))
	if !types.ValidValueType(vt) {
		return types.GlobalVariable{}, fmt.Errorf("unknown type %q", vt)
	}
	initial, err := toValue(rv.table.RawGetString("initial"))
	if err != nil {
		return types.GlobalVariable{}, fmt.Errorf("initial: %w", err)
	}
	// A whole-number literal satisfies a float declaration.
	if vt == types.TypeFloat && initial.Type == types.TypeInt {
		initial = types.FloatValue(float64(initial.Int))
	}
	if vt == types.TypeEnum && initial.Type == types.TypeString {
		initial = types.EnumValue(initial.Str)
	}
	if initial.Type != vt {
		return types.GlobalVariable{}, fmt.Errorf("initial value is %s, declared %s", initial.Type, vt)
	}
	return types.GlobalVariable{
		ID:           rv.id,
		Name:         getString(rv.table, "name"),
		Type:         vt,
		InitialValue: initial,
		Category:     getString(rv.table, "category"),
	}, nil
}

func compileGraph(rg rawGraph) (*types.LogicGraph, error) {
	g := graph.New(rg.id, getString(rg.table, "name"))

	if nodes := getTable(rg.table, "nodes"); nodes != nil {
		for i := 1; i <= nodes.MaxN(); i++ {
			ntbl, ok := nodes.RawGetInt(i).(*lua.LTable)
			if !ok {
				return nil, fmt.Errorf("nodes[%d]: not a node", i)
			}
			n, err := compileNode(ntbl)
			if err != nil {
				return nil, err
			}
			if err := graph.AddNode(g, n); err != nil {
				return nil, err
			}
		}
	}

	if edges := getTable(rg.table, "edges"); edges != nil {
		for i := 1; i <= edges.MaxN(); i++ {
			etbl, ok := edges.RawGetInt(i).(*lua.LTable)
			if !ok || etbl.MaxN() != 3 {
				return nil, fmt.Errorf("edges[%d]: want {from, label, to}", i)
			}
			from := lua.LVAsString(etbl.RawGetInt(1))
			label := types.EdgeLabel(lua.LVAsString(etbl.RawGetInt(2)))
			to := lua.LVAsString(etbl.RawGetInt(3))
			if err := graph.AddEdge(g, from, label, to); err != nil {
				return nil, err
			}
		}
	}

	return g, nil
}

func compileNode(tbl *lua.LTable) (*types.LogicNode, error) {
	id := getString(tbl, "__node_id")
	kind := types.NodeKind(getString(tbl, "__node_type"))
	if id == "" || kind == "" {
		return nil, fmt.Errorf("node entry is not an Action/Condition/Dialogue constructor")
	}

	var n *types.LogicNode
	switch kind {
	case types.KindAction:
		n = graph.NewActionNode(id, getString(tbl, "command"))
		if params := getTable(tbl, "params"); params != nil {
			for i := 1; i <= params.MaxN(); i++ {
				ptbl, ok := params.RawGetInt(i).(*lua.LTable)
				if !ok || ptbl.MaxN() != 2 {
					return nil, fmt.Errorf("node %q params[%d]: want {name, value}", id, i)
				}
				name := lua.LVAsString(ptbl.RawGetInt(1))
				value, err := toValue(ptbl.RawGetInt(2))
				if err != nil {
					return nil, fmt.Errorf("node %q param %q: %w", id, name, err)
				}
				graph.SetParam(n, name, value)
			}
		}
	case types.KindCondition:
		op := types.Operator(getString(tbl, "op"))
		required, err := toValue(tbl.RawGetString("value"))
		if err != nil {
			return nil, fmt.Errorf("node %q value: %w", id, err)
		}
		n = graph.NewConditionNode(id, getString(tbl, "var"), op, required)
	case types.KindDialogue:
		n = graph.NewDialogueNode(id, getString(tbl, "character"), getString(tbl, "text"), getBool(tbl, "choice", false))
	default:
		return nil, fmt.Errorf("node %q: unknown kind %q", id, kind)
	}

	n.X = getInt(tbl, "x", 0)
	n.Y = getInt(tbl, "y", 0)
	if w := getInt(tbl, "w", 0); w != 0 {
		n.Width = w
	}
	if h := getInt(tbl, "h", 0); h != 0 {
		n.Height = h
	}
	return n, nil
}

func compileInteraction(ri rawInteraction) (types.InteractionRule, error) {
	r := types.InteractionRule{
		ID:                 ri.id,
		SceneID:            getString(ri.table, "scene"),
		VerbID:             getString(ri.table, "verb"),
		PrimaryItemID:      getString(ri.table, "primary_item"),
		SecondaryItemID:    getString(ri.table, "secondary_item"),
		TargetHotspotID:    getString(ri.table, "hotspot"),
		Priority:           getInt(ri.table, "priority", 0),
		LogicGraphID:       getString(ri.table, "graph"),
		InitialNodeID:      getString(ri.table, "entry"),
		FallbackDialogueID: getString(ri.table, "fallback_dialogue"),
	}

	if conds := getTable(ri.table, "conditions"); conds != nil {
		for i := 1; i <= conds.MaxN(); i++ {
			ctbl, ok := conds.RawGetInt(i).(*lua.LTable)
			if !ok {
				return types.InteractionRule{}, fmt.Errorf("conditions[%d]: want VarIs(...)", i)
			}
			op := types.Operator(getString(ctbl, "op"))
			if !types.ValidOperator(op) {
				return types.InteractionRule{}, fmt.Errorf("conditions[%d]: unknown operator %q", i, op)
			}
			value, err := toValue(ctbl.RawGetString("value"))
			if err != nil {
				return types.InteractionRule{}, fmt.Errorf("conditions[%d]: %w", i, err)
			}
			r.Conditions = append(r.Conditions, types.RuleCondition{
				VariableID: getString(ctbl, "variable"),
				Operator:   op,
				Value:      value,
			})
		}
	}

	return r, nil
}
