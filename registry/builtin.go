package registry

import "github.com/nathoo/advcore/types"

// Shorthand for the builtin tables below.
func req(name string, t types.ValueType) ParamSpec {
	return ParamSpec{Name: name, Type: t, Required: true}
}

func reqEnum(name string, choices ...string) ParamSpec {
	return ParamSpec{Name: name, Type: types.TypeEnum, Required: true, Choices: choices}
}

// Builtin returns the stock command registry shipped with the editor. The
// runtime consumes the same tables; keep the two in sync.
func Builtin() *Registry {
	actions := []CommandSpec{
		{Name: "SET_VARIABLE", Params: []ParamSpec{
			req("VarName", types.TypeString), req("Value", types.TypeString),
		}},
		{Name: "INVENTORY_ADD", Params: []ParamSpec{
			req("ItemID", types.TypeString), req("Amount", types.TypeInt),
		}},
		{Name: "INVENTORY_REMOVE", Params: []ParamSpec{
			req("ItemID", types.TypeString), req("Amount", types.TypeInt),
		}},
		{Name: "SCENE_TRANSITION", Params: []ParamSpec{
			req("SceneID", types.TypeString), req("SpawnPoint", types.TypeString),
		}},
		{Name: "SHOP_OPEN", Params: []ParamSpec{
			req("ShopID", types.TypeString),
		}},
		{Name: "MODIFY_ATTRIBUTE", Params: []ParamSpec{
			req("AttributeID", types.TypeString), req("Value", types.TypeInt),
		}},
		{Name: "PLAY_CINEMATIC", Params: []ParamSpec{
			req("CinematicID", types.TypeString),
		}},
		{Name: "PLAY_SFX", Params: []ParamSpec{
			req("SoundID", types.TypeString),
		}},
		{Name: "UNLOCK_HOTSPOT", Params: []ParamSpec{
			req("HotspotID", types.TypeString),
		}},
		{Name: "LOCK_HOTSPOT", Params: []ParamSpec{
			req("HotspotID", types.TypeString),
		}},
		{Name: "SET_ANIMATION", Params: []ParamSpec{
			req("TargetID", types.TypeString), req("AnimationKey", types.TypeString), req("Loop", types.TypeBool),
		}},
		{Name: "HIDE_ENTITY", Params: []ParamSpec{
			req("EntityID", types.TypeString),
		}},
		{Name: "SHOW_ENTITY", Params: []ParamSpec{
			req("EntityID", types.TypeString), req("X", types.TypeInt), req("Y", types.TypeInt),
		}},
		{Name: "SET_CURSOR_MODE", Params: []ParamSpec{
			reqEnum("Mode", "Contextual", "Classic"),
		}},
		{Name: "SET_WALK_MESH", Params: []ParamSpec{
			req("SceneID", types.TypeString), req("MeshID", types.TypeString),
		}},
		{Name: "SET_PLAYER_POS", Params: []ParamSpec{
			req("X", types.TypeInt), req("Y", types.TypeInt),
		}},
		{Name: "GIVE_CURRENCY", Params: []ParamSpec{
			req("Amount", types.TypeInt),
		}},
		{Name: "TAKE_CURRENCY", Params: []ParamSpec{
			req("Amount", types.TypeInt),
		}},
		{Name: "PLAY_SOUND_2D", Params: []ParamSpec{
			req("SoundID", types.TypeString),
		}},
		{Name: "SHOW_DIALOGUE_CHOICES", Params: []ParamSpec{
			req("DialogueNodeID", types.TypeString),
		}},
		{Name: "FORCE_SAVE", Params: nil},
	}

	checks := []CommandSpec{
		{Name: "VARIABLE_EQUALS", Params: []ParamSpec{
			req("VarName", types.TypeString), req("Value", types.TypeString),
		}},
		{Name: "HAS_ITEM", Params: []ParamSpec{
			req("ItemID", types.TypeString), req("Amount", types.TypeInt),
		}},
		{Name: "ATTRIBUTE_CHECK", Params: []ParamSpec{
			req("AttributeID", types.TypeString), req("Value", types.TypeInt),
			reqEnum("Comparison", "==", ">", "<", ">=", "<="),
		}},
		{Name: "HOTSPOT_LOCKED", Params: []ParamSpec{
			req("HotspotID", types.TypeString), req("State", types.TypeBool),
		}},
		{Name: "ENTITY_VISIBLE", Params: []ParamSpec{
			req("EntityID", types.TypeString), req("Visible", types.TypeBool),
		}},
		{Name: "SCENE_VISITED", Params: []ParamSpec{
			req("SceneID", types.TypeString), req("Times", types.TypeInt),
		}},
		{Name: "CURRENCY_GE", Params: []ParamSpec{
			req("Amount", types.TypeInt),
		}},
		{Name: "HAS_FAILED_CHECK", Params: []ParamSpec{
			req("CheckID", types.TypeString),
		}},
		{Name: "ENTITY_HAS_ITEM", Params: []ParamSpec{
			req("EntityID", types.TypeString), req("ItemID", types.TypeString),
		}},
		{Name: "WALK_MESH_ACTIVE", Params: []ParamSpec{
			req("MeshID", types.TypeString), req("State", types.TypeBool),
		}},
		{Name: "TIME_OF_DAY_IS", Params: []ParamSpec{
			reqEnum("TimeState", "Night", "Morning", "Day", "Evening"),
		}},
	}

	return New(actions, checks)
}
