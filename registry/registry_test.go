package registry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nathoo/advcore/types"
)

func TestBuiltinLookups(t *testing.T) {
	r := Builtin()

	spec, ok := r.Command("INVENTORY_ADD")
	if !ok {
		t.Fatal("INVENTORY_ADD missing from builtin registry")
	}
	amount, ok := spec.Param("Amount")
	if !ok || amount.Type != types.TypeInt || !amount.Required {
		t.Errorf("INVENTORY_ADD Amount = %+v, want required integer", amount)
	}

	spec, ok = r.Command("SET_CURSOR_MODE")
	if !ok {
		t.Fatal("SET_CURSOR_MODE missing from builtin registry")
	}
	mode, _ := spec.Param("Mode")
	if mode.Type != types.TypeEnum || len(mode.Choices) != 2 {
		t.Errorf("SET_CURSOR_MODE Mode = %+v, want enum with two choices", mode)
	}

	if _, ok := r.Command("VARIABLE_EQUALS"); ok {
		t.Error("check command VARIABLE_EQUALS should not resolve as an action")
	}
	if _, ok := r.Check("VARIABLE_EQUALS"); !ok {
		t.Error("VARIABLE_EQUALS missing from builtin checks")
	}
	if _, ok := r.Command("TELEPORT"); ok {
		t.Error("unknown command should not resolve")
	}
}

func TestBuiltinCommandsOrdered(t *testing.T) {
	cmds := Builtin().Commands()
	if len(cmds) == 0 {
		t.Fatal("no builtin commands")
	}
	if cmds[0].Name != "SET_VARIABLE" {
		t.Errorf("first command = %s, want SET_VARIABLE", cmds[0].Name)
	}
	seen := make(map[string]bool, len(cmds))
	for _, c := range cmds {
		if seen[c.Name] {
			t.Errorf("duplicate command %s", c.Name)
		}
		seen[c.Name] = true
	}
}

func TestParse(t *testing.T) {
	doc := []byte(`
actions:
  - name: RING_BELL
    params:
      - name: BellID
        type: string
        required: true
      - name: Volume
        type: enum
        choices: [Soft, Loud]
checks:
  - name: BELL_RUNG
    params:
      - name: BellID
        type: string
        required: true
`)
	r, err := Parse(doc)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	spec, ok := r.Command("RING_BELL")
	if !ok {
		t.Fatal("RING_BELL not registered")
	}
	vol, ok := spec.Param("Volume")
	if !ok || vol.Type != types.TypeEnum || len(vol.Choices) != 2 {
		t.Errorf("Volume = %+v, want enum [Soft Loud]", vol)
	}
	if _, ok := r.Check("BELL_RUNG"); !ok {
		t.Error("BELL_RUNG not registered as check")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "empty command name",
			doc: `actions:
  - name: ""
    params: []`,
			want: "empty name",
		},
		{
			name: "empty param name",
			doc: `actions:
  - name: RING_BELL
    params:
      - name: ""
        type: string`,
			want: "parameter with empty name",
		},
		{
			name: "unknown type",
			doc: `actions:
  - name: RING_BELL
    params:
      - name: BellID
        type: decimal`,
			want: "unknown type",
		},
		{
			name: "enum without choices",
			doc: `actions:
  - name: RING_BELL
    params:
      - name: Volume
        type: enum`,
			want: "no choices",
		},
		{
			name: "malformed yaml",
			doc:  "actions: [",
			want: "parsing registry",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want substring %q", err, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.yaml")
	doc := []byte(`
actions:
  - name: RING_BELL
    params:
      - name: BellID
        type: string
        required: true
`)
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		t.Fatal(err)
	}
	r, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, ok := r.Command("RING_BELL"); !ok {
		t.Error("RING_BELL not registered")
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
