// Package registry holds the command registry: the externally authored
// mapping from command name to parameter schema that is the authority for
// ActionNode validation. The registry is shared data with the game runtime;
// changing it is a schema migration, not a code change.
package registry

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nathoo/advcore/types"
)

// ParamSpec describes one parameter of a command: its name, declared type,
// whether it is required, and for enums the closed member list.
type ParamSpec struct {
	Name     string          `yaml:"name"`
	Type     types.ValueType `yaml:"type"`
	Required bool            `yaml:"required"`
	Choices  []string        `yaml:"choices,omitempty"` // enum members
	Default  string          `yaml:"default,omitempty"`
}

// CommandSpec is the schema for one command: an ordered parameter list.
type CommandSpec struct {
	Name   string      `yaml:"name"`
	Params []ParamSpec `yaml:"params"`
}

// Param looks up a parameter spec by name.
func (c CommandSpec) Param(name string) (ParamSpec, bool) {
	for _, p := range c.Params {
		if p.Name == name {
			return p, true
		}
	}
	return ParamSpec{}, false
}

// Registry maps command names to their schemas. Actions are ActionNode
// commands; Checks are the derived condition checks the runtime evaluates
// beyond plain variable comparison.
type Registry struct {
	actions map[string]CommandSpec
	checks  map[string]CommandSpec
	order   []string // action names in authored order
}

// New builds a registry from ordered action and check specs.
func New(actions, checks []CommandSpec) *Registry {
	r := &Registry{
		actions: make(map[string]CommandSpec, len(actions)),
		checks:  make(map[string]CommandSpec, len(checks)),
	}
	for _, c := range actions {
		r.actions[c.Name] = c
		r.order = append(r.order, c.Name)
	}
	for _, c := range checks {
		r.checks[c.Name] = c
	}
	return r
}

// Command looks up an action command schema.
func (r *Registry) Command(name string) (CommandSpec, bool) {
	c, ok := r.actions[name]
	return c, ok
}

// Check looks up a condition check schema.
func (r *Registry) Check(name string) (CommandSpec, bool) {
	c, ok := r.checks[name]
	return c, ok
}

// Commands returns all action schemas in authored order.
func (r *Registry) Commands() []CommandSpec {
	out := make([]CommandSpec, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.actions[name])
	}
	return out
}

// registryFile is the on-disk registry document. The file is YAML; JSON
// documents parse through the same path.
type registryFile struct {
	Actions []CommandSpec `yaml:"actions"`
	Checks  []CommandSpec `yaml:"checks"`
}

// Load reads a registry document from path.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading registry %s: %w", path, err)
	}
	return Parse(data)
}

// Parse builds a registry from a YAML document.
func Parse(data []byte) (*Registry, error) {
	var rf registryFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing registry: %w", err)
	}
	for _, c := range append(append([]CommandSpec{}, rf.Actions...), rf.Checks...) {
		if c.Name == "" {
			return nil, fmt.Errorf("parsing registry: command with empty name")
		}
		for _, p := range c.Params {
			if p.Name == "" {
				return nil, fmt.Errorf("parsing registry: command %s has a parameter with empty name", c.Name)
			}
			if !types.ValidValueType(p.Type) {
				return nil, fmt.Errorf("parsing registry: command %s parameter %s has unknown type %q", c.Name, p.Name, p.Type)
			}
			if p.Type == types.TypeEnum && len(p.Choices) == 0 {
				return nil, fmt.Errorf("parsing registry: command %s enum parameter %s has no choices", c.Name, p.Name)
			}
		}
	}
	return New(rf.Actions, rf.Checks), nil
}
