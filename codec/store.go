package codec

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nathoo/advcore/project"
)

// Project file layout, relative to the project root. The layout is part of
// the wire contract shared with the runtime.
const (
	VariablesFile      = "Data/GlobalState.json"
	GraphsFile         = "Logic/LogicGraphs.json"
	DialogueGraphsFile = "Logic/DialogueGraphs.json"
	RulesFile          = "Logic/Interactions.json"
)

// Store reads and writes a project directory.
type Store struct {
	Dir string
}

// NewStore returns a store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{Dir: dir}
}

func (s *Store) path(rel string) string {
	return filepath.Join(s.Dir, filepath.FromSlash(rel))
}

// Save writes every collection, each through an atomic temp-then-rename
// commit. Collections the author has emptied are still written, as explicit
// empty arrays; a save must never leave stale records from a previous one.
// The first write failure aborts the save with prior files intact.
func (s *Store) Save(p *project.Project) error {
	writes := []struct {
		rel    string
		encode func() ([]byte, error)
	}{
		{VariablesFile, func() ([]byte, error) { return EncodeVariables(p.Variables) }},
		{GraphsFile, func() ([]byte, error) { return EncodeGraphs(p.Graphs) }},
		{DialogueGraphsFile, func() ([]byte, error) { return EncodeGraphs(p.DialogueGraphs) }},
		{RulesFile, func() ([]byte, error) { return EncodeRules(p.Rules) }},
	}
	for _, w := range writes {
		data, err := w.encode()
		if err != nil {
			return fmt.Errorf("encode %s: %w", w.rel, err)
		}
		if err := WriteFileAtomic(s.path(w.rel), data); err != nil {
			return fmt.Errorf("save %s: %w", w.rel, err)
		}
	}
	return nil
}

// Load reads the project directory. A missing file loads as an empty
// collection; a malformed file is reported as a DecodeError and leaves the
// other collections loaded. The returned project is always usable.
func (s *Store) Load() (*project.Project, []error) {
	p := project.New()
	var errs []error

	load := func(rel string, decode func([]byte) error) {
		data, err := os.ReadFile(s.path(rel))
		if errors.Is(err, os.ErrNotExist) {
			return
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("read %s: %w", rel, err))
			return
		}
		if err := decode(data); err != nil {
			var de *DecodeError
			if errors.As(err, &de) {
				de.File = rel
			}
			errs = append(errs, err)
		}
	}

	load(VariablesFile, func(data []byte) error {
		vars, err := DecodeVariables(data)
		if err != nil {
			return err
		}
		p.Variables = vars
		return nil
	})
	load(GraphsFile, func(data []byte) error {
		graphs, err := DecodeGraphs(data)
		if err != nil {
			return err
		}
		p.Graphs = graphs
		return nil
	})
	load(DialogueGraphsFile, func(data []byte) error {
		graphs, err := DecodeGraphs(data)
		if err != nil {
			return err
		}
		p.DialogueGraphs = graphs
		return nil
	})
	load(RulesFile, func(data []byte) error {
		rules, err := DecodeRules(data)
		if err != nil {
			return err
		}
		p.Rules = rules
		return nil
	})

	return p, errs
}

// Init scaffolds a new project directory with explicit empty collections.
// It refuses to touch a directory that already holds a project.
func (s *Store) Init() error {
	if _, err := os.Stat(s.path(VariablesFile)); err == nil {
		return fmt.Errorf("project already exists in %s", s.Dir)
	}
	return s.Save(project.New())
}
