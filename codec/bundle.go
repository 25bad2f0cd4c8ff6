package codec

import (
	"encoding/json"
	"fmt"

	"github.com/golang/snappy"

	"github.com/nathoo/advcore/project"
)

// BundleFormat tags the bundle schema so the runtime can reject exports it
// does not understand.
const BundleFormat = 1

// bundleWire is the single-document runtime export: the four collections in
// their regular wire form, snappy-compressed as one block.
type bundleWire struct {
	Format         int             `json:"format"`
	Variables      json.RawMessage `json:"global_variables"`
	Graphs         json.RawMessage `json:"logic_graphs"`
	DialogueGraphs json.RawMessage `json:"dialogue_graphs"`
	Rules          json.RawMessage `json:"interactions"`
}

// ExportBundle packs the whole project into one compressed document for
// handoff to the runtime.
func ExportBundle(p *project.Project) ([]byte, error) {
	vars, err := EncodeVariables(p.Variables)
	if err != nil {
		return nil, fmt.Errorf("bundle variables: %w", err)
	}
	graphs, err := EncodeGraphs(p.Graphs)
	if err != nil {
		return nil, fmt.Errorf("bundle graphs: %w", err)
	}
	dialogues, err := EncodeGraphs(p.DialogueGraphs)
	if err != nil {
		return nil, fmt.Errorf("bundle dialogue graphs: %w", err)
	}
	rules, err := EncodeRules(p.Rules)
	if err != nil {
		return nil, fmt.Errorf("bundle rules: %w", err)
	}
	doc, err := json.Marshal(bundleWire{
		Format: BundleFormat, Variables: vars, Graphs: graphs,
		DialogueGraphs: dialogues, Rules: rules,
	})
	if err != nil {
		return nil, err
	}
	return snappy.Encode(nil, doc), nil
}

// ImportBundle unpacks a compressed export back into a project.
func ImportBundle(data []byte) (*project.Project, error) {
	doc, err := snappy.Decode(nil, data)
	if err != nil {
		return nil, fmt.Errorf("decompress bundle: %w", err)
	}
	var w bundleWire
	if err := json.Unmarshal(doc, &w); err != nil {
		return nil, &DecodeError{File: "bundle", Err: err}
	}
	if w.Format != BundleFormat {
		return nil, &DecodeError{File: "bundle", Err: fmt.Errorf("unsupported bundle format %d", w.Format)}
	}

	p := project.New()
	if len(w.Variables) == 0 {
		w.Variables = []byte("[]")
	}
	if len(w.Graphs) == 0 {
		w.Graphs = []byte("[]")
	}
	if len(w.DialogueGraphs) == 0 {
		w.DialogueGraphs = []byte("[]")
	}
	if len(w.Rules) == 0 {
		w.Rules = []byte("[]")
	}
	if p.Variables, err = DecodeVariables(w.Variables); err != nil {
		return nil, err
	}
	if p.Graphs, err = DecodeGraphs(w.Graphs); err != nil {
		return nil, err
	}
	if p.DialogueGraphs, err = DecodeGraphs(w.DialogueGraphs); err != nil {
		return nil, err
	}
	if p.Rules, err = DecodeRules(w.Rules); err != nil {
		return nil, err
	}
	return p, nil
}
