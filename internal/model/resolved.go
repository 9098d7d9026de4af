// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

import (
	"encoding/json"

	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// Assignment records how one declared connection point was resolved: the
// variant point it was rekeyed to (identity when the port map left it
// unmapped) and the external signal wired to it.
type Assignment struct {
	DeclaredPoint string
	VariantPoint  string
	Signal        string
}

// ResolvedInstance is one instance after binding: the chosen variant and the
// final connection mapping, keyed by the variant's point names. Assignments
// preserves the ordered per-point derivation for validation and rendering.
// Source and Rule reference the inputs the instance was resolved from; they
// are never serialized.
type ResolvedInstance struct {
	Label       string
	Unit        string
	Variant     string
	Connections map[string]string
	Assignments []Assignment
	Generics    map[string]cty.Value
	Sub         *ResolvedGraph

	Source *Instance
	Rule   *BindingRule
}

// MarshalJSON serializes the instance for report printers. Generic values
// are emitted through cty's lossy JSON mapping; the source instance and the
// matched rule are internal and omitted.
func (ri *ResolvedInstance) MarshalJSON() ([]byte, error) {
	out := struct {
		Label       string                             `json:"label"`
		Unit        string                             `json:"unit"`
		Variant     string                             `json:"variant"`
		Connections map[string]string                  `json:"connections"`
		Generics    map[string]ctyjson.SimpleJSONValue `json:"generics,omitempty"`
		Body        *ResolvedGraph                     `json:"body,omitempty"`
	}{
		Label:       ri.Label,
		Unit:        ri.Unit,
		Variant:     ri.Variant,
		Connections: ri.Connections,
		Body:        ri.Sub,
	}
	if len(ri.Generics) > 0 {
		out.Generics = make(map[string]ctyjson.SimpleJSONValue, len(ri.Generics))
		for name, val := range ri.Generics {
			out.Generics[name] = ctyjson.SimpleJSONValue{Value: val}
		}
	}
	return json.Marshal(out)
}

// ResolvedGraph is the fully elaborated structural design: the identity of
// the body that was elaborated plus one resolved instance per instance in
// that body, in declared order, recursively containing resolved sub-graphs
// for structural variants.
type ResolvedGraph struct {
	Unit      string              `json:"unit"`
	Variant   string              `json:"variant"`
	Instances []*ResolvedInstance `json:"instances"`
}

// Instance returns the resolved instance with the given label, or nil.
func (g *ResolvedGraph) Instance(label string) *ResolvedInstance {
	for _, ri := range g.Instances {
		if ri.Label == label {
			return ri
		}
	}
	return nil
}
