// Package netlist flattens a resolved instance graph into netlist text for
// a simulator target. Primitive variants carry per-dialect reference
// templates; structural variants are expanded in place with hierarchical
// net names.
package netlist

import (
	"fmt"

	"github.com/vk/hdlbind/internal/model"
)

// Target selects the dialect a netlist is written in. Dialects lists the
// dialect names to try, most specific first; a simulator that accepts a
// generic dialect falls back to it when no simulator-specific form exists.
type Target struct {
	Name     string
	Dialects []string
}

// Known simulator targets and their fallback chains.
var knownTargets = map[string]Target{
	"ngspice":   {Name: "ngspice", Dialects: []string{"ngspice", "spice"}},
	"xyce":      {Name: "xyce", Dialects: []string{"xyce", "spice"}},
	"ghdl":      {Name: "ghdl", Dialects: []string{"ghdl", "vhdl"}},
	"verilator": {Name: "verilator", Dialects: []string{"verilator", "verilog"}},
}

// TargetByName returns the target for a simulator name. A name without a
// registered fallback chain selects exactly that dialect.
func TargetByName(name string) Target {
	if t, ok := knownTargets[name]; ok {
		return t
	}
	return Target{Name: name, Dialects: []string{name}}
}

// pick returns the first dialect of the variant the target accepts.
func (t Target) pick(variant *model.Variant) (*model.Dialect, error) {
	if variant.Primitive != nil {
		for _, name := range t.Dialects {
			if d, ok := variant.Primitive.Dialects[name]; ok {
				return d, nil
			}
		}
	}
	return nil, fmt.Errorf("variant %s/%s has no dialect for target %q (tried %v)",
		variant.Unit, variant.Name, t.Name, t.Dialects)
}
