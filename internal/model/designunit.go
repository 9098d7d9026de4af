// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

import "slices"

// DesignUnit is a named component type owning its alternative
// implementations, keyed by variant name. Units are immutable once loaded.
type DesignUnit struct {
	Name     string
	Variants map[string]*Variant
}

// Variant is one concrete implementation of a DesignUnit. Exactly one of
// Body and Primitive may be set: a structural variant owns an internal
// StructuralBody, a primitive variant is an opaque leaf that may carry
// per-dialect netlist templates. A variant with neither is treated as a
// primitive with no renderable form.
type Variant struct {
	Unit      string
	Name      string
	Points    []string
	Body      *StructuralBody
	Primitive *Primitive
}

// IsStructural reports whether the variant owns an internal body.
func (v *Variant) IsStructural() bool {
	return v.Body != nil
}

// HasPoint reports whether the variant exposes the named connection point.
func (v *Variant) HasPoint(name string) bool {
	return slices.Contains(v.Points, name)
}

// Primitive holds the per-dialect renderable forms of a primitive variant,
// keyed by dialect name (for example "spice", "vhdl", "verilog").
type Primitive struct {
	Dialects map[string]*Dialect
}

// Dialect is one renderable form of a primitive variant. Definition is the
// dialect-level text emitted once per variant (a model card or subcircuit
// definition; may be empty for built-in devices). Reference is a
// text/template body rendered once per resolved instance with fields
// .Name, .Port and .Generic.
type Dialect struct {
	Name       string
	Definition string
	Reference  string
}
