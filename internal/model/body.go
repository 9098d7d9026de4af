// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

import "github.com/zclconf/go-cty/cty"

// StructuralBody is one design unit's internal wiring: an ordered sequence
// of instances plus the body's own external connection point list. Instance
// labels are unique within the body; order is significant only for
// deterministic diagnostics.
type StructuralBody struct {
	Unit      string
	Variant   string
	Points    []string
	Instances []*Instance
}

// Instance returns the instance with the given label, or nil.
func (b *StructuralBody) Instance(label string) *Instance {
	for _, inst := range b.Instances {
		if inst.Label == label {
			return inst
		}
	}
	return nil
}

// Instance is a placement of a ComponentDeclaration within a StructuralBody.
// Connections maps declared connection points to external signal names in
// the enclosing body; Generics carries the instance's generic parameter
// values.
type Instance struct {
	Label       string
	Component   *ComponentDeclaration
	Connections map[string]string
	Generics    map[string]cty.Value
}
