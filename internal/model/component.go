// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

import "slices"

// ComponentDeclaration is the interface shape an instance is declared
// against before binding: an ordered set of connection point names and an
// ordered set of generic parameter names.
type ComponentDeclaration struct {
	Name     string
	Points   []string
	Generics []string
}

// HasPoint reports whether the declaration defines the named connection point.
func (c *ComponentDeclaration) HasPoint(name string) bool {
	return slices.Contains(c.Points, name)
}
