// Package library provides the read-only design library: the catalog mapping
// design unit names to their variants, plus the component declarations that
// instances are declared against.
//
// A Library is populated once, during loading, and is immutable afterwards;
// it may then be shared by reference across any number of concurrent
// resolution requests.
package library

import (
	"fmt"

	"github.com/vk/hdlbind/internal/diag"
	"github.com/vk/hdlbind/internal/model"
)

// Library is the catalog for one elaboration session.
type Library struct {
	units      map[string]*model.DesignUnit
	components map[string]*model.ComponentDeclaration
}

// New creates an empty Library.
func New() *Library {
	return &Library{
		units:      make(map[string]*model.DesignUnit),
		components: make(map[string]*model.ComponentDeclaration),
	}
}

// AddUnit registers a design unit. Duplicate names are a loader bug.
func (l *Library) AddUnit(unit *model.DesignUnit) {
	if _, exists := l.units[unit.Name]; exists {
		panic(fmt.Sprintf("design unit %q already registered", unit.Name))
	}
	l.units[unit.Name] = unit
}

// AddComponent registers a component declaration. Duplicate names are a
// loader bug.
func (l *Library) AddComponent(c *model.ComponentDeclaration) {
	if _, exists := l.components[c.Name]; exists {
		panic(fmt.Sprintf("component declaration %q already registered", c.Name))
	}
	l.components[c.Name] = c
}

// Unit looks up a design unit by name.
func (l *Library) Unit(name string) (*model.DesignUnit, error) {
	unit, ok := l.units[name]
	if !ok {
		return nil, diag.Newf(diag.UnknownDesignUnit, name,
			"design unit %q is not in the library", name)
	}
	return unit, nil
}

// Variant looks up one variant of a design unit.
func (l *Library) Variant(unitName, variantName string) (*model.Variant, error) {
	unit, err := l.Unit(unitName)
	if err != nil {
		return nil, err
	}
	variant, ok := unit.Variants[variantName]
	if !ok {
		return nil, diag.Newf(diag.UnknownVariant, unitName+"/"+variantName,
			"design unit %q has no variant %q", unitName, variantName)
	}
	return variant, nil
}

// Component looks up a component declaration by name.
func (l *Library) Component(name string) (*model.ComponentDeclaration, error) {
	c, ok := l.components[name]
	if !ok {
		return nil, fmt.Errorf("component declaration %q is not in the library", name)
	}
	return c, nil
}

// Components returns the number of registered component declarations.
func (l *Library) Components() int { return len(l.components) }

// Units returns the number of registered design units.
func (l *Library) Units() int { return len(l.units) }
