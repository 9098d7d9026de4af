package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// --- Library file structures ---

// Component represents a `component` block: the interface shape instances
// are declared against before binding.
type Component struct {
	Name     string   `hcl:"name,label"`
	Points   []string `hcl:"points"`
	Generics []string `hcl:"generics,optional"`
}

// Dialect represents a `dialect` block inside a primitive variant. The
// reference is a text/template body rendered once per resolved instance.
type Dialect struct {
	Name       string `hcl:"name,label"`
	Definition string `hcl:"definition,optional"`
	Reference  string `hcl:"reference"`
}

// Primitive represents the `primitive` block of a leaf variant.
type Primitive struct {
	Dialects []*Dialect `hcl:"dialect,block"`
}

// Instance represents an `instance` block inside a structural body.
// Connect wires declared points to external signals; generics is an object
// expression supplying generic parameter values, captured unevaluated.
type Instance struct {
	Label     string            `hcl:"label,label"`
	Component string            `hcl:"component"`
	Connect   map[string]string `hcl:"connect,optional"`
	Generics  hcl.Expression    `hcl:"generics,optional"`
}

// Body represents the `body` block of a structural variant.
type Body struct {
	Instances []*Instance `hcl:"instance,block"`
}

// Variant represents a `variant` block of a design unit. Exactly one of
// Primitive and Body may be present.
type Variant struct {
	Name      string     `hcl:"name,label"`
	Points    []string   `hcl:"points"`
	Primitive *Primitive `hcl:"primitive,block"`
	Body      *Body      `hcl:"body,block"`
}

// DesignUnit represents a `design_unit` block.
type DesignUnit struct {
	Name     string     `hcl:"name,label"`
	Variants []*Variant `hcl:"variant,block"`
}

// LibraryFile represents the top-level structure of a library file.
type LibraryFile struct {
	Components  []*Component  `hcl:"component,block"`
	DesignUnits []*DesignUnit `hcl:"design_unit,block"`
	Body        hcl.Body      `hcl:",remain"`
}

// --- Configuration file structures ---

// Bind represents a `bind` block: one binding rule. Exactly one of
// Instances (explicit labels) and OthersOf (catch-all for a component
// declaration) must be set.
type Bind struct {
	Instances []string          `hcl:"instances,optional"`
	OthersOf  string            `hcl:"others_of,optional"`
	Unit      string            `hcl:"unit"`
	Variant   string            `hcl:"variant"`
	PortMap   map[string]string `hcl:"port_map,optional"`
}

// ForInstance represents a `for_instance` block: the sub-configuration
// applied when the named instance resolves to a structural variant.
type ForInstance struct {
	Label string         `hcl:"label,label"`
	Binds []*Bind        `hcl:"bind,block"`
	Subs  []*ForInstance `hcl:"for_instance,block"`
}

// Configure represents a `configure` block, scoping a rule set to one
// structural variant of a design unit.
type Configure struct {
	Unit    string         `hcl:"unit,label"`
	Variant string         `hcl:"variant,label"`
	Binds   []*Bind        `hcl:"bind,block"`
	Subs    []*ForInstance `hcl:"for_instance,block"`
}

// ConfigFile represents the top-level structure of a configuration file.
type ConfigFile struct {
	Configures []*Configure `hcl:"configure,block"`
	Body       hcl.Body     `hcl:",remain"`
}
