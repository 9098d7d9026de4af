// Package diag defines the diagnostic values produced by binding resolution
// and validation. Diagnostics are plain data (kind, subject, detail) so that
// callers can present them directly without interpreting error strings.
package diag

import (
	"fmt"
	"strings"
)

// Kind classifies a diagnostic.
type Kind string

const (
	// UnknownDesignUnit means a binding rule targets a design unit that is
	// not present in the library.
	UnknownDesignUnit Kind = "UnknownDesignUnit"

	// UnknownVariant means a binding rule targets a variant name its design
	// unit does not define.
	UnknownVariant Kind = "UnknownVariant"

	// ConflictingRule means two rules in one rule set cover the same
	// instance, or two catch-alls target the same component declaration.
	ConflictingRule Kind = "ConflictingRule"

	// UnresolvedInstance means no rule in the rule set matched an instance.
	UnresolvedInstance Kind = "UnresolvedInstance"

	// CyclicDesignHierarchy means a structural variant's body instances its
	// own enclosing design unit, directly or transitively.
	CyclicDesignHierarchy Kind = "CyclicDesignHierarchy"

	// DanglingPortMap means a port map entry names a point that does not
	// exist on the component declaration or the chosen variant, or rekeys
	// more than one declared point onto the same variant point.
	DanglingPortMap Kind = "DanglingPortMap"

	// UnconnectedPoint means a variant connection point ends up with no
	// external signal after remapping.
	UnconnectedPoint Kind = "UnconnectedPoint"
)

// Diagnostic is a single resolution or validation defect.
type Diagnostic struct {
	Kind    Kind   `json:"kind"`
	Subject string `json:"subject"` // instance label, unit/variant pair, or rule identity
	Detail  string `json:"detail"`
}

// Error implements the error interface.
func (d *Diagnostic) Error() string {
	if d.Subject == "" {
		return fmt.Sprintf("%s: %s", d.Kind, d.Detail)
	}
	return fmt.Sprintf("%s: %s: %s", d.Kind, d.Subject, d.Detail)
}

// Newf constructs a Diagnostic with a formatted detail message.
func Newf(kind Kind, subject, format string, args ...any) *Diagnostic {
	return &Diagnostic{Kind: kind, Subject: subject, Detail: fmt.Sprintf(format, args...)}
}

// Diagnostics is an ordered collection of diagnostics. A nil or empty
// Diagnostics means no defects were found.
type Diagnostics []*Diagnostic

// Append adds diagnostics to the collection, ignoring nils.
func (ds Diagnostics) Append(more ...*Diagnostic) Diagnostics {
	for _, d := range more {
		if d != nil {
			ds = append(ds, d)
		}
	}
	return ds
}

// Extend concatenates another collection onto this one.
func (ds Diagnostics) Extend(other Diagnostics) Diagnostics {
	return append(ds, other...)
}

// HasErrors reports whether the collection contains any diagnostic.
func (ds Diagnostics) HasErrors() bool {
	return len(ds) > 0
}

// OnlyKind reports whether every diagnostic in the collection has the given
// kind. It returns false for an empty collection.
func (ds Diagnostics) OnlyKind(kind Kind) bool {
	if len(ds) == 0 {
		return false
	}
	for _, d := range ds {
		if d.Kind != kind {
			return false
		}
	}
	return true
}

// Error implements the error interface by joining every diagnostic, one per
// line, in the order they were recorded.
func (ds Diagnostics) Error() string {
	switch len(ds) {
	case 0:
		return "no diagnostics"
	case 1:
		return ds[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d diagnostics:", len(ds))
	for _, d := range ds {
		sb.WriteString("\n\t")
		sb.WriteString(d.Error())
	}
	return sb.String()
}
