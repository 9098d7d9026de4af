// Package hcl implements the HCL loader surface of the tool: it parses
// library files (component declarations and design units) and configuration
// files (binding rule sets with nested sub-configurations) and translates
// them into the format-agnostic structures of internal/model.
//
// The core resolver never touches HCL; any well-formedness this loader
// enforces (unique instance labels, wiring that references declared points,
// exactly one selector per bind block) is assumed by everything downstream.
package hcl
