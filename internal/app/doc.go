// Package app wires the tool together: it configures logging, loads the
// design library and the binding configuration through the HCL loader, runs
// resolution and validation, and prints either a JSON report of the
// resolved graph or a netlist for a simulator target.
package app
