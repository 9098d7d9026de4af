// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model provides the format-agnostic, in-memory representation of a
// structural hardware design and the binding rules that configure it.
//
// # Core Concepts
//
//   - DesignUnit: a named component type with one or more alternative
//     implementations (Variants). Units live in a library catalog and are
//     immutable once loaded.
//
//   - Variant: one concrete implementation of a DesignUnit. A variant is
//     either primitive (an opaque leaf, optionally carrying per-dialect
//     netlist templates) or structural (it owns an internal StructuralBody
//     of further instances).
//
//   - ComponentDeclaration: the interface shape (ordered connection points
//     plus generic parameter names) an instance is declared against before
//     any implementation is chosen. Declarations exist independently of any
//     design unit.
//
//   - Instance: a placement of a ComponentDeclaration inside a
//     StructuralBody, with a label unique within that body and concrete
//     wiring from declared points to external signals.
//
//   - BindingRule / RuleSet / Configuration: the caller-supplied directives
//     selecting which variant each instance resolves to, with optional port
//     remapping, plus nested sub-configurations for structural variants.
//
//   - ResolvedInstance / ResolvedGraph: the output of resolution, a fully
//     elaborated tree in which every instance has a chosen variant and a
//     final connection mapping keyed by the variant's point names.
//
// Why a separate model package?
//
// The model is the single source of truth for the resolver, the validator
// and the netlist writer. Loaders (HCL or otherwise) translate surface
// syntax into these structures; everything downstream is independent of any
// textual form. Keeping the model free of behavior beyond accessors means
// tests can build fixtures directly without a parser in the loop.
package model
