// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

// Configuration scopes a rule set to one structural body and carries the
// sub-configurations for instances whose chosen variant is itself
// structural, keyed by instance label. Unit and Variant name the structural
// variant the configuration elaborates.
type Configuration struct {
	Unit    string
	Variant string
	Rules   *RuleSet
	Sub     map[string]*Configuration
}

// SubFor returns the sub-configuration supplied for the given instance
// label, or nil when the caller supplied none.
func (c *Configuration) SubFor(label string) *Configuration {
	if c == nil {
		return nil
	}
	return c.Sub[label]
}
