package app

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vk/hdlbind/internal/ctxlog"
	"github.com/vk/hdlbind/internal/model"
	"github.com/vk/hdlbind/internal/netlist"
	"github.com/vk/hdlbind/internal/resolver"
	"github.com/vk/hdlbind/internal/validator"
)

// Run resolves the configured structural variant, validates the resolved
// graph, and writes the requested output.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	graph, err := a.Elaborate(ctx)
	if err != nil {
		return err
	}

	if a.appConfig.Target != "" {
		w := netlist.NewWriter(a.lib, netlist.TargetByName(a.appConfig.Target))
		if err := w.Write(a.outW, graph); err != nil {
			return fmt.Errorf("failed to write netlist: %w", err)
		}
		return nil
	}

	enc := json.NewEncoder(a.outW)
	enc.SetIndent("", "  ")
	return enc.Encode(graph)
}

// Elaborate resolves and validates the configured variant's body, returning
// the accepted graph.
func (a *App) Elaborate(ctx context.Context) (*model.ResolvedGraph, error) {
	logger := ctxlog.FromContext(ctx)

	variant, err := a.lib.Variant(a.binding.Unit, a.binding.Variant)
	if err != nil {
		return nil, err
	}
	if !variant.IsStructural() {
		return nil, fmt.Errorf("configured variant %s/%s is not structural", a.binding.Unit, a.binding.Variant)
	}

	graph, err := resolver.Resolve(ctx, variant.Body, a.binding, a.lib)
	if err != nil {
		return nil, err
	}
	logger.Info("Design resolved.", "unit", graph.Unit, "variant", graph.Variant, "instances", len(graph.Instances))

	if ds := validator.Validate(graph, a.lib); ds.HasErrors() {
		return nil, ds
	}
	logger.Debug("Validation passed.")

	return graph, nil
}
