package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/hdlbind/internal/ctxlog"
	"github.com/vk/hdlbind/internal/fsutil"
	"github.com/vk/hdlbind/internal/library"
	"github.com/vk/hdlbind/internal/model"
	"github.com/vk/hdlbind/internal/schema"
)

// Loader parses HCL library and configuration files.
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader creates a Loader with a fresh parser.
func NewLoader() *Loader {
	return &Loader{parser: hclparse.NewParser()}
}

// LoadLibrary finds every .hcl file under path and builds the design
// library from the component and design_unit blocks found. Components from
// all files are registered before any design unit is translated, so bodies
// may instance declarations from other files. Per-file errors are
// accumulated so one invocation reports every broken file.
func (l *Loader) LoadLibrary(ctx context.Context, path string) (*library.Library, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := fsutil.FindFilesByExtension(path, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("failed to find library files in %s: %w", path, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl library files found in %s", path)
	}
	logger.Debug("Loading design library.", "path", path, "files", len(files))

	var merr *multierror.Error
	parsed := make([]*schema.LibraryFile, 0, len(files))
	for _, file := range files {
		hclFile, diags := l.parser.ParseHCLFile(file)
		if diags.HasErrors() {
			merr = multierror.Append(merr, fmt.Errorf("failed to parse %s: %w", file, diags))
			continue
		}
		var lf schema.LibraryFile
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &lf); diags.HasErrors() {
			merr = multierror.Append(merr, fmt.Errorf("failed to decode %s: %w", file, diags))
			continue
		}
		parsed = append(parsed, &lf)
	}
	if err := merr.ErrorOrNil(); err != nil {
		return nil, err
	}

	lib := library.New()

	// First pass: component declarations, so design-unit bodies can
	// reference declarations from any file.
	for _, lf := range parsed {
		for _, c := range lf.Components {
			if _, err := lib.Component(c.Name); err == nil {
				merr = multierror.Append(merr, fmt.Errorf("component %q declared more than once", c.Name))
				continue
			}
			lib.AddComponent(translateComponent(c))
		}
	}

	// Second pass: design units and their variants.
	for _, lf := range parsed {
		for _, du := range lf.DesignUnits {
			if _, err := lib.Unit(du.Name); err == nil {
				merr = multierror.Append(merr, fmt.Errorf("design unit %q declared more than once", du.Name))
				continue
			}
			unit, err := translateDesignUnit(du, lib)
			if err != nil {
				merr = multierror.Append(merr, err)
				continue
			}
			lib.AddUnit(unit)
		}
	}
	if err := merr.ErrorOrNil(); err != nil {
		return nil, err
	}

	logger.Info("Design library loaded.", "units", lib.Units(), "components", lib.Components())
	return lib, nil
}

// LoadConfiguration parses one configuration file and translates its single
// configure block into a model.Configuration.
func (l *Loader) LoadConfiguration(ctx context.Context, path string) (*model.Configuration, error) {
	logger := ctxlog.FromContext(ctx)

	hclFile, diags := l.parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %w", path, diags)
	}
	var cf schema.ConfigFile
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &cf); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode %s: %w", path, diags)
	}

	if len(cf.Configures) != 1 {
		return nil, fmt.Errorf("%s: expected exactly one configure block, found %d", path, len(cf.Configures))
	}

	cfg, err := translateConfigure(cf.Configures[0])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	logger.Debug("Configuration loaded.", "unit", cfg.Unit, "variant", cfg.Variant, "rules", len(cfg.Rules.Rules))
	return cfg, nil
}
