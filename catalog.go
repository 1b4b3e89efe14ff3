package toolrun

import (
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cockroachdb/errors"
)

// ToolCatalog is the ordered set of tools visible for one run.
type ToolCatalog struct {
	tools []ToolDescriptor
}

// NewCatalog builds a catalog from the session's descriptors, preserving
// their order. Names must be unique.
func NewCatalog(tools []ToolDescriptor) (ToolCatalog, error) {
	seen := make(map[string]struct{}, len(tools))
	for _, t := range tools {
		if t.Name == "" {
			return ToolCatalog{}, errors.Wrap(ErrValidation, "tool name is empty")
		}
		if _, ok := seen[t.Name]; ok {
			return ToolCatalog{}, errors.Wrapf(ErrDuplicateTool, "%q", t.Name)
		}
		seen[t.Name] = struct{}{}
	}
	return ToolCatalog{tools: slices.Clone(tools)}, nil
}

// Tools returns a copy of the descriptors.
func (c ToolCatalog) Tools() []ToolDescriptor {
	return slices.Clone(c.tools)
}

// Len returns the number of tools.
func (c ToolCatalog) Len() int {
	return len(c.tools)
}

// Names returns the tool names in catalog order.
func (c ToolCatalog) Names() []string {
	names := make([]string, len(c.tools))
	for i, t := range c.tools {
		names[i] = t.Name
	}
	return names
}

// Filter keeps the tools whose names match at least one glob pattern.
// No patterns keeps every tool.
func (c ToolCatalog) Filter(patterns []string) (ToolCatalog, error) {
	if len(patterns) == 0 {
		return c, nil
	}
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return ToolCatalog{}, errors.Wrapf(ErrValidation, "invalid tool pattern %q", p)
		}
	}
	var kept []ToolDescriptor
	for _, t := range c.tools {
		for _, p := range patterns {
			// Patterns were validated above; Match only fails on bad patterns.
			if ok, _ := doublestar.Match(p, t.Name); ok {
				kept = append(kept, t)
				break
			}
		}
	}
	return ToolCatalog{tools: kept}, nil
}
