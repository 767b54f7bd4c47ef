package viewschema

import (
	"errors"
	"fmt"
	"log/slog"

	"gwconsole/internal/channeltype"
)

// Lookuper resolves channel type identifiers. *channeltype.Registry satisfies it.
type Lookuper interface {
	Lookup(id int) (channeltype.Entry, error)
}

// Hooks receives optional callbacks for instrumentation. Nil fields are skipped.
type Hooks struct {
	OnChannelTypeLookup func(id int, found bool)
	OnColumns           func(kind EntityKind, role Role)
}

// Provider answers column-layout questions for the console's list views.
// It holds no mutable state and is safe for concurrent use.
type Provider struct {
	registry Lookuper
	hooks    Hooks
}

// NewProvider creates a schema provider backed by the given registry.
func NewProvider(registry Lookuper) *Provider {
	return &Provider{registry: registry}
}

// NewProviderWithHooks is NewProvider with instrumentation callbacks.
func NewProviderWithHooks(registry Lookuper, hooks Hooks) *Provider {
	return &Provider{registry: registry, hooks: hooks}
}

// ColumnsFor returns the ordered columns of kind that role may see. Columns
// hidden from role are left out entirely.
func (p *Provider) ColumnsFor(kind EntityKind, role Role) ([]Column, error) {
	cols, err := visibleColumns(kind, role)
	if err != nil {
		return nil, err
	}
	if p.hooks.OnColumns != nil {
		p.hooks.OnColumns(kind, role)
	}
	return cols, nil
}

func visibleColumns(kind EntityKind, role Role) ([]Column, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}
	table, ok := tables[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEntity, kind)
	}

	cols := make([]Column, 0, len(table))
	for _, c := range table {
		if c.Visibility.VisibleFor(role) {
			cols = append(cols, c)
		}
	}
	return cols, nil
}

// Cell is one rendered value.
type Cell struct {
	Key   string `json:"key"`
	Text  string `json:"text"`
	Color string `json:"color,omitempty"`
	// Known is false when a channel-typed cell referenced an unregistered id.
	Known bool `json:"known"`
}

const (
	// UnknownChannelTypeLabel is shown for channel types missing from the registry.
	UnknownChannelTypeLabel = "Unknown channel type"
	// NeutralColor is the color class of placeholder cells.
	NeutralColor = "default"
)

// ChannelTypeCell resolves the label and color of a channel type. Unknown ids
// render as a neutral placeholder. The returned cell has no Key set.
func (p *Provider) ChannelTypeCell(id int) Cell {
	entry, err := p.registry.Lookup(id)
	if p.hooks.OnChannelTypeLookup != nil {
		p.hooks.OnChannelTypeLookup(id, err == nil)
	}
	if err != nil {
		if !errors.Is(err, channeltype.ErrNotFound) {
			slog.Warn("channel type lookup failed", "id", id, "error", err)
		}
		return Cell{Text: UnknownChannelTypeLabel, Color: NeutralColor}
	}
	return Cell{Text: entry.Label, Color: string(entry.Color), Known: true}
}
