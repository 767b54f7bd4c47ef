package viewschema

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/tidwall/gjson"
)

// NeverLabel is shown for time columns holding the -1 "never" sentinel.
const NeverLabel = "Never"

// RenderRows projects raw records into cells, one per column visible to role.
// Records are JSON objects as returned by the data-fetching layer. Unlike
// ColumnsFor it does not fire the OnColumns hook.
func (p *Provider) RenderRows(kind EntityKind, role Role, records []json.RawMessage) ([][]Cell, error) {
	cols, err := visibleColumns(kind, role)
	if err != nil {
		return nil, err
	}

	rows := make([][]Cell, 0, len(records))
	for i, raw := range records {
		if !gjson.ValidBytes(raw) {
			return nil, fmt.Errorf("%w: record #%d is not valid JSON", ErrInvalidRecord, i)
		}
		rec := gjson.ParseBytes(raw)
		if !rec.IsObject() {
			return nil, fmt.Errorf("%w: record #%d is not an object", ErrInvalidRecord, i)
		}

		row := make([]Cell, len(cols))
		for j, col := range cols {
			row[j] = p.renderCell(col, rec)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (p *Provider) renderCell(col Column, rec gjson.Result) Cell {
	if col.Kind == KindActions || col.Field == "" {
		return Cell{Key: col.Key, Known: true}
	}

	v := rec.Get(col.Field)

	switch col.Kind {
	case KindChannelType:
		var cell Cell
		if id, ok := channelTypeID(v); ok {
			cell = p.ChannelTypeCell(id)
		} else {
			cell = Cell{Text: UnknownChannelTypeLabel, Color: NeutralColor}
		}
		cell.Key = col.Key
		return cell

	case KindTime:
		return Cell{Key: col.Key, Text: formatTimestamp(v), Known: true}
	}

	text := v.String()
	if v.IsObject() && len(v.Map()) == 0 {
		text = ""
	}
	return Cell{Key: col.Key, Text: text, Known: true}
}

// channelTypeID accepts only integral numbers that fit in an int.
func channelTypeID(v gjson.Result) (int, bool) {
	if v.Type != gjson.Number || v.Num != math.Trunc(v.Num) {
		return 0, false
	}
	if v.Num < math.MinInt32 || v.Num > math.MaxInt32 {
		return 0, false
	}
	return int(v.Num), true
}

// formatTimestamp renders unix seconds as UTC. Zero means unset; -1 means never.
func formatTimestamp(v gjson.Result) string {
	if v.Type != gjson.Number {
		return v.String()
	}
	ts := v.Int()
	switch {
	case ts == -1:
		return NeverLabel
	case ts <= 0:
		return ""
	}
	return time.Unix(ts, 0).UTC().Format(time.DateTime)
}
