package admin

import (
	"encoding/json"

	"gwconsole/internal/channeltype"
	"gwconsole/internal/viewschema"
)

// OverviewResponse is the JSON response for GET /admin/api/v1/overview.
type OverviewResponse struct {
	ChannelTypes int    `json:"channel_types"`
	Fingerprint  string `json:"fingerprint"`
	Uptime       string `json:"uptime"`
	Version      string `json:"version"`
	GoVersion    string `json:"go_version"`
}

// ChannelTypesResponse is the JSON response for GET /admin/api/v1/channel-types.
type ChannelTypesResponse struct {
	Entries []channeltype.Entry `json:"entries"`
	Total   int                 `json:"total"`
}

// LegendGroup is one color of the channel type legend.
type LegendGroup struct {
	Color   channeltype.StatusColor `json:"color"`
	Entries []channeltype.Entry     `json:"entries"`
}

// ColumnsResponse is the JSON response for GET /admin/api/v1/views/:entity/columns.
type ColumnsResponse struct {
	Entity  viewschema.EntityKind `json:"entity"`
	Role    viewschema.Role       `json:"role"`
	Columns []viewschema.Column   `json:"columns"`
}

// RowsRequest is the body of POST /admin/api/v1/views/:entity/rows.
type RowsRequest struct {
	Records []json.RawMessage `json:"records"`
}

// RowsResponse is the JSON response for POST /admin/api/v1/views/:entity/rows.
type RowsResponse struct {
	Entity  viewschema.EntityKind `json:"entity"`
	Role    viewschema.Role       `json:"role"`
	Columns []viewschema.Column   `json:"columns"`
	Rows    [][]viewschema.Cell   `json:"rows"`
	Total   int                   `json:"total"`
}
