// Package observability exposes Prometheus collectors for the console.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"gwconsole/internal/viewschema"
)

var (
	// ChannelTypeLookups counts registry lookups made while rendering cells.
	ChannelTypeLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gwconsole_channel_type_lookups_total",
			Help: "Channel type registry lookups by result (hit or miss).",
		},
		[]string{"result"},
	)

	// SchemaRequests counts column-layout requests per view and role.
	SchemaRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gwconsole_view_schema_requests_total",
			Help: "List-view column layout requests by entity and caller role.",
		},
		[]string{"entity", "role"},
	)

	// ChannelTypes is the number of entries in the active registry.
	ChannelTypes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "gwconsole_channel_types",
		Help: "Number of channel types in the active registry.",
	})
)

// NewPrometheusHooks returns schema provider hooks that feed the collectors above.
func NewPrometheusHooks() viewschema.Hooks {
	return viewschema.Hooks{
		OnChannelTypeLookup: func(_ int, found bool) {
			result := "hit"
			if !found {
				result = "miss"
			}
			ChannelTypeLookups.WithLabelValues(result).Inc()
		},
		OnColumns: func(kind viewschema.EntityKind, role viewschema.Role) {
			SchemaRequests.WithLabelValues(string(kind), string(role)).Inc()
		},
	}
}
