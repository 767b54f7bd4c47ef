// Package admin provides the read-only admin REST API over the channel type
// registry and the list-view schemas.
package admin

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"gwconsole/internal/channeltype"
	"gwconsole/internal/core"
	"gwconsole/internal/viewschema"
)

// Handler serves admin API endpoints.
type Handler struct {
	registry  *channeltype.Registry
	schema    *viewschema.Provider
	startTime time.Time
}

// NewHandler creates a new admin API handler.
// Either collaborator may be nil; the affected endpoints then return empty results.
func NewHandler(registry *channeltype.Registry, schema *viewschema.Provider) *Handler {
	return &Handler{
		registry:  registry,
		schema:    schema,
		startTime: time.Now(),
	}
}

// handleError converts errors to appropriate HTTP responses, matching the
// format used by the server's authentication middleware.
func handleError(c echo.Context, err error) error {
	var apiErr *core.APIError
	switch {
	case errors.As(err, &apiErr):
	case errors.Is(err, channeltype.ErrNotFound):
		apiErr = core.NewNotFoundError(err.Error(), err)
	case errors.Is(err, viewschema.ErrUnknownEntity):
		apiErr = core.NewNotFoundError(err.Error(), err)
	case errors.Is(err, viewschema.ErrInvalidRole), errors.Is(err, viewschema.ErrInvalidRecord):
		apiErr = core.NewInvalidRequestError(err.Error(), err)
	default:
		slog.Error("admin request failed",
			"path", c.Path(),
			"request_id", core.GetRequestID(c.Request().Context()),
			"error", err,
		)
		return c.JSON(http.StatusInternalServerError, core.InternalErrorJSON())
	}
	return c.JSON(apiErr.HTTPStatusCode(), apiErr.ToJSON())
}

// ListChannelTypes handles GET /admin/api/v1/channel-types
//
// @Summary      List all channel types in declaration order
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ChannelTypesResponse
// @Failure      401  {object}  core.APIError
// @Router       /admin/api/v1/channel-types [get]
func (h *Handler) ListChannelTypes(c echo.Context) error {
	if h.registry == nil {
		return c.JSON(http.StatusOK, ChannelTypesResponse{Entries: []channeltype.Entry{}})
	}

	entries := h.registry.ListAll()
	return c.JSON(http.StatusOK, ChannelTypesResponse{
		Entries: entries,
		Total:   len(entries),
	})
}

// GetChannelType handles GET /admin/api/v1/channel-types/:id
//
// @Summary      Get a channel type by id
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Channel type id"
// @Success      200  {object}  channeltype.Entry
// @Failure      400  {object}  core.APIError
// @Failure      401  {object}  core.APIError
// @Failure      404  {object}  core.APIError
// @Router       /admin/api/v1/channel-types/{id} [get]
func (h *Handler) GetChannelType(c echo.Context) error {
	raw := c.Param("id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		return handleError(c, core.NewInvalidRequestError(fmt.Sprintf("invalid channel type id %q", raw), err))
	}

	if h.registry == nil {
		return handleError(c, fmt.Errorf("%w: %d", channeltype.ErrNotFound, id))
	}

	entry, err := h.registry.Lookup(id)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(http.StatusOK, entry)
}

// Legend handles GET /admin/api/v1/channel-types/legend
//
// @Summary      Channel types grouped by status color
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   LegendGroup
// @Failure      401  {object}  core.APIError
// @Router       /admin/api/v1/channel-types/legend [get]
func (h *Handler) Legend(c echo.Context) error {
	return c.JSON(http.StatusOK, BuildLegend(h.registry))
}

// BuildLegend groups registry entries by color in legend order.
func BuildLegend(registry *channeltype.Registry) []LegendGroup {
	if registry == nil {
		return []LegendGroup{}
	}
	groups := registry.ByColor()
	legend := make([]LegendGroup, 0, len(groups))
	for _, color := range registry.Colors() {
		legend = append(legend, LegendGroup{Color: color, Entries: groups[color]})
	}
	return legend
}

// Columns handles GET /admin/api/v1/views/:entity/columns
//
// @Summary      Columns of a list view for the caller's role
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        entity  path   string  true   "View: channel, log, redemption, token, user"
// @Param        role    query  string  false  "Preview a narrower role: admin, standard_user"
// @Success      200  {object}  ColumnsResponse
// @Failure      400  {object}  core.APIError
// @Failure      401  {object}  core.APIError
// @Failure      403  {object}  core.APIError
// @Failure      404  {object}  core.APIError
// @Router       /admin/api/v1/views/{entity}/columns [get]
func (h *Handler) Columns(c echo.Context) error {
	kind, role, err := h.viewParams(c)
	if err != nil {
		return handleError(c, err)
	}

	cols, err := h.schema.ColumnsFor(kind, role)
	if err != nil {
		return handleError(c, err)
	}

	return c.JSON(http.StatusOK, ColumnsResponse{
		Entity:  kind,
		Role:    role,
		Columns: cols,
	})
}

// RenderRows handles POST /admin/api/v1/views/:entity/rows
//
// @Summary      Render raw records into list-view cells
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        entity  path   string       true   "View: channel, log, redemption, token, user"
// @Param        role    query  string       false  "Preview a narrower role: admin, standard_user"
// @Param        body    body   RowsRequest  true   "Raw records"
// @Success      200  {object}  RowsResponse
// @Failure      400  {object}  core.APIError
// @Failure      401  {object}  core.APIError
// @Failure      403  {object}  core.APIError
// @Failure      404  {object}  core.APIError
// @Router       /admin/api/v1/views/{entity}/rows [post]
func (h *Handler) RenderRows(c echo.Context) error {
	kind, role, err := h.viewParams(c)
	if err != nil {
		return handleError(c, err)
	}

	var req RowsRequest
	if err := c.Bind(&req); err != nil {
		return handleError(c, core.NewInvalidRequestError("invalid request body", err))
	}

	cols, err := h.schema.ColumnsFor(kind, role)
	if err != nil {
		return handleError(c, err)
	}
	rows, err := h.schema.RenderRows(kind, role, req.Records)
	if err != nil {
		return handleError(c, err)
	}

	return c.JSON(http.StatusOK, RowsResponse{
		Entity:  kind,
		Role:    role,
		Columns: cols,
		Rows:    rows,
		Total:   len(rows),
	})
}

func (h *Handler) viewParams(c echo.Context) (viewschema.EntityKind, viewschema.Role, error) {
	if h.schema == nil {
		return "", "", core.NewNotFoundError("view schemas are not available", nil)
	}
	kind, err := viewschema.ParseEntityKind(c.Param("entity"))
	if err != nil {
		return "", "", err
	}
	role, err := resolveRole(c)
	if err != nil {
		return "", "", err
	}
	return kind, role, nil
}
