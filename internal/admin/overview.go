package admin

import (
	"net/http"
	"runtime"
	"time"

	"github.com/labstack/echo/v4"

	"gwconsole/internal/version"
)

// Overview handles GET /admin/api/v1/overview
//
// @Summary      Console overview
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  OverviewResponse
// @Failure      401  {object}  core.APIError
// @Router       /admin/api/v1/overview [get]
func (h *Handler) Overview(c echo.Context) error {
	resp := OverviewResponse{
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Version:   version.Version,
		GoVersion: runtime.Version(),
	}
	if h.registry != nil {
		snapshot := h.registry.Snapshot()
		resp.ChannelTypes = len(snapshot.Entries)
		resp.Fingerprint = snapshot.Fingerprint
	}
	return c.JSON(http.StatusOK, resp)
}
