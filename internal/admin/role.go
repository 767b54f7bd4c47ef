package admin

import (
	"github.com/labstack/echo/v4"

	"gwconsole/internal/core"
	"gwconsole/internal/viewschema"
)

// resolveRole returns the role a view is rendered for. The caller's own role
// comes from the authentication middleware; a request without one is treated
// as a standard user. An admin may preview a narrower role with ?role=.
func resolveRole(c echo.Context) (viewschema.Role, error) {
	caller := viewschema.RoleStandardUser
	if r, err := viewschema.ParseRole(core.GetCallerRole(c.Request().Context())); err == nil {
		caller = r
	}

	requested := c.QueryParam("role")
	if requested == "" {
		return caller, nil
	}

	role, err := viewschema.ParseRole(requested)
	if err != nil {
		return "", core.NewInvalidRequestError("invalid role: "+requested+" (valid: admin, standard_user)", err)
	}
	if role == viewschema.RoleAdmin && caller != viewschema.RoleAdmin {
		return "", core.NewPermissionError("admin role required to view admin columns")
	}
	return role, nil
}
