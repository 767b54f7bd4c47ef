// Package viewschema declares the column layout of the console's list views
// and resolves channel-typed cells through the channel type registry.
package viewschema

import (
	"errors"
	"fmt"
)

// EntityKind names one of the console's list views.
type EntityKind string

const (
	EntityChannel    EntityKind = "channel"
	EntityLog        EntityKind = "log"
	EntityRedemption EntityKind = "redemption"
	EntityToken      EntityKind = "token"
	EntityUser       EntityKind = "user"
)

// EntityKinds lists every view in console navigation order.
func EntityKinds() []EntityKind {
	return []EntityKind{EntityChannel, EntityLog, EntityRedemption, EntityToken, EntityUser}
}

// Role is the permission level of the console user requesting a view.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleStandardUser Role = "standard_user"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleStandardUser
}

var (
	// ErrInvalidRole is returned when a role outside the known set reaches the provider.
	ErrInvalidRole = errors.New("invalid caller role")

	// ErrUnknownEntity is returned for a view that has no column table.
	ErrUnknownEntity = errors.New("unknown entity kind")

	// ErrInvalidRecord is returned when a raw row is not a JSON object.
	ErrInvalidRecord = errors.New("invalid record")
)

// ParseRole converts external input to a Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleStandardUser:
		return Role(s), nil
	case "user":
		return RoleStandardUser, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
}

// ParseEntityKind converts external input to an EntityKind.
func ParseEntityKind(s string) (EntityKind, error) {
	for _, k := range EntityKinds() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEntity, s)
}

// Visibility decides which roles see a column.
type Visibility int

const (
	// Always shows the column to every role.
	Always Visibility = iota
	// AdminOnly shows the column only to admins.
	AdminOnly
)

// VisibleFor reports whether a column with this visibility is shown to role.
func (v Visibility) VisibleFor(role Role) bool {
	switch v {
	case Always:
		return true
	case AdminOnly:
		return role == RoleAdmin
	}
	return false
}

func (v Visibility) String() string {
	switch v {
	case Always:
		return "always"
	case AdminOnly:
		return "admin_only"
	}
	return "unknown"
}

// MarshalText encodes visibility by name in API responses.
func (v Visibility) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText accepts the names produced by MarshalText.
func (v *Visibility) UnmarshalText(b []byte) error {
	switch string(b) {
	case "always":
		*v = Always
	case "admin_only":
		*v = AdminOnly
	default:
		return fmt.Errorf("unknown visibility %q", b)
	}
	return nil
}

// ColumnKind tells the renderer how a column's raw value is drawn.
// Only time and channel_type cells are formatted server side. Text, quota
// and status cells carry the raw value as text and the kind is a formatting
// hint for the front end.
type ColumnKind string

const (
	KindText        ColumnKind = "text"
	KindTime        ColumnKind = "time"
	KindQuota       ColumnKind = "quota"
	KindStatus      ColumnKind = "status"
	KindChannelType ColumnKind = "channel_type"
	KindActions     ColumnKind = "actions"
)

// Column describes one list-view column.
type Column struct {
	Key        string     `json:"key"`
	Label      string     `json:"label"`
	Visibility Visibility `json:"visibility"`
	Kind       ColumnKind `json:"kind"`
	// Field is the gjson path of the projected value. Empty for action columns.
	Field string `json:"field,omitempty"`
}
