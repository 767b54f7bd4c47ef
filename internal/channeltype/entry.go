// Package channeltype holds the channel type registry: the mapping from a
// gateway channel-type identifier to the metadata the console renders for it.
package channeltype

import (
	"errors"
	"fmt"
	"strings"
)

// StatusColor is the semantic color class a channel type is drawn with.
type StatusColor string

const (
	ColorSuccess   StatusColor = "success"
	ColorPrimary   StatusColor = "primary"
	ColorWarning   StatusColor = "warning"
	ColorError     StatusColor = "error"
	ColorPurple    StatusColor = "purple"
	ColorSecondary StatusColor = "secondary"
	ColorInfo      StatusColor = "info"
)

// knownColors is ordered for legend output.
var knownColors = []StatusColor{
	ColorSuccess,
	ColorPrimary,
	ColorWarning,
	ColorError,
	ColorPurple,
	ColorSecondary,
	ColorInfo,
}

// Valid reports whether c belongs to the closed color set.
func (c StatusColor) Valid() bool {
	for _, k := range knownColors {
		if c == k {
			return true
		}
	}
	return false
}

// Entry is the display metadata of a single channel type.
type Entry struct {
	ID    int         `json:"id" yaml:"id"`
	Label string      `json:"label" yaml:"label"`
	Color StatusColor `json:"color" yaml:"color"`
}

var (
	// ErrNotFound is returned by Lookup for identifiers absent from the registry.
	ErrNotFound = errors.New("channel type not found")

	// ErrDuplicateID marks a registry source that declares an identifier twice.
	ErrDuplicateID = errors.New("duplicate channel type id")

	// ErrInvalidEntry marks an entry that cannot be rendered (bad id, label or color).
	ErrInvalidEntry = errors.New("invalid channel type entry")
)

// DuplicateIDError describes a collision found while building a registry.
// Both declarations are reported; neither is kept.
type DuplicateIDError struct {
	ID          int
	FirstIndex  int
	FirstLabel  string
	SecondIndex int
	SecondLabel string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate channel type id %d: %q (entry #%d) collides with %q (entry #%d)",
		e.ID, e.SecondLabel, e.SecondIndex, e.FirstLabel, e.FirstIndex)
}

// Is lets errors.Is match ErrDuplicateID.
func (e *DuplicateIDError) Is(target error) bool {
	return target == ErrDuplicateID
}

// InvalidEntryError reports which entry failed validation and why.
type InvalidEntryError struct {
	Index  int
	Entry  Entry
	Reason string
}

func (e *InvalidEntryError) Error() string {
	return fmt.Sprintf("invalid channel type entry #%d (id %d): %s", e.Index, e.Entry.ID, e.Reason)
}

// Is lets errors.Is match ErrInvalidEntry.
func (e *InvalidEntryError) Is(target error) bool {
	return target == ErrInvalidEntry
}

func validateEntry(i int, e Entry) error {
	switch {
	case e.ID <= 0:
		return &InvalidEntryError{Index: i, Entry: e, Reason: "id must be positive"}
	case strings.TrimSpace(e.Label) == "":
		return &InvalidEntryError{Index: i, Entry: e, Reason: "label is required"}
	case !e.Color.Valid():
		return &InvalidEntryError{Index: i, Entry: e, Reason: fmt.Sprintf("unknown color %q", e.Color)}
	}
	return nil
}
