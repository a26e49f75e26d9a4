// Package schema turns spreadsheet column headers into the field and category
// model the library database and the DbLib file are derived from.
package schema

import (
	"strconv"
	"strings"
)

// Header markers.
const (
	markerVisibleOnAdd = "*"
	markerLink         = "^"
)

// ComponentIDStorageName is the storage name of the library key column.
const ComponentIDStorageName = "component_id"

// ComponentIDDisplayName is the header of the library key column.
const ComponentIDDisplayName = "Component ID"

// SpecialFields are display names the EDA tool resolves through reserved
// parameter slots. Their order is the order they are required in.
var SpecialFields = []string{
	"Description",
	"Library Ref",
	"Library Path",
	"Footprint Ref",
	"Footprint Path",
}

// IsSpecial reports whether displayName is one of SpecialFields.
func IsSpecial(displayName string) bool {
	for _, s := range SpecialFields {
		if s == displayName {
			return true
		}
	}
	return false
}

// Field is one spreadsheet column.
type Field struct {
	DisplayName  string // header with markers removed; label and special-name key
	StorageName  string // SQL column name and lookup key
	VisibleOnAdd bool   // header carried '*'
	IsLink       bool   // header carried '^'
	LinkIndex    int    // 1-based among link fields, -1 if unassigned
}

// ParseField builds a Field from a raw header cell. Any string is accepted.
func ParseField(header string) Field {
	display := strings.ReplaceAll(header, markerVisibleOnAdd, "")
	display = strings.ReplaceAll(display, markerLink, "")
	display = strings.TrimSpace(display)

	return Field{
		DisplayName:  display,
		StorageName:  storageName(display),
		VisibleOnAdd: strings.Contains(header, markerVisibleOnAdd),
		IsLink:       strings.Contains(header, markerLink),
		LinkIndex:    -1,
	}
}

// ExpandsToLink reports whether f is stored as a description/URL column
// pair. The component id column never expands, even when marked as a link.
func (f Field) ExpandsToLink() bool {
	return f.IsLink && f.StorageName != ComponentIDStorageName
}

func storageName(display string) string {
	return strings.ReplaceAll(strings.ToLower(display), " ", "_")
}

// LinkDescriptionColumn is the column holding a link's human-readable text.
func LinkDescriptionColumn(linkIndex int) string {
	return "ComponentLink" + strconv.Itoa(linkIndex) + "Description"
}

// LinkURLColumn is the column holding a link's URL.
func LinkURLColumn(linkIndex int) string {
	return "ComponentLink" + strconv.Itoa(linkIndex) + "URL"
}

