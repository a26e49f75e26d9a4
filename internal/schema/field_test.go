package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseField(t *testing.T) {
	t.Parallel()

	tests := []struct {
		header  string
		display string
		storage string
		visible bool
		link    bool
	}{
		{"Component ID", "Component ID", "component_id", false, false},
		{"Value*", "Value", "value", true, false},
		{"Datasheet^", "Datasheet", "datasheet", false, true},
		{"Supplier Link*^", "Supplier Link", "supplier_link", true, true},
		{"^Manufacturer Part Number*", "Manufacturer Part Number", "manufacturer_part_number", true, true},
		{"  Footprint Ref ", "Footprint Ref", "footprint_ref", false, false},
		{"Power *", "Power", "power", true, false},
		{"", "", "", false, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.header, func(t *testing.T) {
			t.Parallel()
			f := ParseField(tt.header)
			assert.Equal(t, tt.display, f.DisplayName)
			assert.Equal(t, tt.storage, f.StorageName)
			assert.Equal(t, tt.visible, f.VisibleOnAdd)
			assert.Equal(t, tt.link, f.IsLink)
			assert.Equal(t, -1, f.LinkIndex)
		})
	}
}

func TestParseField_TrimsAfterRemovingMarkers(t *testing.T) {
	t.Parallel()

	// Whitespace left behind by a marker is trimmed, so a marked special
	// field still matches its reserved name.
	f := ParseField("Description *")
	assert.Equal(t, "Description", f.DisplayName)
	assert.True(t, f.VisibleOnAdd)
	assert.True(t, IsSpecial(f.DisplayName))

	f = ParseField(" Datasheet ^ ")
	assert.Equal(t, "Datasheet", f.DisplayName)
	assert.Equal(t, "datasheet", f.StorageName)
}

func TestParseField_StorageNameHasNoSpacesOrMarkers(t *testing.T) {
	t.Parallel()

	bases := []string{"Tolerance", "Temp Coefficient", "Rated  Voltage", "a b c"}
	markers := []string{"", "*", "^", "*^", "^*", "**", "^^"}

	for _, base := range bases {
		for _, prefix := range markers {
			for _, suffix := range markers {
				header := prefix + base + suffix
				f := ParseField(header)

				assert.NotContains(t, f.StorageName, " ", header)
				assert.NotContains(t, f.StorageName, "*", header)
				assert.NotContains(t, f.StorageName, "^", header)
				assert.Equal(t, strings.Contains(header, "*"), f.VisibleOnAdd, header)
				assert.Equal(t, strings.Contains(header, "^"), f.IsLink, header)
			}
		}
	}
}

func TestIsSpecial(t *testing.T) {
	t.Parallel()

	for _, name := range SpecialFields {
		assert.True(t, IsSpecial(name), name)
	}
	assert.False(t, IsSpecial("description"))
	assert.False(t, IsSpecial("Component ID"))
	assert.False(t, IsSpecial("Value"))
}

func TestLinkColumnNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ComponentLink3Description", LinkDescriptionColumn(3))
	assert.Equal(t, "ComponentLink12URL", LinkURLColumn(12))
}
