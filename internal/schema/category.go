package schema

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// Category is one spreadsheet tab and one database table. Fields keep
// spreadsheet column order; nothing reorders them.
type Category struct {
	Name     string
	RowCount int // rows advertised by the source, header included

	fields    []Field
	linkCount int
}

// NewCategory returns an empty category.
func NewCategory(name string, rowCount int) *Category {
	return &Category{Name: name, RowCount: rowCount}
}

// NewCategoryFromHeaders parses every header cell, in order, into a field.
func NewCategoryFromHeaders(name string, rowCount int, headers []string) *Category {
	c := NewCategory(name, rowCount)
	for _, h := range headers {
		c.AddField(ParseField(h))
	}
	return c
}

// AddField appends f, assigning the next link index if f is a link field.
func (c *Category) AddField(f Field) {
	if f.IsLink {
		c.linkCount++
		f.LinkIndex = c.linkCount
	}
	c.fields = append(c.fields, f)
}

// Fields returns a copy of the fields in column order.
func (c *Category) Fields() []Field {
	out := make([]Field, len(c.fields))
	copy(out, c.fields)
	return out
}

// LinkCount returns the number of link fields.
func (c *Category) LinkCount() int { return c.linkCount }

// FieldIndex returns the column index of the field with the given storage
// name, or -1.
func (c *Category) FieldIndex(storage string) int {
	return fieldIndex(c.fields, storage)
}

func fieldIndex(fields []Field, storage string) int {
	for i, f := range fields {
		if f.StorageName == storage {
			return i
		}
	}
	return -1
}

// RequiredFields returns Component ID, the special fields, then custom,
// without duplicates.
func RequiredFields(custom []string) []string {
	all := make([]string, 0, 1+len(SpecialFields)+len(custom))
	all = append(all, ComponentIDDisplayName)
	all = append(all, SpecialFields...)
	all = append(all, custom...)

	seen := make(map[string]bool, len(all))
	out := all[:0]
	for _, name := range all {
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

// MissingRequiredFields returns the required display names that no field
// carries, in required order. An empty result means the category is valid.
func (c *Category) MissingRequiredFields(custom []string) []string {
	var missing []string
	for _, req := range RequiredFields(custom) {
		found := false
		for _, f := range c.fields {
			if f.DisplayName == req {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, req)
		}
	}
	return missing
}

// Collisions reports physical column names, compared case-insensitively,
// that more than one field (or a field and the row id) would produce.
func (c *Category) Collisions() []*CollisionError {
	var order []string
	owners := make(map[string][]string)
	add := func(column, owner string) {
		k := strings.ToLower(column)
		if _, ok := owners[k]; !ok {
			order = append(order, k)
		}
		owners[k] = append(owners[k], owner)
	}

	add(RowIDColumn, RowIDColumn)
	for _, f := range c.fields {
		for _, col := range physicalColumns(f) {
			add(col.Name, f.DisplayName)
		}
	}

	var out []*CollisionError
	for _, k := range order {
		if names := owners[k]; len(names) > 1 {
			out = append(out, &CollisionError{Category: c.Name, StorageName: k, DisplayNames: names})
		}
	}
	return out
}

// Validate checks required fields, empty headers, link header length and
// storage-name collisions. All failures are joined into the returned error.
func (c *Category) Validate(custom []string) error {
	var errs []error

	missing := c.MissingRequiredFields(custom)
	var empty []int
	var long []string
	for i, f := range c.fields {
		if f.DisplayName == "" {
			empty = append(empty, i+1)
		}
		if f.ExpandsToLink() && utf8.RuneCountInString(f.DisplayName) > MaxLinkNameLength {
			long = append(long, f.DisplayName)
		}
	}
	if len(missing) > 0 || len(empty) > 0 || len(long) > 0 {
		errs = append(errs, &ValidationError{Category: c.Name, Missing: missing, EmptyColumns: empty, LongLinks: long})
	}

	for _, col := range c.Collisions() {
		if col.StorageName == "" {
			continue // already reported as empty headers
		}
		errs = append(errs, col)
	}

	return errors.Join(errs...)
}

// ValidateAll validates every category and joins all failures.
func ValidateAll(categories []*Category, custom []string) error {
	var errs []error
	for _, c := range categories {
		if err := c.Validate(custom); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
