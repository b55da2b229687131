// Package projection names the field subsets a renderer can produce and pairs
// each with its header, row and footer fragments.
package projection

import (
	"github.com/goliatone/go-roster/pkg/store"
	"github.com/goliatone/go-roster/pkg/tags"
)

// Built-in projection names.
const (
	Full     = "full"
	NameOnly = "name-only"
	Form     = "form"
)

// Projection selects which fields are substituted and which fragments frame
// them. Empty Header/Footer names render as empty strings.
type Projection struct {
	Name   string
	Fields []tags.Field
	Header string
	Row    string
	Footer string
}

// Covers reports whether field belongs to the projection.
func (p Projection) Covers(field tags.Field) bool {
	for _, f := range p.Fields {
		if f == field {
			return true
		}
	}
	return false
}

// Uncovered returns the fields of slots that the projection does not cover.
func (p Projection) Uncovered(slots []tags.Field) []tags.Field {
	var out []tags.Field
	for _, slot := range slots {
		if !p.Covers(slot) {
			out = append(out, slot)
		}
	}
	return out
}

// FullProjection renders every dictionary field in the listing table.
func FullProjection(dict *tags.Dictionary) Projection {
	if dict == nil {
		dict = tags.Default()
	}
	return Projection{
		Name:   Full,
		Fields: dict.Fields(),
		Header: store.TableHeader,
		Row:    store.TableRow,
		Footer: store.TableFooter,
	}
}

// NameOnlyProjection renders identifier and name only.
func NameOnlyProjection() Projection {
	return Projection{
		Name:   NameOnly,
		Fields: []tags.Field{tags.ID, tags.Nombre},
		Header: store.NamesHeader,
		Row:    store.NamesRow,
		Footer: store.TableFooter,
	}
}

// FormProjection renders a single record as a read-only form.
func FormProjection(dict *tags.Dictionary) Projection {
	if dict == nil {
		dict = tags.Default()
	}
	return Projection{
		Name:   Form,
		Fields: dict.Fields(),
		Row:    store.Form,
	}
}

// Defaults returns the built-in projections.
func Defaults(dict *tags.Dictionary) []Projection {
	return []Projection{
		FullProjection(dict),
		NameOnlyProjection(),
		FormProjection(dict),
	}
}
