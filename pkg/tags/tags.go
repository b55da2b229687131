// Package tags defines the reserved placeholder markers that stand in for
// record fields inside template fragments.
package tags

import (
	"errors"
	"fmt"
	"strings"
)

// Field names a semantic record field (NOMBRE, FECHA, ...).
type Field string

const (
	ID         Field = "ID"
	Nombre     Field = "NOMBRE"
	Apellidos  Field = "APELLIDOS"
	Posicion   Field = "POSICION"
	Equipo     Field = "EQUIPO"
	Peso       Field = "PESO"
	Altura     Field = "ALTURA"
	NumTrakles Field = "NUMTRAKLES"
	Historial  Field = "HISTORIAL"
	Zona       Field = "ZONA"
	Fecha      Field = "FECHA"
)

// Kind describes how a field value is read and compared.
type Kind string

const (
	KindIdentifier Kind = "identifier"
	KindString     Kind = "string"
	KindNumber     Kind = "number"
	KindList       Kind = "list"
	KindDate       Kind = "date"
)

// Delimiter wraps every placeholder. It is reserved: templates and field
// values never contain it outside of placeholders.
const Delimiter = "###"

// Tag pairs a field with its placeholder and the record key it reads.
type Tag struct {
	Field       Field
	Key         string
	Kind        Kind
	Placeholder string
}

// Placeholder builds the marker for a field name ("### NOMBRE ###").
func Placeholder(field Field) string {
	return Delimiter + " " + string(field) + " " + Delimiter
}

// Dictionary is a read-only, ordered set of tags.
type Dictionary struct {
	order []Field
	tags  map[Field]Tag
}

var (
	ErrDuplicateField       = errors.New("tags: duplicate field")
	ErrPlaceholderCollision = errors.New("tags: placeholder collision")
)

// New builds a dictionary from tags, filling missing placeholders and
// validating the result.
func New(entries ...Tag) (*Dictionary, error) {
	dict := &Dictionary{
		order: make([]Field, 0, len(entries)),
		tags:  make(map[Field]Tag, len(entries)),
	}
	for _, entry := range entries {
		name := Field(strings.TrimSpace(string(entry.Field)))
		if name == "" {
			return nil, errors.New("tags: field name is required")
		}
		if strings.Contains(string(name), Delimiter) {
			return nil, fmt.Errorf("tags: field %q contains the reserved delimiter", name)
		}
		if _, exists := dict.tags[name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateField, name)
		}
		entry.Field = name
		if entry.Placeholder == "" {
			entry.Placeholder = Placeholder(name)
		}
		if entry.Kind == "" {
			entry.Kind = KindString
		}
		dict.order = append(dict.order, name)
		dict.tags[name] = entry
	}
	if err := dict.Validate(); err != nil {
		return nil, err
	}
	return dict, nil
}

// MustNew panics when the dictionary is invalid. Useful for init-time wiring.
func MustNew(entries ...Tag) *Dictionary {
	dict, err := New(entries...)
	if err != nil {
		panic(err)
	}
	return dict
}

var defaultDictionary = MustNew(
	Tag{Field: ID, Kind: KindIdentifier},
	Tag{Field: Nombre, Key: "nombre"},
	Tag{Field: Apellidos, Key: "apellidos"},
	Tag{Field: Posicion, Key: "posicion"},
	Tag{Field: Equipo, Key: "equipo"},
	Tag{Field: Peso, Key: "peso", Kind: KindNumber},
	Tag{Field: Altura, Key: "altura", Kind: KindNumber},
	Tag{Field: NumTrakles, Key: "numTrakles", Kind: KindNumber},
	Tag{Field: Historial, Key: "historialEquipos", Kind: KindList},
	Tag{Field: Zona, Key: "zona"},
	Tag{Field: Fecha, Key: "fecha", Kind: KindDate},
)

// Default returns the roster dictionary shared by the built-in templates.
func Default() *Dictionary {
	return defaultDictionary
}

// Validate checks that every placeholder is distinct and that no placeholder
// occurs inside another one.
func (d *Dictionary) Validate() error {
	if d == nil {
		return errors.New("tags: dictionary is nil")
	}
	for i, a := range d.order {
		pa := d.tags[a].Placeholder
		for _, b := range d.order[i+1:] {
			pb := d.tags[b].Placeholder
			if strings.Contains(pa, pb) || strings.Contains(pb, pa) {
				return fmt.Errorf("%w: %q and %q", ErrPlaceholderCollision, a, b)
			}
		}
	}
	return nil
}

// Lookup returns the tag registered for field.
func (d *Dictionary) Lookup(field Field) (Tag, bool) {
	if d == nil {
		return Tag{}, false
	}
	tag, ok := d.tags[field]
	return tag, ok
}

// ByKey finds the tag that reads the given record key, matched
// case-insensitively so callers may pass "nombre" or "NOMBRE".
func (d *Dictionary) ByKey(key string) (Tag, bool) {
	if d == nil {
		return Tag{}, false
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return Tag{}, false
	}
	for _, name := range d.order {
		tag := d.tags[name]
		if strings.EqualFold(tag.Key, key) || strings.EqualFold(string(tag.Field), key) {
			return tag, true
		}
	}
	return Tag{}, false
}

// Fields lists the fields in declaration order.
func (d *Dictionary) Fields() []Field {
	if d == nil {
		return nil
	}
	return append([]Field(nil), d.order...)
}

// Tags lists the tags in declaration order.
func (d *Dictionary) Tags() []Tag {
	if d == nil {
		return nil
	}
	out := make([]Tag, 0, len(d.order))
	for _, name := range d.order {
		out = append(out, d.tags[name])
	}
	return out
}
