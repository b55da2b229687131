// Package sorter orders record collections by a single field before they are
// rendered.
package sorter

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/goliatone/go-roster/pkg/record"
	"github.com/goliatone/go-roster/pkg/tags"
)

// ErrUnknownField is returned when the sort field is not in the dictionary.
var ErrUnknownField = errors.New("sorter: unknown field")

// Sorter sorts records using a tag dictionary to resolve field kinds.
type Sorter struct {
	dict *tags.Dictionary
}

// New builds a Sorter. A nil dictionary selects tags.Default().
func New(dict *tags.Dictionary) *Sorter {
	if dict == nil {
		dict = tags.Default()
	}
	return &Sorter{dict: dict}
}

var defaultSorter = New(nil)

// SortBy sorts with the default dictionary.
func SortBy(records []record.Record, field string) ([]record.Record, error) {
	return defaultSorter.SortBy(records, field)
}

// SortBy sorts records in place, stable and ascending, by field (record key
// such as "nombre" or tag name such as "NOMBRE"), and returns the same slice.
//
// Strings compare upper-cased, dates compare by their zero-padded YYYYMMDD
// key and numbers numerically. Records without the field sort first.
func (s *Sorter) SortBy(records []record.Record, field string) ([]record.Record, error) {
	tag, ok := s.dict.ByKey(field)
	if !ok {
		return records, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	slices.SortStableFunc(records, Comparator(tag))
	return records, nil
}

// Comparator returns the comparison used for tag. Equal keys return 0.
func Comparator(tag tags.Tag) func(a, b record.Record) int {
	if tag.Kind == tags.KindNumber {
		return func(a, b record.Record) int {
			av, aok := a.Number(tag.Key)
			bv, bok := b.Number(tag.Key)
			if c := compareMissing(aok, bok); c != 0 || !aok {
				return c
			}
			return cmp.Compare(av, bv)
		}
	}
	return func(a, b record.Record) int {
		return strings.Compare(Key(a, tag), Key(b, tag))
	}
}

// Key returns the comparable string key for tag on rec.
func Key(rec record.Record, tag tags.Tag) string {
	switch tag.Kind {
	case tags.KindIdentifier:
		return strings.ToUpper(rec.ID())
	case tags.KindDate:
		date, ok := rec.Date(tag.Key)
		if !ok {
			return ""
		}
		return date.SortKey()
	default:
		text, _ := rec.Text(tag.Key)
		return strings.ToUpper(text)
	}
}

func compareMissing(aok, bok bool) int {
	switch {
	case aok == bok:
		return 0
	case !aok:
		return -1
	default:
		return 1
	}
}
