// Package fragment compiles template text into static segments and typed
// slots so substitution never has to search the rendered string again.
package fragment

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-roster/pkg/tags"
)

// ErrUnknownTag reports a reserved-delimiter marker that the dictionary does
// not define.
var ErrUnknownTag = errors.New("fragment: unknown tag")

type part struct {
	text string
	slot *tags.Tag
}

// Fragment is an immutable, precompiled template chunk.
type Fragment struct {
	name   string
	source string
	parts  []part
	slots  []tags.Field
}

// Lookup resolves the display value for a slot.
type Lookup func(tag tags.Tag) (string, bool)

// Compile splits text on every placeholder known to dict.
func Compile(name, text string, dict *tags.Dictionary) (*Fragment, error) {
	if dict == nil {
		return nil, errors.New("fragment: dictionary is required")
	}

	frag := &Fragment{name: name, source: text}
	seen := make(map[tags.Field]struct{})
	all := dict.Tags()

	rest := text
	for rest != "" {
		idx, tag := nextPlaceholder(rest, all)
		if idx < 0 {
			frag.parts = append(frag.parts, part{text: rest})
			break
		}
		if idx > 0 {
			frag.parts = append(frag.parts, part{text: rest[:idx]})
		}
		slot := tag
		frag.parts = append(frag.parts, part{slot: &slot})
		if _, ok := seen[tag.Field]; !ok {
			seen[tag.Field] = struct{}{}
			frag.slots = append(frag.slots, tag.Field)
		}
		rest = rest[idx+len(tag.Placeholder):]
	}

	for _, p := range frag.parts {
		if p.slot == nil && strings.Contains(p.text, tags.Delimiter) {
			return nil, fmt.Errorf("%w in %q: %s", ErrUnknownTag, name, strayMarker(p.text))
		}
	}
	return frag, nil
}

// MustCompile panics when the text cannot be compiled.
func MustCompile(name, text string, dict *tags.Dictionary) *Fragment {
	frag, err := Compile(name, text, dict)
	if err != nil {
		panic(err)
	}
	return frag
}

// Name returns the fragment name given at compile time.
func (f *Fragment) Name() string {
	if f == nil {
		return ""
	}
	return f.name
}

// Source returns the original template text.
func (f *Fragment) Source() string {
	if f == nil {
		return ""
	}
	return f.source
}

// Slots lists the distinct fields referenced by the fragment, in order of
// first appearance.
func (f *Fragment) Slots() []tags.Field {
	if f == nil {
		return nil
	}
	return append([]tags.Field(nil), f.slots...)
}

// Static reports whether the fragment has no slots.
func (f *Fragment) Static() bool {
	return f == nil || len(f.slots) == 0
}

// Execute fills every slot through lookup. Unresolved slots keep their raw
// placeholder and are returned, deduplicated, as missing.
func (f *Fragment) Execute(lookup Lookup) (string, []tags.Field) {
	if f == nil {
		return "", nil
	}

	var (
		b       strings.Builder
		missing []tags.Field
		flagged map[tags.Field]struct{}
	)
	b.Grow(len(f.source))

	for _, p := range f.parts {
		if p.slot == nil {
			b.WriteString(p.text)
			continue
		}
		if lookup != nil {
			if value, ok := lookup(*p.slot); ok {
				b.WriteString(value)
				continue
			}
		}
		b.WriteString(p.slot.Placeholder)
		if flagged == nil {
			flagged = make(map[tags.Field]struct{})
		}
		if _, ok := flagged[p.slot.Field]; !ok {
			flagged[p.slot.Field] = struct{}{}
			missing = append(missing, p.slot.Field)
		}
	}
	return b.String(), missing
}

func nextPlaceholder(text string, all []tags.Tag) (int, tags.Tag) {
	best := -1
	var found tags.Tag
	for _, tag := range all {
		idx := strings.Index(text, tag.Placeholder)
		if idx < 0 {
			continue
		}
		if best < 0 || idx < best {
			best = idx
			found = tag
		}
	}
	return best, found
}

func strayMarker(text string) string {
	idx := strings.Index(text, tags.Delimiter)
	end := idx + 32
	if end > len(text) {
		end = len(text)
	}
	return strings.TrimSpace(text[idx:end])
}
