// Package substitute fills template fragments with record values.
package substitute

import (
	"errors"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-roster/pkg/fragment"
	"github.com/goliatone/go-roster/pkg/projection"
	"github.com/goliatone/go-roster/pkg/record"
	"github.com/goliatone/go-roster/pkg/tags"
)

var (
	strictPolicyOnce sync.Once
	strictPolicy     *bluemonday.Policy
)

// Option configures an Engine.
type Option func(*Engine)

// WithPolicy overrides the sanitising policy applied to every value.
func WithPolicy(policy *bluemonday.Policy) Option {
	return func(e *Engine) {
		if policy != nil {
			e.policy = policy
		}
	}
}

// WithoutSanitizer inserts values verbatim. Only for trusted, non-HTML output.
func WithoutSanitizer() Option {
	return func(e *Engine) {
		e.policy = nil
		e.raw = true
	}
}

// Engine substitutes record values into fragments. It holds no per-call
// state and is safe for concurrent use.
type Engine struct {
	policy *bluemonday.Policy
	raw    bool
}

// New builds an Engine with the strict sanitising policy.
func New(options ...Option) *Engine {
	e := &Engine{policy: sanitizer()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	return e
}

var defaultEngine = New()

// Substitute runs the default engine.
func Substitute(frag *fragment.Fragment, rec record.Record, proj projection.Projection) (string, error) {
	return defaultEngine.Substitute(frag, rec, proj)
}

// Substitute replaces every slot of frag with rec's value for that field.
//
// A slot outside proj is a contract violation and yields a *MismatchError
// with no text. Fields absent from the record leave their placeholders in
// place; the degraded text is returned together with a *MissingFieldsError.
func (e *Engine) Substitute(frag *fragment.Fragment, rec record.Record, proj projection.Projection) (string, error) {
	if frag == nil {
		return "", errors.New("substitute: fragment is nil")
	}
	if uncovered := proj.Uncovered(frag.Slots()); len(uncovered) > 0 {
		return "", &MismatchError{Projection: proj.Name, Fragment: frag.Name(), Fields: uncovered}
	}

	out, missing := frag.Execute(func(tag tags.Tag) (string, bool) {
		value, ok := Value(rec, tag)
		if !ok {
			return "", false
		}
		return e.clean(value), true
	})
	if len(missing) > 0 {
		return out, &MissingFieldsError{
			RecordID: rec.ID(),
			Fragment: frag.Name(),
			Fields:   missing,
			NoData:   !rec.HasData(),
		}
	}
	return out, nil
}

// Value resolves the display text of tag on rec.
func Value(rec record.Record, tag tags.Tag) (string, bool) {
	switch tag.Kind {
	case tags.KindIdentifier:
		id := rec.ID()
		return id, id != ""
	case tags.KindDate:
		date, ok := rec.Date(tag.Key)
		if !ok {
			return "", false
		}
		return date.String(), true
	default:
		return rec.Text(tag.Key)
	}
}

func (e *Engine) clean(value string) string {
	if !e.raw && e.policy != nil {
		value = e.policy.Sanitize(value)
	}
	// Values never reintroduce the reserved delimiter.
	return strings.ReplaceAll(value, tags.Delimiter, "&#35;&#35;&#35;")
}

func sanitizer() *bluemonday.Policy {
	strictPolicyOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return strictPolicy
}
