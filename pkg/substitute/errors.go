package substitute

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-roster/pkg/tags"
)

// ErrProjectionMismatch reports a fragment whose slots are not covered by the
// projection it was paired with.
var ErrProjectionMismatch = errors.New("substitute: projection does not cover fragment")

// MismatchError details which slots a projection failed to cover.
type MismatchError struct {
	Projection string
	Fragment   string
	Fields     []tags.Field
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("substitute: projection %q does not cover %s in fragment %q",
		e.Projection, joinFields(e.Fields), e.Fragment)
}

func (e *MismatchError) Unwrap() error { return ErrProjectionMismatch }

// MissingFieldsError is returned alongside a degraded row: the text is still
// usable but the listed fields kept their raw placeholders.
type MissingFieldsError struct {
	RecordID string
	Fragment string
	Fields   []tags.Field
	NoData   bool
}

func (e *MissingFieldsError) Error() string {
	id := e.RecordID
	if id == "" {
		id = "<unknown>"
	}
	if e.NoData {
		return fmt.Sprintf("substitute: record %s has no data object; unresolved %s", id, joinFields(e.Fields))
	}
	return fmt.Sprintf("substitute: record %s is missing %s", id, joinFields(e.Fields))
}

// IsDegraded reports whether err only signals unresolved fields.
func IsDegraded(err error) bool {
	var missing *MissingFieldsError
	return errors.As(err, &missing)
}

func joinFields(fields []tags.Field) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, string(f))
	}
	return strings.Join(parts, ", ")
}
