package projection

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-roster/pkg/store"
	"github.com/goliatone/go-roster/pkg/tags"
)

func TestNameOnlyProjection_CoversIdentifierAndName(t *testing.T) {
	p := NameOnlyProjection()
	if !p.Covers(tags.ID) || !p.Covers(tags.Nombre) {
		t.Fatalf("expected ID and NOMBRE to be covered: %#v", p.Fields)
	}
	if p.Covers(tags.Fecha) {
		t.Fatalf("did not expect FECHA to be covered")
	}

	got := p.Uncovered([]tags.Field{tags.ID, tags.Apellidos, tags.Nombre, tags.Fecha})
	if diff := cmp.Diff([]tags.Field{tags.Apellidos, tags.Fecha}, got); diff != "" {
		t.Fatalf("uncovered mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaults(t *testing.T) {
	got := Defaults(nil)
	var names []string
	for _, p := range got {
		names = append(names, p.Name)
	}
	if diff := cmp.Diff([]string{Full, NameOnly, Form}, names); diff != "" {
		t.Fatalf("projection names mismatch (-want +got):\n%s", diff)
	}

	full := got[0]
	if diff := cmp.Diff(tags.Default().Fields(), full.Fields); diff != "" {
		t.Fatalf("full projection fields mismatch (-want +got):\n%s", diff)
	}
	if full.Row != store.TableRow || full.Header != store.TableHeader || full.Footer != store.TableFooter {
		t.Fatalf("unexpected full fragments: %#v", full)
	}
	if form := got[2]; form.Header != "" || form.Footer != "" || form.Row != store.Form {
		t.Fatalf("unexpected form fragments: %#v", form)
	}
}
