package render

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-roster/pkg/projection"
	"github.com/goliatone/go-roster/pkg/store"
)

func TestRegistry_RegisterAndList(t *testing.T) {
	reg := NewRegistry(store.MustNew())
	for _, p := range projection.Defaults(nil) {
		reg.MustRegister(p)
	}

	if diff := cmp.Diff([]string{projection.Form, projection.Full, projection.NameOnly}, reg.List()); diff != "" {
		t.Fatalf("projection names mismatch (-want +got):\n%s", diff)
	}
	if !reg.Has(projection.NameOnly) {
		t.Fatalf("expected name-only projection")
	}
	if err := reg.Register(projection.NameOnlyProjection()); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
}

func TestRegistry_RejectsMissingFragments(t *testing.T) {
	reg := NewRegistry(store.MustNew())
	err := reg.Register(projection.Projection{Name: "cards", Row: "tarjeta"})
	if err == nil {
		t.Fatalf("expected missing fragment error")
	}
	if err := reg.Register(projection.Projection{Name: "empty"}); err == nil {
		t.Fatalf("expected missing row error")
	}
}
