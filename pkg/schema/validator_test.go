package schema_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-roster/pkg/schema"
)

const goodRecord = `{
  "ref": {"@ref": {"id": "1"}},
  "data": {
    "nombre": "Antoine", "apellidos": "Dupont", "posicion": "Medio melé",
    "equipo": "Toulouse", "peso": 85, "altura": 1.74, "numTrakles": 120,
    "historialEquipos": ["Castres", "Toulouse"], "zona": "Europa",
    "fecha": {"day": 15, "month": 11, "year": 1996}
  }
}`

func newValidator(t *testing.T) *schema.Validator {
	t.Helper()
	v, err := schema.New(context.Background())
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}
	return v
}

func TestValidator_Operations(t *testing.T) {
	v := newValidator(t)
	want := []string{"acercaDe", "getPorId", "getTodas", "home"}
	if diff := cmp.Diff(want, v.Operations()); diff != "" {
		t.Fatalf("operations mismatch (-want +got):\n%s", diff)
	}
}

func TestValidator_Record(t *testing.T) {
	v := newValidator(t)
	if err := v.ValidateRecord([]byte(goodRecord)); err != nil {
		t.Fatalf("expected valid record: %v", err)
	}
	if err := v.ValidateRecord([]byte(`{"ref": {"@ref": {"id": "2"}}}`)); err == nil {
		t.Fatalf("expected record without data to fail")
	}
	if err := v.ValidateRecord([]byte(`{"ref": {"@ref": {"id": "3"}}, "data": {"nombre": "x"}}`)); err == nil {
		t.Fatalf("expected incomplete record to fail")
	}
}

func TestValidator_List(t *testing.T) {
	v := newValidator(t)
	issues, err := v.ValidateList([]byte(`{"data": [` + goodRecord + `, {"ref": {"@ref": {"id": "7"}}}]}`))
	if err != nil {
		t.Fatalf("validate list: %v", err)
	}
	if len(issues) != 1 || issues[0].Index != 1 || issues[0].RecordID != "7" {
		t.Fatalf("unexpected issues %+v", issues)
	}

	if _, err := v.ValidateList([]byte(`{"mensaje": "home"}`)); err == nil {
		t.Fatalf("expected envelope without data to fail")
	}
}

func TestValidator_Info(t *testing.T) {
	v := newValidator(t)
	if err := v.ValidateInfo([]byte(`{"mensaje": "Microservicio MS Plantilla: home"}`)); err != nil {
		t.Fatalf("expected valid info: %v", err)
	}
	if err := v.ValidateInfo([]byte(`{"autor": "x"}`)); err == nil {
		t.Fatalf("expected info without mensaje to fail")
	}
}
