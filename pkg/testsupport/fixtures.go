// Package testsupport holds record fixtures and output helpers shared by the
// package tests.
package testsupport

import (
	"bytes"
	"io"
	"testing"

	"github.com/goliatone/go-roster/pkg/record"
)

// Record builds a record with the given identifier and raw data map.
func Record(id string, data map[string]any) record.Record {
	return record.Record{
		Ref:  record.Ref{Inner: record.RefID{ID: id}},
		Data: data,
	}
}

// Player builds a well-formed record carrying every roster field. Values
// other than the arguments are fixed: an "Ala" at Leinster, 100 kg, 1.9 m,
// 10 tackles, team history "Munster, Leinster", zone "Europa". Numbers use
// float64 as they would after JSON decoding.
func Player(id, nombre, apellidos string, fecha record.Date) record.Record {
	return Record(id, map[string]any{
		"nombre":           nombre,
		"apellidos":        apellidos,
		"posicion":         "Ala",
		"equipo":           "Leinster",
		"peso":             float64(100),
		"altura":           1.9,
		"numTrakles":       float64(10),
		"historialEquipos": []any{"Munster", "Leinster"},
		"zona":             "Europa",
		"fecha": map[string]any{
			"day":   float64(fecha.Day),
			"month": float64(fecha.Month),
			"year":  float64(fecha.Year),
		},
	})
}

// MustDecodeRecords decodes a list endpoint payload or fails the test.
func MustDecodeRecords(t *testing.T, payload string) []record.Record {
	t.Helper()

	records, err := record.DecodeList([]byte(payload))
	if err != nil {
		t.Fatalf("decode records: %v", err)
	}
	return records
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents. Tests can assert
// the renderer returns and writes the same payload without duplicating buffer
// setup.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
