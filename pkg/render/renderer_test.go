package render_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-roster/pkg/projection"
	"github.com/goliatone/go-roster/pkg/record"
	"github.com/goliatone/go-roster/pkg/render"
	"github.com/goliatone/go-roster/pkg/store"
	"github.com/goliatone/go-roster/pkg/substitute"
	"github.com/goliatone/go-roster/pkg/tags"
)

func player(id, nombre, apellidos, equipo string) record.Record {
	return record.Record{
		Ref: record.Ref{Inner: record.RefID{ID: id}},
		Data: map[string]any{
			"nombre":           nombre,
			"apellidos":        apellidos,
			"posicion":         "Ala",
			"equipo":           equipo,
			"peso":             100.0,
			"altura":           1.9,
			"numTrakles":       12.0,
			"historialEquipos": []any{equipo},
			"zona":             "Norte",
			"fecha":            map[string]any{"day": 1.0, "month": 2.0, "year": 1990.0},
		},
	}
}

func newRenderer(t *testing.T, options ...render.Option) *render.Renderer {
	t.Helper()
	r, err := render.New(options...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return r
}

func TestRender_EmptyIsHeaderAndFooter(t *testing.T) {
	r := newRenderer(t)
	s := store.MustNew()

	header, _ := s.MustGet(store.TableHeader).Execute(nil)
	footer, _ := s.MustGet(store.TableFooter).Execute(nil)

	for _, records := range [][]record.Record{nil, {}} {
		result, err := r.Render(context.Background(), records, projection.Full)
		if err != nil {
			t.Fatalf("render: %v", err)
		}
		if diff := cmp.Diff(header+footer, result.HTML); diff != "" {
			t.Fatalf("empty render mismatch (-want +got):\n%s", diff)
		}
		if result.Rows != 0 || result.Degraded() {
			t.Fatalf("unexpected result %+v", result)
		}
	}
}

func TestRender_FullRowsInOrder(t *testing.T) {
	r := newRenderer(t)
	records := []record.Record{
		player("1", "Antoine", "Dupont", "Toulouse"),
		player("2", "Johnny", "Sexton", "Leinster"),
	}

	result, err := r.Render(context.Background(), records, projection.Full)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result.Rows != 2 {
		t.Fatalf("expected 2 rows, got %d", result.Rows)
	}
	if got := strings.Count(result.HTML, "<tr title="); got != 2 {
		t.Fatalf("expected 2 row fragments, got %d", got)
	}
	first := strings.Index(result.HTML, "Dupont")
	second := strings.Index(result.HTML, "Sexton")
	if first < 0 || second < 0 || first > second {
		t.Fatalf("rows not rendered in iteration order:\n%s", result.HTML)
	}
	if strings.Contains(result.HTML, tags.Delimiter) {
		t.Fatalf("unexpected placeholder in output:\n%s", result.HTML)
	}
}

func TestRender_NameOnlyOmitsOtherFields(t *testing.T) {
	r := newRenderer(t)
	records := []record.Record{
		player("1", "Antoine", "Dupont", "Toulouse"),
		player("2", "Johnny", "Sexton", "Leinster"),
	}

	result, err := r.Render(context.Background(), records, projection.NameOnly)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"Antoine", "Johnny"} {
		if !strings.Contains(result.HTML, want) {
			t.Fatalf("expected %q in output", want)
		}
	}
	for _, unwanted := range []string{"Dupont", "Sexton", "Toulouse", "Leinster", "Norte", "1-2-1990"} {
		if strings.Contains(result.HTML, unwanted) {
			t.Fatalf("name-only output leaked %q:\n%s", unwanted, result.HTML)
		}
	}
}

func TestRender_DegradedRowsAreReported(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	r := newRenderer(t, render.WithLogger(zap.New(core)))

	broken := record.Record{Ref: record.Ref{Inner: record.RefID{ID: "9"}}}
	records := []record.Record{player("1", "Antoine", "Dupont", "Toulouse"), broken}

	result, err := r.Render(context.Background(), records, projection.NameOnly)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result.Rows != 2 {
		t.Fatalf("expected both rows to render, got %d", result.Rows)
	}
	want := []render.Issue{{Index: 1, RecordID: "9", Fields: []tags.Field{tags.Nombre}, NoData: true}}
	if diff := cmp.Diff(want, result.Issues); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(result.HTML, "Antoine") || !strings.Contains(result.HTML, "### NOMBRE ###") {
		t.Fatalf("expected good row and degraded placeholder:\n%s", result.HTML)
	}
	if logs.FilterMessage("degraded row").Len() != 1 {
		t.Fatalf("expected one degraded row warning, got %d", logs.Len())
	}
}

func TestRender_UnknownProjection(t *testing.T) {
	r := newRenderer(t)
	_, err := r.Render(context.Background(), nil, "cards")
	if !errors.Is(err, render.ErrUnknownProjection) {
		t.Fatalf("expected unknown projection error, got %v", err)
	}
}

func TestNew_RejectsMismatchedProjection(t *testing.T) {
	_, err := render.New(render.WithProjections(projection.Projection{
		Name:   "broken",
		Fields: []tags.Field{tags.ID, tags.Nombre},
		Row:    store.TableRow,
	}))
	if !errors.Is(err, substitute.ErrProjectionMismatch) {
		t.Fatalf("expected projection mismatch, got %v", err)
	}
}

func TestRenderJSON_NonArrayPayload(t *testing.T) {
	r := newRenderer(t)
	empty, err := r.Render(context.Background(), nil, projection.NameOnly)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	for _, raw := range []json.RawMessage{nil, json.RawMessage(`{"mensaje":"x"}`), json.RawMessage(`"text"`)} {
		result, err := r.RenderJSON(context.Background(), raw, projection.NameOnly)
		if err != nil {
			t.Fatalf("render json: %v", err)
		}
		if result.HTML != empty.HTML {
			t.Fatalf("expected empty body for %s, got:\n%s", raw, result.HTML)
		}
	}
}

func TestRenderRecord_Form(t *testing.T) {
	r := newRenderer(t)
	result, err := r.RenderRecord(context.Background(), player("5", "Antoine", "Dupont", "Toulouse"), projection.Form)
	if err != nil {
		t.Fatalf("render record: %v", err)
	}
	if !strings.Contains(result.HTML, `value="Dupont"`) || !strings.Contains(result.HTML, `value="1-2-1990"`) {
		t.Fatalf("unexpected form output:\n%s", result.HTML)
	}
}

func TestRender_ContextCancelled(t *testing.T) {
	r := newRenderer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Render(ctx, nil, projection.Full); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
}
