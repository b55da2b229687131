package prompt

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-roster/pkg/frontend"
)

type scriptedDriver struct {
	selects []string
	inputs  []string
	err     error
	asked   []string
}

func (d *scriptedDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	d.asked = append(d.asked, cfg.Message)
	if d.err != nil {
		return "", d.err
	}
	answer := d.inputs[0]
	d.inputs = d.inputs[1:]
	if cfg.Validator != nil {
		if err := cfg.Validator(answer); err != nil {
			return "", err
		}
	}
	return answer, nil
}

func (d *scriptedDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	d.asked = append(d.asked, cfg.Message)
	if d.err != nil {
		return 0, d.err
	}
	answer := d.selects[0]
	d.selects = d.selects[1:]
	return indexOf(cfg.Options, answer), nil
}

func TestChooser_Choose(t *testing.T) {
	cases := []struct {
		name    string
		driver  *scriptedDriver
		want    frontend.Request
		wantErr error
	}{
		{
			name:   "names",
			driver: &scriptedDriver{selects: []string{"Listado de nombres"}},
			want:   frontend.Request{Kind: frontend.KindNames},
		},
		{
			name:   "sorted asks for field",
			driver: &scriptedDriver{selects: []string{"Listado ordenado", "fecha"}},
			want:   frontend.Request{Kind: frontend.KindSorted, Field: "fecha"},
		},
		{
			name:   "show asks for id",
			driver: &scriptedDriver{selects: []string{"Ficha de una persona"}, inputs: []string{" 42 "}},
			want:   frontend.Request{Kind: frontend.KindShow, ID: "42"},
		},
		{
			name:    "unknown option",
			driver:  &scriptedDriver{selects: []string{"Salir"}},
			wantErr: ErrNoSelection,
		},
		{
			name:    "aborted",
			driver:  &scriptedDriver{err: ErrAborted},
			wantErr: ErrAborted,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NewChooser(tc.driver, nil).Choose(context.Background())
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("choose: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("request mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestChooser_ShowRejectsEmptyID(t *testing.T) {
	driver := &scriptedDriver{selects: []string{"Ficha de una persona"}, inputs: []string{"  "}}
	if _, err := NewChooser(driver, nil).Choose(context.Background()); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestDescribe(t *testing.T) {
	if got := Describe(frontend.Request{Kind: frontend.KindSorted, Field: "peso"}); got != "sorted(peso)" {
		t.Fatalf("unexpected description %q", got)
	}
	if got := Describe(frontend.Request{Kind: frontend.KindHome}); got != "home" {
		t.Fatalf("unexpected description %q", got)
	}
}
