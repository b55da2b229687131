// Package prompt asks the CLI user which roster view to render.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-roster/pkg/frontend"
	"github.com/goliatone/go-roster/pkg/tags"
)

type choice struct {
	label string
	kind  frontend.Kind
}

var actions = []choice{
	{"Home", frontend.KindHome},
	{"Acerca de", frontend.KindAbout},
	{"Listado completo", frontend.KindList},
	{"Listado de nombres", frontend.KindNames},
	{"Listado ordenado", frontend.KindSorted},
	{"Ficha de una persona", frontend.KindShow},
}

// Chooser turns prompt answers into controller requests.
type Chooser struct {
	driver Driver
	dict   *tags.Dictionary
}

// NewChooser builds a chooser over driver. A nil dictionary uses the default.
func NewChooser(driver Driver, dict *tags.Dictionary) *Chooser {
	if dict == nil {
		dict = tags.Default()
	}
	return &Chooser{driver: driver, dict: dict}
}

// Choose asks for an action and any argument it needs.
func (c *Chooser) Choose(ctx context.Context) (frontend.Request, error) {
	labels := make([]string, len(actions))
	for i, a := range actions {
		labels[i] = a.label
	}
	idx, err := c.driver.Select(ctx, SelectConfig{
		Message:      "¿Qué quiere ver?",
		Options:      labels,
		DefaultIndex: 2,
	})
	if err != nil {
		return frontend.Request{}, err
	}
	if idx < 0 || idx >= len(actions) {
		return frontend.Request{}, ErrNoSelection
	}

	req := frontend.Request{Kind: actions[idx].kind}
	switch req.Kind {
	case frontend.KindSorted:
		req.Field, err = c.ChooseField(ctx)
	case frontend.KindShow:
		req.ID, err = c.driver.Input(ctx, InputConfig{
			Message:   "Id de la persona:",
			Validator: requireValue,
		})
		req.ID = strings.TrimSpace(req.ID)
	}
	if err != nil {
		return frontend.Request{}, err
	}
	return req, nil
}

// ChooseField asks for one of the sortable record keys.
func (c *Chooser) ChooseField(ctx context.Context) (string, error) {
	var keys []string
	for _, tag := range c.dict.Tags() {
		if tag.Key != "" {
			keys = append(keys, tag.Key)
		}
	}
	idx, err := c.driver.Select(ctx, SelectConfig{
		Message: "Ordenar por:",
		Options: keys,
		Help:    "Los textos se comparan sin distinguir mayúsculas",
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(keys) {
		return "", ErrNoSelection
	}
	return keys[idx], nil
}

func requireValue(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("value is required")
	}
	return nil
}

// Describe formats a request for log lines.
func Describe(req frontend.Request) string {
	switch req.Kind {
	case frontend.KindSorted:
		return fmt.Sprintf("%s(%s)", req.Kind, req.Field)
	case frontend.KindShow:
		return fmt.Sprintf("%s(%s)", req.Kind, req.ID)
	default:
		return req.Kind.String()
	}
}
