// Package schema describes the backend payloads as an OpenAPI document and
// validates fetched JSON against it.
package schema

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var embeddedSpec []byte

// Schema names defined by the embedded document.
const (
	RecordSchema     = "Record"
	RecordListSchema = "RecordList"
	InfoSchema       = "Info"
)

// Spec returns the embedded OpenAPI document bytes.
func Spec() []byte {
	return append([]byte(nil), embeddedSpec...)
}

// RecordIssue describes a list entry that does not match the Record schema.
type RecordIssue struct {
	Index    int
	RecordID string
	Err      error
}

// Validator checks payloads against component schemas.
type Validator struct {
	doc     *openapi3.T
	schemas map[string]*openapi3.Schema
}

// New loads the embedded document.
func New(ctx context.Context) (*Validator, error) {
	return NewFromData(ctx, embeddedSpec)
}

// NewFromData loads another document that defines the same component names.
func NewFromData(ctx context.Context, data []byte) (*Validator, error) {
	if len(data) == 0 {
		return nil, errors.New("schema: document is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("schema: load document: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("schema: validate document: %w", err)
	}

	v := &Validator{doc: doc, schemas: make(map[string]*openapi3.Schema)}
	for _, name := range []string{RecordSchema, RecordListSchema, InfoSchema} {
		ref, ok := doc.Components.Schemas[name]
		if !ok || ref == nil || ref.Value == nil {
			return nil, fmt.Errorf("schema: component %q not defined", name)
		}
		v.schemas[name] = ref.Value
	}
	return v, nil
}

// Document exposes the parsed OpenAPI document.
func (v *Validator) Document() *openapi3.T {
	return v.doc
}

// Operations lists the operation IDs the backend is expected to serve.
func (v *Validator) Operations() []string {
	var ids []string
	if v.doc.Paths == nil {
		return ids
	}
	for _, item := range v.doc.Paths.Map() {
		if item == nil || item.Get == nil {
			continue
		}
		ids = append(ids, item.Get.OperationID)
	}
	sort.Strings(ids)
	return ids
}

// Validate checks raw JSON against the named component schema.
func (v *Validator) Validate(name string, raw []byte) error {
	s, ok := v.schemas[name]
	if !ok {
		return fmt.Errorf("schema: unknown component %q", name)
	}
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return fmt.Errorf("schema: decode payload: %w", err)
	}
	if err := s.VisitJSON(value); err != nil {
		return fmt.Errorf("schema: %s: %w", name, err)
	}
	return nil
}

// ValidateRecord checks one record payload.
func (v *Validator) ValidateRecord(raw []byte) error {
	return v.Validate(RecordSchema, raw)
}

// ValidateInfo checks a home/about payload.
func (v *Validator) ValidateInfo(raw []byte) error {
	return v.Validate(InfoSchema, raw)
}

// ValidateList checks the list envelope and reports every record that does
// not match. An envelope without a data array is an error.
func (v *Validator) ValidateList(raw []byte) ([]RecordIssue, error) {
	var envelope struct {
		Data []json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("schema: decode list: %w", err)
	}
	if envelope.Data == nil {
		return nil, errors.New("schema: list payload has no data array")
	}

	var issues []RecordIssue
	for i, item := range envelope.Data {
		if err := v.ValidateRecord(item); err != nil {
			issues = append(issues, RecordIssue{Index: i, RecordID: peekID(item), Err: err})
		}
	}
	return issues, nil
}

func peekID(raw []byte) string {
	var probe struct {
		Ref struct {
			Inner struct {
				ID string `json:"id"`
			} `json:"@ref"`
		} `json:"ref"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return ""
	}
	return probe.Ref.Inner.ID
}
