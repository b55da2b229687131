// Package template defines the seam between page views and the template
// engine that renders them. The gotemplate subpackage provides the default
// pongo2-backed implementation.
package template
