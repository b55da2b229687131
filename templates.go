package roster

import (
	"io/fs"

	"github.com/goliatone/go-roster/pkg/frontend"
	"github.com/goliatone/go-roster/pkg/store"
)

// EmbeddedFragments exposes the built-in row/header/footer fragments so
// callers can copy or extend them without importing the store package.
func EmbeddedFragments() fs.FS {
	return store.TemplatesFS()
}

// EmbeddedViews exposes the page templates used by the front-end handler.
func EmbeddedViews() fs.FS {
	return frontend.TemplatesFS()
}
