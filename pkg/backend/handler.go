package backend

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-roster/pkg/record"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handler builds the backend handler with default options plus any overrides.
func Handler(fns ...OptionFn) http.Handler {
	return NewHandler(fns...)
}

func NewHandler(fns ...OptionFn) http.Handler {
	opts := NewOptions(fns...)
	return HandlerWithOptions(opts)
}

// HandlerWithOptions builds the handler from a pre-constructed Options value.
// Routes are matched relative to the mount point, so the handler works both
// stand-alone and behind http.StripPrefix.
func HandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	logger := opts.Logger.Named("backend")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			writeError(w, StatusError{Code: http.StatusMethodNotAllowed})
			return
		}

		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				writeGuardError(w, err)
				return
			}
		}

		route := "/" + strings.Trim(r.URL.Path, "/")
		switch {
		case route == "/":
			writeJSON(w, r, opts.Home)
		case route == "/acercade":
			writeJSON(w, r, opts.About)
		case route == "/getTodas":
			records, err := roster(opts)
			if err != nil {
				logger.Error("load roster", zap.Error(err))
				writeError(w, StatusError{Code: http.StatusInternalServerError})
				return
			}
			writeJSON(w, r, record.ListPayload{Data: records})
		case strings.HasPrefix(route, "/getPorId/"):
			id := strings.TrimPrefix(route, "/getPorId/")
			rec, err := find(opts, id)
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, r, rec)
		default:
			writeError(w, StatusError{Code: http.StatusNotFound})
		}
	})
}

func roster(opts Options) ([]record.Record, error) {
	if opts.Records != nil {
		return opts.Records, nil
	}
	return DefaultRecords()
}

func find(opts Options, id string) (record.Record, error) {
	id = strings.TrimSpace(id)
	if id == "" || strings.Contains(id, "/") {
		return record.Record{}, StatusError{Code: http.StatusNotFound}
	}
	records, err := roster(opts)
	if err != nil {
		return record.Record{}, StatusError{Code: http.StatusInternalServerError, Err: err}
	}
	for _, rec := range records {
		if rec.ID() == id {
			return rec, nil
		}
	}
	return record.Record{}, StatusError{Code: http.StatusNotFound, Err: errors.New("backend: record " + id + " not found")}
}

func writeJSON(w http.ResponseWriter, r *http.Request, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: http.StatusText(code)})
}

func writeGuardError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	if err == nil {
		writeError(w, StatusError{Code: http.StatusForbidden})
		return
	}
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil && httpErr.StatusCode() > 0 {
		writeError(w, httpErr)
		return
	}
	writeError(w, StatusError{Code: http.StatusForbidden})
}
