package backend

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/goliatone/go-roster/pkg/record"
)

// Info is the payload served by the home and about routes.
type Info struct {
	Mensaje string `json:"mensaje"`
	Autor   string `json:"autor,omitempty"`
	Email   string `json:"email,omitempty"`
	Fecha   string `json:"fecha,omitempty"`
}

// Default informational payloads.
var (
	DefaultHome = Info{Mensaje: "Microservicio MS Plantilla: home"}

	DefaultAbout = Info{
		Mensaje: "Microservicio MS Plantilla: acerca de",
		Autor:   "Álvaro Expósito Carrillo",
		Email:   "aec00028@red.ujaen.es",
		Fecha:   "28/03/2023",
	}
)

type GuardFunc func(r *http.Request) error

type Options struct {
	RoutePath string
	Home      Info
	About     Info
	Guard     GuardFunc
	Logger    *zap.Logger

	Records []record.Record
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath: "/",
		Home:      DefaultHome,
		About:     DefaultAbout,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePath == "" {
		opts.RoutePath = "/"
	}
	if opts.Home.Mensaje == "" {
		opts.Home = DefaultHome
	}
	if opts.About.Mensaje == "" {
		opts.About = DefaultAbout
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Records != nil {
		opts.Records = append([]record.Record{}, opts.Records...)
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithHome(info Info) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Home = info
	}
}

func WithAbout(info Info) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.About = info
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithLogger(logger *zap.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}

// WithRecords replaces the embedded roster. A nil slice restores it.
func WithRecords(records []record.Record) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		if records == nil {
			o.Records = nil
			return
		}
		o.Records = append([]record.Record{}, records...)
	}
}
