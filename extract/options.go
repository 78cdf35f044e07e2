package extract

import (
	"fmt"
	"runtime"

	"github.com/rs/zerolog"

	"scraper-go/selector"
)

// Options tune an Engine. The zero value is usable: one worker per CPU, no
// page-rate throttle, default selector-cache capacity, silent logger.
type Options struct {
	Workers   int             // bulk worker count
	PageRate  float64         // max pages/sec dispatched in bulk mode, 0 = unlimited
	CacheSize int             // compiled-selector cache capacity
	Logger    zerolog.Logger  // debug logging; defaults to a no-op logger
	hasLogger bool
}

// WithLogger returns a copy of o using l for engine logging.
func (o Options) WithLogger(l zerolog.Logger) Options {
	o.Logger = l
	o.hasLogger = true
	return o
}

// Engine runs extraction pipelines with a shared compiled-selector cache.
// All methods are safe for concurrent use: the cache is internally locked
// and everything else the engine holds is read-only.
type Engine struct {
	opts  Options
	cache *selector.Cache
	log   zerolog.Logger
}

// New returns an Engine with opts applied.
func New(opts Options) *Engine {
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	log := zerolog.Nop()
	if opts.hasLogger {
		log = opts.Logger
	}
	return &Engine{
		opts:  opts,
		cache: selector.NewCache(opts.CacheSize),
		log:   log,
	}
}

// compileAll resolves the item selector and every field spec up front, so a
// bad selector fails the whole call before any document is parsed. The
// returned structures are immutable and shared freely across workers.
func (e *Engine) compileAll(itemSelector string, fields map[string]string) (*selector.Selector, map[string]FieldSpec, error) {
	itemSel, err := e.cache.Get(itemSelector)
	if err != nil {
		return nil, nil, fmt.Errorf("item selector: %w", err)
	}
	specs := make(map[string]FieldSpec, len(fields))
	for name, raw := range fields {
		body, attr, err := SplitAttrSuffix(raw)
		if err != nil {
			return nil, nil, fieldError(name, err)
		}
		sel, err := e.cache.Get(body)
		if err != nil {
			return nil, nil, fieldError(name, err)
		}
		specs[name] = FieldSpec{Selector: sel, Attr: attr}
	}
	return itemSel, specs, nil
}
