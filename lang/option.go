package lang

import "github.com/ardnew/daex/log"

// DefaultNamespace is the structure that holds parameters in generated
// code.
const DefaultNamespace = "p"

type options struct {
	namespace string
	logger    log.Logger
}

// Option configures [Translate], [Order], and [Resolve].
type Option func(*options)

// WithNamespace sets the structure name that parameter references are
// qualified with by [Translate].
func WithNamespace(name string) Option {
	return func(o *options) {
		o.namespace = name
	}
}

// WithLogger sets the structured logger for trace-level debugging of
// dependency ordering. If not provided, the logger is zero-valued and all
// logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func makeOptions(opts ...Option) options {
	o := options{namespace: DefaultNamespace}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}
