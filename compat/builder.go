package compat

import (
	"errors"

	"github.com/lixenwraith/flatlog"
)

// Builder provides a flexible way to create adapters for gnet and fasthttp.
// It can use an existing *flatlog.Sink or open one from a *flatlog.Config.
type Builder struct {
	sink     *flatlog.Sink
	cfg      *flatlog.Config
	registry *flatlog.Registry
	err      error
}

// NewBuilder creates a new adapter builder
func NewBuilder() *Builder {
	return &Builder{}
}

// WithSink specifies an existing sink to use for the adapters.
// If this is set WithConfig is ignored.
func (b *Builder) WithSink(s *flatlog.Sink) *Builder {
	if s == nil {
		b.err = errors.New("flatlog/compat: provided sink cannot be nil")
		return b
	}
	b.sink = s
	return b
}

// WithConfig provides a configuration for a new sink.
// Without WithSink or WithConfig the default configuration is used.
func (b *Builder) WithConfig(cfg *flatlog.Config) *Builder {
	b.cfg = cfg
	return b
}

// WithRegistry opens the created sink through r
func (b *Builder) WithRegistry(r *flatlog.Registry) *Builder {
	b.registry = r
	return b
}

// getSink resolves the sink to be used, opening one if necessary
func (b *Builder) getSink() (*flatlog.Sink, error) {
	if b.err != nil {
		return nil, b.err
	}

	if b.sink != nil {
		return b.sink, nil
	}

	cfg := b.cfg
	if cfg == nil {
		cfg = flatlog.DefaultConfig()
	}

	var (
		s   *flatlog.Sink
		err error
	)
	if b.registry != nil {
		s, err = b.registry.Open(cfg)
	} else {
		s, err = flatlog.NewSink(cfg)
	}
	if err != nil {
		return nil, err
	}

	// Cache the sink for subsequent builds with this builder
	b.sink = s
	return s, nil
}

// BuildGnet creates a gnet adapter
func (b *Builder) BuildGnet(opts ...GnetOption) (*GnetAdapter, error) {
	s, err := b.getSink()
	if err != nil {
		return nil, err
	}
	return NewGnetAdapter(s, opts...), nil
}

// BuildStructuredGnet creates a gnet adapter that extracts key=value pairs
// from format strings into fields
func (b *Builder) BuildStructuredGnet(opts ...GnetOption) (*StructuredGnetAdapter, error) {
	s, err := b.getSink()
	if err != nil {
		return nil, err
	}
	return NewStructuredGnetAdapter(s, opts...), nil
}

// BuildFastHTTP creates a fasthttp adapter
func (b *Builder) BuildFastHTTP(opts ...FastHTTPOption) (*FastHTTPAdapter, error) {
	s, err := b.getSink()
	if err != nil {
		return nil, err
	}
	return NewFastHTTPAdapter(s, opts...), nil
}

// GetSink returns the underlying sink, opening it if needed
func (b *Builder) GetSink() (*flatlog.Sink, error) {
	return b.getSink()
}

// --- Example Usage ---
//
//	reg := flatlog.NewRegistry()
//	defer reg.CloseAll()
//
//	cfg := flatlog.DefaultConfig()
//	cfg.Directory = "/var/log/edge"
//
//	builder := compat.NewBuilder().WithConfig(cfg).WithRegistry(reg)
//
//	gnetLogger, err := builder.BuildGnet()
//	if err != nil { /* handle error */ }
//	go gnet.Run(events, "tcp://:9000", gnet.WithLogger(gnetLogger))
//
//	fasthttpLogger, err := builder.BuildFastHTTP()
//	if err != nil { /* handle error */ }
//	server := &fasthttp.Server{Handler: handler, Logger: fasthttpLogger}
