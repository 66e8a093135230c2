package matlab

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ardnew/daex/log"
	"github.com/ardnew/daex/model"
	"github.com/ardnew/daex/pkg"
)

// Predefined errors (sentinel values).
var (
	ErrWrite = pkg.NewError("write generated file")
	ErrName  = pkg.NewError("model name is not a MATLAB identifier")
)

// Source is the model being exported. [*model.Model] implements Source.
type Source interface {
	ModelName() string
	GetStates() []model.State
	GetParameters() []model.Parameter
	GetOptions() []model.Option
}

type options struct {
	generator string
	example   bool
}

// Option configures [Class], [Example], and [Export].
type Option func(*options)

// WithGenerator sets the tool named in the generated-file warning.
func WithGenerator(name string) Option {
	return func(o *options) {
		o.generator = name
	}
}

// WithExample sets whether [Export] writes the example driver script.
func WithExample(enable bool) Option {
	return func(o *options) {
		o.example = enable
	}
}

func makeOptions(opts ...Option) options {
	o := options{generator: pkg.Name, example: true}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// ClassFile returns the file name of the class generated for src.
func ClassFile(src Source) string { return src.ModelName() + ".m" }

// ExampleFile returns the file name of the driver script generated for src.
func ExampleFile(src Source) string { return src.ModelName() + "_example.m" }

// Class returns the MATLAB classdef source for src.
func Class(src Source, opts ...Option) ([]byte, error) {
	if !model.IsIdentifier(src.ModelName()) {
		return nil, ErrName.With(slog.String("name", src.ModelName()))
	}

	e, err := newEmitter(src, makeOptions(opts...))
	if err != nil {
		return nil, err
	}

	if err := e.class(); err != nil {
		return nil, err
	}

	return e.bytes(), nil
}

// Example returns the source of a script that simulates the class
// generated for src with its default parameters and options.
func Example(src Source, opts ...Option) []byte {
	o := makeOptions(opts...)
	name := src.ModelName()

	var w writer

	w.linef(0, "%%%% Example driver script for simulating %q model.", name)
	w.warning(0, o.generator)
	w.line(0, "clear all;")
	w.line(0, "close all;")
	w.blank()
	w.line(0, "% Init model.")
	w.linef(0, "m = %s();", name)
	w.blank()
	w.line(0, "% Solver options.")
	w.line(0, "opt = odeset('AbsTol',1e-8,'RelTol',1e-8);")
	w.line(0, "opt = odeset(opt,'Mass',m.M);")
	w.blank()
	w.line(0, "% Simulation time span.")
	w.line(0, "tspan = [m.opts.t_init m.opts.t_end];")
	w.blank()
	w.line(0, "[t,x] = ode15s(@(t,x) m.ode(t,x,m.p),tspan,m.x0,opt);")
	w.line(0, "out = m.simout2struct(t,x,m.p);")
	w.blank()
	w.line(0, "% Plot result.")
	w.line(0, "m.plot(out);")

	return w.buf.Bytes()
}

// Export writes the class file and, unless disabled with [WithExample],
// the example script for src into dir. It returns the written paths.
//
// Both files are rendered before anything is written. If writing fails,
// files written by this call are removed.
func Export(ctx context.Context, src Source, dir string, opts ...Option) (paths []string, err error) {
	o := makeOptions(opts...)

	class, err := Class(src, opts...)
	if err != nil {
		return nil, err
	}

	files := []file{{ClassFile(src), class}}

	if o.example {
		files = append(files, file{ExampleFile(src), Example(src, opts...)})
	}

	defer func() {
		if err == nil {
			return
		}

		for _, path := range paths {
			if rerr := os.Remove(path); rerr != nil && !errors.Is(rerr, os.ErrNotExist) {
				log.WarnContext(ctx, "remove partial output",
					slog.String("path", path),
					slog.String("error", rerr.Error()),
				)
			}
		}

		paths = nil
	}()

	for _, f := range files {
		path := filepath.Join(dir, f.name)

		created, werr := writeFile(path, f.data)
		if created {
			paths = append(paths, path)
		}

		if werr != nil {
			return paths, werr
		}

		log.DebugContext(ctx, "wrote file",
			slog.String("path", path),
			slog.Int("bytes", len(f.data)),
		)
	}

	return paths, nil
}

type file struct {
	name string
	data []byte
}

// writeFile writes data to path. created reports whether path was opened,
// so that the caller knows to remove it when err is non-nil.
func writeFile(path string, data []byte) (created bool, err error) {
	f, err := os.Create(path)
	if err != nil {
		return false, ErrWrite.Wrap(err).With(slog.String("path", path))
	}

	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = ErrWrite.Wrap(cerr).With(slog.String("path", path))
		}
	}()

	if _, err := bytes.NewReader(data).WriteTo(f); err != nil {
		return true, ErrWrite.Wrap(err).With(slog.String("path", path))
	}

	return true, nil
}
