// Package profile provides optional runtime profiling for daex.
//
// Profiling wraps [github.com/pkg/profile] and is compiled in only with the
// "pprof" build tag:
//
//	go build -tags pprof .
//	daex --pprof-mode=cpu --pprof-dir=/tmp/daex export model.yaml
//
// Without the tag every [Profiler] is a no-op and [Modes] is empty.
//
// Supported modes: allocs, block, clock, cpu, goroutine, heap, mem, mutex,
// thread, trace. Profiles are written to the configured directory and can be
// inspected with "go tool pprof".
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
