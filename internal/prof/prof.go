// Package prof wires runtime/pprof into the CLI so heavy bignum workloads
// can be profiled without a separate harness.
package prof

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
)

// Options names the output files. Empty paths disable that profile.
type Options struct {
	CPU  string
	Heap string
}

// Session is a running set of profiles.
type Session struct {
	cpu  *os.File
	heap string
	done bool
}

// Start begins CPU profiling if requested. The heap profile is written by
// Stop so it reflects the state at the end of the command.
func Start(opts Options) (*Session, error) {
	s := &Session{heap: opts.Heap}
	if opts.CPU == "" {
		return s, nil
	}
	f, err := os.Create(opts.CPU)
	if err != nil {
		return nil, fmt.Errorf("cpu profile: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("cpu profile: %w", err)
	}
	s.cpu = f
	return s, nil
}

// Active reports whether any profile was requested.
func (s *Session) Active() bool {
	return s != nil && (s.cpu != nil || s.heap != "")
}

// Stop finishes every profile. Calling it more than once is a no-op.
func (s *Session) Stop() error {
	if s == nil || s.done {
		return nil
	}
	s.done = true
	var errs []error
	if s.cpu != nil {
		pprof.StopCPUProfile()
		if err := s.cpu.Close(); err != nil {
			errs = append(errs, fmt.Errorf("cpu profile: %w", err))
		}
	}
	if s.heap != "" {
		if err := writeHeap(s.heap); err != nil {
			errs = append(errs, fmt.Errorf("heap profile: %w", err))
		}
	}
	return errors.Join(errs...)
}

func writeHeap(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()
	runtime.GC()
	return pprof.WriteHeapProfile(f)
}
