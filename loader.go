package morphdict

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/lwch/logging"
)

// Loader loads a dictionary from a ByteSource.
type Loader struct {
	src    ByteSource
	asm    Assembler
	groups []Group
}

type Option func(*Loader)

// WithAssembler replaces the default Builder.
func WithAssembler(a Assembler) Option {
	return func(l *Loader) {
		if a != nil {
			l.asm = a
		}
	}
}

func withGroups(groups []Group) Option {
	return func(l *Loader) {
		l.groups = groups
	}
}

func New(src ByteSource, opts ...Option) *Loader {
	l := &Loader{
		src:    src,
		asm:    Builder{},
		groups: Catalog(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Outcome is the single result of a load. When Err is set Dict may be
// partially filled and must not be used.
type Outcome struct {
	Dict *DictionarySet
	Err  error
}

type groupResult struct {
	group string
	err   error
}

// Load starts loading every group concurrently and returns a channel that
// receives exactly one Outcome and is then closed.
//
// Each group is assembled as soon as its own resources are fetched. The
// outcome is sent when all groups succeeded or when the first one fails;
// groups still running at that point are not stopped, they finish in the
// background and their results are dropped. ctx is only handed to the
// source, the loader itself never cancels or retries.
func (l *Loader) Load(ctx context.Context, location string) <-chan Outcome {
	ch := make(chan Outcome, 1)
	ds := newDictionarySet()
	// buffered so that groups finishing after a failure never block
	done := make(chan groupResult, len(l.groups))
	var readen atomic.Uint64
	var pending atomic.Int64
	pending.Add(int64(len(l.groups)))
	begin := time.Now()
	for _, g := range l.groups {
		go func(g Group) {
			views, n, err := fetchGroup(ctx, l.src, location, g)
			if err == nil {
				if err = g.apply(l.asm, ds, views); err != nil {
					err = &AssemblyError{Group: g.Name, Err: err}
				}
			}
			if err == nil {
				readen.Add(uint64(n))
				logging.Info("%s loaded in %s, %s readen, %d groups pending",
					g.Name, time.Since(begin).Round(time.Millisecond),
					size(int(readen.Load())), pending.Add(-1))
			}
			done <- groupResult{group: g.Name, err: err}
		}(g)
	}
	go func() {
		defer close(ch)
		for range l.groups {
			r := <-done
			if r.err != nil {
				logging.Error("load dictionary %s: %v", location, r.err)
				ch <- Outcome{Dict: ds, Err: r.err}
				return
			}
		}
		logging.Info("dictionary %s loaded in %s", location, time.Since(begin).Round(time.Millisecond))
		ch <- Outcome{Dict: ds}
	}()
	return ch
}

// LoadFunc calls fn once with the outcome of Load, from another goroutine.
func (l *Loader) LoadFunc(ctx context.Context, location string, fn func(error, *DictionarySet)) {
	ch := l.Load(ctx, location)
	go func() {
		out := <-ch
		fn(out.Err, out.Dict)
	}()
}

// LoadSync blocks until the dictionary is loaded. The returned set is nil
// on error.
func (l *Loader) LoadSync(ctx context.Context, location string) (*DictionarySet, error) {
	out := <-l.Load(ctx, location)
	if out.Err != nil {
		return nil, out.Err
	}
	return out.Dict, nil
}
