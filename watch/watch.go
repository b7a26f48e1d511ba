// Package watch turns file system notifications into messages for the
// event loop.
//
// A Watcher collects fsnotify events, debounces them into batches, and
// hands them out through Wait: an asynchronous command that delivers the
// next batch as a Msg. Models re-arm the watch by returning Wait again
// from Update after each batch, the same way a spinner re-arms its tick.
// A Watcher is safe for concurrent use and is typically placed in the
// program's Extensions so command bodies can reach it.
package watch

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/squall"
)

// ErrClosed is returned by Add and Remove after Close.
var ErrClosed = errors.New("watcher closed")

// Op describes the kind of file change, mirroring fsnotify.
type Op int

const (
	OpCreate Op = iota
	OpWrite
	OpRemove
	OpRename
	OpChmod
)

// String returns the lowercase name of the operation.
func (o Op) String() string {
	switch o {
	case OpCreate:
		return "create"
	case OpWrite:
		return "write"
	case OpRemove:
		return "remove"
	case OpRename:
		return "rename"
	case OpChmod:
		return "chmod"
	default:
		return "unknown"
	}
}

// Event is one debounced file change.
type Event struct {
	Path string
	Op   Op
}

// Msg carries a batch of debounced events into the model. A nil Events
// slice never occurs; the watcher delivers nothing rather than an empty
// batch.
type Msg struct {
	Events []Event
}

// Config configures a Watcher.
type Config struct {
	// Debounce is how long the watcher waits after the last change
	// before emitting a batch. Zero means 50ms.
	Debounce time.Duration

	// BufferSize is the pending batch channel capacity. Zero means 16.
	BufferSize int
}

// Watcher watches paths and batches their change events.
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration

	mu     sync.Mutex
	paths  map[string]bool
	closed bool

	batches chan []Event
	done    chan struct{}
	wg      sync.WaitGroup

	totalEvents  atomic.Int64
	totalBatches atomic.Int64
}

// New creates a watcher. Call Close when done; a watcher holds OS watch
// descriptors.
func New(cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = 50 * time.Millisecond
	}
	bufSize := cfg.BufferSize
	if bufSize <= 0 {
		bufSize = 16
	}

	w := &Watcher{
		fsw:      fsw,
		debounce: debounce,
		paths:    make(map[string]bool),
		batches:  make(chan []Event, bufSize),
		done:     make(chan struct{}),
	}
	w.wg.Add(1)
	go w.processLoop()
	return w, nil
}

// Add starts watching a file or directory. Watching the same path twice
// is a no-op.
func (w *Watcher) Add(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}
	if w.paths[path] {
		return nil
	}
	if err := w.fsw.Add(path); err != nil {
		return err
	}
	w.paths[path] = true
	return nil
}

// Remove stops watching a path.
func (w *Watcher) Remove(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}
	if !w.paths[path] {
		return nil
	}
	delete(w.paths, path)
	return w.fsw.Remove(path)
}

// Paths returns the watched paths in no particular order.
func (w *Watcher) Paths() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]string, 0, len(w.paths))
	for p := range w.paths {
		out = append(out, p)
	}
	return out
}

// Wait returns a command that delivers the next batch of changes as a
// watch.Msg. The command blocks on the background runner, never on the
// loop. It produces nothing when the watcher closes or the program shuts
// down first; models re-arm by returning Wait again after each batch.
func (w *Watcher) Wait() squall.Cmd {
	return squall.Async(func(ctx context.Context, _ *squall.Extensions) squall.Msg {
		select {
		case batch, ok := <-w.batches:
			if !ok {
				return nil
			}
			return Msg{Events: batch}
		case <-ctx.Done():
			return nil
		}
	})
}

// Close stops the watcher and releases its OS resources. Pending
// batches are discarded and any blocked Wait command completes with no
// message.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	close(w.done)
	err := w.fsw.Close()
	w.wg.Wait()
	close(w.batches)
	return err
}

// Events returns the total number of raw change events observed.
func (w *Watcher) Events() int64 { return w.totalEvents.Load() }

// Batches returns the total number of batches emitted.
func (w *Watcher) Batches() int64 { return w.totalBatches.Load() }

// processLoop collects raw events and flushes them as one batch after
// the debounce window has been quiet.
func (w *Watcher) processLoop() {
	defer w.wg.Done()

	var pending []Event
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	flush := func() {
		if len(pending) == 0 {
			return
		}
		w.totalBatches.Add(1)
		select {
		case w.batches <- pending:
		case <-w.done:
		default:
			// Nobody is draining and the buffer is full; drop the batch
			// rather than block the collector.
		}
		pending = nil
	}

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				flush()
				return
			}
			if e, keep := convertEvent(ev); keep {
				w.totalEvents.Add(1)
				pending = append(pending, e)
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
		case <-timer.C:
			flush()
		case _, ok := <-w.fsw.Errors:
			if !ok {
				flush()
				return
			}
		case <-w.done:
			return
		}
	}
}

// convertEvent maps an fsnotify event to a watch event. Events with no
// recognized operation bits are dropped.
func convertEvent(ev fsnotify.Event) (Event, bool) {
	var op Op
	switch {
	case ev.Op.Has(fsnotify.Create):
		op = OpCreate
	case ev.Op.Has(fsnotify.Write):
		op = OpWrite
	case ev.Op.Has(fsnotify.Remove):
		op = OpRemove
	case ev.Op.Has(fsnotify.Rename):
		op = OpRename
	case ev.Op.Has(fsnotify.Chmod):
		op = OpChmod
	default:
		return Event{}, false
	}
	return Event{Path: ev.Name, Op: op}, true
}
