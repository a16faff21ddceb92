// Package watcher reports changes to individual files.
//
// Files are watched through their parent directory, so editors that save
// by writing a temporary file and renaming it over the original are still
// seen. Bursts of events for one file are merged and delivered once the
// file has been quiet for the debounce interval.
package watcher

import (
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrClosed is returned when watching with a closed watcher.
var ErrClosed = errors.New("watcher closed")

// DefaultDebounce is the quiet period used when none is given.
const DefaultDebounce = 100 * time.Millisecond

// Op is the kind of change reported for a file.
type Op uint8

const (
	Write Op = iota + 1
	Create
	Remove
	Rename
)

// String returns the operation name.
func (op Op) String() string {
	switch op {
	case Write:
		return "write"
	case Create:
		return "create"
	case Remove:
		return "remove"
	case Rename:
		return "rename"
	default:
		return "unknown"
	}
}

// Event is a change to a watched file.
type Event struct {
	Path string // absolute
	Op   Op
}

// Watcher delivers change events for a set of files.
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration

	onChange func(Event)
	onError  func(error)

	mu      sync.Mutex
	files   map[string]bool
	dirs    map[string]bool
	pending map[string]Op
	timers  map[string]*time.Timer
	started bool
	closed  bool

	done chan struct{}
	wg   sync.WaitGroup
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period. Zero delivers every event at once.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithHandler sets the function that receives change events.
func WithHandler(fn func(Event)) Option {
	return func(w *Watcher) { w.onChange = fn }
}

// WithErrorHandler sets the function that receives notifier errors.
func WithErrorHandler(fn func(error)) Option {
	return func(w *Watcher) { w.onError = fn }
}

// New creates a watcher. Nothing is delivered until Start.
func New(opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		fsw:      fsw,
		debounce: DefaultDebounce,
		files:    make(map[string]bool),
		dirs:     make(map[string]bool),
		pending:  make(map[string]Op),
		timers:   make(map[string]*time.Timer),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Watch adds path. The file need not exist yet, but its directory must.
func (w *Watcher) Watch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrClosed
	}

	dir := filepath.Dir(abs)
	if !w.dirs[dir] {
		if err := w.fsw.Add(dir); err != nil {
			return err
		}
		w.dirs[dir] = true
	}
	w.files[abs] = true
	return nil
}

// Start begins delivering events. Later calls do nothing.
func (w *Watcher) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started || w.closed {
		return
	}
	w.started = true

	w.wg.Add(1)
	go w.run()
}

// Close stops delivery and releases the notifier. Pending events are
// dropped.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	for path, t := range w.timers {
		t.Stop()
		delete(w.timers, path)
	}
	close(w.done)
	w.mu.Unlock()

	err := w.fsw.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) run() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.receive(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			if w.onError != nil {
				safely(func() { w.onError(err) })
			}
		}
	}
}

// receive filters a directory event down to the watched files.
func (w *Watcher) receive(ev fsnotify.Event) {
	op, ok := convertOp(ev.Op)
	if !ok {
		return
	}
	path := filepath.Clean(ev.Name)

	w.mu.Lock()
	watched := w.files[path] && !w.closed
	w.mu.Unlock()
	if !watched {
		return
	}

	if w.debounce == 0 {
		w.emit(Event{Path: path, Op: op})
		return
	}
	w.queue(path, op)
}

// convertOp maps a notifier op to ours. Chmod alone is ignored.
func convertOp(op fsnotify.Op) (Op, bool) {
	switch {
	case op.Has(fsnotify.Remove):
		return Remove, true
	case op.Has(fsnotify.Rename):
		return Rename, true
	case op.Has(fsnotify.Create):
		return Create, true
	case op.Has(fsnotify.Write):
		return Write, true
	}
	return 0, false
}

// merge folds next into a pending op. A write never hides the create or
// remove before it.
func merge(prev, next Op) Op {
	if prev != 0 && next == Write {
		return prev
	}
	return next
}

// queue records op for path and restarts the path's quiet timer.
func (w *Watcher) queue(path string, op Op) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending[path] = merge(w.pending[path], op)
	if t, ok := w.timers[path]; ok {
		t.Reset(w.debounce)
		return
	}
	w.timers[path] = time.AfterFunc(w.debounce, func() { w.flush(path) })
}

// flush delivers the merged event for path.
func (w *Watcher) flush(path string) {
	w.mu.Lock()
	op, ok := w.pending[path]
	delete(w.pending, path)
	delete(w.timers, path)
	closed := w.closed
	w.mu.Unlock()

	if ok && !closed {
		w.emit(Event{Path: path, Op: op})
	}
}

func (w *Watcher) emit(ev Event) {
	if w.onChange != nil {
		safely(func() { w.onChange(ev) })
	}
}

// safely runs fn, keeping a panicking handler from killing the watcher.
func safely(fn func()) {
	defer func() { _ = recover() }()
	fn()
}
