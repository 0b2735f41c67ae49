package prefabs

import (
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Change reports that a prefab or level file was written, created, renamed
// or removed. Dir is the watched directory the file lives in and Name its
// base name, e.g. Dir "prefabs" and Name "player.yaml".
type Change struct {
	Dir     string
	Name    string
	Removed bool
}

// Path joins Dir and Name.
func (c Change) Path() string { return filepath.Join(c.Dir, c.Name) }

func changeFor(event fsnotify.Event) Change {
	return Change{
		Dir:     filepath.Dir(event.Name),
		Name:    filepath.Base(event.Name),
		Removed: event.Op&fsnotify.Remove != 0,
	}
}

// Watcher delivers debounced prefab changes from one or more directories.
// A change is delivered once its file has been quiet for the debounce
// delay, so the last write of a burst is the one reported.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan Change
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
	done    chan struct{}

	debounce time.Duration
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher:  w,
		Events:   make(chan Change, 16),
		Errors:   make(chan error, 1),
		closeCh:  make(chan struct{}),
		done:     make(chan struct{}),
		debounce: 100 * time.Millisecond,
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.Events)
		close(w.Errors)
	})
	return err
}

// Drain returns the changes queued so far without blocking. Repeated
// changes to the same file collapse into the latest one.
func (w *Watcher) Drain() []Change {
	var out []Change
	seen := make(map[string]int)
	for {
		select {
		case c, ok := <-w.Events:
			if !ok {
				return out
			}
			key := c.Path()
			if i, dup := seen[key]; dup {
				out[i] = c
				continue
			}
			seen[key] = len(out)
			out = append(out, c)
		default:
			return out
		}
	}
}

func (w *Watcher) run() {
	defer close(w.done)
	pending := newDebouncer(w.debounce)
	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !isSpecFile(event.Name) {
				continue
			}
			now := time.Now()
			pending.add(changeFor(event), now)
			if wait, ok := pending.wait(now); ok {
				timer.Reset(wait)
			}
		case now := <-timer.C:
			for _, change := range pending.flush(now) {
				select {
				case w.Events <- change:
				case <-w.closeCh:
					return
				}
			}
			if wait, ok := pending.wait(now); ok {
				timer.Reset(wait)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			timer.Stop()
			return
		}
	}
}

type pendingChange struct {
	change Change
	due    time.Time
}

// debouncer holds each file's latest change until the file has been quiet
// for delay. Every new event for a file pushes its deadline back.
type debouncer struct {
	delay   time.Duration
	pending map[string]pendingChange
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{delay: delay, pending: make(map[string]pendingChange)}
}

func (d *debouncer) add(c Change, now time.Time) {
	d.pending[c.Path()] = pendingChange{change: c, due: now.Add(d.delay)}
}

// flush removes and returns the changes due at now, oldest deadline first.
func (d *debouncer) flush(now time.Time) []Change {
	var due []pendingChange
	for key, p := range d.pending {
		if !p.due.After(now) {
			due = append(due, p)
			delete(d.pending, key)
		}
	}
	slices.SortFunc(due, func(a, b pendingChange) int {
		if c := a.due.Compare(b.due); c != 0 {
			return c
		}
		return strings.Compare(a.change.Path(), b.change.Path())
	})
	out := make([]Change, len(due))
	for i, p := range due {
		out[i] = p.change
	}
	return out
}

// wait is the time from now until the earliest pending deadline.
func (d *debouncer) wait(now time.Time) (time.Duration, bool) {
	var next time.Time
	for _, p := range d.pending {
		if next.IsZero() || p.due.Before(next) {
			next = p.due
		}
	}
	if next.IsZero() {
		return 0, false
	}
	return max(next.Sub(now), 0), true
}

// isSpecFile accepts prefab specs and level files.
func isSpecFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}
