package mutation

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"videovault/internal/application/library"
	"videovault/internal/application/undo"
	"videovault/internal/domain"
)

type diskCall struct {
	op     string
	id     string
	from   string
	target string
	opts   domain.DiskOptions
}

// fakeDisk records every call. Failures and resolved names are keyed by id.
type fakeDisk struct {
	mu       sync.Mutex
	calls    []diskCall
	fail     map[string]domain.DiskResult
	err      map[string]error
	resolve  map[string]string
	panicOn  map[string]bool
	failNext map[string]int // Fail this many further calls of the id
}

func newFakeDisk() *fakeDisk {
	return &fakeDisk{
		fail:     make(map[string]domain.DiskResult),
		err:      make(map[string]error),
		resolve:  make(map[string]string),
		panicOn:  make(map[string]bool),
		failNext: make(map[string]int),
	}
}

func (d *fakeDisk) record(c diskCall) (domain.DiskResult, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, c)

	if d.panicOn[c.id] {
		panic("boom")
	}
	if n := d.failNext[c.id]; n > 0 {
		d.failNext[c.id] = n - 1
		return domain.DiskResult{Success: false, Message: "busy", Code: domain.CodeIO}, nil
	}
	if err, ok := d.err[c.id]; ok {
		return domain.DiskResult{}, err
	}
	if r, ok := d.fail[c.id]; ok {
		return r, nil
	}
	return domain.DiskResult{Success: true, ResolvedName: d.resolve[c.id]}, nil
}

func (d *fakeDisk) AttemptRename(ctx context.Context, loc domain.Location, requestedFilename string, opts domain.DiskOptions) (domain.DiskResult, error) {
	return d.record(diskCall{op: "rename", id: loc.ID, from: loc.Path(), target: requestedFilename, opts: opts})
}

func (d *fakeDisk) MoveFile(ctx context.Context, loc domain.Location, targetDir string, opts domain.DiskOptions) (domain.DiskResult, error) {
	return d.record(diskCall{op: "move", id: loc.ID, from: loc.Path(), target: targetDir, opts: opts})
}

func (d *fakeDisk) DeleteFile(ctx context.Context, loc domain.Location) (domain.DiskResult, error) {
	return d.record(diskCall{op: "delete", id: loc.ID, from: loc.Path()})
}

func (d *fakeDisk) count(op, id string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, c := range d.calls {
		if c.op == op && (id == "" || c.id == id) {
			n++
		}
	}
	return n
}

func (d *fakeDisk) last(op, id string) (diskCall, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := len(d.calls) - 1; i >= 0; i-- {
		if d.calls[i].op == op && d.calls[i].id == id {
			return d.calls[i], true
		}
	}
	return diskCall{}, false
}

type indexOp struct {
	op   string
	id   string
	item domain.Item
}

type fakeIndex struct {
	mu  sync.Mutex
	ops []indexOp
}

func (x *fakeIndex) Add(ctx context.Context, item domain.Item) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.ops = append(x.ops, indexOp{op: "add", id: item.ID, item: item})
	return nil
}

func (x *fakeIndex) Update(ctx context.Context, item domain.Item) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.ops = append(x.ops, indexOp{op: "update", id: item.ID, item: item})
	return nil
}

func (x *fakeIndex) Remove(ctx context.Context, id string) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.ops = append(x.ops, indexOp{op: "remove", id: id})
	return nil
}

// lastFor returns the last index operation of id
func (x *fakeIndex) lastFor(id string) (indexOp, bool) {
	x.mu.Lock()
	defer x.mu.Unlock()
	for i := len(x.ops) - 1; i >= 0; i-- {
		if x.ops[i].id == id {
			return x.ops[i], true
		}
	}
	return indexOp{}, false
}

type recordingNotifier struct {
	mu    sync.Mutex
	notes []domain.Notification
}

func (n *recordingNotifier) Notify(note domain.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notes = append(n.notes, note)
}

func (n *recordingNotifier) all() []domain.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]domain.Notification(nil), n.notes...)
}

type harness struct {
	store    *library.Store
	disk     *fakeDisk
	index    *fakeIndex
	notifier *recordingNotifier
	clock    *undo.ManualClock
	coord    *Coordinator
}

func seedItems() []domain.Item {
	return []domain.Item{
		{ID: "1", DisplayName: "Beach", Filename: "beach.mp4", Dir: "holiday/", RootKey: "main", Size: 10},
		{ID: "2", DisplayName: "Forest", Filename: "forest.mkv", Dir: "holiday/", RootKey: "main", Size: 20},
		{ID: "3", DisplayName: "City", Filename: "city.avi", Dir: "", RootKey: "main", Size: 30},
	}
}

func newHarness(opts ...Option) *harness {
	h := &harness{
		store:    library.NewStore(library.WithLogger(nullLogger())),
		disk:     newFakeDisk(),
		index:    &fakeIndex{},
		notifier: &recordingNotifier{},
		clock:    undo.NewManualClock(time.Unix(1_700_000_000, 0)),
	}
	h.store.Insert(context.Background(), seedItems())

	base := []Option{
		WithLogger(nullLogger()),
		WithNotifier(h.notifier),
		WithScheduler(undo.NewScheduler(h.clock)),
	}
	h.coord = NewCoordinator(h.store, h.disk, h.index, append(base, opts...)...)
	return h
}

func nullLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
