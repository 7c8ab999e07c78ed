package workflow

import (
	"context"
	"testing"

	"planner-cli/internal/api"
	"planner-cli/internal/cache"
	"planner-cli/internal/model"
	"planner-cli/internal/overlay"
)

// fakeClient scripts responses per call; calls counts network activity.
type fakeClient struct {
	listResult []model.Folder
	listErr    error
	updated    model.Folder
	updateErr  error
	deleteErr  error
	shareErr   error
	addErr     error
	statusErr  error
	createErr  error

	calls        int
	lastReminder model.EventReminder
}

func (f *fakeClient) ListFolders(_ context.Context, _ string) ([]model.Folder, error) {
	f.calls++
	return f.listResult, f.listErr
}

func (f *fakeClient) UpdateFolder(_ context.Context, _, _ string) (model.Folder, error) {
	f.calls++
	return f.updated, f.updateErr
}

func (f *fakeClient) DeleteFolder(_ context.Context, _ string) error {
	f.calls++
	return f.deleteErr
}

func (f *fakeClient) ShareFolder(_ context.Context, _, _ string) error {
	f.calls++
	return f.shareErr
}

func (f *fakeClient) AddFolderUsers(_ context.Context, _ string, _ []string) error {
	f.calls++
	return f.addErr
}

func (f *fakeClient) UpdateSubtaskStatus(_ context.Context, _ string, _ model.SubtaskStatus) error {
	f.calls++
	return f.statusErr
}

func (f *fakeClient) CreateEventReminder(_ context.Context, _ string, r model.EventReminder) error {
	f.calls++
	f.lastReminder = r
	return f.createErr
}

func seedCache(names ...string) *cache.Collection[model.Folder] {
	c := cache.New[model.Folder]()
	var records []model.Folder
	for _, n := range names {
		records = append(records, model.Folder{ID: "id-" + n, TeamSpaceID: "ws", Name: n})
	}
	c.ReplaceAll(records)
	return c
}

func TestLister_SuccessPopulatesCache(t *testing.T) {
	fc := &fakeClient{listResult: []model.Folder{{ID: "f1", Name: "Inbox"}}}
	scope := NewScope()
	c := cache.New[model.Folder]()
	l := NewLister(scope, fc, c)

	run := l.Start(context.Background(), "ws-1")
	if !l.Pending().InFlight() {
		t.Fatal("should be in flight after Start")
	}
	l.Apply(run())

	if !l.Pending().Succeeded() {
		t.Fatalf("pending = %+v", l.Pending())
	}
	if c.Len() != 1 {
		t.Fatalf("cache len = %d", c.Len())
	}
}

func TestLister_404IsEmptyStateNotError(t *testing.T) {
	fc := &fakeClient{listErr: api.NotFoundError{Resource: "folders"}}
	scope := NewScope()
	c := seedCache("stale")
	l := NewLister(scope, fc, c)

	l.Apply(l.Start(context.Background(), "ws-1")())

	if l.Pending().Failed() {
		t.Fatalf("404 must not be a failure: %+v", l.Pending())
	}
	if c.Len() != 0 {
		t.Fatalf("cache len = %d, want 0", c.Len())
	}
	if l.EmptyMessage() == "" {
		t.Fatal("expected empty-state message")
	}
}

func TestLister_ServerErrorIsRetryable(t *testing.T) {
	fc := &fakeClient{listErr: api.ServerError{StatusCode: 500}}
	scope := NewScope()
	c := cache.New[model.Folder]()
	l := NewLister(scope, fc, c)

	l.Apply(l.Start(context.Background(), "ws-1")())

	if !l.Pending().Failed() || l.Pending().Err == "" {
		t.Fatalf("pending = %+v, want failure with message", l.Pending())
	}
	if c.Len() != 0 {
		t.Fatal("cache must stay empty on failure")
	}
}

func TestLister_StaleCompletionIsDropped(t *testing.T) {
	fc := &fakeClient{listResult: []model.Folder{{ID: "old", Name: "old"}}}
	scope := NewScope()
	c := cache.New[model.Folder]()
	l := NewLister(scope, fc, c)

	stale := l.Start(context.Background(), "ws-1")()

	// A newer load supersedes the outstanding one.
	fc.listResult = []model.Folder{{ID: "new", Name: "new"}}
	fresh := l.Start(context.Background(), "ws-1")()

	l.Apply(fresh)
	l.Apply(stale)

	if _, ok := c.Get("old"); ok {
		t.Fatal("stale snapshot overwrote the fresh one")
	}
	if _, ok := c.Get("new"); !ok {
		t.Fatal("fresh snapshot missing")
	}
}

func TestLister_CompletionAfterCloseIsNoop(t *testing.T) {
	fc := &fakeClient{listResult: []model.Folder{{ID: "f1", Name: "Inbox"}}}
	scope := NewScope()
	c := cache.New[model.Folder]()
	l := NewLister(scope, fc, c)

	run := l.Start(context.Background(), "ws-1")
	done := run()
	scope.Close()
	l.Apply(done)

	if c.Len() != 0 {
		t.Fatal("completion after scope close mutated the cache")
	}
}

func TestDeleter_SuccessRemovesRecordAndClosesSurfaces(t *testing.T) {
	fc := &fakeClient{}
	scope := NewScope()
	c := seedCache("a", "b", "c")
	o := overlay.New()
	d := NewDeleter(scope, fc, c, o)

	o.OpenDropdown("id-b")
	d.Request("id-b")
	if o.State().Kind != overlay.KindModal {
		t.Fatal("confirm modal should be open")
	}
	if fc.calls != 0 {
		t.Fatal("no network call before confirmation")
	}

	d.Apply(d.Confirm(context.Background())())

	records := c.Records()
	if len(records) != 2 || records[0].ID != "id-a" || records[1].ID != "id-c" {
		t.Fatalf("cache after delete: %+v", records)
	}
	if !o.State().IsNone() {
		t.Fatal("surfaces should be dismissed after confirmed delete")
	}
}

func TestDeleter_FailureLeavesCacheIntact(t *testing.T) {
	fc := &fakeClient{deleteErr: api.ServerError{StatusCode: 500, Message: "folder is locked"}}
	scope := NewScope()
	c := seedCache("a", "b", "c")
	o := overlay.New()
	d := NewDeleter(scope, fc, c, o)

	d.Request("id-b")
	d.Apply(d.Confirm(context.Background())())

	if c.Len() != 3 {
		t.Fatalf("cache len = %d, want 3 (no optimistic removal)", c.Len())
	}
	if !d.Pending().Failed() || d.Pending().Err != "folder is locked" {
		t.Fatalf("pending = %+v, want verbatim server message", d.Pending())
	}
}

func TestDeleter_CompletionAfterCloseIsNoop(t *testing.T) {
	fc := &fakeClient{}
	scope := NewScope()
	c := seedCache("a", "b")
	d := NewDeleter(scope, fc, c, overlay.New())

	d.Request("id-a")
	done := d.Confirm(context.Background())()
	scope.Close()
	d.Apply(done)

	if c.Len() != 2 {
		t.Fatal("late delete completion mutated a closed scope's cache")
	}
}

func TestEditor_SuccessUpsertsAndDismisses(t *testing.T) {
	fc := &fakeClient{updated: model.Folder{ID: "id-b", TeamSpaceID: "ws", Name: "renamed"}}
	scope := NewScope()
	c := seedCache("a", "b")
	o := overlay.New()
	e := NewEditor(scope, fc, c, o)

	e.Open(model.Folder{ID: "id-b", Name: "b"})
	e.Apply(e.Submit(context.Background(), "renamed")())

	got, _ := c.Get("id-b")
	if got.Name != "renamed" {
		t.Fatalf("cache name = %q", got.Name)
	}
	if records := c.Records(); records[1].ID != "id-b" {
		t.Fatal("upsert must preserve position")
	}
	if !o.State().IsNone() {
		t.Fatal("modal should close on success")
	}
}

func TestEditor_FailureKeepsModalOpen(t *testing.T) {
	fc := &fakeClient{updateErr: api.ValidationError{Message: "folder_name is required"}}
	scope := NewScope()
	c := seedCache("a")
	o := overlay.New()
	e := NewEditor(scope, fc, c, o)

	e.Open(model.Folder{ID: "id-a", Name: "a"})
	e.Apply(e.Submit(context.Background(), "")())

	if o.State().Kind != overlay.KindModal {
		t.Fatal("modal must stay open on failure for retry")
	}
	if e.Pending().Err != "folder_name is required" {
		t.Fatalf("err = %q", e.Pending().Err)
	}
	got, _ := c.Get("id-a")
	if got.Name != "a" {
		t.Fatal("failed edit must not touch the cache")
	}
}

func TestSharer_SuccessReportsThenHostDismisses(t *testing.T) {
	fc := &fakeClient{}
	scope := NewScope()
	o := overlay.New()
	s := NewSharer(scope, fc, o)

	s.Open("id-a")
	s.Apply(s.Submit(context.Background(), "pat@example.com")())

	if !s.Pending().Succeeded() {
		t.Fatalf("pending = %+v", s.Pending())
	}
	// The host shows the confirmation, then closes after its delay.
	if o.State().Kind != overlay.KindModal {
		t.Fatal("surface stays up for the confirmation flash")
	}
	s.Close()
	if !o.State().IsNone() {
		t.Fatal("Close must dismiss the surface")
	}
}

func TestStatusUpdater_SuccessSignalsDataChanged(t *testing.T) {
	fc := &fakeClient{}
	scope := NewScope()
	o := overlay.New()
	s := NewStatusUpdater(scope, fc, o)

	changed := 0
	s.OnChanged = func() { changed++ }

	s.Open(model.Subtask{ID: "st-1", Status: model.StatusNotStarted})
	s.Apply(s.Submit(context.Background(), model.StatusCompleted)())

	if changed != 1 {
		t.Fatalf("OnChanged fired %d times, want 1", changed)
	}
	if s.Target().Status != model.StatusCompleted {
		t.Fatalf("target status = %s", s.Target().Status)
	}
}

func TestStatusUpdater_FailureDoesNotSignal(t *testing.T) {
	fc := &fakeClient{statusErr: api.TransportError{Err: context.DeadlineExceeded}}
	scope := NewScope()
	s := NewStatusUpdater(scope, fc, overlay.New())

	changed := 0
	s.OnChanged = func() { changed++ }

	s.Open(model.Subtask{ID: "st-1"})
	s.Apply(s.Submit(context.Background(), model.StatusCompleted)())

	if changed != 0 {
		t.Fatal("OnChanged must not fire on failure")
	}
	if !s.Pending().Failed() {
		t.Fatalf("pending = %+v", s.Pending())
	}
}

func TestReminderForm_AccumulatesLocallyWithoutNetwork(t *testing.T) {
	fc := &fakeClient{}
	r := NewReminderForm(NewScope(), fc, overlay.New())

	r.Open("ev-1")
	r.Add("2026-09-01T09:00")
	r.Add("2026-09-02T10:30")
	r.Add("2026-09-01T09:00") // duplicate, kept

	entries := r.Entries()
	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(entries))
	}
	if entries[0].Time != "2026-09-01T09:00" || entries[1].Time != "2026-09-02T10:30" {
		t.Fatalf("order broken: %+v", entries)
	}
	for i, e := range entries {
		if !e.Triggered {
			t.Errorf("entries[%d].Triggered = false, want true", i)
		}
	}
	if fc.calls != 0 {
		t.Fatalf("network calls before submit = %d, want 0", fc.calls)
	}
}

func TestReminderForm_SubmitSendsAccumulatedListOnce(t *testing.T) {
	fc := &fakeClient{}
	r := NewReminderForm(NewScope(), fc, overlay.New())

	r.Open("ev-1")
	r.Add("t1")
	r.Add("t2")
	run := r.Submit(context.Background(), "standup", model.MediumEmail)

	// Mutations after Submit must not leak into the request.
	r.Add("t3")
	r.Apply(run())

	if fc.calls != 1 {
		t.Fatalf("network calls = %d, want exactly 1", fc.calls)
	}
	sent := fc.lastReminder
	if sent.Message != "standup" || sent.Medium != model.MediumEmail {
		t.Fatalf("sent = %+v", sent)
	}
	if len(sent.ReminderTimes) != 2 || sent.ReminderTimes[0].ReminderTime != "t1" || sent.ReminderTimes[1].ReminderTime != "t2" {
		t.Fatalf("reminder_times = %+v, want the list at submit time", sent.ReminderTimes)
	}
}

func TestReminderForm_RemoveDropsOneEntry(t *testing.T) {
	r := NewReminderForm(NewScope(), &fakeClient{}, overlay.New())
	r.Open("ev-1")
	r.Add("t1")
	r.Add("t2")

	entries := r.Entries()
	r.Remove(entries[0].ID)

	left := r.Entries()
	if len(left) != 1 || left[0].Time != "t2" {
		t.Fatalf("after remove: %+v", left)
	}
}
