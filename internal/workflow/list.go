package workflow

import (
	"context"
	"errors"

	"planner-cli/internal/api"
	"planner-cli/internal/cache"
	"planner-cli/internal/model"
)

const (
	msgNoFolders   = "No folders found. Create a folder to get started."
	msgFetchFailed = "Failed to fetch folders. Please try again."
)

type FolderLister interface {
	ListFolders(ctx context.Context, workspaceID string) ([]model.Folder, error)
}

// Lister loads the folder collection for one workspace. A 404 is the empty
// state, not an error; any other failure leaves the cache empty and sets a
// retryable error message.
type Lister struct {
	scope  *Scope
	client FolderLister
	cache  *cache.Collection[model.Folder]

	// seq supersedes earlier loads: only the newest outstanding list call may
	// populate the cache. Unrelated mutations are not affected.
	seq int

	pending  Pending
	emptyMsg string
}

func NewLister(scope *Scope, client FolderLister, c *cache.Collection[model.Folder]) *Lister {
	return &Lister{scope: scope, client: client, cache: c}
}

func (l *Lister) Pending() Pending { return l.pending }

// EmptyMessage is non-empty when the last load found no records.
func (l *Lister) EmptyMessage() string { return l.emptyMsg }

type ListDone struct {
	gen     int
	seq     int
	records []model.Folder
	err     error
}

// Start marks the workflow in flight and returns the blocking call to run off
// the loop. A new Start supersedes any outstanding one.
func (l *Lister) Start(ctx context.Context, workspaceID string) func() ListDone {
	l.seq++
	gen := l.scope.Generation()
	seq := l.seq
	l.pending = Pending{Phase: PhaseInFlight}
	l.emptyMsg = ""
	client := l.client
	return func() ListDone {
		records, err := client.ListFolders(ctx, workspaceID)
		return ListDone{gen: gen, seq: seq, records: records, err: err}
	}
}

// Apply resumes the workflow on the loop. Stale completions (superseded or
// unmounted scope) are dropped without touching the cache.
func (l *Lister) Apply(d ListDone) {
	if !l.scope.Live(d.gen) || d.seq != l.seq {
		return
	}
	if d.err != nil {
		l.cache.ReplaceAll(nil)
		var nf api.NotFoundError
		if errors.As(d.err, &nf) {
			l.pending = Pending{Phase: PhaseSucceeded}
			l.emptyMsg = msgNoFolders
			return
		}
		l.pending = Pending{Phase: PhaseFailed, Err: userMessage(d.err, msgFetchFailed)}
		return
	}
	l.cache.ReplaceAll(d.records)
	l.pending = Pending{Phase: PhaseSucceeded}
	if l.cache.Len() == 0 {
		l.emptyMsg = msgNoFolders
	}
}
