package domain

import (
	"context"
	"errors"
)

// ErrNoTopology is returned by a TopologyProvider when no stack listing is
// available (tool missing or listing failed). Callers fall back to a
// single current-branch descriptor; it is not a hard failure.
var ErrNoTopology = errors.New("stack topology unavailable")

type TopologyProvider interface {
	// Stack returns branch descriptors in listing order, or ErrNoTopology.
	Stack(ctx context.Context) ([]BranchRef, error)
	// CurrentBranch resolves HEAD. Failure here is a hard error.
	CurrentBranch(ctx context.Context) (string, error)
}

type PRResolver interface {
	// ResolvePR returns the PR number for a branch. ok=false means no PR,
	// which is a normal state, never an error.
	ResolvePR(ctx context.Context, branch string) (pr int64, ok bool)
}

type CheckProvider interface {
	// Checks returns the normalized checks for a branch's PR. An empty
	// list is valid; an error is a hard failure that must propagate.
	Checks(ctx context.Context, branch string) ([]Check, error)
}

type KeyPoller interface {
	// Poll drains at most one buffered keypress without ever blocking.
	Poll() (key byte, ok bool)
}

type Renderer interface {
	Render(st StackStatus, details bool)
	RenderHelp()
	RenderComplete()
}

type Notifier interface {
	Notify(ctx context.Context, title, body, url string) error
}

// StatusSink receives each composed snapshot, e.g. for a status-bar file.
// Sinks are write-only; snapshots are never read back.
type StatusSink interface {
	Write(ctx context.Context, st StackStatus) error
}
